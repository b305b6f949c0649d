package importer

import (
	"fmt"
	"sort"
	"strings"

	"kolejki-fizjo/internal/domain"
)

// Required header-keyed columns. The exact spellings matter: these are the
// column names the clinic's export writes.
const (
	HeaderCard = "Numer karty"
	HeaderName = "Imię"
)

// MissingColumnsError reports required columns absent from the sheet; the
// import aborts before any parsing is committed.
type MissingColumnsError []string

func (e MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e, ", ")
}

// RowIssue is one row that failed required-field validation. Row is 1-based
// and offset by one for the header row, so it matches what the user sees in
// the spreadsheet program.
type RowIssue struct {
	Row    int    `json:"row"`
	Card   string `json:"card"`
	Name   string `json:"name"`
	Record Record `json:"record"`
}

// DuplicateNotice flags a card number occurring in more than one row.
// Informational only: the rows still merge.
type DuplicateNotice struct {
	Card  string `json:"card"`
	Count int    `json:"count"`
}

// Validation is the outcome of the required-field pass over the header-keyed
// rows. Any Issues block the import as a whole; nothing is committed until
// the user fixes or cancels.
type Validation struct {
	Parsed     ParsedPatients
	Issues     []RowIssue
	Duplicates []DuplicateNotice
}

// CheckRequiredHeaders verifies the card-number and name columns exist.
func CheckRequiredHeaders(headers []string) error {
	present := map[string]bool{}
	for _, h := range headers {
		present[h] = true
	}
	var missing MissingColumnsError
	for _, h := range []string{HeaderCard, HeaderName} {
		if !present[h] {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return missing
	}
	return nil
}

// ValidateRecords runs the required-field gate and parses valid rows through
// the generic "Zabieg N"/"Okolica N" column groups.
func ValidateRecords(records []Record) Validation {
	v := Validation{Parsed: ParsedPatients{}}
	counts := map[string]int{}

	for i, rec := range records {
		if recordEmpty(rec) {
			// Blank rows left in the grid by the spreadsheet program
			// carry nothing to import.
			continue
		}
		card := strings.TrimSpace(rec[HeaderCard])
		name := strings.TrimSpace(rec[HeaderName])
		if card != "" {
			counts[card]++
		}
		if card == "" || name == "" {
			// +2: rows are 1-based and row 1 is the header.
			v.Issues = append(v.Issues, RowIssue{Row: i + 2, Card: card, Name: name, Record: rec})
			continue
		}
		parseRecord(rec, v.Parsed)
	}

	for card, n := range counts {
		if n > 1 {
			v.Duplicates = append(v.Duplicates, DuplicateNotice{Card: card, Count: n})
		}
	}
	sort.Slice(v.Duplicates, func(i, j int) bool { return v.Duplicates[i].Card < v.Duplicates[j].Card })
	return v
}

func recordEmpty(rec Record) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseRecord reads up to five "Zabieg N / Okolica N" groups from one row.
// Prądy and Kineza get the current/exercise type appended in parentheses;
// kind labels that do not match a queue are dropped.
func parseRecord(rec Record, parsed ParsedPatients) {
	card := strings.TrimSpace(rec[HeaderCard])
	if card == "" {
		return
	}
	p := parsed.ensure(card, strings.TrimSpace(rec[HeaderName]), "")

	for i := 1; i <= 5; i++ {
		kindLabel := strings.TrimSpace(rec[fmt.Sprintf("Zabieg %d", i)])
		area := strings.TrimSpace(rec[fmt.Sprintf("Okolica %d", i)])
		if kindLabel == "" || area == "" {
			continue
		}
		kind, ok := domain.KindFromLabel(kindLabel)
		if !ok {
			continue
		}
		desc := area
		if kind == domain.KindCurrents {
			if t := strings.TrimSpace(rec[fmt.Sprintf("Rodzaj prądu %d", i)]); t != "" {
				desc = area + " (" + t + ")"
			}
		}
		if kind == domain.KindKinesiotherapy {
			if t := strings.TrimSpace(rec[fmt.Sprintf("Rodzaj kinezy %d", i)]); t != "" {
				desc = area + " (" + t + ")"
			}
		}
		p.Treatments = append(p.Treatments, domain.Treatment{Kind: kind, Desc: desc})
	}
}
