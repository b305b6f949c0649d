package importer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"kolejki-fizjo/internal/domain"
)

// stripMarks decomposes to NFD and removes combining marks, so "Prądy" and
// "Prady" normalize to the same key.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader canonicalizes a header cell for fuzzy lookup: diacritics
// stripped, lowercased, internal whitespace collapsed, trimmed. It is total;
// anything unparseable normalizes to the empty string.
func NormalizeHeader(h string) string {
	if h == "" {
		return ""
	}
	s, _, err := transform.String(stripMarks, h)
	if err != nil {
		s = h
	}
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// ColumnIndex converts a spreadsheet column letter ("A", "D", "AA") to its
// zero-based index.
func ColumnIndex(letter string) int {
	n := 0
	for i := 0; i < len(letter); i++ {
		n = n*26 + int(letter[i]-'A') + 1
	}
	return n - 1
}

// kindTokens maps normalized free-text kind tokens from slot columns to a
// queue kind. A missing token is a valid outcome: the treatment is dropped,
// never guessed.
var kindTokens = map[string]domain.Kind{
	"laser":          domain.KindLaser,
	"mtc":            domain.KindMagnetotherapy,
	"magnetoterapia": domain.KindMagnetotherapy,
	"magnetronik":    domain.KindMagnetotherapy,
	"sollux":         domain.KindSollux,
	"ud":             domain.KindUltrasound,
	"ultradzwieki":   domain.KindUltrasound,
}

// KindFromToken resolves a kind token case- and diacritic-insensitively
// ("UD", "Ultradźwięki" and "ultradzwieki" all resolve to Ultradźwięki).
func KindFromToken(token string) (domain.Kind, bool) {
	k, ok := kindTokens[NormalizeHeader(token)]
	return k, ok
}
