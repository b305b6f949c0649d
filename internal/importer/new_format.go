package importer

import (
	"fmt"
	"strings"

	"kolejki-fizjo/internal/domain"
)

// ParseNewFormat reads the named-column layout: card number, name and
// arrival time located through normalized headers, plus five treatment
// slots. Slot 1 is always Prądy (current type + area), slot 2 is always
// Kineza (exercise type + area), slots 3-5 carry a free-text kind token
// resolved through the alias table with the area as description.
func ParseNewFormat(matrix [][]string) ParsedPatients {
	parsed := ParsedPatients{}
	if len(matrix) == 0 {
		return parsed
	}

	hmap := map[string]int{}
	for c, h := range matrix[0] {
		if key := NormalizeHeader(h); key != "" {
			if _, ok := hmap[key]; !ok {
				hmap[key] = c
			}
		}
	}
	col := func(names ...string) int {
		for _, n := range names {
			if i, ok := hmap[NormalizeHeader(n)]; ok {
				return i
			}
		}
		return -1
	}

	cardCol := col("Numer karty")
	nameCol := col("Imię", "Imie")
	timeCol := col("Godzina przyjścia", "Godzina przyjscia")

	// Slot 1: accept "Prądy"/"Prady" written straight into "Zabieg 1".
	z1 := col("Zabieg 1", "Z1", "Prądy", "Prady", "Zabieg1")
	o1 := col("Okolica 1", "Okolica1")
	rp1 := col("Rodzaj prądu 1", "Rodzaju prądu 1", "Rodzaj pradu 1", "Rodzaj pradu1", "Rodzaj prądu1")

	z2 := col("Zabieg 2", "Z2", "Kineza", "Zabieg2")
	o2 := col("Okolica 2", "Okolica2")
	rk2 := col("Rodzaj kinezy 2", "Rodzaj kinezy2", "Rodzaj kinesy 2", "Rodzaj kinesy2", "Rodzaj kinesy")

	type slot struct{ z, o int }
	var tail [3]slot
	for i := range tail {
		n := i + 3
		tail[i] = slot{
			z: col(fmt.Sprintf("Zabieg %d", n), fmt.Sprintf("Z%d", n)),
			o: col(fmt.Sprintf("Okolica %d", n), fmt.Sprintf("Okolica%d", n)),
		}
	}

	for _, row := range matrix[1:] {
		card := cellAt(row, cardCol)
		if card == "" {
			continue
		}
		p := parsed.ensure(card, cellAt(row, nameCol), cellAt(row, timeCol))

		area := cellAt(row, o1)
		typ := cellAt(row, rp1)
		tok := strings.ToLower(cellAt(row, z1))
		if area != "" || typ != "" || tok == "prądy" || tok == "prady" {
			if desc := joinDesc(typ, area); desc != "" {
				p.Treatments = append(p.Treatments, domain.Treatment{Kind: domain.KindCurrents, Desc: desc})
			}
		}

		area = cellAt(row, o2)
		typ = cellAt(row, rk2)
		tok = strings.ToLower(cellAt(row, z2))
		if area != "" || typ != "" || tok == "kineza" {
			if desc := joinDesc(typ, area); desc != "" {
				p.Treatments = append(p.Treatments, domain.Treatment{Kind: domain.KindKinesiotherapy, Desc: desc})
			}
		}

		for _, s := range tail {
			tok := cellAt(row, s.z)
			if tok == "" {
				continue
			}
			kind, ok := KindFromToken(tok)
			if !ok {
				continue
			}
			p.Treatments = append(p.Treatments, domain.Treatment{Kind: kind, Desc: cellAt(row, s.o)})
		}
	}
	return parsed
}

func cellAt(row []string, c int) string {
	if c < 0 || c >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[c])
}

// joinDesc composes "<type> <area>" with either part optional.
func joinDesc(typ, area string) string {
	switch {
	case typ == "":
		return area
	case area == "":
		return typ
	default:
		return typ + " " + area
	}
}
