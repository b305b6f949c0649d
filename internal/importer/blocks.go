package importer

import (
	"strings"

	"kolejki-fizjo/internal/domain"
)

// Fixed column letters of the block layout: A card, B name, C arrival time,
// D-H five Prądy slots, I-L four Kineza slots, then three kind/area pairs.
var (
	blockCardCol     = ColumnIndex("A")
	blockNameCol     = ColumnIndex("B")
	blockTimeCol     = ColumnIndex("C")
	blockCurrentCols = []int{ColumnIndex("D"), ColumnIndex("E"), ColumnIndex("F"), ColumnIndex("G"), ColumnIndex("H")}
	blockKinezaCols  = []int{ColumnIndex("I"), ColumnIndex("J"), ColumnIndex("K"), ColumnIndex("L")}
	blockPairCols    = [][2]int{
		{ColumnIndex("M"), ColumnIndex("N")},
		{ColumnIndex("O"), ColumnIndex("P")},
		{ColumnIndex("Q"), ColumnIndex("R")},
	}
)

// ParseBlocks is the positional fallback for sheets without the named
// treatment columns. Every non-empty cell in a Prądy/Kineza block emits one
// treatment described as "<column header> <cell>"; the trailing pairs hold a
// kind token and its area.
func ParseBlocks(matrix [][]string) ParsedPatients {
	parsed := ParsedPatients{}
	if len(matrix) == 0 {
		return parsed
	}
	header := matrix[0]

	for _, row := range matrix[1:] {
		card := cellAt(row, blockCardCol)
		if card == "" {
			continue
		}
		p := parsed.ensure(card, cellAt(row, blockNameCol), cellAt(row, blockTimeCol))

		for _, c := range blockCurrentCols {
			if area := cellAt(row, c); area != "" {
				p.Treatments = append(p.Treatments, domain.Treatment{
					Kind: domain.KindCurrents,
					Desc: joinDesc(headerLabel(header, c), area),
				})
			}
		}
		for _, c := range blockKinezaCols {
			if area := cellAt(row, c); area != "" {
				p.Treatments = append(p.Treatments, domain.Treatment{
					Kind: domain.KindKinesiotherapy,
					Desc: joinDesc(headerLabel(header, c), area),
				})
			}
		}
		for _, pair := range blockPairCols {
			tok := cellAt(row, pair[0])
			if tok == "" {
				continue
			}
			kind, ok := KindFromToken(tok)
			if !ok {
				continue
			}
			p.Treatments = append(p.Treatments, domain.Treatment{Kind: kind, Desc: cellAt(row, pair[1])})
		}
	}
	return parsed
}

func headerLabel(header []string, c int) string {
	if c < 0 || c >= len(header) {
		return ""
	}
	return strings.TrimSpace(header[c])
}
