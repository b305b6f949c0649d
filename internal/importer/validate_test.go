package importer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"kolejki-fizjo/internal/domain"
	"kolejki-fizjo/internal/importer"
)

func TestCheckRequiredHeaders(t *testing.T) {
	require.NoError(t, importer.CheckRequiredHeaders([]string{"Numer karty", "Imię", "Zabieg 1"}))

	err := importer.CheckRequiredHeaders([]string{"Imię"})
	var missing importer.MissingColumnsError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, importer.MissingColumnsError{"Numer karty"}, missing)

	// The check is exact: the diacritic-free spelling does not count.
	err = importer.CheckRequiredHeaders([]string{"Numer karty", "Imie"})
	require.ErrorAs(t, err, &missing)
	require.Equal(t, importer.MissingColumnsError{"Imię"}, missing)
}

func TestValidateRecords_RowIssuesBlock(t *testing.T) {
	records := []importer.Record{
		{"Numer karty": "1", "Imię": "Anna"},
		{"Numer karty": "", "Imię": "Bez Karty"},
		{"Numer karty": "3", "Imię": "  "},
	}

	v := importer.ValidateRecords(records)
	require.Len(t, v.Issues, 2)
	// Row numbers match the spreadsheet view: data starts at row 2.
	require.Equal(t, 3, v.Issues[0].Row)
	require.Equal(t, 4, v.Issues[1].Row)
	require.Equal(t, "3", v.Issues[1].Card)
}

func TestValidateRecords_SkipsEmptyRecords(t *testing.T) {
	records := []importer.Record{
		{"Numer karty": "1", "Imię": "Anna"},
		{"Numer karty": "", "Imię": "", "Zabieg 1": " "},
		{"Numer karty": "2", "Imię": "Jan"},
	}

	v := importer.ValidateRecords(records)
	require.Empty(t, v.Issues)
	require.Len(t, v.Parsed, 2)
}

func TestValidateRecords_Duplicates(t *testing.T) {
	records := []importer.Record{
		{"Numer karty": "5", "Imię": "A"},
		{"Numer karty": "5", "Imię": "A"},
		{"Numer karty": "2", "Imię": "B"},
		{"Numer karty": "2", "Imię": "B"},
		{"Numer karty": "9", "Imię": "C"},
	}

	v := importer.ValidateRecords(records)
	require.Empty(t, v.Issues)
	require.Equal(t, []importer.DuplicateNotice{
		{Card: "2", Count: 2},
		{Card: "5", Count: 2},
	}, v.Duplicates)
	require.Len(t, v.Parsed, 3)
}

func TestValidateRecords_TreatmentGroups(t *testing.T) {
	records := []importer.Record{{
		"Numer karty":     "11",
		"Imię":            "Ola",
		"Zabieg 1":        "Prądy",
		"Okolica 1":       "kręgosłup L",
		"Rodzaj prądu 1":  "TENS",
		"Zabieg 2":        "Kineza",
		"Okolica 2":       "bark",
		"Rodzaj kinezy 2": "czynne",
		"Zabieg 3":        "Laser",
		"Okolica 3":       "kolano",
		"Zabieg 4":        "Krioterapia", // not a queue kind
		"Okolica 4":       "stopa",
		"Zabieg 5":        "Sollux",
		"Okolica 5":       "", // area required
	}}

	v := importer.ValidateRecords(records)
	require.Empty(t, v.Issues)
	require.Equal(t, []domain.Treatment{
		{Kind: domain.KindCurrents, Desc: "kręgosłup L (TENS)"},
		{Kind: domain.KindKinesiotherapy, Desc: "bark (czynne)"},
		{Kind: domain.KindLaser, Desc: "kolano"},
	}, v.Parsed["11"].Treatments)
}
