package importer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"kolejki-fizjo/internal/domain"
	"kolejki-fizjo/internal/importer"
)

// blockHeader builds a header row for the fixed block layout: A card,
// B name, C time, D-H Prądy, I-L Kineza, M/N O/P Q/R kind+area pairs.
func blockHeader() []string {
	return []string{
		"Numer karty", "Imię", "Godzina",
		"TENS", "IF", "DD", "Galwan", "Jono",
		"ćw. indyw", "ćw. grupowe", "wyciąg", "UGUL",
		"Zabieg", "Okolica", "Zabieg", "Okolica", "Zabieg", "Okolica",
	}
}

func TestParseBlocks_CurrentsAndKineza(t *testing.T) {
	row := make([]string, 18)
	row[0] = "200"
	row[1] = "Ewa Lis"
	row[2] = "7:45"
	row[3] = "kręgosłup C" // D: TENS
	row[8] = "staw barkowy" // I: first Kineza column

	parsed := importer.ParseBlocks([][]string{blockHeader(), row})
	p := parsed["200"]
	require.NotNil(t, p)
	require.Equal(t, "Ewa Lis", p.Name)
	require.Equal(t, "7:45", p.Time)
	require.Equal(t, []domain.Treatment{
		{Kind: domain.KindCurrents, Desc: "TENS kręgosłup C"},
		{Kind: domain.KindKinesiotherapy, Desc: "ćw. indyw staw barkowy"},
	}, p.Treatments)
}

func TestParseBlocks_KindAreaPairs(t *testing.T) {
	row := make([]string, 18)
	row[0] = "201"
	row[1] = "Piotr"
	row[12] = "laser" // M
	row[13] = "kolano P"
	row[14] = "mtc" // O
	row[15] = "biodro"
	row[16] = "wirówka" // Q: unknown token, dropped
	row[17] = "stopa"

	parsed := importer.ParseBlocks([][]string{blockHeader(), row})
	require.Equal(t, []domain.Treatment{
		{Kind: domain.KindLaser, Desc: "kolano P"},
		{Kind: domain.KindMagnetotherapy, Desc: "biodro"},
	}, parsed["201"].Treatments)
}

func TestParseBlocks_SkipsRowsWithoutCard(t *testing.T) {
	row := make([]string, 18)
	row[1] = "Bez Karty"
	row[3] = "kręgosłup"

	parsed := importer.ParseBlocks([][]string{blockHeader(), row})
	require.Empty(t, parsed)
}
