package importer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"kolejki-fizjo/internal/domain"
	"kolejki-fizjo/internal/importer"
)

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"Numer karty":         "numer karty",
		"  Godzina przyjścia": "godzina przyjscia",
		"PRĄDY":               "prady",
		"Zabieg   1":          "zabieg 1",
		"Ultradźwięki":        "ultradzwieki",
		"":                    "",
		"   ":                 "",
	}
	for in, want := range cases {
		require.Equal(t, want, importer.NormalizeHeader(in), "input %q", in)
	}
}

func TestColumnIndex(t *testing.T) {
	require.Equal(t, 0, importer.ColumnIndex("A"))
	require.Equal(t, 3, importer.ColumnIndex("D"))
	require.Equal(t, 17, importer.ColumnIndex("R"))
	require.Equal(t, 26, importer.ColumnIndex("AA"))
}

func TestKindFromToken(t *testing.T) {
	for token, want := range map[string]domain.Kind{
		"laser":        domain.KindLaser,
		"LASER":        domain.KindLaser,
		"ud":           domain.KindUltrasound,
		"Ultradźwięki": domain.KindUltrasound,
		"ultradzwieki": domain.KindUltrasound,
		"mtc":          domain.KindMagnetotherapy,
		"Magnetronik":  domain.KindMagnetotherapy,
		"sollux":       domain.KindSollux,
	} {
		got, ok := importer.KindFromToken(token)
		require.True(t, ok, "token %q", token)
		require.Equal(t, want, got, "token %q", token)
	}

	_, ok := importer.KindFromToken("jonoforeza")
	require.False(t, ok)
}
