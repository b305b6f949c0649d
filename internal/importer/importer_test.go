package importer_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"kolejki-fizjo/internal/domain"
	"kolejki-fizjo/internal/importer"
)

func buildXLSX(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &cells))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestRun_NewFormat(t *testing.T) {
	data := buildXLSX(t, [][]string{
		{"Numer karty", "Imię", "Godzina przyjścia", "Zabieg 1", "Rodzaj prądu 1", "Okolica 1", "Zabieg 3", "Okolica 3"},
		{"101", "Anna Kowalska", "8:30", "Prądy", "TENS", "kręgosłup L", "laser", "kolano"},
	})

	res, err := importer.New(zap.NewNop()).Run(data, domain.CohortAmbu)
	require.NoError(t, err)
	require.False(t, res.Blocked())
	require.Equal(t, importer.StrategyNewFormat, res.Strategy)
	require.False(t, res.Replace)

	p := res.Patients["101"]
	require.NotNil(t, p)
	require.Equal(t, domain.CohortAmbu, p.Cohort)
	require.Equal(t, []domain.Treatment{
		{Kind: domain.KindCurrents, Desc: "TENS kręgosłup L"},
		{Kind: domain.KindLaser, Desc: "kolano"},
	}, p.Treatments)
}

func TestRun_FallsBackToBlocks(t *testing.T) {
	// No named treatment columns: column D is the first Prądy block cell.
	data := buildXLSX(t, [][]string{
		{"Numer karty", "Imię", "Godzina", "TENS"},
		{"55", "Jan Nowak", "7:00", "kręgosłup C"},
	})

	res, err := importer.New(zap.NewNop()).Run(data, domain.CohortDzienni)
	require.NoError(t, err)
	require.Equal(t, importer.StrategyBlocks, res.Strategy)
	require.True(t, res.Replace)
	require.Equal(t, []domain.Treatment{
		{Kind: domain.KindCurrents, Desc: "TENS kręgosłup C"},
	}, res.Patients["55"].Treatments)
	require.Equal(t, domain.CohortDzienni, res.Patients["55"].Cohort)
}

func TestRun_RecordsWhenPositionalFindsNothing(t *testing.T) {
	// Treatment columns sit past column R, outside both positional layouts,
	// and "Kineza" is not a slot token; only row validation parses them.
	header := make([]string, 20)
	header[0] = "Numer karty"
	header[1] = "Imię"
	header[18] = "Zabieg 3"
	header[19] = "Okolica 3"
	row := make([]string, 20)
	row[0] = "8"
	row[1] = "Ewa"
	row[18] = "Kineza"
	row[19] = "bark"

	res, err := importer.New(zap.NewNop()).Run(buildXLSX(t, [][]string{header, row}), domain.CohortAmbu)
	require.NoError(t, err)
	require.Equal(t, importer.StrategyRecords, res.Strategy)
	require.False(t, res.Replace)
	require.Equal(t, []domain.Treatment{
		{Kind: domain.KindKinesiotherapy, Desc: "bark"},
	}, res.Patients["8"].Treatments)
}

func TestRun_RowIssuesBlockCommit(t *testing.T) {
	data := buildXLSX(t, [][]string{
		{"Numer karty", "Imię", "Zabieg 3", "Okolica 3"},
		{"1", "Anna", "laser", "kolano"},
		{"2", "", "laser", "bark"},
	})

	res, err := importer.New(zap.NewNop()).Run(data, domain.CohortAmbu)
	require.NoError(t, err)
	require.True(t, res.Blocked())
	require.Nil(t, res.Patients)
	require.Len(t, res.Issues, 1)
	require.Equal(t, 3, res.Issues[0].Row)
}

func TestRun_SkipsBlankRows(t *testing.T) {
	// An empty row left between patients must not block the import.
	data := buildXLSX(t, [][]string{
		{"Numer karty", "Imię", "Zabieg 3", "Okolica 3"},
		{"1", "Anna", "laser", "kolano"},
		{},
		{"2", "Jan", "sollux", "twarz"},
	})

	res, err := importer.New(zap.NewNop()).Run(data, domain.CohortAmbu)
	require.NoError(t, err)
	require.False(t, res.Blocked())
	require.NotNil(t, res.Patients["1"])
	require.NotNil(t, res.Patients["2"])
	require.Equal(t, []domain.Treatment{
		{Kind: domain.KindSollux, Desc: "twarz"},
	}, res.Patients["2"].Treatments)
}

func TestRun_MissingRequiredColumns(t *testing.T) {
	data := buildXLSX(t, [][]string{
		{"Karta", "Imię"},
		{"1", "Anna"},
	})

	_, err := importer.New(zap.NewNop()).Run(data, domain.CohortAmbu)
	var missing importer.MissingColumnsError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, importer.MissingColumnsError{"Numer karty"}, missing)
}

// The positional pass never re-checks the kind label in "Zabieg 1": whatever
// it says, slot 1 lands in Prądy. Row validation would file the same row
// under Laser, but the positional result wins whenever it found at least one
// treatment. The overwrite is long-standing observed behavior; this test
// keeps it from silently changing.
func TestRun_PositionalResultOverridesRowValidation(t *testing.T) {
	data := buildXLSX(t, [][]string{
		{"Numer karty", "Imię", "Zabieg 1", "Okolica 1"},
		{"77", "Tomasz", "Laser", "kolano"},
	})

	res, err := importer.New(zap.NewNop()).Run(data, domain.CohortAmbu)
	require.NoError(t, err)
	require.Equal(t, importer.StrategyNewFormat, res.Strategy)
	require.Equal(t, []domain.Treatment{
		{Kind: domain.KindCurrents, Desc: "kolano"},
	}, res.Patients["77"].Treatments)
}

func TestRun_FileTooLarge(t *testing.T) {
	_, err := importer.New(zap.NewNop()).Run(make([]byte, importer.MaxFileSize+1), domain.CohortAmbu)
	require.ErrorIs(t, err, importer.ErrFileTooLarge)
}

func TestRun_NotASpreadsheet(t *testing.T) {
	_, err := importer.New(zap.NewNop()).Run([]byte("definitely not xlsx"), domain.CohortAmbu)
	require.Error(t, err)
}
