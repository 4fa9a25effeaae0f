package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, records [][]any) *bytes.Buffer {
	t.Helper()
	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, workbook.SetSheetRow(sheet, cell, &record))
	}
	buf, err := workbook.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, workbook.Close())
	return buf
}

func TestParseSpreadsheet(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"Projectnaam", "Fase", "Datum", "Aantal uur", "Notities"},
		{"Woonhuis Dijkstra", "VO", "15-01-2024", "2,5", "overleg"},
		{"", "", "", "", ""},
		{"Verbouwing Bergstraat", "3 - Definitief ontwerp", "2024-01-16", "4", ""},
	})

	rows, err := ParseSpreadsheet(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Woonhuis Dijkstra", rows[0].ProjectName)
	assert.Equal(t, "VO", rows[0].PhaseLabel)
	assert.Equal(t, "15-01-2024", rows[0].DateText)
	assert.Equal(t, "2,5", rows[0].HoursText)
	assert.Equal(t, "overleg", rows[0].Notes)

	assert.Equal(t, "Verbouwing Bergstraat", rows[1].ProjectName)
	assert.Equal(t, "3 - Definitief ontwerp", rows[1].PhaseLabel)
}

func TestParseSpreadsheet_HeaderAliases(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"Project", "Phase", "Date", "Hours", "Notes"},
		{"Kantoor Haven", "uitvoering", "2024-02-01", "8", ""},
	})

	rows, err := ParseSpreadsheet(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Kantoor Haven", rows[0].ProjectName)
	assert.Equal(t, "8", rows[0].HoursText)
}

func TestParseSpreadsheet_SkipsLeadingBlankRowsBeforeHeader(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"", "", ""},
		{"Projectnaam", "Fase", "Datum", "Uren"},
		{"Woonhuis Dijkstra", "SO", "2024-01-10", "3"},
	})

	rows, err := ParseSpreadsheet(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "SO", rows[0].PhaseLabel)
}

func TestParseSpreadsheet_MissingColumnYieldsEmptyField(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"Projectnaam", "Datum", "Uren"},
		{"Woonhuis Dijkstra", "2024-01-10", "3"},
	})

	rows, err := ParseSpreadsheet(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].PhaseLabel)

	validated := ValidateRow(NormalizeRow(rows[0]), knownProjects())
	assert.False(t, validated.Valid)
	assert.Contains(t, validated.Errors, "Fase ontbreekt")
}

func TestParseSpreadsheet_NotASpreadsheet(t *testing.T) {
	_, err := ParseSpreadsheet(bytes.NewReader([]byte("plain text, not a workbook")))
	assert.Error(t, err)
}

func TestParseSpreadsheet_EmptySheet(t *testing.T) {
	workbook := excelize.NewFile()
	buf, err := workbook.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, workbook.Close())

	_, err = ParseSpreadsheet(buf)
	assert.ErrorContains(t, err, "no header row")
}
