package importer

import (
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Spreadsheets from the field use a handful of different column headers
// for the same fields. Matching is case-insensitive on the trimmed header.
var columnAliases = map[string][]string{
	"project": {"project", "projectnaam", "project name"},
	"phase":   {"fase", "phase"},
	"date":    {"datum", "date"},
	"hours":   {"aantal uur", "aantal uren", "uren", "uur", "hours"},
	"notes":   {"notities", "notes", "omschrijving", "opmerkingen"},
}

// ParseSpreadsheet reads the first sheet of an xlsx file into raw rows.
// The first non-empty row is the header; subsequent rows are mapped to raw
// import rows through the column alias table. Fully empty rows are skipped.
func ParseSpreadsheet(r io.Reader) ([]Row, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open spreadsheet: %w", err)
	}
	defer func() {
		if err := workbook.Close(); err != nil {
			log.Warnf("failed to close spreadsheet: %v", err)
		}
	}()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet contains no sheets")
	}
	cells, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %s: %w", sheets[0], err)
	}

	var columns map[string]int
	var rows []Row
	for _, record := range cells {
		if isEmptyRecord(record) {
			continue
		}
		if columns == nil {
			columns = resolveColumns(record)
			continue
		}
		rows = append(rows, Row{
			ProjectName: cellAt(record, columns, "project"),
			PhaseLabel:  cellAt(record, columns, "phase"),
			DateText:    cellAt(record, columns, "date"),
			HoursText:   cellAt(record, columns, "hours"),
			Notes:       cellAt(record, columns, "notes"),
		})
	}
	if columns == nil {
		return nil, fmt.Errorf("spreadsheet contains no header row")
	}

	return rows, nil
}

func resolveColumns(header []string) map[string]int {
	columns := make(map[string]int, len(columnAliases))
	for idx, cell := range header {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for field, aliases := range columnAliases {
			for _, alias := range aliases {
				if normalized == alias {
					if _, taken := columns[field]; !taken {
						columns[field] = idx
					}
				}
			}
		}
	}
	return columns
}

func cellAt(record []string, columns map[string]int, field string) string {
	idx, ok := columns[field]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func isEmptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
