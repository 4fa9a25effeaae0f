package billing

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// CsvSummaryRenderer renders computed billing summaries as CSV, one row per
// phase plus a total row per project. Amounts are formatted in major
// currency units with two decimals.
type CsvSummaryRenderer struct {
}

func NewCsvSummaryRenderer() *CsvSummaryRenderer {
	return &CsvSummaryRenderer{}
}

func (r *CsvSummaryRenderer) Render(summaries []ProjectSummary) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"Project", "Client", "Phase", "Hours", "Spent", "Budget", "Status"}
	if err := writer.Write(header); err != nil {
		log.Errorf("failed to write CSV header: %v", err)
		return "", err
	}

	for _, summary := range summaries {
		for _, phaseSummary := range summary.Phases {
			record := []string{
				summary.Project.Name,
				summary.Project.ClientName,
				phaseSummary.Phase.Name,
				formatHours(phaseSummary.Hours),
				formatCents(phaseSummary.SpentCents),
				formatCents(phaseSummary.BudgetCents),
				string(phaseSummary.Status),
			}
			if err := writer.Write(record); err != nil {
				log.Errorf("failed to write CSV record: %v", err)
				return "", err
			}
		}
		total := []string{
			summary.Project.Name,
			summary.Project.ClientName,
			"Total",
			formatHours(summary.TotalHours),
			formatCents(summary.TotalSpentCents),
			formatCents(summary.TotalBudgetCents),
			string(summary.Status),
		}
		if err := writer.Write(total); err != nil {
			log.Errorf("failed to write CSV record: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', 2, 64)
}

func formatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}
