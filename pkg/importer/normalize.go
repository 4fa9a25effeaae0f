package importer

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/urenlog/urenlog/pkg/phase"
)

// Normalization never fails loudly: unparseable input degrades to an
// empty or zero result so that validation can report a precise, row-scoped
// error instead of aborting the whole import.

var (
	isoDateRe        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dayFirstDateRe   = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{2,4})$`)
	fallbackLayouts  = []string{"2006-01-02T15:04:05", time.RFC3339, "02.01.2006", "January 2, 2006"}
	spreadsheetEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
)

// NormalizeDate converts a raw spreadsheet cell into an ISO YYYY-MM-DD
// string. It accepts spreadsheet serial date numbers (1900-based epoch with
// the classic off-by-two leap-year correction), ISO strings, day-first
// D-M-YYYY and D/M/YY strings (two-digit years map to 2000+), and a few
// other common layouts. Unparseable input yields an empty string.
func NormalizeDate(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case float64:
		return serialToISO(int(v))
	case int:
		return serialToISO(v)
	case string:
		return normalizeDateString(v)
	default:
		return normalizeDateString(fmt.Sprint(v))
	}
}

func normalizeDateString(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if isoDateRe.MatchString(s) {
		return s
	}
	// numeric cells arrive as serial number strings
	if serial, err := strconv.Atoi(s); err == nil && serial >= 10000 && serial < 60000 {
		return serialToISO(serial)
	}
	if m := dayFirstDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		// reject rolled-over dates such as 31-02
		if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
			return ""
		}
		return date.Format("2006-01-02")
	}
	for _, layout := range fallbackLayouts {
		if date, err := time.Parse(layout, s); err == nil {
			return date.Format("2006-01-02")
		}
	}
	return ""
}

func serialToISO(serial int) string {
	if serial <= 0 {
		return ""
	}
	return spreadsheetEpoch.AddDate(0, 0, serial).Format("2006-01-02")
}

// NormalizeHours converts a raw cell into fractional hours. Strings follow
// the NL convention: thousands-separator dots are stripped and the comma is
// the decimal separator. Unparseable input yields 0, which validation
// treats as invalid.
func NormalizeHours(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
		hours, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return hours
	default:
		return 0
	}
}

// MinutesFromHours converts fractional hours to whole minutes, rounding to
// the nearest minute and never going negative.
func MinutesFromHours(hours float64) int {
	minutes := int(math.Round(hours * 60))
	if minutes < 0 {
		return 0
	}
	return minutes
}

// NormalizeRow derives the canonical fields of a row from its raw fields.
// It is idempotent: normalizing an already-normalized row changes nothing.
func NormalizeRow(row Row) Row {
	row.OccurredOn = NormalizeDate(row.DateText)
	row.Minutes = MinutesFromHours(NormalizeHours(row.HoursText))
	row.PhaseCode = phase.CanonicalCode(row.PhaseLabel)
	return row
}
