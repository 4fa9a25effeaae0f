package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
	}{
		{"ISO string passes through", "2024-01-15", "2024-01-15"},
		{"day-first with four-digit year", "20-04-2023", "2023-04-20"},
		{"two-digit year maps to 2000s", "20-04-23", "2023-04-20"},
		{"slash separators", "1/2/24", "2024-02-01"},
		{"spreadsheet serial number", 45292, "2024-01-01"},
		{"spreadsheet serial as float", float64(45292), "2024-01-01"},
		{"spreadsheet serial as string cell", "45292", "2024-01-01"},
		{"negative serial", -3, ""},
		{"rolled-over date is rejected", "31-02-2024", ""},
		{"empty string", "", ""},
		{"garbage", "vrijdag", ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.raw))
		})
	}
}

func TestNormalizeHours(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want float64
	}{
		{"comma decimal", "3,25", 3.25},
		{"thousands dot with comma decimal", "1.234,5", 1234.5},
		{"plain integer string", "8", 8},
		{"number passes through", float64(2.5), 2.5},
		{"int passes through", 3, 3},
		{"empty string", "", 0},
		{"garbage", "acht", 0},
		{"nil", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHours(tt.raw))
		})
	}
}

func TestMinutesFromHours(t *testing.T) {
	assert.Equal(t, 150, MinutesFromHours(2.5))
	assert.Equal(t, 195, MinutesFromHours(3.25))
	// rounding, not truncation
	assert.Equal(t, 100, MinutesFromHours(1.666))
	assert.Equal(t, 0, MinutesFromHours(0))
	assert.Equal(t, 0, MinutesFromHours(-1))
}

func TestNormalizeRow_IsIdempotent(t *testing.T) {
	row := Row{
		ProjectName: "Woonhuis Dijkstra",
		PhaseLabel:  "3 - Definitief ontwerp",
		DateText:    "20-04-23",
		HoursText:   "3,25",
	}

	once := NormalizeRow(row)
	twice := NormalizeRow(once)

	assert.Equal(t, "2023-04-20", once.OccurredOn)
	assert.Equal(t, 195, once.Minutes)
	assert.Equal(t, "definitief-ontwerp", once.PhaseCode)
	assert.Equal(t, once, twice)
}
