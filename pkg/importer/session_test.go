package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession() Session {
	rows := []Row{
		{ProjectName: "Dijkstra", PhaseLabel: "VO", DateText: "2024-01-15", HoursText: "1"},
		{ProjectName: "Bergstraat", PhaseLabel: "DO", DateText: "2024-01-16", HoursText: "0"},
		{ProjectName: "Dijkstra", PhaseLabel: "SO", DateText: "2024-01-17", HoursText: "2"},
	}
	for i, row := range rows {
		rows[i] = ValidateRow(NormalizeRow(row), knownProjects())
	}
	return NewSession("uren.xlsx", time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC), rows)
}

func TestSession_ValidRows(t *testing.T) {
	session := sampleSession()

	valid := session.ValidRows()
	require.Len(t, valid, 2)
	assert.Equal(t, "schets-ontwerp", valid[1].PhaseCode)
}

func TestSession_FilterByProject(t *testing.T) {
	session := sampleSession()

	assert.Len(t, session.FilterByProject(""), 3)
	assert.Len(t, session.FilterByProject("dijkstra"), 2)
	assert.Len(t, session.FilterByProject("bergstraat"), 1)
	assert.Empty(t, session.FilterByProject("sporthal"))
}

func TestSession_UpdateRow(t *testing.T) {
	session := sampleSession()

	edited := session.Rows[1]
	edited.HoursText = "1,5"
	require.NoError(t, session.UpdateRow(1, edited, knownProjects()))
	assert.True(t, session.Rows[1].Valid)
	assert.Equal(t, 90, session.Rows[1].Minutes)

	// other rows are untouched
	assert.Equal(t, 60, session.Rows[0].Minutes)

	assert.Error(t, session.UpdateRow(3, edited, knownProjects()))
	assert.Error(t, session.UpdateRow(-1, edited, knownProjects()))
}
