package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/urenlog/urenlog/pkg/project"
)

// Session is the value object for one import: a parsed file, its candidate
// rows, and nothing else. A session is constructed fresh per upload and
// travels through the client between preview and commit; it is never
// persisted server-side.
type Session struct {
	ID        uuid.UUID
	FileName  string
	CreatedAt time.Time
	Rows      []Row
}

func NewSession(fileName string, createdAt time.Time, rows []Row) Session {
	return Session{
		ID:        uuid.New(),
		FileName:  fileName,
		CreatedAt: createdAt,
		Rows:      rows,
	}
}

// ValidRows returns the subset of rows that currently pass validation.
func (s Session) ValidRows() []Row {
	valid := make([]Row, 0, len(s.Rows))
	for _, row := range s.Rows {
		if row.Valid {
			valid = append(valid, row)
		}
	}
	return valid
}

// FilterByProject returns the rows whose matched project name contains the
// given text, case-insensitively. An empty filter returns all rows.
func (s Session) FilterByProject(name string) []Row {
	if strings.TrimSpace(name) == "" {
		return s.Rows
	}
	filtered := make([]Row, 0, len(s.Rows))
	for _, row := range s.Rows {
		if strings.Contains(strings.ToLower(row.MatchedProject), strings.ToLower(strings.TrimSpace(name))) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// UpdateRow replaces one row after an inline edit and revalidates just that
// row, leaving the others untouched.
func (s *Session) UpdateRow(index int, row Row, projects []project.Project) error {
	if index < 0 || index >= len(s.Rows) {
		return fmt.Errorf("row index %d out of range", index)
	}
	s.Rows[index] = ValidateRow(NormalizeRow(row), projects)
	return nil
}
