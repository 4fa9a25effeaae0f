package importer

import (
	"fmt"
	"strings"

	"github.com/urenlog/urenlog/pkg/project"
)

// Validation error messages shown to the user, one per failed check.
const (
	errMissingProjectName = "Projectnaam ontbreekt"
	errMissingPhase       = "Fase ontbreekt"
	errInvalidDate        = "Ongeldige of ontbrekende datum"
	errInvalidHours       = "Ongeldige of ontbrekende uren"
)

// ValidateRow checks a normalized row against the known project list and
// returns the row with its error list and validity flag set. It is
// deterministic and side-effect-free, so a row can be revalidated after
// every inline edit.
func ValidateRow(row Row, projects []project.Project) Row {
	row.Errors = nil
	row.ProjectID = 0
	row.MatchedProject = ""

	name := strings.TrimSpace(row.ProjectName)
	if name == "" {
		row.Errors = append(row.Errors, errMissingProjectName)
	} else if matched, found := project.Match(name, projects); found {
		row.ProjectID = matched.ID
		row.MatchedProject = matched.Name
	} else {
		row.Errors = append(row.Errors, fmt.Sprintf("Project %q niet gevonden", name))
	}

	if row.PhaseCode == "" {
		row.Errors = append(row.Errors, errMissingPhase)
	}
	if row.OccurredOn == "" {
		row.Errors = append(row.Errors, errInvalidDate)
	}
	if row.Minutes <= 0 {
		row.Errors = append(row.Errors, errInvalidHours)
	}

	row.Valid = len(row.Errors) == 0
	return row
}
