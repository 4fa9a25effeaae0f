package entry

import (
	"time"
)

// TimeEntry is one logged unit of work: a calendar day, a project, a phase,
// and a duration in whole minutes. The sum of a project's entries' minutes
// is the basis for all billing aggregation.
type TimeEntry struct {
	ID        int
	ProjectID int
	PhaseCode string
	// OccurredOn is a calendar day; the time-of-day part is always zero.
	OccurredOn time.Time
	Minutes    int
	Notes      string
}

// Hours converts the entry duration to fractional hours.
func (e TimeEntry) Hours() float64 {
	return float64(e.Minutes) / 60.0
}
