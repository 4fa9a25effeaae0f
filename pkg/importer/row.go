package importer

// Row is one candidate time entry inside an import session. The raw fields
// hold whatever the file contained; the derived fields are filled by
// normalization and project matching. Rows live only for the duration of a
// session and are never persisted.
type Row struct {
	// raw extracted fields
	ProjectName string
	PhaseLabel  string
	DateText    string
	HoursText   string
	Notes       string

	// derived canonical fields
	ProjectID      int
	MatchedProject string
	PhaseCode      string
	// OccurredOn is an ISO YYYY-MM-DD date, empty when unparseable.
	OccurredOn string
	Minutes    int

	Errors []string
	Valid  bool
}
