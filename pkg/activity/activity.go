package activity

import "time"

// Kind classifies a feed item.
type Kind string

const (
	KindEntryCreated    Kind = "entry_created"
	KindProjectArchived Kind = "project_archived"
	KindProjectRestored Kind = "project_restored"
	KindImportCompleted Kind = "import_completed"
)

// Item is one line of the recent-activity feed shown on the dashboard.
type Item struct {
	Kind       Kind
	Message    string
	OccurredAt time.Time
}
