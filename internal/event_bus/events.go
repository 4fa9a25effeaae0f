package event_bus

import "time"

const (
	EntryCreatedEvent    EventType = "entry.created"
	ProjectArchivedEvent EventType = "project.archived"
	ProjectRestoredEvent EventType = "project.restored"
	ImportCompletedEvent EventType = "import.completed"
)

type EntryCreated struct {
	EntryID     int
	ProjectID   int
	ProjectName string
	PhaseCode   string
	OccurredOn  time.Time
	Minutes     int
}

type ProjectArchived struct {
	ProjectID int
	Name      string
}

type ProjectRestored struct {
	ProjectID int
	Name      string
}

type ImportCompleted struct {
	FileName   string
	Total      int
	Successful int
	Failed     int
}
