package activity

import (
	"fmt"
	"sync"

	"github.com/urenlog/urenlog/internal/event_bus"
)

const defaultCapacity = 50

// Recorder keeps a bounded in-memory feed of recent events. It subscribes
// to the event bus and turns domain events into human-readable feed items,
// newest first. When the feed is full the oldest item is dropped.
type Recorder struct {
	mu       sync.RWMutex
	items    []Item
	capacity int
}

func NewRecorder(bus *event_bus.EventBus) *Recorder {
	r := &Recorder{capacity: defaultCapacity}

	event_bus.SubscribeTyped(bus, event_bus.EntryCreatedEvent, func(e event_bus.EventT[event_bus.EntryCreated]) error {
		r.record(Item{
			Kind: KindEntryCreated,
			Message: fmt.Sprintf("%d min geboekt op %s (%s)",
				e.Data.Minutes, e.Data.ProjectName, e.Data.PhaseCode),
			OccurredAt: e.Timestamp,
		})
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.ProjectArchivedEvent, func(e event_bus.EventT[event_bus.ProjectArchived]) error {
		r.record(Item{
			Kind:       KindProjectArchived,
			Message:    fmt.Sprintf("Project %s gearchiveerd", e.Data.Name),
			OccurredAt: e.Timestamp,
		})
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.ProjectRestoredEvent, func(e event_bus.EventT[event_bus.ProjectRestored]) error {
		r.record(Item{
			Kind:       KindProjectRestored,
			Message:    fmt.Sprintf("Project %s teruggezet", e.Data.Name),
			OccurredAt: e.Timestamp,
		})
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.ImportCompletedEvent, func(e event_bus.EventT[event_bus.ImportCompleted]) error {
		r.record(Item{
			Kind: KindImportCompleted,
			Message: fmt.Sprintf("Import %s afgerond: %d van %d regels geboekt",
				e.Data.FileName, e.Data.Successful, e.Data.Total),
			OccurredAt: e.Timestamp,
		})
		return nil
	})

	return r
}

func (r *Recorder) record(item Item) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append([]Item{item}, r.items...)
	if len(r.items) > r.capacity {
		r.items = r.items[:r.capacity]
	}
}

// Recent returns up to limit feed items, newest first. A non-positive
// limit returns the whole feed.
func (r *Recorder) Recent(limit int) []Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.items) {
		limit = len(r.items)
	}
	items := make([]Item, limit)
	copy(items, r.items[:limit])
	return items
}
