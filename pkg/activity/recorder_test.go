package activity

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urenlog/urenlog/internal/event_bus"
)

func TestRecorder_RecordsDomainEvents(t *testing.T) {
	bus := event_bus.NewEventBus()
	recorder := NewRecorder(bus)
	ctx := context.Background()

	require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.EntryCreatedEvent, event_bus.EntryCreated{
		ProjectName: "Woonhuis Dijkstra",
		PhaseCode:   "voorlopig-ontwerp",
		OccurredOn:  time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		Minutes:     150,
	})))
	require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.ProjectArchivedEvent, event_bus.ProjectArchived{
		ProjectID: 1,
		Name:      "Kantoor Haven",
	})))
	require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.ImportCompletedEvent, event_bus.ImportCompleted{
		FileName:   "uren.xlsx",
		Total:      3,
		Successful: 2,
		Failed:     1,
	})))

	items := recorder.Recent(0)
	require.Len(t, items, 3)

	// newest first
	assert.Equal(t, KindImportCompleted, items[0].Kind)
	assert.Equal(t, "Import uren.xlsx afgerond: 2 van 3 regels geboekt", items[0].Message)
	assert.Equal(t, KindProjectArchived, items[1].Kind)
	assert.Equal(t, "Project Kantoor Haven gearchiveerd", items[1].Message)
	assert.Equal(t, KindEntryCreated, items[2].Kind)
	assert.Equal(t, "150 min geboekt op Woonhuis Dijkstra (voorlopig-ontwerp)", items[2].Message)
}

func TestRecorder_BoundsTheFeed(t *testing.T) {
	bus := event_bus.NewEventBus()
	recorder := NewRecorder(bus)
	ctx := context.Background()

	for i := 0; i < defaultCapacity+10; i++ {
		require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.ProjectArchivedEvent, event_bus.ProjectArchived{
			ProjectID: i,
			Name:      fmt.Sprintf("Project %d", i),
		})))
	}

	items := recorder.Recent(0)
	require.Len(t, items, defaultCapacity)
	assert.Equal(t, fmt.Sprintf("Project %d gearchiveerd", defaultCapacity+9), items[0].Message)

	limited := recorder.Recent(5)
	assert.Len(t, limited, 5)
}
