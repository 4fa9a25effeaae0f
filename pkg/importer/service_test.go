package importer

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urenlog/urenlog/internal/event_bus"
	"github.com/urenlog/urenlog/internal/utils"
	"github.com/urenlog/urenlog/pkg/entry"
	"github.com/urenlog/urenlog/pkg/phase"
	"github.com/urenlog/urenlog/pkg/project"
)

// recordingCreator records every created entry in call order and checks
// that creations never overlap.
type recordingCreator struct {
	created  []entry.TimeEntry
	inFlight atomic.Int32
	overlap  atomic.Bool
	failFor  map[int]error
	nextID   int
}

func (c *recordingCreator) Create(_ context.Context, e entry.TimeEntry) (entry.TimeEntry, error) {
	if c.inFlight.Add(1) > 1 {
		c.overlap.Store(true)
	}
	defer c.inFlight.Add(-1)
	time.Sleep(time.Millisecond)

	if err, ok := c.failFor[len(c.created)]; ok && err != nil {
		delete(c.failFor, len(c.created))
		return entry.TimeEntry{}, err
	}
	c.nextID++
	e.ID = c.nextID
	c.created = append(c.created, e)
	return e, nil
}

func setupImportService(t *testing.T) (*Service, *recordingCreator, *event_bus.EventBus, project.Service) {
	bus := event_bus.NewEventBus()
	clock := &utils.MockClock{FixedNow: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)}
	phaseService := phase.NewService(phase.NewStubRepository(phase.DefaultCatalog()))
	projectRepo := project.NewStubRepository()
	projectService := project.NewService(projectRepo, phaseService, bus, clock)
	t.Cleanup(projectRepo.Cleanup)

	ctx := context.Background()
	for _, name := range []string{"Woonhuis Dijkstra", "Verbouwing Bergstraat"} {
		_, err := projectService.Create(ctx, project.Project{Name: name, RateCents: 9500})
		require.NoError(t, err)
	}

	creator := &recordingCreator{}
	return NewService(projectService, creator, bus, clock), creator, bus, projectService
}

func TestService_PrepareAndCommit(t *testing.T) {
	service, creator, bus, _ := setupImportService(t)
	ctx := context.Background()

	var completed []event_bus.ImportCompleted
	event_bus.SubscribeTyped(bus, event_bus.ImportCompletedEvent, func(e event_bus.EventT[event_bus.ImportCompleted]) error {
		completed = append(completed, e.Data)
		return nil
	})

	buf := buildWorkbook(t, [][]any{
		{"Projectnaam", "Fase", "Datum", "Aantal uur", "Notities"},
		{"Dijkstra", "VO", "15-01-2024", "2,5", "overleg"},
		{"Sporthal Noord", "DO", "16-01-2024", "3", ""},
		{"Bergstraat", "uitvoering", "2024-01-17", "4", ""},
	})

	session, err := service.Prepare(ctx, "uren.xlsx", buf)
	require.NoError(t, err)
	require.Len(t, session.Rows, 3)
	assert.Equal(t, "uren.xlsx", session.FileName)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", session.ID.String())

	assert.True(t, session.Rows[0].Valid)
	assert.Equal(t, "Woonhuis Dijkstra", session.Rows[0].MatchedProject)
	assert.False(t, session.Rows[1].Valid)
	assert.Contains(t, session.Rows[1].Errors, `Project "Sporthal Noord" niet gevonden`)
	assert.True(t, session.Rows[2].Valid)

	summary, err := service.Commit(ctx, session.FileName, session.ValidRows())
	require.NoError(t, err)
	assert.Equal(t, Summary{Total: 2, Successful: 2, Failed: 0}, summary)

	require.Len(t, creator.created, 2)
	assert.Equal(t, "voorlopig-ontwerp", creator.created[0].PhaseCode)
	assert.Equal(t, 150, creator.created[0].Minutes)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), creator.created[0].OccurredOn)
	assert.Equal(t, "uitvoering", creator.created[1].PhaseCode)

	require.Len(t, completed, 1)
	assert.Equal(t, event_bus.ImportCompleted{FileName: "uren.xlsx", Total: 2, Successful: 2, Failed: 0}, completed[0])
}

func TestService_Prepare_ICSFile(t *testing.T) {
	service, _, _, _ := setupImportService(t)

	session, err := service.Prepare(context.Background(), "agenda.ics", strings.NewReader(sampleICS))
	require.NoError(t, err)
	require.Len(t, session.Rows, 3)

	first := session.Rows[0]
	assert.True(t, first.Valid)
	assert.Equal(t, "Woonhuis Dijkstra", first.MatchedProject)
	assert.Equal(t, "overig", first.PhaseCode)
	assert.Equal(t, 90, first.Minutes)
	assert.Equal(t, "Woonhuis Dijkstra (Bouwplaats)", first.Notes)
}

func TestService_Revalidate(t *testing.T) {
	service, _, _, _ := setupImportService(t)
	ctx := context.Background()

	row := service.Revalidate(ctx, Row{
		ProjectName: "Nergenshuizen",
		PhaseLabel:  "DO",
		DateText:    "01-02-2024",
		HoursText:   "1,5",
	})
	assert.False(t, row.Valid)

	row.ProjectName = "Bergstraat"
	row = service.Revalidate(ctx, row)
	assert.True(t, row.Valid)
	assert.Equal(t, "Verbouwing Bergstraat", row.MatchedProject)
}

func TestService_Commit_SubmitsRowsOneAtATime(t *testing.T) {
	service, creator, _, _ := setupImportService(t)
	ctx := context.Background()

	rows := make([]Row, 0, 20)
	for i := 0; i < 20; i++ {
		rows = append(rows, Row{
			ProjectName: "Dijkstra",
			PhaseLabel:  "VO",
			DateText:    "2024-01-15",
			HoursText:   "1",
		})
	}

	summary, err := service.Commit(ctx, "uren.xlsx", rows)
	require.NoError(t, err)
	assert.Equal(t, 20, summary.Total)
	assert.Equal(t, 20, summary.Successful)
	assert.False(t, creator.overlap.Load(), "creations must not overlap")
	require.Len(t, creator.created, 20)
}

func TestService_Commit_FailedRowDoesNotAbortTheRest(t *testing.T) {
	service, creator, _, _ := setupImportService(t)
	ctx := context.Background()

	// fail the second creation attempt
	creator.failFor = map[int]error{1: errors.New("database unavailable")}

	rows := []Row{
		{ProjectName: "Dijkstra", PhaseLabel: "VO", DateText: "2024-01-15", HoursText: "1"},
		{ProjectName: "Dijkstra", PhaseLabel: "VO", DateText: "2024-01-16", HoursText: "2"},
		{ProjectName: "Bergstraat", PhaseLabel: "DO", DateText: "2024-01-17", HoursText: "3"},
	}

	summary, err := service.Commit(ctx, "uren.xlsx", rows)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Successful)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, 2, summary.Failures[0].RowNumber)
	assert.Equal(t, "database unavailable", summary.Failures[0].Message)

	// the row after the failure was still attempted
	require.Len(t, creator.created, 2)
	assert.Equal(t, 180, creator.created[1].Minutes)
}

func TestService_Commit_SkipsRowsThatFailRevalidation(t *testing.T) {
	service, creator, _, _ := setupImportService(t)
	ctx := context.Background()

	rows := []Row{
		{ProjectName: "Dijkstra", PhaseLabel: "VO", DateText: "2024-01-15", HoursText: "1"},
		{ProjectName: "Dijkstra", PhaseLabel: "VO", DateText: "geen datum", HoursText: "1"},
	}

	summary, err := service.Commit(ctx, "uren.xlsx", rows)
	require.NoError(t, err)
	assert.Equal(t, Summary{Total: 1, Successful: 1, Failed: 0}, summary)
	require.Len(t, creator.created, 1)
}
