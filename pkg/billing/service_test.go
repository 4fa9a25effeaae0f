package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/urenlog/urenlog/internal/event_bus"
	"github.com/urenlog/urenlog/internal/utils"
	"github.com/urenlog/urenlog/pkg/entry"
	"github.com/urenlog/urenlog/pkg/phase"
	"github.com/urenlog/urenlog/pkg/project"
)

type testEnv struct {
	billing  *ServiceImpl
	projects project.Service
	entries  entry.Service
	clock    *utils.MockClock
	ctx      context.Context
}

func setup(t *testing.T) *testEnv {
	bus := event_bus.NewEventBus()
	phaseService := phase.NewService(phase.NewStubRepository(phase.DefaultCatalog()))
	clock := &utils.MockClock{FixedNow: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)}

	projectRepo := project.NewStubRepository()
	projectService := project.NewService(projectRepo, phaseService, bus, clock)
	entryRepo := entry.NewStubRepository()
	entryService := entry.NewService(entryRepo, projectService, bus)

	t.Cleanup(func() {
		projectRepo.Cleanup()
		entryRepo.Cleanup()
	})

	return &testEnv{
		billing:  NewService(projectService, entryService, phaseService, DefaultThresholds()),
		projects: projectService,
		entries:  entryService,
		clock:    clock,
		ctx:      context.Background(),
	}
}

func day(d int) time.Time {
	return time.Date(2024, time.February, d, 0, 0, 0, 0, time.UTC)
}

func (env *testEnv) addEntry(t *testing.T, projectID int, phaseCode string, occurredOn time.Time, minutes int) {
	t.Helper()
	_, err := env.entries.Create(env.ctx, entry.TimeEntry{
		ProjectID:  projectID,
		PhaseCode:  phaseCode,
		OccurredOn: occurredOn,
		Minutes:    minutes,
	})
	assert.NoError(t, err)
}

func TestServiceImpl_Summaries_PhaseRoundTrip(t *testing.T) {
	env := setup(t)

	proj, err := env.projects.Create(env.ctx, project.Project{Name: "Woonhuis Dijkstra", RateCents: 10000})
	assert.NoError(t, err)
	env.addEntry(t, proj.ID, "schets-ontwerp", day(10), 60)
	env.addEntry(t, proj.ID, "schets-ontwerp", day(12), 90)

	summaries, err := env.billing.Summaries(env.ctx, false)
	assert.NoError(t, err)
	assert.Len(t, summaries, 1)

	summary := summaries[0]
	assert.Equal(t, 2.5, summary.TotalHours)
	assert.Equal(t, int64(25000), summary.TotalSpentCents)
	assert.Equal(t, int64(0), summary.TotalBudgetCents)
	assert.Equal(t, StatusOnTrack, summary.Status)
	assert.Equal(t, day(12), summary.LastEntry)

	assert.Len(t, summary.Phases, 1)
	phaseSummary := summary.Phases[0]
	assert.Equal(t, "schets-ontwerp", phaseSummary.Phase.Code)
	assert.Equal(t, 2.5, phaseSummary.Hours)
	assert.Equal(t, 2, phaseSummary.EntryCount)
	assert.Equal(t, day(12), phaseSummary.LastEntry)
}

func TestServiceImpl_Summaries_FixedBudgetClassification(t *testing.T) {
	env := setup(t)

	proj, err := env.projects.Create(env.ctx, project.Project{
		Name:        "Kantoor Haven",
		BillingType: project.BillingFixed,
		RateCents:   10000,
		PhaseBudgets: map[string]int64{
			"schets-ontwerp":     100000, // €1000 budget
			"definitief-ontwerp": 50000,  // configured but no entries yet
		},
	})
	assert.NoError(t, err)

	// 11 hours at €100/h = €1100 spent against a €1000 phase budget
	env.addEntry(t, proj.ID, "schets-ontwerp", day(5), 11*60)

	summaries, err := env.billing.Summaries(env.ctx, false)
	assert.NoError(t, err)
	assert.Len(t, summaries, 1)

	summary := summaries[0]
	assert.Equal(t, int64(150000), summary.TotalBudgetCents)
	assert.Equal(t, int64(110000), summary.TotalSpentCents)
	// 1100/1500 ≈ 0.73 at the project level
	assert.Equal(t, StatusUnderBudget, summary.Status)

	assert.Len(t, summary.Phases, 2)
	schets := summary.Phases[0]
	assert.Equal(t, "schets-ontwerp", schets.Phase.Code)
	assert.Equal(t, StatusBudgetExceeded, schets.Status)

	// budget-only phase is included with zero hours
	definitief := summary.Phases[1]
	assert.Equal(t, "definitief-ontwerp", definitief.Phase.Code)
	assert.Equal(t, 0, definitief.EntryCount)
	assert.Equal(t, int64(50000), definitief.BudgetCents)
	// phases without entries or budget are omitted entirely
	for _, p := range summary.Phases {
		assert.True(t, p.EntryCount > 0 || p.BudgetCents > 0)
	}
}

func TestServiceImpl_Summaries_ActiveOrdering(t *testing.T) {
	env := setup(t)

	oldProj, _ := env.projects.Create(env.ctx, project.Project{Name: "Oud project", RateCents: 9000})
	newProj, _ := env.projects.Create(env.ctx, project.Project{Name: "Nieuw project", RateCents: 9000})
	_, err := env.projects.Create(env.ctx, project.Project{Name: "Zonder uren", RateCents: 9000})
	assert.NoError(t, err)
	_, err = env.projects.Create(env.ctx, project.Project{Name: "Ander leeg project", RateCents: 9000})
	assert.NoError(t, err)

	env.addEntry(t, oldProj.ID, "overig", day(1), 30)
	env.addEntry(t, newProj.ID, "overig", day(20), 30)

	summaries, err := env.billing.Summaries(env.ctx, false)
	assert.NoError(t, err)
	assert.Len(t, summaries, 4)

	// most recent entry first, entry-less projects after, alphabetically
	assert.Equal(t, "Nieuw project", summaries[0].Project.Name)
	assert.Equal(t, "Oud project", summaries[1].Project.Name)
	assert.Equal(t, "Ander leeg project", summaries[2].Project.Name)
	assert.Equal(t, "Zonder uren", summaries[3].Project.Name)
}

func TestServiceImpl_Summaries_ArchivedView(t *testing.T) {
	env := setup(t)

	first, _ := env.projects.Create(env.ctx, project.Project{Name: "Eerste archief", RateCents: 9000})
	second, _ := env.projects.Create(env.ctx, project.Project{Name: "Tweede archief", RateCents: 9000})
	_, err := env.projects.Create(env.ctx, project.Project{Name: "Actief", RateCents: 9000})
	assert.NoError(t, err)

	env.clock.SetNow(time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC))
	_, err = env.projects.Archive(env.ctx, first.ID)
	assert.NoError(t, err)
	env.clock.SetNow(time.Date(2024, time.March, 2, 10, 0, 0, 0, time.UTC))
	_, err = env.projects.Archive(env.ctx, second.ID)
	assert.NoError(t, err)

	archived, err := env.billing.Summaries(env.ctx, true)
	assert.NoError(t, err)
	assert.Len(t, archived, 2)
	// newest archive first
	assert.Equal(t, "Tweede archief", archived[0].Project.Name)
	assert.Equal(t, "Eerste archief", archived[1].Project.Name)

	active, err := env.billing.Summaries(env.ctx, false)
	assert.NoError(t, err)
	assert.Len(t, active, 1)
	assert.Equal(t, "Actief", active[0].Project.Name)
}
