package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urenlog/urenlog/internal/config"
	"github.com/urenlog/urenlog/internal/event_bus"
	"github.com/urenlog/urenlog/internal/utils"
	"github.com/urenlog/urenlog/pkg/activity"
	"github.com/urenlog/urenlog/pkg/billing"
	"github.com/urenlog/urenlog/pkg/entry"
	"github.com/urenlog/urenlog/pkg/importer"
	"github.com/urenlog/urenlog/pkg/phase"
	"github.com/urenlog/urenlog/pkg/project"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	PhaseRepo    phase.Repository
	PhaseService phase.Service
	PhaseHandler *phase.Handler

	ProjectRepo    project.Repository
	ProjectService project.Service
	ProjectHandler *project.Handler

	EntryRepo    entry.Repository
	EntryService entry.Service
	EntryHandler *entry.Handler

	BillingService     *billing.ServiceImpl
	CsvSummaryRenderer *billing.CsvSummaryRenderer
	BillingHandler     *billing.Handler

	ImportService *importer.Service
	ImportHandler *importer.Handler

	ActivityRecorder *activity.Recorder
	ActivityHandler  *activity.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	// the recorder subscribes before any publisher is constructed
	deps.ActivityRecorder = activity.NewRecorder(deps.EventBus)
	deps.ActivityHandler = activity.NewHandler(deps.ActivityRecorder)

	deps.PhaseRepo = phase.NewRepository(db)
	deps.PhaseService = phase.NewService(deps.PhaseRepo)
	deps.PhaseHandler = phase.NewHandler(deps.PhaseService)

	deps.ProjectRepo = project.NewRepository(db)
	deps.ProjectService = project.NewService(deps.ProjectRepo, deps.PhaseService, deps.EventBus, deps.Clock)
	deps.ProjectHandler = project.NewHandler(deps.ProjectService)

	deps.EntryRepo = entry.NewRepository(db)
	deps.EntryService = entry.NewService(deps.EntryRepo, deps.ProjectService, deps.EventBus)
	deps.EntryHandler = entry.NewHandler(deps.EntryService)

	thresholds := billing.NewThresholds(cfg.Billing.UnderBudgetThreshold, cfg.Billing.OnTrackThreshold)
	deps.BillingService = billing.NewService(deps.ProjectService, deps.EntryService, deps.PhaseService, thresholds)
	deps.CsvSummaryRenderer = billing.NewCsvSummaryRenderer()
	deps.BillingHandler = billing.NewHandler(deps.BillingService, deps.CsvSummaryRenderer)

	deps.ImportService = importer.NewService(deps.ProjectService, deps.EntryService, deps.EventBus, deps.Clock)
	deps.ImportHandler = importer.NewHandler(deps.ImportService, cfg.Import.MaxUploadBytes)

	return deps
}
