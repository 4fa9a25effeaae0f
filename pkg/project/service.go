package project

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/urenlog/urenlog/internal/event_bus"
	"github.com/urenlog/urenlog/internal/utils"
	"github.com/urenlog/urenlog/pkg/phase"
)

type Service interface {
	Create(ctx context.Context, project Project) (Project, error)
	GetAll(ctx context.Context, includeArchived bool) ([]Project, error)
	Get(ctx context.Context, id int) (Project, error)
	Update(ctx context.Context, project Project) (bool, error)
	SetPhaseBudgets(ctx context.Context, id int, budgets map[string]int64) (bool, error)
	Archive(ctx context.Context, id int) (bool, error)
	Restore(ctx context.Context, id int) (bool, error)
}

type ServiceImpl struct {
	repo         Repository
	phaseService phase.Service
	bus          *event_bus.EventBus
	clock        utils.Clock
}

func NewService(repo Repository, phaseService phase.Service, bus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, phaseService: phaseService, bus: bus, clock: clock}
}

func (s *ServiceImpl) Create(ctx context.Context, project Project) (Project, error) {
	if project.Name == "" {
		return Project{}, fmt.Errorf("project name is required")
	}
	if project.BillingType == "" {
		project.BillingType = BillingHourly
	}
	if project.BillingType != BillingHourly && project.BillingType != BillingFixed {
		return Project{}, fmt.Errorf("unknown billing type: %s", project.BillingType)
	}
	if project.RateCents < 0 {
		return Project{}, fmt.Errorf("hourly rate must not be negative")
	}
	if err := s.validatePhaseCodes(ctx, project.PhaseBudgets); err != nil {
		return Project{}, err
	}

	id, err := s.repo.Store(ctx, project)
	if err != nil {
		return Project{}, err
	}
	project.ID = id

	return project, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context, includeArchived bool) ([]Project, error) {
	return s.repo.GetAll(ctx, includeArchived)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ServiceImpl) Update(ctx context.Context, project Project) (bool, error) {
	if project.Name == "" {
		return false, fmt.Errorf("project name is required")
	}
	if project.BillingType != BillingHourly && project.BillingType != BillingFixed {
		return false, fmt.Errorf("unknown billing type: %s", project.BillingType)
	}

	updated, err := s.repo.Update(ctx, project)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("project not updated, probably because it does not exist (%d)", project.ID)
		return false, nil
	}
	return true, nil
}

func (s *ServiceImpl) SetPhaseBudgets(ctx context.Context, id int, budgets map[string]int64) (bool, error) {
	for code, budget := range budgets {
		if budget < 0 {
			return false, fmt.Errorf("budget for phase %s must not be negative", code)
		}
	}
	if err := s.validatePhaseCodes(ctx, budgets); err != nil {
		return false, err
	}
	return s.repo.SetPhaseBudgets(ctx, id, budgets)
}

func (s *ServiceImpl) Archive(ctx context.Context, id int) (bool, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	archived, err := s.repo.SetArchived(ctx, id, true, s.clock.Now())
	if err != nil {
		return false, err
	}
	if archived {
		event := event_bus.NewEvent(ctx, event_bus.ProjectArchivedEvent, event_bus.ProjectArchived{
			ProjectID: id,
			Name:      project.Name,
		})
		if err := s.bus.Publish(event); err != nil {
			log.Warnf("failed to publish project archived event: %v", err)
		}
	}
	return archived, nil
}

func (s *ServiceImpl) Restore(ctx context.Context, id int) (bool, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	restored, err := s.repo.SetArchived(ctx, id, false, project.ArchivedAt)
	if err != nil {
		return false, err
	}
	if restored {
		event := event_bus.NewEvent(ctx, event_bus.ProjectRestoredEvent, event_bus.ProjectRestored{
			ProjectID: id,
			Name:      project.Name,
		})
		if err := s.bus.Publish(event); err != nil {
			log.Warnf("failed to publish project restored event: %v", err)
		}
	}
	return restored, nil
}

func (s *ServiceImpl) validatePhaseCodes(ctx context.Context, budgets map[string]int64) error {
	if len(budgets) == 0 {
		return nil
	}
	catalog := s.phaseService.Catalog(ctx)
	for code := range budgets {
		if _, found := phase.ByCode(catalog, code); !found {
			return fmt.Errorf("unknown phase code: %s", code)
		}
	}
	return nil
}
