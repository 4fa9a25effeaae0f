package entry

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/urenlog/urenlog/internal/event_bus"
	"github.com/urenlog/urenlog/pkg/project"
)

type Service interface {
	Create(ctx context.Context, entry TimeEntry) (TimeEntry, error)
	GetAll(ctx context.Context, filter Filter) ([]TimeEntry, error)
	Update(ctx context.Context, entry TimeEntry) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type ServiceImpl struct {
	repo           Repository
	projectService project.Service
	bus            *event_bus.EventBus
}

func NewService(repo Repository, projectService project.Service, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, projectService: projectService, bus: bus}
}

// Create validates and stores a new time entry. This is the single entry
// point used by both the manual form and the import pipeline.
func (s *ServiceImpl) Create(ctx context.Context, entry TimeEntry) (TimeEntry, error) {
	if err := validate(entry); err != nil {
		return TimeEntry{}, err
	}

	proj, err := s.projectService.Get(ctx, entry.ProjectID)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("failed to resolve project %d: %w", entry.ProjectID, err)
	}

	id, err := s.repo.Store(ctx, entry)
	if err != nil {
		return TimeEntry{}, err
	}
	entry.ID = id

	event := event_bus.NewEvent(ctx, event_bus.EntryCreatedEvent, event_bus.EntryCreated{
		EntryID:     entry.ID,
		ProjectID:   entry.ProjectID,
		ProjectName: proj.Name,
		PhaseCode:   entry.PhaseCode,
		OccurredOn:  entry.OccurredOn,
		Minutes:     entry.Minutes,
	})
	if err := s.bus.Publish(event); err != nil {
		log.Warnf("failed to publish entry created event: %v", err)
	}

	return entry, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context, filter Filter) ([]TimeEntry, error) {
	return s.repo.GetAll(ctx, filter)
}

func (s *ServiceImpl) Update(ctx context.Context, entry TimeEntry) (bool, error) {
	if err := validate(entry); err != nil {
		return false, err
	}
	updated, err := s.repo.Update(ctx, entry)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("time entry not updated, probably because it does not exist (%d)", entry.ID)
	}
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func validate(entry TimeEntry) error {
	if entry.ProjectID <= 0 {
		return fmt.Errorf("project id is required")
	}
	if entry.PhaseCode == "" {
		return fmt.Errorf("phase code is required")
	}
	if entry.OccurredOn.IsZero() {
		return fmt.Errorf("date is required")
	}
	if entry.Minutes <= 0 {
		return fmt.Errorf("minutes must be a positive integer")
	}
	return nil
}
