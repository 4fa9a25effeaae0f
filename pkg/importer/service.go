package importer

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urenlog/urenlog/internal/event_bus"
	"github.com/urenlog/urenlog/internal/utils"
	"github.com/urenlog/urenlog/pkg/entry"
	"github.com/urenlog/urenlog/pkg/project"
)

// EntryCreator is the collaborator that persists one time entry. It is
// satisfied by the entry service; tests substitute an instrumented fake.
type EntryCreator interface {
	Create(ctx context.Context, e entry.TimeEntry) (entry.TimeEntry, error)
}

// RowFailure records one failed submission, tagged with the 1-based row
// number the user saw on screen.
type RowFailure struct {
	RowNumber int
	Message   string
}

// Summary is the authoritative record of a commit: every valid row is
// attempted exactly once and accounted for here.
type Summary struct {
	Total      int
	Successful int
	Failed     int
	Failures   []RowFailure
}

type Service struct {
	projectService project.Service
	creator        EntryCreator
	bus            *event_bus.EventBus
	clock          utils.Clock
}

func NewService(projectService project.Service, creator EntryCreator, bus *event_bus.EventBus, clock utils.Clock) *Service {
	return &Service{
		projectService: projectService,
		creator:        creator,
		bus:            bus,
		clock:          clock,
	}
}

// Prepare parses an uploaded file into a fresh import session: raw rows
// are extracted, normalized, and validated in one synchronous pass.
// Nothing is persisted at this stage.
func (s *Service) Prepare(ctx context.Context, fileName string, file io.Reader) (Session, error) {
	var rows []Row
	var err error
	if strings.EqualFold(filepath.Ext(fileName), ".ics") {
		var events []CalendarEvent
		events, err = ParseICS(file)
		if err == nil {
			rows = make([]Row, 0, len(events))
			for _, event := range events {
				rows = append(rows, EventToRow(event))
			}
		}
	} else {
		rows, err = ParseSpreadsheet(file)
	}
	if err != nil {
		return Session{}, fmt.Errorf("could not parse %s: %w", fileName, err)
	}

	projects := s.knownProjects(ctx)
	for i, row := range rows {
		rows[i] = ValidateRow(NormalizeRow(row), projects)
	}

	return NewSession(fileName, s.clock.Now(), rows), nil
}

// Revalidate re-runs normalization and validation for a single row after
// an inline edit. Only this row is touched.
func (s *Service) Revalidate(ctx context.Context, row Row) Row {
	return ValidateRow(NormalizeRow(row), s.knownProjects(ctx))
}

// Commit submits the given rows one at a time, awaiting each creation
// before issuing the next, so the per-row accounting stays ordered and a
// struggling backend is never hit with a burst of parallel requests. One
// row's failure never aborts the loop. Rows that do not pass validation at
// commit time are skipped and not counted as attempted.
func (s *Service) Commit(ctx context.Context, fileName string, rows []Row) (Summary, error) {
	projects := s.knownProjects(ctx)

	summary := Summary{}
	for i, row := range rows {
		row = ValidateRow(NormalizeRow(row), projects)
		if !row.Valid {
			log.Debugf("skipping invalid row %d during commit: %v", i+1, row.Errors)
			continue
		}

		occurredOn, err := time.Parse("2006-01-02", row.OccurredOn)
		if err != nil {
			// cannot happen for a valid row, but account for it anyway
			summary.Total++
			summary.Failed++
			summary.Failures = append(summary.Failures, RowFailure{RowNumber: i + 1, Message: err.Error()})
			continue
		}

		summary.Total++
		_, err = s.creator.Create(ctx, entry.TimeEntry{
			ProjectID:  row.ProjectID,
			PhaseCode:  row.PhaseCode,
			OccurredOn: occurredOn,
			Minutes:    row.Minutes,
			Notes:      row.Notes,
		})
		if err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, RowFailure{RowNumber: i + 1, Message: err.Error()})
			continue
		}
		summary.Successful++
	}

	event := event_bus.NewEvent(ctx, event_bus.ImportCompletedEvent, event_bus.ImportCompleted{
		FileName:   fileName,
		Total:      summary.Total,
		Successful: summary.Successful,
		Failed:     summary.Failed,
	})
	if err := s.bus.Publish(event); err != nil {
		log.Warnf("failed to publish import completed event: %v", err)
	}

	return summary, nil
}

// knownProjects loads the active project list for matching. When the list
// cannot be fetched the import degrades to an empty list so rows simply
// fail matching instead of the whole flow failing.
func (s *Service) knownProjects(ctx context.Context) []project.Project {
	projects, err := s.projectService.GetAll(ctx, false)
	if err != nil {
		log.Warnf("failed to load projects for import matching: %v", err)
		return nil
	}
	return projects
}
