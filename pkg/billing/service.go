package billing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/urenlog/urenlog/pkg/entry"
	"github.com/urenlog/urenlog/pkg/phase"
	"github.com/urenlog/urenlog/pkg/project"
)

type Service interface {
	// Summaries computes the billing summary for every project in the
	// requested view. The active view is sorted by most recent entry
	// (projects without entries last, then alphabetically); the archived
	// view is sorted by archive timestamp, newest first.
	Summaries(ctx context.Context, archivedView bool) ([]ProjectSummary, error)
}

type ServiceImpl struct {
	projectService project.Service
	entryService   entry.Service
	phaseService   phase.Service
	thresholds     Thresholds
}

func NewService(
	projectService project.Service,
	entryService entry.Service,
	phaseService phase.Service,
	thresholds Thresholds,
) *ServiceImpl {
	return &ServiceImpl{
		projectService: projectService,
		entryService:   entryService,
		phaseService:   phaseService,
		thresholds:     thresholds,
	}
}

func (s *ServiceImpl) Summaries(ctx context.Context, archivedView bool) ([]ProjectSummary, error) {
	projects, err := s.projectService.GetAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	entries, err := s.entryService.GetAll(ctx, entry.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load time entries: %w", err)
	}
	catalog := s.phaseService.Catalog(ctx)

	entriesByProject := make(map[int][]entry.TimeEntry, len(projects))
	for _, e := range entries {
		entriesByProject[e.ProjectID] = append(entriesByProject[e.ProjectID], e)
	}

	summaries := make([]ProjectSummary, 0, len(projects))
	for _, proj := range projects {
		if proj.Archived != archivedView {
			continue
		}
		summaries = append(summaries, s.summarize(proj, entriesByProject[proj.ID], catalog))
	}

	if archivedView {
		sort.SliceStable(summaries, func(i, j int) bool {
			return summaries[i].Project.ArchivedAt.After(summaries[j].Project.ArchivedAt)
		})
	} else {
		sort.SliceStable(summaries, func(i, j int) bool {
			a, b := summaries[i], summaries[j]
			if !a.LastEntry.Equal(b.LastEntry) {
				return a.LastEntry.After(b.LastEntry)
			}
			return a.Project.Name < b.Project.Name
		})
	}

	return summaries, nil
}

func (s *ServiceImpl) summarize(proj project.Project, entries []entry.TimeEntry, catalog []phase.Phase) ProjectSummary {
	totalMinutes := 0
	var lastEntry time.Time
	for _, e := range entries {
		totalMinutes += e.Minutes
		if e.OccurredOn.After(lastEntry) {
			lastEntry = e.OccurredOn
		}
	}

	totalSpent := spentCents(totalMinutes, proj.RateCents)
	totalBudget := proj.TotalBudgetCents()

	phases := make([]PhaseSummary, 0, len(catalog))
	for _, p := range catalog {
		summary := s.summarizePhase(proj, p, entries)
		// phases with neither entries nor a configured budget are omitted
		if summary.EntryCount == 0 && summary.BudgetCents == 0 {
			continue
		}
		phases = append(phases, summary)
	}

	return ProjectSummary{
		Project:          proj,
		TotalHours:       float64(totalMinutes) / 60.0,
		TotalSpentCents:  totalSpent,
		TotalBudgetCents: totalBudget,
		LastEntry:        lastEntry,
		Status:           s.thresholds.Classify(totalSpent, totalBudget),
		Phases:           phases,
	}
}

func (s *ServiceImpl) summarizePhase(proj project.Project, p phase.Phase, entries []entry.TimeEntry) PhaseSummary {
	minutes := 0
	count := 0
	var lastEntry time.Time
	for _, e := range entries {
		if e.PhaseCode != p.Code {
			continue
		}
		minutes += e.Minutes
		count++
		if e.OccurredOn.After(lastEntry) {
			lastEntry = e.OccurredOn
		}
	}

	spent := spentCents(minutes, proj.RateCents)
	budget := int64(0)
	if proj.BillingType == project.BillingFixed {
		budget = proj.PhaseBudgets[p.Code]
	}

	return PhaseSummary{
		Phase:       p,
		Hours:       float64(minutes) / 60.0,
		SpentCents:  spent,
		BudgetCents: budget,
		EntryCount:  count,
		LastEntry:   lastEntry,
		Status:      s.thresholds.Classify(spent, budget),
	}
}
