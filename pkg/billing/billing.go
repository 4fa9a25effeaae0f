package billing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/urenlog/urenlog/pkg/phase"
	"github.com/urenlog/urenlog/pkg/project"
)

type Status string

const (
	StatusUnderBudget    Status = "under_budget"
	StatusOnTrack        Status = "on_track"
	StatusOverBudget     Status = "over_budget"
	StatusBudgetExceeded Status = "budget_exceeded"
)

// Thresholds are the classification cut-offs expressed as a fraction of
// the budget. They apply identically at the project level and at each
// phase level.
type Thresholds struct {
	UnderBudget decimal.Decimal
	OnTrack     decimal.Decimal
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		UnderBudget: decimal.NewFromFloat(0.75),
		OnTrack:     decimal.NewFromFloat(0.90),
	}
}

func NewThresholds(underBudget, onTrack float64) Thresholds {
	return Thresholds{
		UnderBudget: decimal.NewFromFloat(underBudget),
		OnTrack:     decimal.NewFromFloat(onTrack),
	}
}

// Classify is a pure function of spent and budget. A zero budget means
// there is no ceiling to exceed, so hourly projects always classify as
// on_track.
func (t Thresholds) Classify(spentCents, budgetCents int64) Status {
	if budgetCents == 0 {
		return StatusOnTrack
	}
	ratio := decimal.NewFromInt(spentCents).Div(decimal.NewFromInt(budgetCents))
	switch {
	case ratio.LessThanOrEqual(t.UnderBudget):
		return StatusUnderBudget
	case ratio.LessThanOrEqual(t.OnTrack):
		return StatusOnTrack
	case ratio.LessThanOrEqual(decimal.NewFromInt(1)):
		return StatusOverBudget
	default:
		return StatusBudgetExceeded
	}
}

// PhaseSummary is the per-phase slice of a project summary. Phases with
// neither entries nor a configured budget are not part of a breakdown.
type PhaseSummary struct {
	Phase       phase.Phase
	Hours       float64
	SpentCents  int64
	BudgetCents int64
	EntryCount  int
	LastEntry   time.Time
	Status      Status
}

// ProjectSummary is the derived billing view of one project. It is
// recomputed on demand and never persisted.
type ProjectSummary struct {
	Project          project.Project
	TotalHours       float64
	TotalSpentCents  int64
	TotalBudgetCents int64
	LastEntry        time.Time
	Status           Status
	Phases           []PhaseSummary
}

// spentCents prices a duration in minutes at an hourly rate, rounding to
// whole cents.
func spentCents(minutes int, rateCents int64) int64 {
	return decimal.NewFromInt(int64(minutes)).
		Mul(decimal.NewFromInt(rateCents)).
		Div(decimal.NewFromInt(60)).
		Round(0).
		IntPart()
}
