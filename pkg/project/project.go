package project

import (
	"time"
)

type BillingType string

const (
	BillingHourly BillingType = "hourly"
	BillingFixed  BillingType = "fixed"
)

// Project is a billable unit of work. Fixed-billing projects carry a budget
// ceiling per phase; hourly projects only accrue spend. Projects are never
// hard-deleted: archiving hides them behind a toggle.
type Project struct {
	ID          int
	Name        string
	City        string
	ClientName  string
	BillingType BillingType
	// RateCents is the hourly rate in minor currency units. It is also used
	// to price accrued hours on fixed-billing projects.
	RateCents int64
	// PhaseBudgets maps phase codes to fixed budgets in minor currency
	// units. Only meaningful when BillingType is fixed.
	PhaseBudgets map[string]int64
	Archived     bool
	ArchivedAt   time.Time
}

// TotalBudgetCents is the sum of the configured per-phase budgets. Hourly
// projects have no budget ceiling and always return 0.
func (p Project) TotalBudgetCents() int64 {
	if p.BillingType != BillingFixed {
		return 0
	}
	var total int64
	for _, budget := range p.PhaseBudgets {
		total += budget
	}
	return total
}
