package billing

import (
	"encoding/json"
	"net/http"
	"time"
)

type PhaseSummaryDTO struct {
	PhaseCode   string  `json:"phaseCode"`
	PhaseName   string  `json:"phaseName"`
	Hours       float64 `json:"hours"`
	SpentCents  int64   `json:"spentCents"`
	BudgetCents int64   `json:"budgetCents"`
	EntryCount  int     `json:"entryCount"`
	LastEntry   *string `json:"lastEntry,omitempty"`
	Status      string  `json:"status"`
}

type ProjectSummaryDTO struct {
	ProjectID        int               `json:"projectId"`
	ProjectName      string            `json:"projectName"`
	BillingType      string            `json:"billingType"`
	TotalHours       float64           `json:"totalHours"`
	TotalSpentCents  int64             `json:"totalSpentCents"`
	TotalBudgetCents int64             `json:"totalBudgetCents"`
	LastEntry        *string           `json:"lastEntry,omitempty"`
	Status           string            `json:"status"`
	Phases           []PhaseSummaryDTO `json:"phases"`
}

type Handler struct {
	service  Service
	renderer *CsvSummaryRenderer
}

func NewHandler(service Service, renderer *CsvSummaryRenderer) *Handler {
	return &Handler{service: service, renderer: renderer}
}

func (h *Handler) GetSummaries(w http.ResponseWriter, r *http.Request) {
	archivedView := r.URL.Query().Has("archived")

	summaries, err := h.service.Summaries(r.Context(), archivedView)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		csvContent, err := h.renderer.Render(summaries)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=\"billing-summary.csv\"")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(csvContent))
		return
	}

	dtos := make([]ProjectSummaryDTO, 0, len(summaries))
	for _, summary := range summaries {
		dtos = append(dtos, SummaryToDTO(summary))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func SummaryToDTO(summary ProjectSummary) ProjectSummaryDTO {
	phases := make([]PhaseSummaryDTO, 0, len(summary.Phases))
	for _, p := range summary.Phases {
		phases = append(phases, PhaseSummaryDTO{
			PhaseCode:   p.Phase.Code,
			PhaseName:   p.Phase.Name,
			Hours:       p.Hours,
			SpentCents:  p.SpentCents,
			BudgetCents: p.BudgetCents,
			EntryCount:  p.EntryCount,
			LastEntry:   formatDate(p.LastEntry),
			Status:      string(p.Status),
		})
	}
	return ProjectSummaryDTO{
		ProjectID:        summary.Project.ID,
		ProjectName:      summary.Project.Name,
		BillingType:      string(summary.Project.BillingType),
		TotalHours:       summary.TotalHours,
		TotalSpentCents:  summary.TotalSpentCents,
		TotalBudgetCents: summary.TotalBudgetCents,
		LastEntry:        formatDate(summary.LastEntry),
		Status:           string(summary.Status),
		Phases:           phases,
	}
}

func formatDate(date time.Time) *string {
	if date.IsZero() {
		return nil
	}
	formatted := date.Format("2006-01-02")
	return &formatted
}
