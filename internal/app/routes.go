package app

import (
	"github.com/gorilla/mux"
	"github.com/urenlog/urenlog/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Phase catalog
	r.HandleFunc("/api/phase", deps.PhaseHandler.GetCatalog).Methods("GET")

	// Projects
	r.HandleFunc("/api/project", deps.ProjectHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/project", deps.ProjectHandler.Create).Methods("POST")
	r.HandleFunc("/api/project/{id}", deps.ProjectHandler.Get).Methods("GET")
	r.HandleFunc("/api/project/{id}", deps.ProjectHandler.Update).Methods("PUT")
	r.HandleFunc("/api/project/{id}/budgets", deps.ProjectHandler.SetPhaseBudgets).Methods("PUT")
	r.HandleFunc("/api/project/{id}/archive", deps.ProjectHandler.Archive).Methods("POST")
	r.HandleFunc("/api/project/{id}/restore", deps.ProjectHandler.Restore).Methods("POST")

	// Time entries
	r.HandleFunc("/api/entry", deps.EntryHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/entry", deps.EntryHandler.Create).Methods("POST")
	r.HandleFunc("/api/entry/{id}", deps.EntryHandler.Update).Methods("PUT")
	r.HandleFunc("/api/entry/{id}", deps.EntryHandler.Delete).Methods("DELETE")

	// Billing dashboard
	r.HandleFunc("/api/billing/summary", deps.BillingHandler.GetSummaries).Methods("GET")

	// Import pipeline
	r.HandleFunc("/api/import/preview", deps.ImportHandler.Preview).Methods("POST")
	r.HandleFunc("/api/import/revalidate", deps.ImportHandler.Revalidate).Methods("POST")
	r.HandleFunc("/api/import/commit", deps.ImportHandler.Commit).Methods("POST")

	// Recent activity feed
	r.HandleFunc("/api/activity", deps.ActivityHandler.GetRecent).Methods("GET")
}
