package project

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ProjectDTO struct {
	ID           int              `json:"id"`
	Name         string           `json:"name"`
	City         string           `json:"city,omitempty"`
	ClientName   string           `json:"clientName,omitempty"`
	BillingType  string           `json:"billingType"`
	RateCents    int64            `json:"rateCents"`
	PhaseBudgets map[string]int64 `json:"phaseBudgets,omitempty"`
	Archived     bool             `json:"archived"`
	ArchivedAt   *time.Time       `json:"archivedAt,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new project")
	w.Header().Set("Content-Type", "application/json")

	var dto ProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), DTOToProject(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ProjectToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	includeArchived := r.URL.Query().Has("includeArchived")

	projects, err := h.service.GetAll(r.Context(), includeArchived)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ProjectDTO, 0, len(projects))
	for _, project := range projects {
		dtos = append(dtos, ProjectToDTO(project))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := pathID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	project, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ProjectToDTO(project)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := pathID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto ProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.ID == 0 || dto.ID != id {
		http.Error(w, "Invalid project id in request body", http.StatusBadRequest)
		return
	}

	ok, err := h.service.Update(r.Context(), DTOToProject(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !ok {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) SetPhaseBudgets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := pathID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var budgets map[string]int64
	if err := json.NewDecoder(r.Body).Decode(&budgets); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.service.SetPhaseBudgets(r.Context(), id, budgets)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !ok {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, true)
}

func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, false)
}

func (h *Handler) setArchived(w http.ResponseWriter, r *http.Request, archived bool) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var ok bool
	if archived {
		ok, err = h.service.Archive(r.Context(), id)
	} else {
		ok, err = h.service.Restore(r.Context(), id)
	}
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int, error) {
	idString := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idString)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func ProjectToDTO(project Project) ProjectDTO {
	var archivedAt *time.Time
	if !project.ArchivedAt.IsZero() {
		archivedAt = &project.ArchivedAt
	}
	return ProjectDTO{
		ID:           project.ID,
		Name:         project.Name,
		City:         project.City,
		ClientName:   project.ClientName,
		BillingType:  string(project.BillingType),
		RateCents:    project.RateCents,
		PhaseBudgets: project.PhaseBudgets,
		Archived:     project.Archived,
		ArchivedAt:   archivedAt,
	}
}

func DTOToProject(dto ProjectDTO) Project {
	var archivedAt time.Time
	if dto.ArchivedAt != nil {
		archivedAt = *dto.ArchivedAt
	}
	return Project{
		ID:           dto.ID,
		Name:         dto.Name,
		City:         dto.City,
		ClientName:   dto.ClientName,
		BillingType:  BillingType(dto.BillingType),
		RateCents:    dto.RateCents,
		PhaseBudgets: dto.PhaseBudgets,
		Archived:     dto.Archived,
		ArchivedAt:   archivedAt,
	}
}
