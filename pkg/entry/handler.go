package entry

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type TimeEntryDTO struct {
	ID         int    `json:"id"`
	ProjectID  int    `json:"projectId"`
	PhaseCode  string `json:"phaseCode"`
	OccurredOn string `json:"occurredOn"`
	Minutes    int    `json:"minutes"`
	Notes      string `json:"notes,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new time entry")
	w.Header().Set("Content-Type", "application/json")

	var dto TimeEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	entry, err := DTOToEntry(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), entry)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(EntryToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := h.service.GetAll(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]TimeEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, EntryToDTO(entry))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	idString := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idString)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dto TimeEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.ID == 0 || dto.ID != id {
		http.Error(w, "Invalid entry id in request body", http.StatusBadRequest)
		return
	}
	entry, err := DTOToEntry(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.service.Update(r.Context(), entry)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !ok {
		http.Error(w, "Time entry not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	idString := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idString)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.service.Delete(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Time entry not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func filterFromQuery(r *http.Request) (Filter, error) {
	var filter Filter
	query := r.URL.Query()
	if projectId := query.Get("projectId"); projectId != "" {
		id, err := strconv.Atoi(projectId)
		if err != nil {
			return Filter{}, err
		}
		filter.ProjectID = id
	}
	if from := query.Get("from"); from != "" {
		date, err := time.Parse("2006-01-02", from)
		if err != nil {
			return Filter{}, err
		}
		filter.From = date
	}
	if to := query.Get("to"); to != "" {
		date, err := time.Parse("2006-01-02", to)
		if err != nil {
			return Filter{}, err
		}
		filter.To = date
	}
	return filter, nil
}

func EntryToDTO(entry TimeEntry) TimeEntryDTO {
	return TimeEntryDTO{
		ID:         entry.ID,
		ProjectID:  entry.ProjectID,
		PhaseCode:  entry.PhaseCode,
		OccurredOn: entry.OccurredOn.Format("2006-01-02"),
		Minutes:    entry.Minutes,
		Notes:      entry.Notes,
	}
}

func DTOToEntry(dto TimeEntryDTO) (TimeEntry, error) {
	occurredOn, err := time.Parse("2006-01-02", dto.OccurredOn)
	if err != nil {
		return TimeEntry{}, err
	}
	return TimeEntry{
		ID:         dto.ID,
		ProjectID:  dto.ProjectID,
		PhaseCode:  dto.PhaseCode,
		OccurredOn: occurredOn,
		Minutes:    dto.Minutes,
		Notes:      dto.Notes,
	}, nil
}
