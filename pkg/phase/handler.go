package phase

import (
	"encoding/json"
	"net/http"
)

type PhaseDTO struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	phases := h.service.Catalog(r.Context())
	dtos := make([]PhaseDTO, 0, len(phases))
	for _, p := range phases {
		dtos = append(dtos, PhaseDTO{Code: p.Code, Name: p.Name, SortOrder: p.SortOrder})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
