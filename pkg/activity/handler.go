package activity

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

type ItemDTO struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	OccurredAt string `json:"occurredAt"`
}

type Handler struct {
	recorder *Recorder
}

func NewHandler(recorder *Recorder) *Handler {
	return &Handler{recorder: recorder}
}

func (h *Handler) GetRecent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	items := h.recorder.Recent(limit)
	dtos := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, ItemDTO{
			Kind:       string(item.Kind),
			Message:    item.Message,
			OccurredAt: item.OccurredAt.Format(time.RFC3339),
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
