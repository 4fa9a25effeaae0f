package importer

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

type RowDTO struct {
	ProjectName    string   `json:"projectName"`
	PhaseName      string   `json:"phaseName"`
	Date           string   `json:"date"`
	Hours          string   `json:"hours"`
	Notes          string   `json:"notes,omitempty"`
	ProjectID      int      `json:"projectId,omitempty"`
	MatchedProject string   `json:"matchedProject,omitempty"`
	PhaseCode      string   `json:"phaseCode,omitempty"`
	OccurredOn     string   `json:"occurredOn,omitempty"`
	Minutes        int      `json:"minutes,omitempty"`
	Errors         []string `json:"errors"`
	IsValid        bool     `json:"isValid"`
}

type SessionDTO struct {
	ID        string   `json:"id"`
	FileName  string   `json:"fileName"`
	CreatedAt string   `json:"createdAt"`
	Rows      []RowDTO `json:"rows"`
}

type SummaryDTO struct {
	Total      int             `json:"total"`
	Successful int             `json:"successful"`
	Failed     int             `json:"failed"`
	Failures   []RowFailureDTO `json:"failures"`
}

type RowFailureDTO struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type commitRequest struct {
	FileName string   `json:"fileName"`
	Rows     []RowDTO `json:"rows"`
}

type Handler struct {
	service        *Service
	maxUploadBytes int64
}

func NewHandler(service *Service, maxUploadBytes int64) *Handler {
	return &Handler{service: service, maxUploadBytes: maxUploadBytes}
}

// Preview accepts a multipart file upload and returns the parsed,
// validated import session for the user to review.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	log.Debug("Preparing import preview")
	w.Header().Set("Content-Type", "application/json")

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	session, err := h.service.Prepare(r.Context(), header.Filename, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SessionToDTO(session)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Revalidate re-runs validation for a single edited row.
func (h *Handler) Revalidate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto RowDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	row := h.service.Revalidate(r.Context(), DTOToRow(dto))

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(RowToDTO(row)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Commit submits the reviewed rows and returns the session summary.
func (h *Handler) Commit(w http.ResponseWriter, r *http.Request) {
	log.Debug("Committing import session")
	w.Header().Set("Content-Type", "application/json")

	var req commitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows := make([]Row, 0, len(req.Rows))
	for _, dto := range req.Rows {
		rows = append(rows, DTOToRow(dto))
	}

	summary, err := h.service.Commit(r.Context(), req.FileName, rows)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SummaryToDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func SessionToDTO(session Session) SessionDTO {
	rows := make([]RowDTO, 0, len(session.Rows))
	for _, row := range session.Rows {
		rows = append(rows, RowToDTO(row))
	}
	return SessionDTO{
		ID:        session.ID.String(),
		FileName:  session.FileName,
		CreatedAt: session.CreatedAt.Format(time.RFC3339),
		Rows:      rows,
	}
}

func RowToDTO(row Row) RowDTO {
	errors := row.Errors
	if errors == nil {
		errors = []string{}
	}
	return RowDTO{
		ProjectName:    row.ProjectName,
		PhaseName:      row.PhaseLabel,
		Date:           row.DateText,
		Hours:          row.HoursText,
		Notes:          row.Notes,
		ProjectID:      row.ProjectID,
		MatchedProject: row.MatchedProject,
		PhaseCode:      row.PhaseCode,
		OccurredOn:     row.OccurredOn,
		Minutes:        row.Minutes,
		Errors:         errors,
		IsValid:        row.Valid,
	}
}

func DTOToRow(dto RowDTO) Row {
	return Row{
		ProjectName: dto.ProjectName,
		PhaseLabel:  dto.PhaseName,
		DateText:    dto.Date,
		HoursText:   dto.Hours,
		Notes:       dto.Notes,
	}
}

func SummaryToDTO(summary Summary) SummaryDTO {
	failures := make([]RowFailureDTO, 0, len(summary.Failures))
	for _, failure := range summary.Failures {
		failures = append(failures, RowFailureDTO{Row: failure.RowNumber, Message: failure.Message})
	}
	return SummaryDTO{
		Total:      summary.Total,
		Successful: summary.Successful,
		Failed:     summary.Failed,
		Failures:   failures,
	}
}
