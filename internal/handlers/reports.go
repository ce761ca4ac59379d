package handlers

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"time"

	"backoffice/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type reportRequest struct {
	Title      string `json:"title" validate:"required"`
	ReportType string `json:"report_type" validate:"required"`
	Period     string `json:"period"`
	Summary    string `json:"summary"`
	CreatedBy  string `json:"created_by"`
}

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}
	id := uuid.NewString()
	err := h.deps.Reports.Create(r.Context(), store.ReportInput{
		ID:         id,
		Title:      req.Title,
		ReportType: req.ReportType,
		Period:     optString(req.Period),
		Summary:    optString(req.Summary),
		CreatedBy:  actorName(r, req.CreatedBy),
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"report_id": id})
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.Reports.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"reports": rows})
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	row, err := h.deps.Reports.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondNotFoundOr500(w, err)
		return
	}
	respondJSON(w, http.StatusOK, row)
}

func (h *Handler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.Reports.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if rows == 0 {
		respondError(w, http.StatusNotFound, "not_found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ExportReportsCSV streams every report row as a CSV attachment.
func (h *Handler) ExportReportsCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.Reports.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="reports.csv"`)
	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"id", "title", "report_type", "period", "summary", "created_by", "created_at"})
	for _, row := range rows {
		_ = writer.Write([]string{
			row.ID,
			row.Title,
			row.ReportType,
			derefOrEmpty(row.Period),
			derefOrEmpty(row.Summary),
			row.CreatedBy,
			row.CreatedAt.Format(time.RFC3339),
		})
	}
	writer.Flush()
}

func derefOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
