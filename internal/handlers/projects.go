package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"backoffice/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type projectRequest struct {
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description"`
	FundingSource string `json:"funding_source" validate:"required"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}
	startDate, endDate, err := parseOptionalDates(req.StartDate, req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "dates must be YYYY-MM-DD")
		return
	}
	id := uuid.NewString()
	err = h.deps.TxRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		return h.deps.Projects.Create(r.Context(), tx, store.ProjectInput{
			ID:            id,
			Name:          req.Name,
			Description:   req.Description,
			FundingSource: req.FundingSource,
			StartDate:     startDate,
			EndDate:       endDate,
		})
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"project_id": id})
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.Projects.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"projects": rows})
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	row, err := h.deps.Projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondNotFoundOr500(w, err)
		return
	}
	respondJSON(w, http.StatusOK, row)
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}
	startDate, endDate, err := parseOptionalDates(req.StartDate, req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "dates must be YYYY-MM-DD")
		return
	}
	rows, err := h.deps.Projects.Update(r.Context(), store.ProjectInput{
		ID:            chi.URLParam(r, "id"),
		Name:          req.Name,
		Description:   req.Description,
		FundingSource: req.FundingSource,
		StartDate:     startDate,
		EndDate:       endDate,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if rows == 0 {
		respondError(w, http.StatusNotFound, "not_found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.Projects.Delete(r.Context(), chi.URLParam(r, "id"))
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

func parseOptionalDates(start, end string) (*time.Time, *time.Time, error) {
	var startDate, endDate *time.Time
	if start != "" {
		parsed, err := parseDate(start)
		if err != nil {
			return nil, nil, err
		}
		startDate = &parsed
	}
	if end != "" {
		parsed, err := parseDate(end)
		if err != nil {
			return nil, nil, err
		}
		endDate = &parsed
	}
	return startDate, endDate, nil
}
