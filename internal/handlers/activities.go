package handlers

import (
	"encoding/json"
	"net/http"

	"backoffice/internal/money"
	"backoffice/internal/services"

	"github.com/go-chi/chi/v5"
)

type createActivityRequest struct {
	ProjectID   string `json:"project_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Budget      string `json:"budget" validate:"required"`
	RequestedBy string `json:"requested_by"`
}

func (h *Handler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req createActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}
	budget, err := parseAmountMinor(req.Budget)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}
	id, err := h.deps.Approvals.CreateActivity(r.Context(), services.CreateActivityRequest{
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Description: req.Description,
		BudgetMinor: budget,
		RequestedBy: actorName(r, req.RequestedBy),
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"activity_id": id})
}

func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.Activities.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	activities := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		activities = append(activities, map[string]any{
			"id":          row.ID,
			"project_id":  row.ProjectID,
			"name":        row.Name,
			"description": row.Description,
			"budget":      money.FormatMinor(row.Budget),
			"status":      row.Status,
			"created_at":  row.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"activities": activities})
}

func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	row, err := h.deps.Activities.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondNotFoundOr500(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"id":          row.ID,
		"project_id":  row.ProjectID,
		"name":        row.Name,
		"description": row.Description,
		"budget":      money.FormatMinor(row.Budget),
		"status":      row.Status,
		"created_at":  row.CreatedAt,
	})
}

func (h *Handler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Activities.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type requestApprovalRequest struct {
	RequestedBy string `json:"requested_by"`
}

// RequestActivityApproval re-opens the approval for an activity, resetting
// both the approval row and the activity to pending.
func (h *Handler) RequestActivityApproval(w http.ResponseWriter, r *http.Request) {
	var req requestApprovalRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	err := h.deps.Approvals.Request(r.Context(), chi.URLParam(r, "id"), actorName(r, req.RequestedBy))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "pending"})
}

func (h *Handler) ListActivityApprovals(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.ApprovalRows.ListActivityApprovals(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"approvals": rows})
}

func (h *Handler) GetActivityApproval(w http.ResponseWriter, r *http.Request) {
	row, err := h.deps.ApprovalRows.GetActivityApproval(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondNotFoundOr500(w, err)
		return
	}
	respondJSON(w, http.StatusOK, row)
}

type decisionRequest struct {
	Decision  string `json:"decision" validate:"required,oneof=approved rejected"`
	Comments  string `json:"comments"`
	DecidedBy string `json:"decided_by"`
}

func (h *Handler) DecideActivityApproval(w http.ResponseWriter, r *http.Request) {
	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}
	err := h.deps.Approvals.Decide(r.Context(), chi.URLParam(r, "id"), req.Decision, actorName(r, req.DecidedBy), req.Comments)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": req.Decision})
}
