package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type createBudgetApprovalRequest struct {
	ActivityID  string `json:"activity_id" validate:"required"`
	Amount      string `json:"amount" validate:"required"`
	Comments    string `json:"comments"`
	RequestedBy string `json:"requested_by"`
}

func (h *Handler) CreateBudgetApproval(w http.ResponseWriter, r *http.Request) {
	var req createBudgetApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}
	amount, err := parseAmountMinor(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}
	id, err := h.deps.Budgets.Create(r.Context(), req.ActivityID, amount, actorName(r, req.RequestedBy), optString(req.Comments))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"approval_id": id})
}

func (h *Handler) ListBudgetApprovals(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.ApprovalRows.ListBudgetApprovals(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"approvals": rows})
}

func (h *Handler) GetBudgetApproval(w http.ResponseWriter, r *http.Request) {
	row, err := h.deps.ApprovalRows.GetBudgetApproval(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondNotFoundOr500(w, err)
		return
	}
	respondJSON(w, http.StatusOK, row)
}

func (h *Handler) DecideBudgetApproval(w http.ResponseWriter, r *http.Request) {
	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}
	err := h.deps.Budgets.Decide(r.Context(), chi.URLParam(r, "id"), req.Decision, actorName(r, req.DecidedBy), req.Comments)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": req.Decision})
}
