package handlers

import (
	"encoding/json"
	"net/http"

	"backoffice/internal/money"
	"backoffice/internal/services"
	"backoffice/internal/store"

	"github.com/go-chi/chi/v5"
)

type requestPaymentRequest struct {
	EmployeeID    string `json:"employee_id" validate:"required"`
	Amount        string `json:"amount" validate:"required"`
	PaymentPeriod string `json:"payment_period" validate:"required,datetime=2006-01"`
	PaymentMethod string `json:"payment_method"`
	Description   string `json:"description"`
}

func (h *Handler) RequestPayment(w http.ResponseWriter, r *http.Request) {
	var req requestPaymentRequest
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
	id, err := h.deps.Payments.Request(r.Context(), services.RequestPaymentRequest{
		EmployeeID:    req.EmployeeID,
		AmountMinor:   amount,
		PaymentPeriod: req.PaymentPeriod,
		PaymentMethod: optString(req.PaymentMethod),
		Description:   optString(req.Description),
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"payment_id": id})
}

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.PaymentRows.List(r.Context(), r.URL.Query().Get("employee_id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	payments := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, paymentResponse(row))
	}
	respondJSON(w, http.StatusOK, map[string]any{"payments": payments})
}

func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	row, err := h.deps.PaymentRows.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondNotFoundOr500(w, err)
		return
	}
	respondJSON(w, http.StatusOK, paymentResponse(row))
}

type paymentDecisionRequest struct {
	Approved    *bool  `json:"approved" validate:"required"`
	Remarks     string `json:"remarks"`
	ProcessedBy string `json:"processed_by"`
}

func (h *Handler) DecidePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}
	err := h.deps.Payments.Approve(r.Context(), chi.URLParam(r, "id"), *req.Approved, actorName(r, req.ProcessedBy), req.Remarks)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	status := "rejected"
	if *req.Approved {
		status = "approved"
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": status})
}

func paymentResponse(row store.Payment) map[string]any {
	return map[string]any{
		"id":             row.ID,
		"employee_id":    row.EmployeeID,
		"amount":         money.FormatMinor(row.Amount),
		"payment_period": row.PaymentPeriod,
		"payment_method": row.PaymentMethod,
		"description":    row.Description,
		"status":         row.Status,
		"processed_by":   row.ProcessedBy,
		"remarks":        row.Remarks,
		"created_at":     row.CreatedAt,
		"approved_at":    row.ApprovedAt,
	}
}
