package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"backoffice/internal/money"
	"backoffice/internal/store"

	"go.uber.org/zap"
)

func (h *Handler) GetSavingsGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := h.deps.Savings.Goal(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, savingsGoalResponse(goal))
}

func (h *Handler) GetSavingsProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.deps.Savings.Progress(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"progress_percent": progress.ProgressPercent,
		"months_remaining": progress.MonthsRemaining,
		"monthly_savings":  money.FormatMinor(progress.MonthlySavingsMinor),
		"on_track":         progress.OnTrack,
	})
}

func (h *Handler) ListSavingsTransactions(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.Savings.ListTransactions(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	transactions := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, map[string]any{
			"id":          row.ID,
			"amount":      money.FormatMinor(row.Amount),
			"type":        row.Type,
			"date":        row.Date.Format("2006-01-02"),
			"description": row.Description,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"transactions": transactions})
}

type savingsTransactionRequest struct {
	Amount      string `json:"amount" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=deposit withdrawal"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

func (h *Handler) CreateSavingsTransaction(w http.ResponseWriter, r *http.Request) {
	var req savingsTransactionRequest
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
	date := time.Now().UTC()
	if req.Date != "" {
		date, err = parseDate(req.Date)
		if err != nil {
			respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
	}
	newAmount, err := h.deps.Savings.RecordTransaction(r.Context(), amount, req.Type, date, optString(req.Description))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	h.logger.Info("savings transaction recorded",
		zap.String("type", req.Type),
		zap.Int64("amount_minor", amount),
	)
	respondJSON(w, http.StatusCreated, map[string]any{
		"status":         "recorded",
		"current_amount": money.FormatMinor(newAmount),
	})
}

func savingsGoalResponse(goal store.SavingsGoal) map[string]any {
	return map[string]any{
		"id":              goal.ID,
		"target_amount":   money.FormatMinor(goal.TargetAmount),
		"current_amount":  money.FormatMinor(goal.CurrentAmount),
		"start_date":      goal.StartDate.Format("2006-01-02"),
		"target_date":     goal.TargetDate.Format("2006-01-02"),
		"monthly_savings": money.FormatMinor(goal.MonthlySavings),
	}
}
