package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"backoffice/internal/db"
	"backoffice/internal/middleware"
	"backoffice/internal/services"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps workflow sentinels onto HTTP statuses: 404 for
// missing entities, 400 for lifecycle/validation failures, 409 for
// unique-constraint conflicts, 500 otherwise.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, services.ErrInvalidState):
		respondError(w, http.StatusBadRequest, "invalid_state")
	case errors.Is(err, services.ErrAlreadyProcessed):
		respondError(w, http.StatusBadRequest, "already_processed")
	case errors.Is(err, services.ErrInsufficientFunds):
		respondError(w, http.StatusBadRequest, "insufficient_funds")
	case errors.Is(err, services.ErrInvalidDecision):
		respondError(w, http.StatusBadRequest, "invalid_decision")
	case errors.Is(err, services.ErrInvalidAmount):
		respondError(w, http.StatusBadRequest, "invalid_amount")
	case errors.Is(err, services.ErrInvalidTransactionType):
		respondError(w, http.StatusBadRequest, "invalid_transaction_type")
	case errors.Is(err, services.ErrDuplicateCheckIn):
		respondError(w, http.StatusBadRequest, "checkin_exists")
	case db.IsUniqueViolation(err):
		respondError(w, http.StatusConflict, "duplicate")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error")
	}
}

func parseInt(raw string, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}

func optString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// actorName prefers the explicit body field and falls back to the actor
// header, then to "system".
func actorName(r *http.Request, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if actor := middleware.ActorFromContext(r.Context()); actor != "" {
		return actor
	}
	return "system"
}

// respondNotFoundOr500 maps a bare sql.ErrNoRows from a read-only store call.
func respondNotFoundOr500(w http.ResponseWriter, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "not_found")
		return
	}
	respondError(w, http.StatusInternalServerError, "internal_error")
}
