package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"backoffice/internal/money"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var errInvalidAmount = errors.New("invalid amount")

// parseAmountMinor accepts a positive decimal string with at most two
// decimal places and returns minor units.
func parseAmountMinor(raw string) (int64, error) {
	amount, err := money.ParseMinor(raw)
	if err != nil || amount <= 0 {
		return 0, errInvalidAmount
	}
	return amount, nil
}

// respondValidationError reports per-field failures from validator tags.
func respondValidationError(w http.ResponseWriter, err error) {
	details := map[string]string{}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fieldErr := range fieldErrs {
			details[fieldErr.Field()] = fmt.Sprintf("failed on '%s'", fieldErr.Tag())
		}
	}
	respondJSON(w, http.StatusBadRequest, map[string]any{
		"error":   "validation_failed",
		"details": details,
	})
}
