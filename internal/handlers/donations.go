package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"backoffice/internal/money"
	"backoffice/internal/services"

	"github.com/go-chi/chi/v5"
)

type createDonationRequest struct {
	DonorID       string `json:"donor_id"`
	Amount        string `json:"amount" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required"`
	DonationDate  string `json:"donation_date"`
	Project       string `json:"project"`
}

func (h *Handler) CreateDonation(w http.ResponseWriter, r *http.Request) {
	var req createDonationRequest
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
	donationDate := time.Now().UTC()
	if req.DonationDate != "" {
		donationDate, err = parseDate(req.DonationDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "donation_date must be YYYY-MM-DD")
			return
		}
	}
	id, err := h.deps.Donations.Record(r.Context(), services.RecordDonationRequest{
		DonorID:       optString(req.DonorID),
		AmountMinor:   amount,
		PaymentMethod: req.PaymentMethod,
		DonationDate:  donationDate,
		Project:       req.Project,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"donation_id": id})
}

func (h *Handler) ListDonations(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 50)
	offset := parseInt(r.URL.Query().Get("offset"), 0)
	rows, err := h.deps.DonationRows.List(r.Context(), limit, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	for _, row := range rows {
		if amount, ok := row["amount"].(int64); ok {
			row["amount"] = money.FormatMinor(amount)
		}
	}
	respondJSON(w, http.StatusOK, map[string]any{"donations": rows})
}

func (h *Handler) GetDonation(w http.ResponseWriter, r *http.Request) {
	row, err := h.deps.DonationRows.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondNotFoundOr500(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"id":             row.ID,
		"donor_id":       row.DonorID,
		"amount":         money.FormatMinor(row.Amount),
		"payment_method": row.PaymentMethod,
		"donation_date":  row.DonationDate,
		"project":        row.Project,
		"status":         row.Status,
		"created_at":     row.CreatedAt,
	})
}

func (h *Handler) DeleteDonation(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Donations.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
