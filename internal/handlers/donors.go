package handlers

import (
	"encoding/json"
	"net/http"

	"backoffice/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type donorRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	Category  string `json:"category" validate:"required,oneof=individual organization"`
	DonorType string `json:"donor_type" validate:"required,oneof=one-time recurring"`
	Notes     string `json:"notes"`
}

func (h *Handler) CreateDonor(w http.ResponseWriter, r *http.Request) {
	var req donorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}
	id := uuid.NewString()
	err := h.deps.Donors.Create(r.Context(), store.DonorInput{
		ID:        id,
		Name:      req.Name,
		Email:     optString(req.Email),
		Phone:     optString(req.Phone),
		Category:  req.Category,
		DonorType: req.DonorType,
		Notes:     optString(req.Notes),
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"donor_id": id})
}

func (h *Handler) ListDonors(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.Donors.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"donors": rows})
}

func (h *Handler) GetDonor(w http.ResponseWriter, r *http.Request) {
	row, err := h.deps.Donors.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondNotFoundOr500(w, err)
		return
	}
	respondJSON(w, http.StatusOK, row)
}

func (h *Handler) UpdateDonor(w http.ResponseWriter, r *http.Request) {
	var req donorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}
	rows, err := h.deps.Donors.Update(r.Context(), store.DonorInput{
		ID:        chi.URLParam(r, "id"),
		Name:      req.Name,
		Email:     optString(req.Email),
		Phone:     optString(req.Phone),
		Category:  req.Category,
		DonorType: req.DonorType,
		Notes:     optString(req.Notes),
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

func (h *Handler) DeleteDonor(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.Donors.Delete(r.Context(), chi.URLParam(r, "id"))
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
