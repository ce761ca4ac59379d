package handlers

import (
	"encoding/json"
	"net/http"
)

func (h *Handler) GetAbstinenceTracker(w http.ResponseWriter, r *http.Request) {
	tracker, err := h.deps.Abstinence.Tracker(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tracker)
}

func (h *Handler) GetAbstinenceProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.deps.Abstinence.Progress(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"days_completed":     progress.DaysCompleted,
		"total_days_planned": progress.TotalDaysPlanned,
		"days_remaining":     progress.DaysRemaining,
		"success_rate":       progress.SuccessRate,
	})
}

func (h *Handler) ListAbstinenceCheckIns(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.Abstinence.ListCheckIns(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"checkins": rows})
}

type checkInRequest struct {
	Date    string `json:"date" validate:"required"`
	Success *bool  `json:"success" validate:"required"`
	Notes   string `json:"notes"`
}

func (h *Handler) CreateAbstinenceCheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if err := h.deps.Abstinence.CheckIn(r.Context(), date, *req.Success, optString(req.Notes)); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
}
