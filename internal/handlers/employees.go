package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"backoffice/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type employeeRequest struct {
	FullName   string `json:"full_name" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	NationalID string `json:"national_id" validate:"required"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Salary     string `json:"salary" validate:"required"`
	HiredAt    string `json:"hired_at"`
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	_, input, ok := h.decodeEmployee(w, r)
	if !ok {
		return
	}
	input.ID = uuid.NewString()
	if err := h.deps.Employees.Create(r.Context(), input); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"employee_id": input.ID})
}

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.Employees.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"employees": rows})
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	row, err := h.deps.Employees.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondNotFoundOr500(w, err)
		return
	}
	respondJSON(w, http.StatusOK, row)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	_, input, ok := h.decodeEmployee(w, r)
	if !ok {
		return
	}
	input.ID = chi.URLParam(r, "id")
	rows, err := h.deps.Employees.Update(r.Context(), input)
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

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.Employees.Delete(r.Context(), chi.URLParam(r, "id"))
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

func (h *Handler) decodeEmployee(w http.ResponseWriter, r *http.Request) (employeeRequest, store.EmployeeInput, bool) {
	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return req, store.EmployeeInput{}, false
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return req, store.EmployeeInput{}, false
	}
	salary, err := parseAmountMinor(req.Salary)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return req, store.EmployeeInput{}, false
	}
	var hiredAt *time.Time
	if req.HiredAt != "" {
		parsed, err := parseDate(req.HiredAt)
		if err != nil {
			respondError(w, http.StatusBadRequest, "hired_at must be YYYY-MM-DD")
			return req, store.EmployeeInput{}, false
		}
		hiredAt = &parsed
	}
	return req, store.EmployeeInput{
		FullName:   req.FullName,
		Email:      optString(req.Email),
		NationalID: req.NationalID,
		Position:   optString(req.Position),
		Department: optString(req.Department),
		Salary:     salary,
		HiredAt:    hiredAt,
	}, true
}
