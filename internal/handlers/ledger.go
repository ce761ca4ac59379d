package handlers

import (
	"encoding/json"
	"net/http"

	"backoffice/internal/money"
	"backoffice/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type createBankAccountRequest struct {
	Name           string `json:"name" validate:"required"`
	AccountNumber  string `json:"account_number" validate:"required"`
	InitialBalance string `json:"initial_balance"`
}

func (h *Handler) CreateBankAccount(w http.ResponseWriter, r *http.Request) {
	var req createBankAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}
	var balance int64
	if req.InitialBalance != "" {
		parsed, err := money.ParseMinor(req.InitialBalance)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, "invalid_amount")
			return
		}
		balance = parsed
	}
	id := uuid.NewString()
	err := h.deps.TxRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		return h.deps.Ledger.CreateBankAccount(r.Context(), tx, id, req.Name, req.AccountNumber, balance)
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"account_id": id})
}

func (h *Handler) ListBankAccounts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.Ledger.ListBankAccounts(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	accounts := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, bankAccountResponse(row))
	}
	respondJSON(w, http.StatusOK, map[string]any{"accounts": accounts})
}

func (h *Handler) GetBankAccount(w http.ResponseWriter, r *http.Request) {
	row, err := h.deps.Ledger.GetBankAccount(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondNotFoundOr500(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bankAccountResponse(row))
}

type createProgramAreaRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Budget      string `json:"budget"`
}

func (h *Handler) CreateProgramArea(w http.ResponseWriter, r *http.Request) {
	var req createProgramAreaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}
	var budget int64
	if req.Budget != "" {
		parsed, err := money.ParseMinor(req.Budget)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, "invalid_amount")
			return
		}
		budget = parsed
	}
	id := uuid.NewString()
	err := h.deps.TxRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		return h.deps.Ledger.CreateProgramArea(r.Context(), tx, id, req.Name, req.Description, budget)
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"program_area_id": id})
}

func (h *Handler) ListProgramAreas(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.Ledger.ListProgramAreas(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	areas := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		areas = append(areas, programAreaResponse(row))
	}
	respondJSON(w, http.StatusOK, map[string]any{"program_areas": areas})
}

func (h *Handler) GetProgramArea(w http.ResponseWriter, r *http.Request) {
	row, err := h.deps.Ledger.GetProgramArea(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondNotFoundOr500(w, err)
		return
	}
	respondJSON(w, http.StatusOK, programAreaResponse(row))
}

func bankAccountResponse(row store.BankAccount) map[string]any {
	return map[string]any{
		"id":             row.ID,
		"name":           row.Name,
		"account_number": row.AccountNumber,
		"balance":        money.FormatMinor(row.Balance),
		"created_at":     row.CreatedAt,
	}
}

func programAreaResponse(row store.ProgramArea) map[string]any {
	return map[string]any{
		"id":          row.ID,
		"name":        row.Name,
		"description": row.Description,
		"budget":      money.FormatMinor(row.Budget),
		"balance":     money.FormatMinor(row.Balance),
		"created_at":  row.CreatedAt,
	}
}
