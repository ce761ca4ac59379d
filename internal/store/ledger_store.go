package store

import (
	"context"
	"time"
)

// LedgerStore owns the two balance tables. Balances are only ever mutated
// through AdjustBankAccount/AdjustProgramArea so that every change can be
// paired with its reversal.
type LedgerStore struct {
	db DB
}

type BankAccount struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	AccountNumber string    `db:"account_number" json:"account_number"`
	Balance       int64     `db:"balance" json:"balance"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type ProgramArea struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	Budget      int64     `db:"budget" json:"budget"`
	Balance     int64     `db:"balance" json:"balance"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

func NewLedgerStore(db DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func (s *LedgerStore) CreateBankAccount(ctx context.Context, tx Execer, id, name, accountNumber string, balance int64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO bank_accounts (id, name, account_number, balance)
		VALUES ($1, $2, $3, $4)
	`, id, name, accountNumber, balance)
	return err
}

func (s *LedgerStore) GetBankAccount(ctx context.Context, name string) (BankAccount, error) {
	var row BankAccount
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, account_number, balance, created_at
		FROM bank_accounts
		WHERE name = $1
	`, name)
	return row, err
}

func (s *LedgerStore) ListBankAccounts(ctx context.Context) ([]BankAccount, error) {
	var rows []BankAccount
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, account_number, balance, created_at
		FROM bank_accounts
		ORDER BY name
	`)
	return rows, err
}

// AdjustBankAccount adds delta to the named account and returns the new
// balance. sql.ErrNoRows means the account does not exist; the caller must
// abort its transaction.
func (s *LedgerStore) AdjustBankAccount(ctx context.Context, tx Getter, name string, delta int64) (int64, error) {
	var balance int64
	err := tx.GetContext(ctx, &balance, `
		UPDATE bank_accounts
		SET balance = balance + $1
		WHERE name = $2
		RETURNING balance
	`, delta, name)
	return balance, err
}

func (s *LedgerStore) CreateProgramArea(ctx context.Context, tx Execer, id, name, description string, budget int64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO program_areas (id, name, description, budget, balance)
		VALUES ($1, $2, $3, $4, 0)
	`, id, name, description, budget)
	return err
}

func (s *LedgerStore) GetProgramArea(ctx context.Context, name string) (ProgramArea, error) {
	var row ProgramArea
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, description, budget, balance, created_at
		FROM program_areas
		WHERE name = $1
	`, name)
	return row, err
}

// GetProgramAreaForUpdate locks the row for the pre-debit balance check.
func (s *LedgerStore) GetProgramAreaForUpdate(ctx context.Context, tx Getter, name string) (ProgramArea, error) {
	var row ProgramArea
	err := tx.GetContext(ctx, &row, `
		SELECT id, name, description, budget, balance, created_at
		FROM program_areas
		WHERE name = $1
		FOR UPDATE
	`, name)
	return row, err
}

func (s *LedgerStore) ListProgramAreas(ctx context.Context) ([]ProgramArea, error) {
	var rows []ProgramArea
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, description, budget, balance, created_at
		FROM program_areas
		ORDER BY name
	`)
	return rows, err
}

func (s *LedgerStore) AdjustProgramArea(ctx context.Context, tx Getter, name string, delta int64) (int64, error) {
	var balance int64
	err := tx.GetContext(ctx, &balance, `
		UPDATE program_areas
		SET balance = balance + $1
		WHERE name = $2
		RETURNING balance
	`, delta, name)
	return balance, err
}
