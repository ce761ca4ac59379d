package store

import (
	"context"
	"time"
)

type SavingsStore struct {
	db DB
}

type SavingsGoal struct {
	ID             int64     `db:"id" json:"id"`
	TargetAmount   int64     `db:"target_amount" json:"target_amount"`
	CurrentAmount  int64     `db:"current_amount" json:"current_amount"`
	StartDate      time.Time `db:"start_date" json:"start_date"`
	TargetDate     time.Time `db:"target_date" json:"target_date"`
	MonthlySavings int64     `db:"monthly_savings" json:"monthly_savings"`
}

type SavingsTransaction struct {
	ID          int64     `db:"id" json:"id"`
	Amount      int64     `db:"amount" json:"amount"`
	Type        string    `db:"type" json:"type"`
	Date        time.Time `db:"date" json:"date"`
	Description *string   `db:"description" json:"description,omitempty"`
}

func NewSavingsStore(db DB) *SavingsStore {
	return &SavingsStore{db: db}
}

// GetGoal reads the singleton goal row.
func (s *SavingsStore) GetGoal(ctx context.Context) (SavingsGoal, error) {
	var row SavingsGoal
	err := s.db.GetContext(ctx, &row, `
		SELECT id, target_amount, current_amount, start_date, target_date, monthly_savings
		FROM savings_goal
		LIMIT 1
	`)
	return row, err
}

// AdjustGoalAmount adds delta (negative for withdrawals) to the running
// total and returns the new amount. sql.ErrNoRows means no goal row exists.
func (s *SavingsStore) AdjustGoalAmount(ctx context.Context, tx Getter, delta int64) (int64, error) {
	var current int64
	err := tx.GetContext(ctx, &current, `
		UPDATE savings_goal
		SET current_amount = current_amount + $1
		RETURNING current_amount
	`, delta)
	return current, err
}

func (s *SavingsStore) InsertTransaction(ctx context.Context, tx Execer, amount int64, txType string, date time.Time, description *string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO savings_transactions (amount, type, date, description)
		VALUES ($1, $2, $3, $4)
	`, amount, txType, date, description)
	return err
}

func (s *SavingsStore) ListTransactions(ctx context.Context) ([]SavingsTransaction, error) {
	var rows []SavingsTransaction
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, amount, type, date, description
		FROM savings_transactions
		ORDER BY date DESC
	`)
	return rows, err
}
