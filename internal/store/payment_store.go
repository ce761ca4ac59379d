package store

import (
	"context"
	"time"
)

type PaymentStore struct {
	db DB
}

type Payment struct {
	ID            string     `db:"id" json:"id"`
	EmployeeID    string     `db:"employee_id" json:"employee_id"`
	Amount        int64      `db:"amount" json:"amount"`
	PaymentPeriod string     `db:"payment_period" json:"payment_period"`
	PaymentMethod *string    `db:"payment_method" json:"payment_method,omitempty"`
	Description   *string    `db:"description" json:"description,omitempty"`
	Status        string     `db:"status" json:"status"`
	ProcessedBy   *string    `db:"processed_by" json:"processed_by,omitempty"`
	Remarks       *string    `db:"remarks" json:"remarks,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	ApprovedAt    *time.Time `db:"approved_at" json:"approved_at,omitempty"`
}

type PaymentInput struct {
	ID            string
	EmployeeID    string
	Amount        int64
	PaymentPeriod string
	PaymentMethod *string
	Description   *string
}

func NewPaymentStore(db DB) *PaymentStore {
	return &PaymentStore{db: db}
}

func (s *PaymentStore) Create(ctx context.Context, input PaymentInput) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payments (id, employee_id, amount, payment_period, payment_method, description, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
	`, input.ID, input.EmployeeID, input.Amount, input.PaymentPeriod, input.PaymentMethod, input.Description)
	return err
}

func (s *PaymentStore) Get(ctx context.Context, id string) (Payment, error) {
	var row Payment
	err := s.db.GetContext(ctx, &row, `
		SELECT id, employee_id, amount, payment_period, payment_method, description, status, processed_by, remarks, created_at, approved_at
		FROM payments
		WHERE id = $1
	`, id)
	return row, err
}

func (s *PaymentStore) List(ctx context.Context, employeeID string) ([]Payment, error) {
	var rows []Payment
	query := `
		SELECT id, employee_id, amount, payment_period, payment_method, description, status, processed_by, remarks, created_at, approved_at
		FROM payments
	`
	args := []any{}
	if employeeID != "" {
		query += ` WHERE employee_id = $1`
		args = append(args, employeeID)
	}
	query += ` ORDER BY created_at DESC`
	err := s.db.SelectContext(ctx, &rows, query, args...)
	return rows, err
}

// DecidePending stamps the decision on a still-pending payment and returns
// the number of rows touched; zero means missing or already decided.
func (s *PaymentStore) DecidePending(ctx context.Context, tx Execer, id, status, processedBy, remarks string) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE payments
		SET status = $2, processed_by = $3, remarks = $4, approved_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`, id, status, processedBy, remarks)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
