package store

import (
	"context"
	"time"
)

type EmployeeStore struct {
	db DB
}

type Employee struct {
	ID         string     `db:"id" json:"id"`
	FullName   string     `db:"full_name" json:"full_name"`
	Email      *string    `db:"email" json:"email,omitempty"`
	NationalID string     `db:"national_id" json:"national_id"`
	Position   *string    `db:"position" json:"position,omitempty"`
	Department *string    `db:"department" json:"department,omitempty"`
	Salary     int64      `db:"salary" json:"salary"`
	HiredAt    *time.Time `db:"hired_at" json:"hired_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

type EmployeeInput struct {
	ID         string
	FullName   string
	Email      *string
	NationalID string
	Position   *string
	Department *string
	Salary     int64
	HiredAt    *time.Time
}

func NewEmployeeStore(db DB) *EmployeeStore {
	return &EmployeeStore{db: db}
}

// Create relies on the unique index on national_id; callers map the
// violation to a conflict response.
func (s *EmployeeStore) Create(ctx context.Context, input EmployeeInput) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, full_name, email, national_id, position, department, salary, hired_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, input.ID, input.FullName, input.Email, input.NationalID, input.Position, input.Department, input.Salary, input.HiredAt)
	return err
}

func (s *EmployeeStore) Get(ctx context.Context, id string) (Employee, error) {
	var row Employee
	err := s.db.GetContext(ctx, &row, `
		SELECT id, full_name, email, national_id, position, department, salary, hired_at, created_at
		FROM employees
		WHERE id = $1
	`, id)
	return row, err
}

func (s *EmployeeStore) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1)`, id)
	return exists, err
}

func (s *EmployeeStore) List(ctx context.Context) ([]Employee, error) {
	var rows []Employee
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, full_name, email, national_id, position, department, salary, hired_at, created_at
		FROM employees
		ORDER BY full_name
	`)
	return rows, err
}

func (s *EmployeeStore) Update(ctx context.Context, input EmployeeInput) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE employees
		SET full_name = $2, email = $3, position = $4, department = $5, salary = $6, hired_at = $7
		WHERE id = $1
	`, input.ID, input.FullName, input.Email, input.Position, input.Department, input.Salary, input.HiredAt)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *EmployeeStore) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
