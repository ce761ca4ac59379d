package store

import (
	"context"
	"time"
)

type ProjectStore struct {
	db DB
}

type Project struct {
	ID            string     `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	Description   *string    `db:"description" json:"description,omitempty"`
	FundingSource string     `db:"funding_source" json:"funding_source"`
	StartDate     *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate       *time.Time `db:"end_date" json:"end_date,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

type ProjectInput struct {
	ID            string
	Name          string
	Description   string
	FundingSource string
	StartDate     *time.Time
	EndDate       *time.Time
}

func NewProjectStore(db DB) *ProjectStore {
	return &ProjectStore{db: db}
}

func (s *ProjectStore) Create(ctx context.Context, tx Execer, input ProjectInput) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO projects (id, name, description, funding_source, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, input.ID, input.Name, input.Description, input.FundingSource, input.StartDate, input.EndDate)
	return err
}

func (s *ProjectStore) Get(ctx context.Context, id string) (Project, error) {
	var row Project
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, description, funding_source, start_date, end_date, created_at
		FROM projects
		WHERE id = $1
	`, id)
	return row, err
}

func (s *ProjectStore) List(ctx context.Context) ([]Project, error) {
	var rows []Project
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, description, funding_source, start_date, end_date, created_at
		FROM projects
		ORDER BY created_at DESC
	`)
	return rows, err
}

func (s *ProjectStore) Update(ctx context.Context, input ProjectInput) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE projects
		SET name = $2, description = $3, funding_source = $4, start_date = $5, end_date = $6
		WHERE id = $1
	`, input.ID, input.Name, input.Description, input.FundingSource, input.StartDate, input.EndDate)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *ProjectStore) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
