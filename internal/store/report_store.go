package store

import (
	"context"
	"time"
)

type ReportStore struct {
	db DB
}

type Report struct {
	ID         string    `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	ReportType string    `db:"report_type" json:"report_type"`
	Period     *string   `db:"period" json:"period,omitempty"`
	Summary    *string   `db:"summary" json:"summary,omitempty"`
	CreatedBy  string    `db:"created_by" json:"created_by"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type ReportInput struct {
	ID         string
	Title      string
	ReportType string
	Period     *string
	Summary    *string
	CreatedBy  string
}

func NewReportStore(db DB) *ReportStore {
	return &ReportStore{db: db}
}

func (s *ReportStore) Create(ctx context.Context, input ReportInput) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (id, title, report_type, period, summary, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, input.ID, input.Title, input.ReportType, input.Period, input.Summary, input.CreatedBy)
	return err
}

func (s *ReportStore) Get(ctx context.Context, id string) (Report, error) {
	var row Report
	err := s.db.GetContext(ctx, &row, `
		SELECT id, title, report_type, period, summary, created_by, created_at
		FROM reports
		WHERE id = $1
	`, id)
	return row, err
}

func (s *ReportStore) List(ctx context.Context) ([]Report, error) {
	var rows []Report
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, title, report_type, period, summary, created_by, created_at
		FROM reports
		ORDER BY created_at DESC
	`)
	return rows, err
}

func (s *ReportStore) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
