package store

import (
	"context"
	"time"
)

type ActivityStore struct {
	db DB
}

type Activity struct {
	ID          string    `db:"id" json:"id"`
	ProjectID   string    `db:"project_id" json:"project_id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	Budget      int64     `db:"budget" json:"budget"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ActivityProject is the activity joined to its project, used when a budget
// approval needs the project name and funding source.
type ActivityProject struct {
	ActivityID    string `db:"activity_id"`
	ActivityName  string `db:"activity_name"`
	ProjectName   string `db:"project_name"`
	FundingSource string `db:"funding_source"`
}

func NewActivityStore(db DB) *ActivityStore {
	return &ActivityStore{db: db}
}

func (s *ActivityStore) Create(ctx context.Context, tx Execer, id, projectID, name, description string, budget int64, status string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO activities (id, project_id, name, description, budget, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, projectID, name, description, budget, status)
	return err
}

func (s *ActivityStore) Get(ctx context.Context, id string) (Activity, error) {
	var row Activity
	err := s.db.GetContext(ctx, &row, `
		SELECT id, project_id, name, description, budget, status, created_at
		FROM activities
		WHERE id = $1
	`, id)
	return row, err
}

func (s *ActivityStore) List(ctx context.Context) ([]Activity, error) {
	var rows []Activity
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, project_id, name, description, budget, status, created_at
		FROM activities
		ORDER BY created_at DESC
	`)
	return rows, err
}

func (s *ActivityStore) UpdateStatus(ctx context.Context, tx Execer, id, status string) error {
	_, err := tx.ExecContext(ctx, `UPDATE activities SET status = $1 WHERE id = $2`, status, id)
	return err
}

func (s *ActivityStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM activities WHERE id = $1`, id)
	return err
}

// GetWithProject joins the activity to its project. sql.ErrNoRows covers both
// a missing activity and a dangling project reference.
func (s *ActivityStore) GetWithProject(ctx context.Context, q Getter, id string) (ActivityProject, error) {
	var row ActivityProject
	err := q.GetContext(ctx, &row, `
		SELECT a.id AS activity_id, a.name AS activity_name,
		       p.name AS project_name, p.funding_source
		FROM activities a
		JOIN projects p ON p.id = a.project_id
		WHERE a.id = $1
	`, id)
	return row, err
}
