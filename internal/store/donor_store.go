package store

import (
	"context"
	"time"
)

type DonorStore struct {
	db DB
}

type Donor struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     *string   `db:"email" json:"email,omitempty"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Category  string    `db:"category" json:"category"`
	DonorType string    `db:"donor_type" json:"donor_type"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type DonorInput struct {
	ID        string
	Name      string
	Email     *string
	Phone     *string
	Category  string
	DonorType string
	Notes     *string
}

func NewDonorStore(db DB) *DonorStore {
	return &DonorStore{db: db}
}

func (s *DonorStore) Create(ctx context.Context, input DonorInput) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO donors (id, name, email, phone, category, donor_type, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, input.ID, input.Name, input.Email, input.Phone, input.Category, input.DonorType, input.Notes)
	return err
}

func (s *DonorStore) Get(ctx context.Context, id string) (Donor, error) {
	var row Donor
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, email, phone, category, donor_type, notes, created_at
		FROM donors
		WHERE id = $1
	`, id)
	return row, err
}

func (s *DonorStore) List(ctx context.Context) ([]Donor, error) {
	var rows []Donor
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, email, phone, category, donor_type, notes, created_at
		FROM donors
		ORDER BY created_at DESC
	`)
	return rows, err
}

func (s *DonorStore) Update(ctx context.Context, input DonorInput) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE donors
		SET name = $2, email = $3, phone = $4, category = $5, donor_type = $6, notes = $7
		WHERE id = $1
	`, input.ID, input.Name, input.Email, input.Phone, input.Category, input.DonorType, input.Notes)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *DonorStore) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM donors WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
