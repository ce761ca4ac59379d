package store

import (
	"context"
	"time"
)

type DonationStore struct {
	db DB
}

type Donation struct {
	ID            string    `db:"id" json:"id"`
	DonorID       *string   `db:"donor_id" json:"donor_id,omitempty"`
	Amount        int64     `db:"amount" json:"amount"`
	PaymentMethod string    `db:"payment_method" json:"payment_method"`
	DonationDate  time.Time `db:"donation_date" json:"donation_date"`
	Project       *string   `db:"project" json:"project,omitempty"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type donationWithDonorRow struct {
	Donation
	DonorName *string `db:"donor_name"`
}

type DonationInput struct {
	ID            string
	DonorID       *string
	Amount        int64
	PaymentMethod string
	DonationDate  time.Time
	Project       *string
	Status        string
}

func NewDonationStore(db DB) *DonationStore {
	return &DonationStore{db: db}
}

func (s *DonationStore) Create(ctx context.Context, tx Execer, input DonationInput) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO donations (id, donor_id, amount, payment_method, donation_date, project, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, input.ID, input.DonorID, input.Amount, input.PaymentMethod, input.DonationDate, input.Project, input.Status)
	return err
}

func (s *DonationStore) Get(ctx context.Context, id string) (Donation, error) {
	var row Donation
	err := s.db.GetContext(ctx, &row, `
		SELECT id, donor_id, amount, payment_method, donation_date, project, status, created_at
		FROM donations
		WHERE id = $1
	`, id)
	return row, err
}

func (s *DonationStore) GetForUpdate(ctx context.Context, tx Getter, id string) (Donation, error) {
	var row Donation
	err := tx.GetContext(ctx, &row, `
		SELECT id, donor_id, amount, payment_method, donation_date, project, status, created_at
		FROM donations
		WHERE id = $1
		FOR UPDATE
	`, id)
	return row, err
}

func (s *DonationStore) Delete(ctx context.Context, tx Execer, id string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM donations WHERE id = $1`, id)
	return err
}

func (s *DonationStore) List(ctx context.Context, limit, offset int) ([]map[string]any, error) {
	var rows []donationWithDonorRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT d.id, d.donor_id, d.amount, d.payment_method, d.donation_date, d.project, d.status, d.created_at,
		       dn.name AS donor_name
		FROM donations d
		LEFT JOIN donors dn ON dn.id = d.donor_id
		ORDER BY d.created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	donations := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		donations = append(donations, map[string]any{
			"id":             row.ID,
			"donor_id":       derefStringPtr(row.DonorID),
			"donor_name":     derefStringPtr(row.DonorName),
			"amount":         row.Amount,
			"payment_method": row.PaymentMethod,
			"donation_date":  row.DonationDate,
			"project":        derefStringPtr(row.Project),
			"status":         row.Status,
			"created_at":     row.CreatedAt,
		})
	}
	return donations, nil
}
