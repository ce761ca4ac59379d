package store

import (
	"context"
	"time"
)

// ApprovalStore holds both approval tables. Activity approvals gate an
// activity's status only; budget approvals additionally drive ledger debits.
// Every decide goes through a conditional UPDATE on status='pending' so that
// a second decision can never slip through.
type ApprovalStore struct {
	db DB
}

type ActivityApproval struct {
	ID               string     `db:"id" json:"id"`
	ActivityID       string     `db:"activity_id" json:"activity_id"`
	RequestedAmount  int64      `db:"requested_amount" json:"requested_amount"`
	Status           string     `db:"status" json:"status"`
	RequestedBy      string     `db:"requested_by" json:"requested_by"`
	ApprovedBy       *string    `db:"approved_by" json:"approved_by,omitempty"`
	ResponseComments *string    `db:"response_comments" json:"response_comments,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	ApprovedAt       *time.Time `db:"approved_at" json:"approved_at,omitempty"`
}

type BudgetApproval struct {
	ID               string     `db:"id" json:"id"`
	ActivityID       string     `db:"activity_id" json:"activity_id"`
	ActivityName     string     `db:"activity_name" json:"activity_name"`
	RequestedAmount  int64      `db:"requested_amount" json:"requested_amount"`
	Status           string     `db:"status" json:"status"`
	RequestedBy      string     `db:"requested_by" json:"requested_by"`
	ApprovedBy       *string    `db:"approved_by" json:"approved_by,omitempty"`
	ResponseComments *string    `db:"response_comments" json:"response_comments,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	ApprovedAt       *time.Time `db:"approved_at" json:"approved_at,omitempty"`
}

func NewApprovalStore(db DB) *ApprovalStore {
	return &ApprovalStore{db: db}
}

// UpsertActivityPending creates the approval row for an activity, or resets
// an existing one back to pending when approval is re-requested.
func (s *ApprovalStore) UpsertActivityPending(ctx context.Context, tx Execer, id, activityID string, requestedAmount int64, requestedBy string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO activity_approvals (id, activity_id, requested_amount, status, requested_by)
		VALUES ($1, $2, $3, 'pending', $4)
		ON CONFLICT (activity_id) DO UPDATE
		SET status = 'pending',
		    requested_amount = EXCLUDED.requested_amount,
		    requested_by = EXCLUDED.requested_by,
		    approved_by = NULL,
		    response_comments = NULL,
		    approved_at = NULL
	`, id, activityID, requestedAmount, requestedBy)
	return err
}

// DecideActivityPending flips a pending approval to the given status and
// returns the linked activity ID. sql.ErrNoRows means the row is missing or
// no longer pending.
func (s *ApprovalStore) DecideActivityPending(ctx context.Context, tx Getter, id, status, approvedBy, comments string) (string, error) {
	var activityID string
	err := tx.GetContext(ctx, &activityID, `
		UPDATE activity_approvals
		SET status = $2, approved_by = $3, response_comments = $4, approved_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING activity_id
	`, id, status, approvedBy, comments)
	return activityID, err
}

func (s *ApprovalStore) GetActivityApproval(ctx context.Context, id string) (ActivityApproval, error) {
	var row ActivityApproval
	err := s.db.GetContext(ctx, &row, `
		SELECT id, activity_id, requested_amount, status, requested_by, approved_by, response_comments, created_at, approved_at
		FROM activity_approvals
		WHERE id = $1
	`, id)
	return row, err
}

func (s *ApprovalStore) ListActivityApprovals(ctx context.Context) ([]ActivityApproval, error) {
	var rows []ActivityApproval
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, activity_id, requested_amount, status, requested_by, approved_by, response_comments, created_at, approved_at
		FROM activity_approvals
		ORDER BY created_at DESC
	`)
	return rows, err
}

type BudgetApprovalInput struct {
	ID              string
	ActivityID      string
	ActivityName    string
	RequestedAmount int64
	RequestedBy     string
	Comments        *string
}

func (s *ApprovalStore) CreateBudgetApproval(ctx context.Context, tx Execer, input BudgetApprovalInput) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO budget_approvals (id, activity_id, activity_name, requested_amount, status, requested_by, response_comments)
		VALUES ($1, $2, $3, $4, 'pending', $5, $6)
	`, input.ID, input.ActivityID, input.ActivityName, input.RequestedAmount, input.RequestedBy, input.Comments)
	return err
}

func (s *ApprovalStore) GetBudgetApprovalForUpdate(ctx context.Context, tx Getter, id string) (BudgetApproval, error) {
	var row BudgetApproval
	err := tx.GetContext(ctx, &row, `
		SELECT id, activity_id, activity_name, requested_amount, status, requested_by, approved_by, response_comments, created_at, approved_at
		FROM budget_approvals
		WHERE id = $1
		FOR UPDATE
	`, id)
	return row, err
}

// DecideBudgetPending returns the number of rows flipped; zero means the
// approval was already processed.
func (s *ApprovalStore) DecideBudgetPending(ctx context.Context, tx Execer, id, status, approvedBy, comments string) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE budget_approvals
		SET status = $2, approved_by = $3, response_comments = $4, approved_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`, id, status, approvedBy, comments)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *ApprovalStore) GetBudgetApproval(ctx context.Context, id string) (BudgetApproval, error) {
	var row BudgetApproval
	err := s.db.GetContext(ctx, &row, `
		SELECT id, activity_id, activity_name, requested_amount, status, requested_by, approved_by, response_comments, created_at, approved_at
		FROM budget_approvals
		WHERE id = $1
	`, id)
	return row, err
}

func (s *ApprovalStore) ListBudgetApprovals(ctx context.Context) ([]BudgetApproval, error) {
	var rows []BudgetApproval
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, activity_id, activity_name, requested_amount, status, requested_by, approved_by, response_comments, created_at, approved_at
		FROM budget_approvals
		ORDER BY created_at DESC
	`)
	return rows, err
}
