package services

import (
	"context"
	"database/sql"
	"errors"

	"backoffice/internal/db"
	"backoffice/internal/store"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type ActivityStore interface {
	Create(ctx context.Context, tx store.Execer, id, projectID, name, description string, budget int64, status string) error
	Get(ctx context.Context, id string) (store.Activity, error)
	UpdateStatus(ctx context.Context, tx store.Execer, id, status string) error
	GetWithProject(ctx context.Context, q store.Getter, id string) (store.ActivityProject, error)
}

type ActivityApprovalStore interface {
	UpsertActivityPending(ctx context.Context, tx store.Execer, id, activityID string, requestedAmount int64, requestedBy string) error
	DecideActivityPending(ctx context.Context, tx store.Getter, id, status, approvedBy, comments string) (string, error)
	GetActivityApproval(ctx context.Context, id string) (store.ActivityApproval, error)
}

type ProjectStore interface {
	Get(ctx context.Context, id string) (store.Project, error)
}

// ApprovalService owns the activity funding cycle: activity creation with an
// automatic pending approval, decisions, and approval re-requests. Approval
// decisions here never touch the ledger; only budget approvals do.
type ApprovalService struct {
	txRunner   db.TxRunner
	activities ActivityStore
	approvals  ActivityApprovalStore
	projects   ProjectStore
	logger     *zap.Logger
}

func NewApprovalService(txRunner db.TxRunner, activities ActivityStore, approvals ActivityApprovalStore, projects ProjectStore, logger *zap.Logger) *ApprovalService {
	return &ApprovalService{
		txRunner:   txRunner,
		activities: activities,
		approvals:  approvals,
		projects:   projects,
		logger:     logger,
	}
}

type CreateActivityRequest struct {
	ProjectID   string
	Name        string
	Description string
	BudgetMinor int64
	RequestedBy string
}

// CreateActivity inserts a pending activity and its pending approval row in
// one transaction, requested_amount mirroring the activity budget.
func (s *ApprovalService) CreateActivity(ctx context.Context, req CreateActivityRequest) (string, error) {
	if req.BudgetMinor < 0 {
		return "", ErrInvalidAmount
	}
	if _, err := s.projects.Get(ctx, req.ProjectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	activityID := uuid.NewString()
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.activities.Create(ctx, tx, activityID, req.ProjectID, req.Name, req.Description, req.BudgetMinor, "pending"); err != nil {
			return err
		}
		return s.approvals.UpsertActivityPending(ctx, tx, uuid.NewString(), activityID, req.BudgetMinor, req.RequestedBy)
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("activity created", zap.String("activity_id", activityID), zap.String("project_id", req.ProjectID))
	return activityID, nil
}

// Decide resolves a pending activity approval. The conditional update means
// a second decision on the same approval fails instead of silently
// overwriting the first.
func (s *ApprovalService) Decide(ctx context.Context, approvalID, decision, approvedBy, comments string) error {
	if decision != "approved" && decision != "rejected" {
		return ErrInvalidDecision
	}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		activityID, err := s.approvals.DecideActivityPending(ctx, tx, approvalID, decision, approvedBy, comments)
		if errors.Is(err, sql.ErrNoRows) {
			if _, getErr := s.approvals.GetActivityApproval(ctx, approvalID); getErr != nil {
				if errors.Is(getErr, sql.ErrNoRows) {
					return ErrNotFound
				}
				return getErr
			}
			return ErrAlreadyProcessed
		}
		if err != nil {
			return err
		}
		return s.activities.UpdateStatus(ctx, tx, activityID, decision)
	})
	if err != nil {
		return err
	}
	s.logger.Info("activity approval decided",
		zap.String("approval_id", approvalID),
		zap.String("decision", decision),
		zap.String("approved_by", approvedBy),
	)
	return nil
}

// Request re-opens the funding cycle for an activity: the approval row is
// reset to pending and the activity drops back to pending status, even when
// it had already been decided.
func (s *ApprovalService) Request(ctx context.Context, activityID, requestedBy string) error {
	activity, err := s.activities.Get(ctx, activityID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.approvals.UpsertActivityPending(ctx, tx, uuid.NewString(), activityID, activity.Budget, requestedBy); err != nil {
			return err
		}
		return s.activities.UpdateStatus(ctx, tx, activityID, "pending")
	})
	if err != nil {
		return err
	}
	s.logger.Info("activity approval requested", zap.String("activity_id", activityID), zap.String("requested_by", requestedBy))
	return nil
}
