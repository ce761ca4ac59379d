package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"backoffice/internal/db"
	"backoffice/internal/money"
	"backoffice/internal/store"
	"backoffice/internal/websocket"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type BudgetApprovalStore interface {
	CreateBudgetApproval(ctx context.Context, tx store.Execer, input store.BudgetApprovalInput) error
	GetBudgetApprovalForUpdate(ctx context.Context, tx store.Getter, id string) (store.BudgetApproval, error)
	DecideBudgetPending(ctx context.Context, tx store.Execer, id, status, approvedBy, comments string) (int64, error)
}

// BudgetService is the ledger-affecting approval workflow: approving a
// budget request debits the activity's program area and the main account.
type BudgetService struct {
	txRunner   db.TxRunner
	approvals  BudgetApprovalStore
	activities ActivityStore
	ledger     LedgerStore
	hub        LedgerHub
	logger     *zap.Logger
}

func NewBudgetService(txRunner db.TxRunner, approvals BudgetApprovalStore, activities ActivityStore, ledger LedgerStore, hub LedgerHub, logger *zap.Logger) *BudgetService {
	return &BudgetService{
		txRunner:   txRunner,
		approvals:  approvals,
		activities: activities,
		ledger:     ledger,
		hub:        hub,
		logger:     logger,
	}
}

// Create opens a pending budget approval labeled "activity (project)".
func (s *BudgetService) Create(ctx context.Context, activityID string, amountMinor int64, requestedBy string, comments *string) (string, error) {
	if amountMinor <= 0 {
		return "", ErrInvalidAmount
	}
	approvalID := uuid.NewString()
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		joined, err := s.activities.GetWithProject(ctx, tx, activityID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return s.approvals.CreateBudgetApproval(ctx, tx, store.BudgetApprovalInput{
			ID:              approvalID,
			ActivityID:      activityID,
			ActivityName:    fmt.Sprintf("%s (%s)", joined.ActivityName, joined.ProjectName),
			RequestedAmount: amountMinor,
			RequestedBy:     requestedBy,
			Comments:        comments,
		})
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("budget approval created",
		zap.String("approval_id", approvalID),
		zap.String("activity_id", activityID),
		zap.Int64("requested_minor", amountMinor),
	)
	return approvalID, nil
}

// Decide resolves a pending budget approval. On approval the program area
// named by the activity's funding source and the main account are both
// debited; the balance check happens before any mutation, and the three
// writes commit or roll back together.
func (s *BudgetService) Decide(ctx context.Context, id, decision, approvedBy, comments string) error {
	if decision != "approved" && decision != "rejected" {
		return ErrInvalidDecision
	}
	var areaName string
	var areaBalance, mainBalance int64
	approved := decision == "approved"
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		approval, err := s.approvals.GetBudgetApprovalForUpdate(ctx, tx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if approval.Status != "pending" {
			return ErrAlreadyProcessed
		}
		if approved {
			joined, err := s.activities.GetWithProject(ctx, tx, approval.ActivityID)
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
			area, err := s.ledger.GetProgramAreaForUpdate(ctx, tx, joined.FundingSource)
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
			if area.Balance < approval.RequestedAmount {
				return ErrInsufficientFunds
			}
			areaName = area.Name
			areaBalance, err = s.ledger.AdjustProgramArea(ctx, tx, area.Name, -approval.RequestedAmount)
			if err != nil {
				return err
			}
			mainBalance, err = s.ledger.AdjustBankAccount(ctx, tx, MainAccountName, -approval.RequestedAmount)
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
		}
		rows, err := s.approvals.DecideBudgetPending(ctx, tx, id, decision, approvedBy, comments)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrAlreadyProcessed
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("budget approval decided",
		zap.String("approval_id", id),
		zap.String("decision", decision),
		zap.String("approved_by", approvedBy),
	)
	if approved {
		s.hub.BroadcastLedger(websocket.LedgerUpdate{
			AccountType: "program_area",
			Name:        areaName,
			Balance:     money.FormatMinor(areaBalance),
		})
		s.hub.BroadcastLedger(websocket.LedgerUpdate{
			AccountType: "bank_account",
			Name:        MainAccountName,
			Balance:     money.FormatMinor(mainBalance),
		})
	}
	return nil
}
