package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"backoffice/internal/db"
	"backoffice/internal/money"
	"backoffice/internal/store"
	"backoffice/internal/websocket"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// MainAccountName is the seeded bank account every donation credits and
// every approved budget debits.
const MainAccountName = "Main Account"

type DonationStore interface {
	Create(ctx context.Context, tx store.Execer, input store.DonationInput) error
	GetForUpdate(ctx context.Context, tx store.Getter, id string) (store.Donation, error)
	Delete(ctx context.Context, tx store.Execer, id string) error
}

type LedgerStore interface {
	AdjustBankAccount(ctx context.Context, tx store.Getter, name string, delta int64) (int64, error)
	AdjustProgramArea(ctx context.Context, tx store.Getter, name string, delta int64) (int64, error)
	GetProgramAreaForUpdate(ctx context.Context, tx store.Getter, name string) (store.ProgramArea, error)
}

type NotificationStore interface {
	Append(ctx context.Context, tx store.Execer, id, message, entityType, entityID string) error
}

type LedgerHub interface {
	BroadcastLedger(update websocket.LedgerUpdate)
}

type DonationService struct {
	txRunner      db.TxRunner
	donations     DonationStore
	ledger        LedgerStore
	notifications NotificationStore
	hub           LedgerHub
	logger        *zap.Logger
}

func NewDonationService(txRunner db.TxRunner, donations DonationStore, ledger LedgerStore, notifications NotificationStore, hub LedgerHub, logger *zap.Logger) *DonationService {
	return &DonationService{
		txRunner:      txRunner,
		donations:     donations,
		ledger:        ledger,
		notifications: notifications,
		hub:           hub,
		logger:        logger,
	}
}

type RecordDonationRequest struct {
	DonorID       *string
	AmountMinor   int64
	PaymentMethod string
	DonationDate  time.Time
	Project       string
}

// Record inserts a completed donation and credits the program area (when
// set) and the main account inside one transaction. A missing program area
// or main account aborts the whole operation.
func (s *DonationService) Record(ctx context.Context, req RecordDonationRequest) (string, error) {
	if req.AmountMinor <= 0 {
		return "", ErrInvalidAmount
	}
	donationID := uuid.NewString()
	hasProject := req.Project != ""
	var projectBalance, mainBalance int64
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		var project *string
		if hasProject {
			project = &req.Project
		}
		if err := s.donations.Create(ctx, tx, store.DonationInput{
			ID:            donationID,
			DonorID:       req.DonorID,
			Amount:        req.AmountMinor,
			PaymentMethod: req.PaymentMethod,
			DonationDate:  req.DonationDate,
			Project:       project,
			Status:        "completed",
		}); err != nil {
			return err
		}
		if hasProject {
			balance, err := s.ledger.AdjustProgramArea(ctx, tx, req.Project, req.AmountMinor)
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
			projectBalance = balance
		}
		balance, err := s.ledger.AdjustBankAccount(ctx, tx, MainAccountName, req.AmountMinor)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		mainBalance = balance
		return nil
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("donation recorded",
		zap.String("donation_id", donationID),
		zap.Int64("amount_minor", req.AmountMinor),
		zap.String("project", req.Project),
	)
	if hasProject {
		s.hub.BroadcastLedger(websocket.LedgerUpdate{
			AccountType: "program_area",
			Name:        req.Project,
			Balance:     money.FormatMinor(projectBalance),
		})
	}
	s.hub.BroadcastLedger(websocket.LedgerUpdate{
		AccountType: "bank_account",
		Name:        MainAccountName,
		Balance:     money.FormatMinor(mainBalance),
	})
	return donationID, nil
}

// Delete removes a donation and, when it had been completed, reverses both
// ledger credits in the same transaction. The deletion is recorded in the
// append-only notification log.
func (s *DonationService) Delete(ctx context.Context, id string) error {
	var reversedProject string
	var projectBalance, mainBalance int64
	var reversed bool
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		reversed = false
		donation, err := s.donations.GetForUpdate(ctx, tx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if donation.Status != "pending" && donation.Status != "completed" {
			return ErrInvalidState
		}
		if err := s.donations.Delete(ctx, tx, id); err != nil {
			return err
		}
		if donation.Status == "completed" {
			reversed = true
			if donation.Project != nil {
				reversedProject = *donation.Project
				balance, err := s.ledger.AdjustProgramArea(ctx, tx, *donation.Project, -donation.Amount)
				if errors.Is(err, sql.ErrNoRows) {
					return ErrNotFound
				}
				if err != nil {
					return err
				}
				projectBalance = balance
			}
			balance, err := s.ledger.AdjustBankAccount(ctx, tx, MainAccountName, -donation.Amount)
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
			mainBalance = balance
		}
		message := fmt.Sprintf("donation %s deleted (amount %s)", id, money.FormatMinor(donation.Amount))
		return s.notifications.Append(ctx, tx, uuid.NewString(), message, "donation", id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("donation deleted", zap.String("donation_id", id), zap.Bool("reversed", reversed))
	if reversed {
		if reversedProject != "" {
			s.hub.BroadcastLedger(websocket.LedgerUpdate{
				AccountType: "program_area",
				Name:        reversedProject,
				Balance:     money.FormatMinor(projectBalance),
			})
		}
		s.hub.BroadcastLedger(websocket.LedgerUpdate{
			AccountType: "bank_account",
			Name:        MainAccountName,
			Balance:     money.FormatMinor(mainBalance),
		})
	}
	return nil
}
