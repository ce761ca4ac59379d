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

type PaymentStore interface {
	Create(ctx context.Context, input store.PaymentInput) error
	Get(ctx context.Context, id string) (store.Payment, error)
	DecidePending(ctx context.Context, tx store.Execer, id, status, processedBy, remarks string) (int64, error)
}

type EmployeeStore interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// PaymentService is the payroll request workflow. Payment amounts are
// tracked but deliberately never reflected in ledger balances.
type PaymentService struct {
	txRunner  db.TxRunner
	payments  PaymentStore
	employees EmployeeStore
	logger    *zap.Logger
}

func NewPaymentService(txRunner db.TxRunner, payments PaymentStore, employees EmployeeStore, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		txRunner:  txRunner,
		payments:  payments,
		employees: employees,
		logger:    logger,
	}
}

type RequestPaymentRequest struct {
	EmployeeID    string
	AmountMinor   int64
	PaymentPeriod string
	PaymentMethod *string
	Description   *string
}

func (s *PaymentService) Request(ctx context.Context, req RequestPaymentRequest) (string, error) {
	if req.AmountMinor <= 0 {
		return "", ErrInvalidAmount
	}
	exists, err := s.employees.Exists(ctx, req.EmployeeID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrNotFound
	}
	paymentID := uuid.NewString()
	if err := s.payments.Create(ctx, store.PaymentInput{
		ID:            paymentID,
		EmployeeID:    req.EmployeeID,
		Amount:        req.AmountMinor,
		PaymentPeriod: req.PaymentPeriod,
		PaymentMethod: req.PaymentMethod,
		Description:   req.Description,
	}); err != nil {
		return "", err
	}
	s.logger.Info("payment requested",
		zap.String("payment_id", paymentID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("period", req.PaymentPeriod),
	)
	return paymentID, nil
}

// Approve resolves a pending payment. Zero rows from the conditional update
// means the payment is either gone or already decided; a follow-up read
// tells the two apart.
func (s *PaymentService) Approve(ctx context.Context, id string, approved bool, processedBy, remarks string) error {
	status := "rejected"
	if approved {
		status = "approved"
	}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		rows, err := s.payments.DecidePending(ctx, tx, id, status, processedBy, remarks)
		if err != nil {
			return err
		}
		if rows == 0 {
			if _, getErr := s.payments.Get(ctx, id); getErr != nil {
				if errors.Is(getErr, sql.ErrNoRows) {
					return ErrNotFound
				}
				return getErr
			}
			return ErrInvalidState
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("payment decided", zap.String("payment_id", id), zap.String("status", status))
	return nil
}
