package services

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"backoffice/internal/db"
	"backoffice/internal/store"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type SavingsStore interface {
	GetGoal(ctx context.Context) (store.SavingsGoal, error)
	AdjustGoalAmount(ctx context.Context, tx store.Getter, delta int64) (int64, error)
	InsertTransaction(ctx context.Context, tx store.Execer, amount int64, txType string, date time.Time, description *string) error
	ListTransactions(ctx context.Context) ([]store.SavingsTransaction, error)
}

type SavingsService struct {
	txRunner db.TxRunner
	savings  SavingsStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewSavingsService(txRunner db.TxRunner, savings SavingsStore, logger *zap.Logger) *SavingsService {
	return &SavingsService{
		txRunner: txRunner,
		savings:  savings,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *SavingsService) Goal(ctx context.Context) (store.SavingsGoal, error) {
	goal, err := s.savings.GetGoal(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return store.SavingsGoal{}, ErrNotFound
	}
	return goal, err
}

type SavingsProgress struct {
	ProgressPercent     float64
	MonthsRemaining     int
	MonthlySavingsMinor int64
	OnTrack             bool
}

// Progress compares actual saved share against the share of elapsed time.
func (s *SavingsService) Progress(ctx context.Context) (SavingsProgress, error) {
	goal, err := s.Goal(ctx)
	if err != nil {
		return SavingsProgress{}, err
	}
	today := s.now()
	totalDays := daysBetween(goal.StartDate, goal.TargetDate)
	daysPassed := daysBetween(goal.StartDate, today)
	monthsRemaining := daysBetween(today, goal.TargetDate) / 30
	if monthsRemaining < 0 {
		monthsRemaining = 0
	}
	expected := 0.0
	if totalDays > 0 {
		expected = float64(daysPassed) / float64(totalDays)
	}
	actual := 0.0
	if goal.TargetAmount > 0 {
		actual = float64(goal.CurrentAmount) / float64(goal.TargetAmount)
	}
	return SavingsProgress{
		ProgressPercent:     round2(actual * 100),
		MonthsRemaining:     monthsRemaining,
		MonthlySavingsMinor: goal.MonthlySavings,
		OnTrack:             actual >= expected,
	}, nil
}

// RecordTransaction applies a deposit or withdrawal to the goal's running
// total and appends the transaction row, both in one transaction.
func (s *SavingsService) RecordTransaction(ctx context.Context, amountMinor int64, txType string, date time.Time, description *string) (int64, error) {
	if amountMinor <= 0 {
		return 0, ErrInvalidAmount
	}
	var delta int64
	switch txType {
	case "deposit":
		delta = amountMinor
	case "withdrawal":
		delta = -amountMinor
	default:
		return 0, ErrInvalidTransactionType
	}
	var current int64
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		updated, err := s.savings.AdjustGoalAmount(ctx, tx, delta)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		current = updated
		return s.savings.InsertTransaction(ctx, tx, amountMinor, txType, date, description)
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("savings transaction recorded",
		zap.String("type", txType),
		zap.Int64("amount_minor", amountMinor),
		zap.Int64("current_minor", current),
	)
	return current, nil
}

func (s *SavingsService) ListTransactions(ctx context.Context) ([]store.SavingsTransaction, error) {
	return s.savings.ListTransactions(ctx)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
