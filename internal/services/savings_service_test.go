package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"backoffice/internal/store"

	"go.uber.org/zap"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newSavingsFixture(goal store.SavingsGoal, now time.Time) (*SavingsService, *stubSavings) {
	savings := &stubSavings{goal: goal, hasGoal: true}
	svc := NewSavingsService(fakeTxRunner{}, savings, zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc, savings
}

func TestSavingsProgressOnTrack(t *testing.T) {
	svc, _ := newSavingsFixture(store.SavingsGoal{
		TargetAmount:   1000000,
		CurrentAmount:  300000,
		StartDate:      date(2026, time.January, 1),
		TargetDate:     date(2026, time.December, 27),
		MonthlySavings: 85000,
	}, date(2026, time.April, 1))

	progress, err := svc.Progress(context.Background())
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if progress.ProgressPercent != 30.00 {
		t.Errorf("progress_percent = %v, want 30", progress.ProgressPercent)
	}
	if progress.MonthsRemaining != 9 {
		t.Errorf("months_remaining = %d, want 9", progress.MonthsRemaining)
	}
	if !progress.OnTrack {
		t.Error("expected on_track with 30%% saved at 25%% of the horizon")
	}
	if progress.MonthlySavingsMinor != 85000 {
		t.Errorf("monthly_savings = %d", progress.MonthlySavingsMinor)
	}
}

func TestSavingsProgressBehindSchedule(t *testing.T) {
	svc, _ := newSavingsFixture(store.SavingsGoal{
		TargetAmount:  1000000,
		CurrentAmount: 100000,
		StartDate:     date(2026, time.January, 1),
		TargetDate:    date(2026, time.December, 27),
	}, date(2026, time.July, 1))

	progress, err := svc.Progress(context.Background())
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if progress.OnTrack {
		t.Error("expected off track with 10%% saved at half the horizon")
	}
}

func TestSavingsProgressPastTargetDateClampsMonths(t *testing.T) {
	svc, _ := newSavingsFixture(store.SavingsGoal{
		TargetAmount:  1000,
		CurrentAmount: 1000,
		StartDate:     date(2025, time.January, 1),
		TargetDate:    date(2025, time.June, 1),
	}, date(2026, time.January, 1))

	progress, err := svc.Progress(context.Background())
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if progress.MonthsRemaining != 0 {
		t.Errorf("months_remaining = %d, want 0", progress.MonthsRemaining)
	}
}

func TestRecordDepositIncreasesCurrent(t *testing.T) {
	svc, savings := newSavingsFixture(store.SavingsGoal{TargetAmount: 100000, CurrentAmount: 1000}, date(2026, time.May, 1))

	current, err := svc.RecordTransaction(context.Background(), 500, "deposit", date(2026, time.May, 1), nil)
	if err != nil {
		t.Fatalf("RecordTransaction: %v", err)
	}
	if current != 1500 {
		t.Errorf("current = %d, want 1500", current)
	}
	if len(savings.transactions) != 1 || savings.transactions[0].Type != "deposit" {
		t.Errorf("transactions = %+v", savings.transactions)
	}
}

func TestRecordWithdrawalDecreasesCurrent(t *testing.T) {
	svc, _ := newSavingsFixture(store.SavingsGoal{TargetAmount: 100000, CurrentAmount: 1000}, date(2026, time.May, 1))

	current, err := svc.RecordTransaction(context.Background(), 400, "withdrawal", date(2026, time.May, 2), nil)
	if err != nil {
		t.Fatalf("RecordTransaction: %v", err)
	}
	if current != 600 {
		t.Errorf("current = %d, want 600", current)
	}
}

func TestRecordTransactionRejectsUnknownType(t *testing.T) {
	svc, savings := newSavingsFixture(store.SavingsGoal{TargetAmount: 100000}, date(2026, time.May, 1))

	_, err := svc.RecordTransaction(context.Background(), 100, "transfer", date(2026, time.May, 1), nil)
	if !errors.Is(err, ErrInvalidTransactionType) {
		t.Fatalf("expected ErrInvalidTransactionType, got %v", err)
	}
	if len(savings.transactions) != 0 {
		t.Error("transaction recorded despite invalid type")
	}
}

func TestRecordTransactionRejectsNonPositiveAmount(t *testing.T) {
	svc, _ := newSavingsFixture(store.SavingsGoal{TargetAmount: 100000}, date(2026, time.May, 1))
	if _, err := svc.RecordTransaction(context.Background(), 0, "deposit", date(2026, time.May, 1), nil); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestGoalMissing(t *testing.T) {
	savings := &stubSavings{}
	svc := NewSavingsService(fakeTxRunner{}, savings, zap.NewNop())
	if _, err := svc.Goal(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
