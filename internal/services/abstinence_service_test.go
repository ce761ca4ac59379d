package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"backoffice/internal/store"

	"go.uber.org/zap"
)

func newAbstinenceFixture(now time.Time) (*AbstinenceService, *stubAbstinence) {
	abstinence := newStubAbstinence(store.AbstinenceTracker{
		StartDate: date(2026, time.January, 1),
		EndDate:   date(2026, time.December, 27),
	})
	svc := NewAbstinenceService(fakeTxRunner{}, abstinence, zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc, abstinence
}

func TestCheckInFirstSuccessStartsStreak(t *testing.T) {
	svc, abstinence := newAbstinenceFixture(date(2026, time.March, 1))

	if err := svc.CheckIn(context.Background(), date(2026, time.March, 1), true, nil); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if abstinence.tracker.CurrentStreak != 1 {
		t.Errorf("current_streak = %d, want 1", abstinence.tracker.CurrentStreak)
	}
	if abstinence.tracker.LongestStreak != 1 {
		t.Errorf("longest_streak = %d, want 1", abstinence.tracker.LongestStreak)
	}
	if abstinence.tracker.TotalDays != 1 {
		t.Errorf("total_days = %d, want 1", abstinence.tracker.TotalDays)
	}
}

func TestCheckInConsecutiveSuccessesExtendStreak(t *testing.T) {
	svc, abstinence := newAbstinenceFixture(date(2026, time.March, 3))

	for day := 1; day <= 3; day++ {
		if err := svc.CheckIn(context.Background(), date(2026, time.March, day), true, nil); err != nil {
			t.Fatalf("CheckIn day %d: %v", day, err)
		}
	}
	if abstinence.tracker.CurrentStreak != 3 {
		t.Errorf("current_streak = %d, want 3", abstinence.tracker.CurrentStreak)
	}
	if abstinence.tracker.LongestStreak != 3 {
		t.Errorf("longest_streak = %d, want 3", abstinence.tracker.LongestStreak)
	}
}

func TestCheckInGapResetsStreakToOne(t *testing.T) {
	svc, abstinence := newAbstinenceFixture(date(2026, time.March, 10))

	if err := svc.CheckIn(context.Background(), date(2026, time.March, 1), true, nil); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	// No check-in on March 2; a success on March 3 starts over.
	if err := svc.CheckIn(context.Background(), date(2026, time.March, 3), true, nil); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if abstinence.tracker.CurrentStreak != 1 {
		t.Errorf("current_streak = %d, want 1", abstinence.tracker.CurrentStreak)
	}
}

func TestCheckInFailureResetsStreakToZero(t *testing.T) {
	svc, abstinence := newAbstinenceFixture(date(2026, time.March, 5))

	for day := 1; day <= 2; day++ {
		if err := svc.CheckIn(context.Background(), date(2026, time.March, day), true, nil); err != nil {
			t.Fatalf("CheckIn day %d: %v", day, err)
		}
	}
	if err := svc.CheckIn(context.Background(), date(2026, time.March, 3), false, nil); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if abstinence.tracker.CurrentStreak != 0 {
		t.Errorf("current_streak = %d, want 0", abstinence.tracker.CurrentStreak)
	}
	if abstinence.tracker.LongestStreak != 2 {
		t.Errorf("longest_streak = %d, want 2", abstinence.tracker.LongestStreak)
	}
}

func TestCheckInDuplicateDate(t *testing.T) {
	svc, _ := newAbstinenceFixture(date(2026, time.March, 5))

	if err := svc.CheckIn(context.Background(), date(2026, time.March, 1), true, nil); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	err := svc.CheckIn(context.Background(), date(2026, time.March, 1), false, nil)
	if !errors.Is(err, ErrDuplicateCheckIn) {
		t.Fatalf("expected ErrDuplicateCheckIn, got %v", err)
	}
}

func TestAbstinenceProgressSuccessRate(t *testing.T) {
	svc, _ := newAbstinenceFixture(date(2026, time.March, 4))

	if err := svc.CheckIn(context.Background(), date(2026, time.March, 1), true, nil); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if err := svc.CheckIn(context.Background(), date(2026, time.March, 2), true, nil); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if err := svc.CheckIn(context.Background(), date(2026, time.March, 3), false, nil); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	progress, err := svc.Progress(context.Background())
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if progress.DaysCompleted != 3 {
		t.Errorf("days_completed = %d, want 3", progress.DaysCompleted)
	}
	if progress.SuccessRate != 66.67 {
		t.Errorf("success_rate = %v, want 66.67", progress.SuccessRate)
	}
	if progress.TotalDaysPlanned != 360 {
		t.Errorf("total_days_planned = %d, want 360", progress.TotalDaysPlanned)
	}
}

func TestTrackerMissing(t *testing.T) {
	abstinence := &stubAbstinence{checkins: map[string]store.AbstinenceCheckIn{}}
	svc := NewAbstinenceService(fakeTxRunner{}, abstinence, zap.NewNop())
	if _, err := svc.Tracker(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
