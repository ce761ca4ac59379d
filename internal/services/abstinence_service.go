package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"backoffice/internal/db"
	"backoffice/internal/store"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type AbstinenceStore interface {
	GetTracker(ctx context.Context) (store.AbstinenceTracker, error)
	GetTrackerForUpdate(ctx context.Context, tx store.Getter) (store.AbstinenceTracker, error)
	GetCheckInByDate(ctx context.Context, q store.Getter, date time.Time) (store.AbstinenceCheckIn, error)
	InsertCheckIn(ctx context.Context, tx store.Execer, date time.Time, success bool, notes *string) error
	UpdateTracker(ctx context.Context, tx store.Execer, currentStreak, longestStreak int) error
	ListCheckIns(ctx context.Context) ([]store.AbstinenceCheckIn, error)
	CountSuccessfulCheckIns(ctx context.Context) (int, error)
}

type AbstinenceService struct {
	txRunner   db.TxRunner
	abstinence AbstinenceStore
	logger     *zap.Logger
	now        func() time.Time
}

func NewAbstinenceService(txRunner db.TxRunner, abstinence AbstinenceStore, logger *zap.Logger) *AbstinenceService {
	return &AbstinenceService{
		txRunner:   txRunner,
		abstinence: abstinence,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *AbstinenceService) Tracker(ctx context.Context) (store.AbstinenceTracker, error) {
	tracker, err := s.abstinence.GetTracker(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return store.AbstinenceTracker{}, ErrNotFound
	}
	return tracker, err
}

type AbstinenceProgress struct {
	DaysCompleted    int
	TotalDaysPlanned int
	DaysRemaining    int
	SuccessRate      float64
}

func (s *AbstinenceService) Progress(ctx context.Context) (AbstinenceProgress, error) {
	tracker, err := s.Tracker(ctx)
	if err != nil {
		return AbstinenceProgress{}, err
	}
	totalSuccess, err := s.abstinence.CountSuccessfulCheckIns(ctx)
	if err != nil {
		return AbstinenceProgress{}, err
	}
	daysRemaining := daysBetween(s.now(), tracker.EndDate)
	if daysRemaining < 0 {
		daysRemaining = 0
	}
	successRate := 0.0
	if tracker.TotalDays > 0 {
		successRate = round2(float64(totalSuccess) / float64(tracker.TotalDays) * 100)
	}
	return AbstinenceProgress{
		DaysCompleted:    tracker.TotalDays,
		TotalDaysPlanned: daysBetween(tracker.StartDate, tracker.EndDate),
		DaysRemaining:    daysRemaining,
		SuccessRate:      successRate,
	}, nil
}

func (s *AbstinenceService) ListCheckIns(ctx context.Context) ([]store.AbstinenceCheckIn, error) {
	return s.abstinence.ListCheckIns(ctx)
}

// CheckIn records one day. A successful day extends the streak only when the
// previous day was also a success; a failed day resets it to zero. One
// check-in per date.
func (s *AbstinenceService) CheckIn(ctx context.Context, date time.Time, success bool, notes *string) error {
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := s.abstinence.GetCheckInByDate(ctx, tx, date); err == nil {
			return ErrDuplicateCheckIn
		} else if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		tracker, err := s.abstinence.GetTrackerForUpdate(ctx, tx)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := s.abstinence.InsertCheckIn(ctx, tx, date, success, notes); err != nil {
			return err
		}
		currentStreak := 0
		longestStreak := tracker.LongestStreak
		if success {
			currentStreak = 1
			prev, err := s.abstinence.GetCheckInByDate(ctx, tx, date.AddDate(0, 0, -1))
			if err == nil && prev.Success {
				currentStreak = tracker.CurrentStreak + 1
			} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			if currentStreak > longestStreak {
				longestStreak = currentStreak
			}
		}
		return s.abstinence.UpdateTracker(ctx, tx, currentStreak, longestStreak)
	})
	if err != nil {
		return err
	}
	s.logger.Info("check-in recorded", zap.String("date", date.Format("2006-01-02")), zap.Bool("success", success))
	return nil
}
