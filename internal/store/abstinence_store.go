package store

import (
	"context"
	"time"
)

type AbstinenceStore struct {
	db DB
}

type AbstinenceTracker struct {
	ID            int64     `db:"id" json:"id"`
	StartDate     time.Time `db:"start_date" json:"start_date"`
	EndDate       time.Time `db:"end_date" json:"end_date"`
	CurrentStreak int       `db:"current_streak" json:"current_streak"`
	LongestStreak int       `db:"longest_streak" json:"longest_streak"`
	TotalDays     int       `db:"total_days" json:"total_days"`
}

type AbstinenceCheckIn struct {
	ID      int64     `db:"id" json:"id"`
	Date    time.Time `db:"date" json:"date"`
	Success bool      `db:"success" json:"success"`
	Notes   *string   `db:"notes" json:"notes,omitempty"`
}

func NewAbstinenceStore(db DB) *AbstinenceStore {
	return &AbstinenceStore{db: db}
}

func (s *AbstinenceStore) GetTracker(ctx context.Context) (AbstinenceTracker, error) {
	var row AbstinenceTracker
	err := s.db.GetContext(ctx, &row, `
		SELECT id, start_date, end_date, current_streak, longest_streak, total_days
		FROM abstinence_tracker
		LIMIT 1
	`)
	return row, err
}

func (s *AbstinenceStore) GetTrackerForUpdate(ctx context.Context, tx Getter) (AbstinenceTracker, error) {
	var row AbstinenceTracker
	err := tx.GetContext(ctx, &row, `
		SELECT id, start_date, end_date, current_streak, longest_streak, total_days
		FROM abstinence_tracker
		LIMIT 1
		FOR UPDATE
	`)
	return row, err
}

func (s *AbstinenceStore) GetCheckInByDate(ctx context.Context, q Getter, date time.Time) (AbstinenceCheckIn, error) {
	var row AbstinenceCheckIn
	err := q.GetContext(ctx, &row, `
		SELECT id, date, success, notes
		FROM abstinence_checkins
		WHERE date = $1
	`, date)
	return row, err
}

func (s *AbstinenceStore) InsertCheckIn(ctx context.Context, tx Execer, date time.Time, success bool, notes *string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO abstinence_checkins (date, success, notes)
		VALUES ($1, $2, $3)
	`, date, success, notes)
	return err
}

func (s *AbstinenceStore) UpdateTracker(ctx context.Context, tx Execer, currentStreak, longestStreak int) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE abstinence_tracker
		SET current_streak = $1,
		    longest_streak = $2,
		    total_days = total_days + 1
	`, currentStreak, longestStreak)
	return err
}

func (s *AbstinenceStore) ListCheckIns(ctx context.Context) ([]AbstinenceCheckIn, error) {
	var rows []AbstinenceCheckIn
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, date, success, notes
		FROM abstinence_checkins
		ORDER BY date DESC
	`)
	return rows, err
}

func (s *AbstinenceStore) CountSuccessfulCheckIns(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM abstinence_checkins WHERE success = TRUE
	`)
	return count, err
}
