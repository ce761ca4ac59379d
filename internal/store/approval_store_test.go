package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTime() time.Time {
	return time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
}

func TestDecideActivityPendingReturnsActivityID(t *testing.T) {
	database, mock := newMockDB(t)
	store := NewApprovalStore(database)

	mock.ExpectQuery("UPDATE activity_approvals").
		WithArgs("ap-1", "approved", "bob", "fine").
		WillReturnRows(sqlmock.NewRows([]string{"activity_id"}).AddRow("act-1"))

	activityID, err := store.DecideActivityPending(context.Background(), database, "ap-1", "approved", "bob", "fine")
	require.NoError(t, err)
	assert.Equal(t, "act-1", activityID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecideActivityPendingAlreadyDecided(t *testing.T) {
	database, mock := newMockDB(t)
	store := NewApprovalStore(database)

	mock.ExpectQuery("UPDATE activity_approvals").
		WithArgs("ap-1", "approved", "bob", "").
		WillReturnRows(sqlmock.NewRows([]string{"activity_id"}))

	_, err := store.DecideActivityPending(context.Background(), database, "ap-1", "approved", "bob", "")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecideBudgetPendingRowsAffected(t *testing.T) {
	database, mock := newMockDB(t)
	store := NewApprovalStore(database)

	mock.ExpectExec("UPDATE budget_approvals").
		WithArgs("bp-1", "rejected", "bob", "no").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := store.DecideBudgetPending(context.Background(), database, "bp-1", "rejected", "bob", "no")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecideBudgetPendingZeroRowsWhenNotPending(t *testing.T) {
	database, mock := newMockDB(t)
	store := NewApprovalStore(database)

	mock.ExpectExec("UPDATE budget_approvals").
		WithArgs("bp-1", "approved", "bob", "").
		WillReturnResult(sqlmock.NewResult(0, 0))

	rows, err := store.DecideBudgetPending(context.Background(), database, "bp-1", "approved", "bob", "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertActivityPendingResetsDecision(t *testing.T) {
	database, mock := newMockDB(t)
	store := NewApprovalStore(database)

	mock.ExpectExec("INSERT INTO activity_approvals").
		WithArgs("ap-2", "act-1", int64(7500), "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.UpsertActivityPending(context.Background(), database, "ap-2", "act-1", 7500, "alice")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
