package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestAdjustBankAccountReturnsNewBalance(t *testing.T) {
	database, mock := newMockDB(t)
	store := NewLedgerStore(database)

	mock.ExpectQuery("UPDATE bank_accounts").
		WithArgs(int64(2500), "Main Account").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(int64(12500)))

	balance, err := store.AdjustBankAccount(context.Background(), database, "Main Account", 2500)
	require.NoError(t, err)
	assert.Equal(t, int64(12500), balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustBankAccountMissingRow(t *testing.T) {
	database, mock := newMockDB(t)
	store := NewLedgerStore(database)

	mock.ExpectQuery("UPDATE bank_accounts").
		WithArgs(int64(100), "Ghost").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}))

	_, err := store.AdjustBankAccount(context.Background(), database, "Ghost", 100)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustProgramAreaAppliesNegativeDelta(t *testing.T) {
	database, mock := newMockDB(t)
	store := NewLedgerStore(database)

	mock.ExpectQuery("UPDATE program_areas").
		WithArgs(int64(-2000), "Health").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(int64(3000)))

	balance, err := store.AdjustProgramArea(context.Background(), database, "Health", -2000)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProgramAreaForUpdateLocksRow(t *testing.T) {
	database, mock := newMockDB(t)
	store := NewLedgerStore(database)

	mock.ExpectQuery(`(?s)SELECT .+ FROM program_areas.+FOR UPDATE`).
		WithArgs("Health").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "budget", "balance", "created_at"}).
			AddRow("pa-1", "Health", nil, int64(100000), int64(5000), sampleTime()))

	area, err := store.GetProgramAreaForUpdate(context.Background(), database, "Health")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), area.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}
