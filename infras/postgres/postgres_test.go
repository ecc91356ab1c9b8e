package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kingdom/infras/postgres"
)

func newConnection(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mockDB.Close()
	})

	db := sqlx.NewDb(mockDB, "postgres")

	return &postgres.Connection{Read: db, Write: db}, mock
}

func TestConnection_WithTx(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		conn, mock := newConnection(t)

		mock.ExpectBegin()
		mock.ExpectCommit()

		err := conn.WithTx(context.Background(), func(_ context.Context, _ *sqlx.Tx) error {
			return nil
		})

		require.NoError(t, err)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		conn, mock := newConnection(t)

		mock.ExpectBegin()
		mock.ExpectRollback()

		errBooked := errors.New("room is already booked")

		err := conn.WithTx(context.Background(), func(_ context.Context, _ *sqlx.Tx) error {
			return errBooked
		})

		require.ErrorIs(t, err, errBooked)
	})

	t.Run("rolls back and re-panics", func(t *testing.T) {
		conn, mock := newConnection(t)

		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.PanicsWithValue(t, "boom", func() {
			_ = conn.WithTx(context.Background(), func(_ context.Context, _ *sqlx.Tx) error {
				panic("boom")
			})
		})
	})

	t.Run("begin failure", func(t *testing.T) {
		conn, mock := newConnection(t)

		mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

		err := conn.WithTx(context.Background(), func(_ context.Context, _ *sqlx.Tx) error {
			t.Fatal("fn must not run")

			return nil
		})

		require.ErrorContains(t, err, "failed to begin transaction")
	})
}
