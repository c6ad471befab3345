package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestWithTransaction_Commit(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := WithTransaction(context.Background(), mock, func(tx pgx.Tx) error {
		_, err := tx.Exec(context.Background(), "INSERT INTO t VALUES (1)")
		return err
	})
	assert.NoError(t, err)
}

func TestWithTransaction_RollbackOnError(t *testing.T) {
	mock := newMock(t)
	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := WithTransaction(context.Background(), mock, func(tx pgx.Tx) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestWithTransaction_RollbackOnPanic(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = WithTransaction(context.Background(), mock, func(tx pgx.Tx) error {
			panic("kaboom")
		})
	})
}

func TestWithTransaction_BeginFails(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	called := false
	err := WithTransaction(context.Background(), mock, func(tx pgx.Tx) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
}

func TestWithTransactionResult(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	n, err := WithTransactionResult(context.Background(), mock, func(tx pgx.Tx) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}
