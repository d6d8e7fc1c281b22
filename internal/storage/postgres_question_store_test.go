package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestClassify_NoRows(t *testing.T) {
	require.ErrorIs(t, classify(pgx.ErrNoRows), ErrNotFound)
}

func TestClassify_ConstraintViolations(t *testing.T) {
	for _, code := range []string{"23502", "23514", "22P02"} {
		pgErr := &pgconn.PgError{Code: code, Message: "violates check"}
		err := classify(fmt.Errorf("exec: %w", pgErr))

		require.ErrorIs(t, err, ErrRejected, code)

		var got *pgconn.PgError
		require.True(t, errors.As(err, &got))
		require.Equal(t, code, got.Code)
		require.Contains(t, err.Error(), "violates check")
	}
}

func TestClassify_PassesOtherErrorsThrough(t *testing.T) {
	boom := errors.New("connection refused")
	require.Equal(t, boom, classify(boom))
	require.NoError(t, classify(nil))

	pgErr := &pgconn.PgError{Code: "08006"}
	require.Equal(t, error(pgErr), classify(pgErr))
}

func TestStoreError_WrapsCause(t *testing.T) {
	err := storeErr("delete", ErrNotFound)

	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, "delete questions: question not found", err.Error())
	require.NoError(t, storeErr("delete", nil))
}

func TestListQuery_OrdersTiesByInsertion(t *testing.T) {
	require.Contains(t, listQuery, "ORDER BY created_at DESC, seq DESC")
	require.Contains(t, schemaSQL, "seq            bigserial NOT NULL")
	require.Contains(t, schemaSQL, "ADD COLUMN IF NOT EXISTS seq bigserial")
}
