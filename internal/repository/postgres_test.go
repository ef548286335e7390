package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "serialization failure", err: &pgconn.PgError{Code: pgerrcode.SerializationFailure}, want: true},
		{name: "deadlock", err: &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, want: true},
		{name: "unique violation", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, want: false},
		{name: "connection refused", err: errors.New("dial tcp: connection refused"), want: true},
		{name: "no rows", err: pgx.ErrNoRows, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

func TestWithRetry_StopsOnPermanentError(t *testing.T) {
	r := &PostgresRepository{}
	calls := 0

	err := r.withRetry(context.Background(), func() error {
		calls++
		return pgx.ErrNoRows
	})

	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_HonoursContext(t *testing.T) {
	r := &PostgresRepository{}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := r.withRetry(ctx, func() error {
		return &pgconn.PgError{Code: pgerrcode.DeadlockDetected}
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}
