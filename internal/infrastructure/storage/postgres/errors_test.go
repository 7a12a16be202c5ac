package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock detected", &pgconn.PgError{Code: "40P01"}, true},
		{"lock not available", &pgconn.PgError{Code: "55P03"}, true},
		{"wrapped lock not available", fmt.Errorf("lock sequence row: %w", &pgconn.PgError{Code: "55P03"}), true},
		{"query canceled", &pgconn.PgError{Code: "57014"}, false},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"plain error", errors.New("connection refused"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

// A lock wait must fail as 55P03 rather than being cancelled by the statement
// timeout (57014), so the lock timeout has to fire first.
func TestDefaultTxOptions_LockTimeoutBelowStatementTimeout(t *testing.T) {
	opts := DefaultTxOptions()
	assert.Positive(t, opts.LockTimeout)
	assert.Less(t, opts.LockTimeout, opts.StatementTimeout)
}

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "doc_orders_number_key"})

	assert.True(t, IsUniqueViolation(err, ""))
	assert.True(t, IsUniqueViolation(err, "doc_orders_number_key"))
	assert.False(t, IsUniqueViolation(err, "doc_invoices_order_id_key"))
	assert.False(t, IsUniqueViolation(errors.New("boom"), ""))
}
