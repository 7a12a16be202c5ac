package sequence

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// MockIssuer is a test implementation of Issuer.
// Use in unit tests to avoid database dependencies.
type MockIssuer struct {
	IssueNumberFunc func(ctx context.Context, docType DocumentType, now time.Time) (string, error)

	counter int64
}

// IssueNumber implements Issuer.
func (m *MockIssuer) IssueNumber(ctx context.Context, docType DocumentType, now time.Time) (string, error) {
	if m.IssueNumberFunc != nil {
		return m.IssueNumberFunc(ctx, docType, now)
	}
	// Default: predictable monotonic numbers per process.
	n := atomic.AddInt64(&m.counter, 1)
	return fmt.Sprintf("%s-%04d-%04d", docType, now.Year(), n), nil
}

// Ensure compile-time interface compliance.
var _ Issuer = (*MockIssuer)(nil)
