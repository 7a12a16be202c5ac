package sequence

import (
	"context"
	"time"
)

// Issuer issues unique, human-readable document numbers.
// Implementations must serialize concurrent calls per document type on a
// database row lock: two calls for one type never observe the same
// (counter, period) pair, and an aborted transaction spends no counter value.
type Issuer interface {
	// IssueNumber atomically resets the counter if the period rolled over,
	// increments it, renders the configured template and persists the new
	// counter state, all in one transaction.
	IssueNumber(ctx context.Context, docType DocumentType, now time.Time) (string, error)
}

// Registry is the administrative surface over counter configurations.
// Types are provisioned at bootstrap; Registry never creates them on demand,
// and updates never touch counter or lastReset.
type Registry interface {
	GetConfig(ctx context.Context, docType DocumentType) (*Config, error)
	UpdateConfig(ctx context.Context, docType DocumentType, patch ConfigPatch) (*Config, error)
}
