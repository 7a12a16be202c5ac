package client

import (
	"context"

	"tripdesk/internal/domain"
)

// Repository defines the interface for Client persistence.
type Repository interface {
	domain.CatalogRepository[*Client]

	// FindByEmail retrieves a client by email (unique among non-deleted rows).
	FindByEmail(ctx context.Context, email string) (*Client, error)
}
