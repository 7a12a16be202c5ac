package order

import (
	"context"

	"tripdesk/internal/core/id"
	"tripdesk/internal/domain"
)

// Repository defines the interface for Order persistence.
type Repository interface {
	// Create inserts the order header. Lines go through SaveLines.
	Create(ctx context.Context, o *Order) error

	// GetByID retrieves an order header (without lines).
	GetByID(ctx context.Context, orderID id.ID) (*Order, error)

	// GetByNumber retrieves an order by its document number.
	GetByNumber(ctx context.Context, number string) (*Order, error)

	// GetForUpdate retrieves an order header under a row lock. Must be called
	// inside a transaction.
	GetForUpdate(ctx context.Context, orderID id.ID) (*Order, error)

	// Update modifies the order header (with optimistic locking).
	Update(ctx context.Context, o *Order) error

	// SetDeletionMark sets or clears the soft-delete mark.
	SetDeletionMark(ctx context.Context, orderID id.ID, marked bool) error

	// SaveLines replaces the order's lines.
	SaveLines(ctx context.Context, orderID id.ID, lines []Line) error

	// GetLines retrieves the order's lines.
	GetLines(ctx context.Context, orderID id.ID) ([]Line, error)

	// List retrieves orders with filtering and pagination.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Order], error)
}
