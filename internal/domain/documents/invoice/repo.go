package invoice

import (
	"context"

	"github.com/shopspring/decimal"

	"tripdesk/internal/core/id"
	"tripdesk/internal/domain"
)

// Repository defines the interface for Invoice persistence.
// The order_id column carries a unique constraint: one invoice per order.
type Repository interface {
	// Create inserts a new invoice. A second invoice for the same order fails
	// with a duplicate error.
	Create(ctx context.Context, inv *Invoice) error

	// GetByID retrieves an invoice by ID.
	GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error)

	// GetByNumber retrieves an invoice by document number.
	GetByNumber(ctx context.Context, number string) (*Invoice, error)

	// GetForUpdate retrieves an invoice under a row lock. Must be called
	// inside a transaction.
	GetForUpdate(ctx context.Context, invoiceID id.ID) (*Invoice, error)

	// GetByOrderID retrieves the invoice billing an order, if any.
	GetByOrderID(ctx context.Context, orderID id.ID) (*Invoice, error)

	// GetByOrderIDForUpdate is GetByOrderID under a row lock. Must be called
	// inside a transaction.
	GetByOrderIDForUpdate(ctx context.Context, orderID id.ID) (*Invoice, error)

	// UpdateAmounts rewrites the three amount columns.
	UpdateAmounts(ctx context.Context, invoiceID id.ID, exclTax, tax, inclTax decimal.Decimal) error

	// Update modifies the invoice (with optimistic locking).
	Update(ctx context.Context, inv *Invoice) error

	// List retrieves invoices with filtering and pagination.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Invoice], error)
}
