package voucher

import (
	"context"

	"tripdesk/internal/core/id"
	"tripdesk/internal/domain"
)

// Repository defines the interface for PaymentVoucher persistence.
type Repository interface {
	// Create inserts a new voucher.
	Create(ctx context.Context, v *PaymentVoucher) error

	// GetByID retrieves a voucher by ID.
	GetByID(ctx context.Context, voucherID id.ID) (*PaymentVoucher, error)

	// GetByNumber retrieves a voucher by document number.
	GetByNumber(ctx context.Context, number string) (*PaymentVoucher, error)

	// ListByInvoice retrieves all vouchers paying one invoice.
	ListByInvoice(ctx context.Context, invoiceID id.ID) ([]*PaymentVoucher, error)

	// List retrieves vouchers with filtering and pagination.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*PaymentVoucher], error)
}
