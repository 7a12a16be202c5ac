package article

import (
	"context"

	"tripdesk/internal/core/id"
	"tripdesk/internal/domain"
)

// Repository defines the interface for Article parent-row persistence.
// Kind-specific detail data goes through DetailRegistry, not through here.
type Repository interface {
	domain.CatalogRepository[*Article]

	// ListBySupplier retrieves articles provided by one supplier.
	ListBySupplier(ctx context.Context, supplierID id.ID, filter domain.ListFilter) (domain.ListResult[*Article], error)
}
