// Package article provides the Article catalog: the sellable travel products.
// An article is a parent row plus kind-specific detail data stored per kind;
// the kind is a closed tagged variant resolved through DetailRegistry, never
// through ad-hoc branching at call sites.
package article

import (
	"context"

	"github.com/shopspring/decimal"

	"tripdesk/internal/core/apperror"
	"tripdesk/internal/core/entity"
	"tripdesk/internal/core/id"
)

// Kind tags the article subtype.
type Kind string

const (
	KindFlight    Kind = "flight"
	KindHotel     Kind = "hotel"
	KindTour      Kind = "tour"
	KindTransfer  Kind = "transfer"
	KindExcursion Kind = "excursion"
	KindInsurance Kind = "insurance"
)

// Kinds lists every supported article kind.
func Kinds() []Kind {
	return []Kind{KindFlight, KindHotel, KindTour, KindTransfer, KindExcursion, KindInsurance}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindFlight, KindHotel, KindTour, KindTransfer, KindExcursion, KindInsurance:
		return true
	}
	return false
}

// Article is the parent row shared by all kinds.
type Article struct {
	entity.Catalog

	Kind Kind `db:"kind" json:"kind"`

	// SupplierID references the providing supplier.
	SupplierID id.ID `db:"supplier_id" json:"supplierId"`

	// Price is the default selling price proposed on order lines.
	Price    decimal.Decimal `db:"price" json:"price"`
	Currency string          `db:"currency" json:"currency"`

	// Details is the kind-specific payload; persisted through the
	// DetailRegistry, not as a column of the parent table.
	Details Details `db:"-" json:"details,omitempty"`
}

// New creates a new Article with required fields.
func New(code, name string, kind Kind, supplierID id.ID) *Article {
	return &Article{
		Catalog:    entity.NewCatalog(code, name),
		Kind:       kind,
		SupplierID: supplierID,
		Currency:   "EUR",
	}
}

// Validate implements entity.Validatable interface.
func (a *Article) Validate(ctx context.Context) error {
	if err := a.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !a.Kind.Valid() {
		return apperror.NewValidation("invalid article kind").
			WithDetail("field", "kind").
			WithDetail("value", string(a.Kind))
	}

	if id.IsNil(a.SupplierID) {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplierId")
	}

	if a.Price.IsNegative() {
		return apperror.NewValidation("price must not be negative").
			WithDetail("field", "price")
	}

	if a.Details != nil && a.Details.DetailKind() != a.Kind {
		return apperror.NewValidation("details do not match article kind").
			WithDetail("field", "details").
			WithDetail("articleKind", string(a.Kind)).
			WithDetail("detailsKind", string(a.Details.DetailKind()))
	}

	return nil
}
