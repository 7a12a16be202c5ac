// Package invoice provides the client Invoice document and the guard that
// keeps an open invoice's amounts consistent with its order's price. An
// invoice mirrors the order total while it is PENDING or UNPAID; once PAID or
// CANCELLED it freezes, and from then on the order price is locked too.
package invoice

import (
	"context"

	"github.com/shopspring/decimal"

	"tripdesk/internal/core/apperror"
	"tripdesk/internal/core/entity"
	"tripdesk/internal/core/id"
)

// Status represents the invoice lifecycle state.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusUnpaid    Status = "UNPAID"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusUnpaid, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the invoice is frozen. Terminal invoices never
// change amounts again and lock the order price.
func (s Status) Terminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

// CanTransition reports whether the status may move to target.
// Terminal states accept no further transitions.
func (s Status) CanTransition(to Status) bool {
	if s.Terminal() || s == to {
		return false
	}
	switch s {
	case StatusPending:
		return to == StatusUnpaid || to == StatusPaid || to == StatusCancelled
	case StatusUnpaid:
		return to == StatusPending || to == StatusPaid || to == StatusCancelled
	}
	return false
}

// Invoice bills one order. At most one invoice exists per order.
type Invoice struct {
	entity.Document

	OrderID id.ID  `db:"order_id" json:"orderId"`
	Status  Status `db:"status" json:"status"`

	AmountExclTax decimal.Decimal `db:"amount_excl_tax" json:"amountExclTax"`
	TaxAmount     decimal.Decimal `db:"tax_amount" json:"taxAmount"`
	AmountInclTax decimal.Decimal `db:"amount_incl_tax" json:"amountInclTax"`
	Currency      string          `db:"currency" json:"currency"`
}

// New creates a pending invoice for an order, mirroring its total.
func New(orderID id.ID, total decimal.Decimal, currency string) *Invoice {
	return &Invoice{
		Document:      entity.NewDocument(),
		OrderID:       orderID,
		Status:        StatusPending,
		AmountExclTax: total,
		TaxAmount:     decimal.Zero,
		AmountInclTax: total,
		Currency:      currency,
	}
}

// Validate implements entity.Validatable interface.
func (inv *Invoice) Validate(ctx context.Context) error {
	if err := inv.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(inv.OrderID) {
		return apperror.NewValidation("order is required").
			WithDetail("field", "orderId")
	}

	if !inv.Status.Valid() {
		return apperror.NewValidation("invalid invoice status").
			WithDetail("field", "status").
			WithDetail("value", string(inv.Status))
	}

	if inv.AmountExclTax.IsNegative() || inv.TaxAmount.IsNegative() {
		return apperror.NewValidation("amounts must not be negative")
	}

	if !inv.AmountInclTax.Equal(inv.AmountExclTax.Add(inv.TaxAmount)) {
		return apperror.NewValidation("amount incl. tax must equal excl. tax plus tax").
			WithDetail("amountExclTax", inv.AmountExclTax.String()).
			WithDetail("taxAmount", inv.TaxAmount.String()).
			WithDetail("amountInclTax", inv.AmountInclTax.String())
	}

	return nil
}
