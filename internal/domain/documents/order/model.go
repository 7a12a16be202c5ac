// Package order provides the customer Order document: a priced set of travel
// products sold to a client. The order's total price is the value mirrored to
// its invoice while the invoice is still open.
package order

import (
	"context"

	"github.com/shopspring/decimal"

	"tripdesk/internal/core/apperror"
	"tripdesk/internal/core/entity"
	"tripdesk/internal/core/id"
)

// Status represents the order lifecycle state.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Line is one order position referencing a sellable article.
type Line struct {
	ID        id.ID           `db:"id" json:"id"`
	OrderID   id.ID           `db:"order_id" json:"orderId"`
	ArticleID id.ID           `db:"article_id" json:"articleId"`
	Quantity  int             `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unitPrice"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
}

// NewLine creates a line with a generated ID and computed amount.
func NewLine(articleID id.ID, quantity int, unitPrice decimal.Decimal) Line {
	return Line{
		ID:        id.New(),
		ArticleID: articleID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Amount:    unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// Order is a sale to one client. TotalAmount is the authoritative price the
// invoice mirrors.
type Order struct {
	entity.Document

	ClientID id.ID  `db:"client_id" json:"clientId"`
	Status   Status `db:"status" json:"status"`

	TotalAmount decimal.Decimal `db:"total_amount" json:"totalAmount"`
	Currency    string          `db:"currency" json:"currency"`

	// Lines are persisted in a child table, not as a column.
	Lines []Line `db:"-" json:"lines,omitempty"`
}

// New creates a draft order for a client.
func New(clientID id.ID) *Order {
	return &Order{
		Document: entity.NewDocument(),
		ClientID: clientID,
		Status:   StatusDraft,
		Currency: "EUR",
	}
}

// RecalculateTotal recomputes line amounts and the order total.
func (o *Order) RecalculateTotal() {
	total := decimal.Zero
	for i := range o.Lines {
		line := &o.Lines[i]
		line.Amount = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(line.Amount)
	}
	o.TotalAmount = total
}

// Validate implements entity.Validatable interface.
func (o *Order) Validate(ctx context.Context) error {
	if err := o.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(o.ClientID) {
		return apperror.NewValidation("client is required").
			WithDetail("field", "clientId")
	}

	if !o.Status.Valid() {
		return apperror.NewValidation("invalid order status").
			WithDetail("field", "status").
			WithDetail("value", string(o.Status))
	}

	if o.TotalAmount.IsNegative() {
		return apperror.NewValidation("total amount must not be negative").
			WithDetail("field", "totalAmount")
	}

	for i, line := range o.Lines {
		if id.IsNil(line.ArticleID) {
			return apperror.NewValidation("line article is required").
				WithDetail("line", i)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("line quantity must be positive").
				WithDetail("line", i).
				WithDetail("quantity", line.Quantity)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("line unit price must not be negative").
				WithDetail("line", i)
		}
	}

	return nil
}
