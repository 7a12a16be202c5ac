// Package voucher provides the PaymentVoucher document: a recorded payment
// against an invoice.
package voucher

import (
	"context"

	"github.com/shopspring/decimal"

	"tripdesk/internal/core/apperror"
	"tripdesk/internal/core/entity"
	"tripdesk/internal/core/id"
)

// Method is the payment method.
type Method string

const (
	MethodCash     Method = "cash"
	MethodCard     Method = "card"
	MethodTransfer Method = "transfer"
)

// Valid reports whether m is a known method.
func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodTransfer:
		return true
	}
	return false
}

// PaymentVoucher records one payment received for an invoice.
type PaymentVoucher struct {
	entity.Document

	InvoiceID id.ID           `db:"invoice_id" json:"invoiceId"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Currency  string          `db:"currency" json:"currency"`
	Method    Method          `db:"method" json:"method"`
	Reference string          `db:"reference" json:"reference,omitempty"`
}

// New creates a voucher for an invoice.
func New(invoiceID id.ID, amount decimal.Decimal, method Method) *PaymentVoucher {
	return &PaymentVoucher{
		Document:  entity.NewDocument(),
		InvoiceID: invoiceID,
		Amount:    amount,
		Currency:  "EUR",
		Method:    method,
	}
}

// Validate implements entity.Validatable interface.
func (v *PaymentVoucher) Validate(ctx context.Context) error {
	if err := v.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(v.InvoiceID) {
		return apperror.NewValidation("invoice is required").
			WithDetail("field", "invoiceId")
	}

	if !v.Method.Valid() {
		return apperror.NewValidation("invalid payment method").
			WithDetail("field", "method").
			WithDetail("value", string(v.Method))
	}

	if !v.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}

	return nil
}
