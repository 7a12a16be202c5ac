package dto

import (
	"github.com/shopspring/decimal"

	"tripdesk/internal/core/apperror"
	"tripdesk/internal/core/id"
	"tripdesk/internal/domain/documents/voucher"
)

// --- Request DTOs ---

// CreateVoucherRequest is the request body for recording a payment.
type CreateVoucherRequest struct {
	InvoiceID string          `json:"invoiceId" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    voucher.Method  `json:"method" binding:"required"`
	Reference string          `json:"reference"`
	Comment   string          `json:"comment"`
}

// ToInput converts DTO to service input.
func (r *CreateVoucherRequest) ToInput() (voucher.CreateInput, error) {
	invoiceID, err := id.Parse(r.InvoiceID)
	if err != nil {
		return voucher.CreateInput{}, apperror.NewValidation("invalid invoiceId format").
			WithDetail("field", "invoiceId")
	}

	return voucher.CreateInput{
		InvoiceID: invoiceID,
		Amount:    r.Amount,
		Method:    r.Method,
		Reference: r.Reference,
		Comment:   r.Comment,
	}, nil
}

// --- Response DTOs ---

// VoucherResponse is the response body for a payment voucher.
type VoucherResponse struct {
	DocumentResponse
	InvoiceID string          `json:"invoiceId"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Method    voucher.Method  `json:"method"`
	Reference string          `json:"reference,omitempty"`
}

// FromVoucher creates response DTO from domain entity.
func FromVoucher(v *voucher.PaymentVoucher) *VoucherResponse {
	return &VoucherResponse{
		DocumentResponse: FromDocument(v.Document),
		InvoiceID:        v.InvoiceID.String(),
		Amount:           v.Amount,
		Currency:         v.Currency,
		Method:           v.Method,
		Reference:        v.Reference,
	}
}
