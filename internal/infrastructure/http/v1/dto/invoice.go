package dto

import (
	"github.com/shopspring/decimal"

	"tripdesk/internal/domain/documents/invoice"
)

// --- Request DTOs ---

// SetInvoiceStatusRequest is the request body for an invoice status change.
type SetInvoiceStatusRequest struct {
	Status invoice.Status `json:"status" binding:"required"`
}

// --- Response DTOs ---

// InvoiceResponse is the response body for an invoice.
type InvoiceResponse struct {
	DocumentResponse
	OrderID       string          `json:"orderId"`
	Status        invoice.Status  `json:"status"`
	AmountExclTax decimal.Decimal `json:"amountExclTax"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	AmountInclTax decimal.Decimal `json:"amountInclTax"`
	Currency      string          `json:"currency"`
}

// FromInvoice creates response DTO from domain entity.
func FromInvoice(inv *invoice.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		DocumentResponse: FromDocument(inv.Document),
		OrderID:          inv.OrderID.String(),
		Status:           inv.Status,
		AmountExclTax:    inv.AmountExclTax,
		TaxAmount:        inv.TaxAmount,
		AmountInclTax:    inv.AmountInclTax,
		Currency:         inv.Currency,
	}
}
