package dto

import (
	"github.com/shopspring/decimal"

	"tripdesk/internal/core/apperror"
	"tripdesk/internal/core/id"
	"tripdesk/internal/domain/documents/order"
)

// --- Request DTOs ---

// OrderLineRequest is one line of an order payload.
type OrderLineRequest struct {
	ArticleID string          `json:"articleId" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// CreateOrderRequest is the request body for creating an order.
type CreateOrderRequest struct {
	ClientID string             `json:"clientId" binding:"required"`
	Currency string             `json:"currency"`
	Comment  string             `json:"comment"`
	Lines    []OrderLineRequest `json:"lines"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateOrderRequest) ToEntity() (*order.Order, error) {
	clientID, err := id.Parse(r.ClientID)
	if err != nil {
		return nil, apperror.NewValidation("invalid clientId format").
			WithDetail("field", "clientId")
	}

	o := order.New(clientID)
	if r.Currency != "" {
		o.Currency = r.Currency
	}
	o.Comment = r.Comment

	lines, err := mapOrderLines(r.Lines)
	if err != nil {
		return nil, err
	}
	o.Lines = lines

	return o, nil
}

// UpdateOrderRequest is the request body for updating an order.
// Lines fully replace the stored set.
type UpdateOrderRequest struct {
	Comment string             `json:"comment"`
	Lines   []OrderLineRequest `json:"lines"`
	Version int                `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateOrderRequest) ApplyTo(o *order.Order) error {
	o.Comment = r.Comment
	o.Version = r.Version

	lines, err := mapOrderLines(r.Lines)
	if err != nil {
		return err
	}
	o.Lines = lines

	return nil
}

func mapOrderLines(reqs []OrderLineRequest) ([]order.Line, error) {
	lines := make([]order.Line, 0, len(reqs))
	for i, lr := range reqs {
		articleID, err := id.Parse(lr.ArticleID)
		if err != nil {
			return nil, apperror.NewValidation("invalid articleId format").
				WithDetail("field", "lines").
				WithDetail("index", i)
		}
		lines = append(lines, order.NewLine(articleID, lr.Quantity, lr.UnitPrice))
	}
	return lines, nil
}

// ChangeOrderPriceRequest is the request body for repricing an order.
type ChangeOrderPriceRequest struct {
	TotalAmount decimal.Decimal `json:"totalAmount" binding:"required"`
}

// SetOrderStatusRequest is the request body for an order status change.
type SetOrderStatusRequest struct {
	Status order.Status `json:"status" binding:"required"`
}

// --- Response DTOs ---

// OrderLineResponse is one line of an order response.
type OrderLineResponse struct {
	ID        string          `json:"id"`
	ArticleID string          `json:"articleId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Amount    decimal.Decimal `json:"amount"`
}

// OrderResponse is the response body for an order.
type OrderResponse struct {
	DocumentResponse
	ClientID    string              `json:"clientId"`
	Status      order.Status        `json:"status"`
	TotalAmount decimal.Decimal     `json:"totalAmount"`
	Currency    string              `json:"currency"`
	Lines       []OrderLineResponse `json:"lines,omitempty"`
}

// FromOrder creates response DTO from domain entity.
func FromOrder(o *order.Order) *OrderResponse {
	resp := &OrderResponse{
		DocumentResponse: FromDocument(o.Document),
		ClientID:         o.ClientID.String(),
		Status:           o.Status,
		TotalAmount:      o.TotalAmount,
		Currency:         o.Currency,
	}
	for _, line := range o.Lines {
		resp.Lines = append(resp.Lines, OrderLineResponse{
			ID:        line.ID.String(),
			ArticleID: line.ArticleID.String(),
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Amount:    line.Amount,
		})
	}
	return resp
}
