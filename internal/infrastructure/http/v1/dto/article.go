package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"tripdesk/internal/core/apperror"
	"tripdesk/internal/core/id"
	"tripdesk/internal/domain/catalogs/article"
)

// --- Request DTOs ---

// CreateArticleRequest is the request body for creating an article.
// Details carries the kind-specific payload and is decoded against the
// declared kind, so a hotel payload on a flight article fails upfront.
type CreateArticleRequest struct {
	Code       string          `json:"code"`
	Name       string          `json:"name" binding:"required"`
	Kind       article.Kind    `json:"kind" binding:"required"`
	SupplierID string          `json:"supplierId" binding:"required"`
	Price      decimal.Decimal `json:"price"`
	Currency   string          `json:"currency"`
	Details    json.RawMessage `json:"details"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateArticleRequest) ToEntity() (*article.Article, error) {
	supplierID, err := id.Parse(r.SupplierID)
	if err != nil {
		return nil, apperror.NewValidation("invalid supplierId format").
			WithDetail("field", "supplierId")
	}

	a := article.New(r.Code, r.Name, r.Kind, supplierID)
	a.Price = r.Price
	if r.Currency != "" {
		a.Currency = r.Currency
	}

	if len(r.Details) > 0 {
		details, err := decodeDetails(r.Kind, r.Details)
		if err != nil {
			return nil, err
		}
		a.Details = details
	}

	return a, nil
}

// UpdateArticleRequest is the request body for updating an article.
// Kind is immutable after creation; changing the product type means
// creating a new article.
type UpdateArticleRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	Details  json.RawMessage `json:"details"`
	Version  int             `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateArticleRequest) ApplyTo(a *article.Article) error {
	a.Name = r.Name
	a.Price = r.Price
	if r.Currency != "" {
		a.Currency = r.Currency
	}
	a.Version = r.Version

	if len(r.Details) > 0 {
		details, err := decodeDetails(a.Kind, r.Details)
		if err != nil {
			return err
		}
		a.Details = details
	}

	return nil
}

func decodeDetails(kind article.Kind, raw json.RawMessage) (article.Details, error) {
	var target article.Details
	switch kind {
	case article.KindFlight:
		target = &article.FlightDetails{}
	case article.KindHotel:
		target = &article.HotelDetails{}
	case article.KindTour:
		target = &article.TourDetails{}
	case article.KindTransfer:
		target = &article.TransferDetails{}
	case article.KindExcursion:
		target = &article.ExcursionDetails{}
	case article.KindInsurance:
		target = &article.InsuranceDetails{}
	default:
		return nil, apperror.NewValidation("invalid article kind").
			WithDetail("field", "kind").
			WithDetail("value", string(kind))
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return nil, apperror.NewValidation("invalid details payload").
			WithDetail("field", "details").
			WithDetail("error", err.Error())
	}
	return target, nil
}

// --- Response DTOs ---

// ArticleResponse is the response body for an article.
type ArticleResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Kind         article.Kind    `json:"kind"`
	SupplierID   string          `json:"supplierId"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	Details      article.Details `json:"details,omitempty"`
	DeletionMark bool            `json:"deletionMark"`
	Version      int             `json:"version"`
}

// FromArticle creates response DTO from domain entity.
func FromArticle(a *article.Article) *ArticleResponse {
	return &ArticleResponse{
		ID:           a.ID.String(),
		Code:         a.Code,
		Name:         a.Name,
		Kind:         a.Kind,
		SupplierID:   a.SupplierID.String(),
		Price:        a.Price,
		Currency:     a.Currency,
		Details:      a.Details,
		DeletionMark: a.DeletionMark,
		Version:      a.Version,
	}
}
