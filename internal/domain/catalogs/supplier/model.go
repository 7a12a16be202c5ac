// Package supplier provides the Supplier catalog: tour operators, airlines,
// hotel chains and other providers the agency resells.
package supplier

import (
	"context"
	"regexp"
	"strings"

	"tripdesk/internal/core/apperror"
	"tripdesk/internal/core/entity"
)

var (
	emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	ibanRE  = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]{10,30}$`)
)

// SupplierType classifies what the supplier provides.
type SupplierType string

const (
	TypeTourOperator SupplierType = "tour_operator"
	TypeAirline      SupplierType = "airline"
	TypeHotelChain   SupplierType = "hotel_chain"
	TypeTransport    SupplierType = "transport"
	TypeInsurer      SupplierType = "insurer"
	TypeOther        SupplierType = "other"
)

// Supplier represents a travel product provider.
type Supplier struct {
	entity.Catalog

	Type SupplierType `db:"type" json:"type"`

	ContactPerson *string `db:"contact_person" json:"contactPerson,omitempty"`
	Email         *string `db:"email" json:"email,omitempty"`
	Phone         *string `db:"phone" json:"phone,omitempty"`
	Address       *string `db:"address" json:"address,omitempty"`

	// IBAN used for settlement of the supplier's payment vouchers.
	IBAN *string `db:"iban" json:"iban,omitempty"`

	Comment *string `db:"comment" json:"comment,omitempty"`
}

// New creates a new Supplier with required fields.
func New(code, name string, sType SupplierType) *Supplier {
	return &Supplier{
		Catalog: entity.NewCatalog(code, name),
		Type:    sType,
	}
}

// Validate implements entity.Validatable interface.
func (s *Supplier) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidType(s.Type) {
		return apperror.NewValidation("invalid supplier type").
			WithDetail("field", "type").
			WithDetail("value", string(s.Type))
	}

	if s.Email != nil && *s.Email != "" && !emailRE.MatchString(*s.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	if s.IBAN != nil && *s.IBAN != "" {
		cleaned := strings.ReplaceAll(strings.ToUpper(*s.IBAN), " ", "")
		if !ibanRE.MatchString(cleaned) {
			return apperror.NewValidation("invalid IBAN format").
				WithDetail("field", "iban")
		}
	}

	return nil
}

func isValidType(t SupplierType) bool {
	switch t {
	case TypeTourOperator, TypeAirline, TypeHotelChain, TypeTransport, TypeInsurer, TypeOther:
		return true
	}
	return false
}
