// Package client provides the Client catalog: the agency's travel customers.
package client

import (
	"context"
	"regexp"

	"tripdesk/internal/core/apperror"
	"tripdesk/internal/core/entity"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Client represents a travel customer.
type Client struct {
	entity.Catalog

	// FirstName and LastName of the traveller; Name on the catalog base holds
	// the display name shown in lists.
	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`

	Email   *string `db:"email" json:"email,omitempty"`
	Phone   *string `db:"phone" json:"phone,omitempty"`
	Address *string `db:"address" json:"address,omitempty"`

	// PassportNo is required before international bookings can be invoiced,
	// but optional at registration time.
	PassportNo *string `db:"passport_no" json:"passportNo,omitempty"`

	Comment *string `db:"comment" json:"comment,omitempty"`
}

// New creates a new Client with required fields.
func New(code, firstName, lastName string) *Client {
	c := &Client{
		Catalog:   entity.NewCatalog(code, lastName+" "+firstName),
		FirstName: firstName,
		LastName:  lastName,
	}
	return c
}

// Validate implements entity.Validatable interface.
func (c *Client) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if c.LastName == "" {
		return apperror.NewValidation("last name is required").
			WithDetail("field", "lastName")
	}

	if c.Email != nil && *c.Email != "" && !emailRE.MatchString(*c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}
