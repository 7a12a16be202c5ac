package entity

import (
	"context"

	"tripdesk/internal/core/apperror"
)

// Catalog is the base type for reference data: clients, suppliers, articles.
type Catalog struct {
	BaseEntity

	// Code is a human-readable identifier, unique per catalog.
	// Empty at creation means "generate one from the sequence engine".
	Code string `db:"code" json:"code"`

	// Name is the display name
	Name string `db:"name" json:"name"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(code, name string) Catalog {
	return Catalog{
		BaseEntity: NewBaseEntity(),
		Code:       code,
		Name:       name,
	}
}

// GetCode returns the catalog code.
func (c *Catalog) GetCode() string {
	return c.Code
}

// SetCode assigns the catalog code (used by code auto-generation).
func (c *Catalog) SetCode(code string) {
	c.Code = code
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}
