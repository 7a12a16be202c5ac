// Package sequence provides the document numbering domain: counter
// configurations, the reset policy evaluator and the format renderer.
// The transactional issuer implementation lives in infrastructure.
package sequence

import (
	"strings"
	"time"

	"tripdesk/internal/core/apperror"
)

// DocumentType identifies a numbered document category. Each type owns one
// counter configuration row, provisioned at bootstrap and never created ad hoc.
type DocumentType string

const (
	DocumentTypeInvoice        DocumentType = "INVOICE"
	DocumentTypePaymentVoucher DocumentType = "PAYMENT_VOUCHER"
	DocumentTypeOrder          DocumentType = "ORDER"

	// Catalog codes share the same engine.
	DocumentTypeClient   DocumentType = "CLIENT"
	DocumentTypeSupplier DocumentType = "SUPPLIER"
	DocumentTypeArticle  DocumentType = "ARTICLE"
)

// ResetInterval governs when a counter returns to zero.
type ResetInterval string

const (
	ResetNever   ResetInterval = "NEVER"
	ResetMonthly ResetInterval = "MONTHLY"
	ResetYearly  ResetInterval = "YEARLY"
)

// Valid reports whether the interval is a known value.
func (r ResetInterval) Valid() bool {
	switch r {
	case ResetNever, ResetMonthly, ResetYearly:
		return true
	}
	return false
}

// Config is one counter configuration row.
// Counter only ever increases within a period; the only decrement is the
// reset to zero at a period boundary, applied by the issuer.
type Config struct {
	Type          DocumentType  `db:"type" json:"type"`
	Prefix        string        `db:"prefix" json:"prefix"`
	Format        string        `db:"format" json:"format"`
	Counter       int64         `db:"counter" json:"counter"`
	ResetInterval ResetInterval `db:"reset_interval" json:"resetInterval"`
	LastReset     time.Time     `db:"last_reset" json:"lastReset"`
}

// DefaultFormat is used when a provisioned type does not specify a template.
const DefaultFormat = "{PREFIX}-{YYYY}-{SEQ}"

// DefaultConfig returns a yearly-reset configuration for a type.
func DefaultConfig(t DocumentType, prefix string) Config {
	return Config{
		Type:          t,
		Prefix:        prefix,
		Format:        DefaultFormat,
		ResetInterval: ResetYearly,
	}
}

// ConfigPatch is an administrative update. Counter and LastReset are
// issuer-owned and deliberately absent.
type ConfigPatch struct {
	Prefix        *string        `json:"prefix,omitempty"`
	Format        *string        `json:"format,omitempty"`
	ResetInterval *ResetInterval `json:"resetInterval,omitempty"`
}

// Validate rejects malformed patches before they reach storage.
// Template problems fail here, at configuration time, never at issue time.
func (p ConfigPatch) Validate() error {
	if p.Format != nil {
		if err := ValidateFormat(*p.Format); err != nil {
			return err
		}
	}
	if p.ResetInterval != nil && !p.ResetInterval.Valid() {
		return apperror.NewValidation("invalid reset interval").
			WithDetail("field", "resetInterval").
			WithDetail("value", string(*p.ResetInterval))
	}
	return nil
}

// Apply returns cfg with the patch applied.
func (p ConfigPatch) Apply(cfg Config) Config {
	if p.Prefix != nil {
		cfg.Prefix = *p.Prefix
	}
	if p.Format != nil {
		cfg.Format = *p.Format
	}
	if p.ResetInterval != nil {
		cfg.ResetInterval = *p.ResetInterval
	}
	return cfg
}

// ValidateFormat checks that a template has balanced braces and references
// {SEQ}. Unknown placeholder names are allowed (rendered verbatim), so admins
// can embed literal brace text as long as it is balanced.
func ValidateFormat(format string) error {
	if !strings.Contains(format, "{SEQ}") {
		return apperror.NewMalformedTemplate("template must contain the {SEQ} placeholder")
	}

	depth := 0
	for _, r := range format {
		switch r {
		case '{':
			if depth > 0 {
				return apperror.NewMalformedTemplate("nested opening brace")
			}
			depth++
		case '}':
			if depth == 0 {
				return apperror.NewMalformedTemplate("unbalanced closing brace")
			}
			depth--
		}
	}
	if depth != 0 {
		return apperror.NewMalformedTemplate("unbalanced opening brace")
	}
	return nil
}
