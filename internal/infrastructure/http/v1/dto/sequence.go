package dto

import (
	"time"

	"tripdesk/internal/core/sequence"
)

// --- Request DTOs ---

// UpdateSequenceConfigRequest is the request body for patching a counter
// configuration. Absent fields keep their stored value; counter and lastReset
// are issuer-owned and not accepted here.
type UpdateSequenceConfigRequest struct {
	Prefix        *string                 `json:"prefix"`
	Format        *string                 `json:"format"`
	ResetInterval *sequence.ResetInterval `json:"resetInterval"`
}

// ToPatch converts DTO to a domain patch.
func (r *UpdateSequenceConfigRequest) ToPatch() sequence.ConfigPatch {
	return sequence.ConfigPatch{
		Prefix:        r.Prefix,
		Format:        r.Format,
		ResetInterval: r.ResetInterval,
	}
}

// --- Response DTOs ---

// SequenceConfigResponse is the response body for a counter configuration.
type SequenceConfigResponse struct {
	Type          sequence.DocumentType  `json:"type"`
	Prefix        string                 `json:"prefix"`
	Format        string                 `json:"format"`
	Counter       int64                  `json:"counter"`
	ResetInterval sequence.ResetInterval `json:"resetInterval"`
	LastReset     time.Time              `json:"lastReset"`
}

// FromSequenceConfig creates response DTO from domain config.
func FromSequenceConfig(cfg *sequence.Config) *SequenceConfigResponse {
	return &SequenceConfigResponse{
		Type:          cfg.Type,
		Prefix:        cfg.Prefix,
		Format:        cfg.Format,
		Counter:       cfg.Counter,
		ResetInterval: cfg.ResetInterval,
		LastReset:     cfg.LastReset,
	}
}
