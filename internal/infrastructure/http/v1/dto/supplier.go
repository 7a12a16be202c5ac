package dto

import (
	"tripdesk/internal/domain/catalogs/supplier"
)

// --- Request DTOs ---

// CreateSupplierRequest is the request body for creating a supplier.
type CreateSupplierRequest struct {
	Code          string                `json:"code"`
	Name          string                `json:"name" binding:"required"`
	Type          supplier.SupplierType `json:"type" binding:"required"`
	ContactPerson *string               `json:"contactPerson"`
	Email         *string               `json:"email"`
	Phone         *string               `json:"phone"`
	Address       *string               `json:"address"`
	IBAN          *string               `json:"iban"`
	Comment       *string               `json:"comment"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateSupplierRequest) ToEntity() *supplier.Supplier {
	s := supplier.New(r.Code, r.Name, r.Type)
	s.ContactPerson = r.ContactPerson
	s.Email = r.Email
	s.Phone = r.Phone
	s.Address = r.Address
	s.IBAN = r.IBAN
	s.Comment = r.Comment
	return s
}

// UpdateSupplierRequest is the request body for updating a supplier.
type UpdateSupplierRequest struct {
	Name          string                `json:"name" binding:"required"`
	Type          supplier.SupplierType `json:"type" binding:"required"`
	ContactPerson *string               `json:"contactPerson"`
	Email         *string               `json:"email"`
	Phone         *string               `json:"phone"`
	Address       *string               `json:"address"`
	IBAN          *string               `json:"iban"`
	Comment       *string               `json:"comment"`
	Version       int                   `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity. The code stays immutable.
func (r *UpdateSupplierRequest) ApplyTo(s *supplier.Supplier) {
	s.Name = r.Name
	s.Type = r.Type
	s.ContactPerson = r.ContactPerson
	s.Email = r.Email
	s.Phone = r.Phone
	s.Address = r.Address
	s.IBAN = r.IBAN
	s.Comment = r.Comment
	s.Version = r.Version
}

// --- Response DTOs ---

// SupplierResponse is the response body for a supplier.
type SupplierResponse struct {
	ID            string                `json:"id"`
	Code          string                `json:"code"`
	Name          string                `json:"name"`
	Type          supplier.SupplierType `json:"type"`
	ContactPerson *string               `json:"contactPerson,omitempty"`
	Email         *string               `json:"email,omitempty"`
	Phone         *string               `json:"phone,omitempty"`
	Address       *string               `json:"address,omitempty"`
	IBAN          *string               `json:"iban,omitempty"`
	Comment       *string               `json:"comment,omitempty"`
	DeletionMark  bool                  `json:"deletionMark"`
	Version       int                   `json:"version"`
}

// FromSupplier creates response DTO from domain entity.
func FromSupplier(s *supplier.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:            s.ID.String(),
		Code:          s.Code,
		Name:          s.Name,
		Type:          s.Type,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		IBAN:          s.IBAN,
		Comment:       s.Comment,
		DeletionMark:  s.DeletionMark,
		Version:       s.Version,
	}
}
