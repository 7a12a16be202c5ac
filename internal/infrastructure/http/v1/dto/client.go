package dto

import (
	"tripdesk/internal/domain/catalogs/client"
)

// --- Request DTOs ---

// CreateClientRequest is the request body for creating a client.
type CreateClientRequest struct {
	Code       string  `json:"code"`
	FirstName  string  `json:"firstName" binding:"required"`
	LastName   string  `json:"lastName" binding:"required"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	PassportNo *string `json:"passportNo"`
	Comment    *string `json:"comment"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateClientRequest) ToEntity() *client.Client {
	c := client.New(r.Code, r.FirstName, r.LastName)
	c.Email = r.Email
	c.Phone = r.Phone
	c.Address = r.Address
	c.PassportNo = r.PassportNo
	c.Comment = r.Comment
	return c
}

// UpdateClientRequest is the request body for updating a client.
type UpdateClientRequest struct {
	FirstName  string  `json:"firstName" binding:"required"`
	LastName   string  `json:"lastName" binding:"required"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	PassportNo *string `json:"passportNo"`
	Comment    *string `json:"comment"`
	Version    int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity. The code stays immutable.
func (r *UpdateClientRequest) ApplyTo(c *client.Client) {
	c.FirstName = r.FirstName
	c.LastName = r.LastName
	c.Name = r.LastName + " " + r.FirstName
	c.Email = r.Email
	c.Phone = r.Phone
	c.Address = r.Address
	c.PassportNo = r.PassportNo
	c.Comment = r.Comment
	c.Version = r.Version
}

// --- Response DTOs ---

// ClientResponse is the response body for a client.
type ClientResponse struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	PassportNo   *string `json:"passportNo,omitempty"`
	Comment      *string `json:"comment,omitempty"`
	DeletionMark bool    `json:"deletionMark"`
	Version      int     `json:"version"`
}

// FromClient creates response DTO from domain entity.
func FromClient(c *client.Client) *ClientResponse {
	return &ClientResponse{
		ID:           c.ID.String(),
		Code:         c.Code,
		Name:         c.Name,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		PassportNo:   c.PassportNo,
		Comment:      c.Comment,
		DeletionMark: c.DeletionMark,
		Version:      c.Version,
	}
}
