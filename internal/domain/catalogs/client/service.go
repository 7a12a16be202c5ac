package client

import (
	"context"

	"tripdesk/internal/core/apperror"
	"tripdesk/internal/core/id"
	"tripdesk/internal/core/sequence"
	"tripdesk/internal/core/tx"
	"tripdesk/internal/domain"
)

// Service provides business logic for the Client catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Client]
	repo Repository
}

// NewService creates a new Client service.
func NewService(repo Repository, txm tx.Manager, issuer sequence.Issuer) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Client]{
		Repo:       repo,
		TxManager:  txm,
		Issuer:     issuer,
		EntityName: "client",
		CodeType:   sequence.DocumentTypeClient,
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().On(domain.BeforeCreate, svc.checkEmailUnique)
	base.Hooks().On(domain.BeforeUpdate, svc.checkEmailUnique)

	return svc
}

// FindByEmail retrieves a client by email.
func (s *Service) FindByEmail(ctx context.Context, email string) (*Client, error) {
	return s.repo.FindByEmail(ctx, email)
}

// checkEmailUnique rejects a second client with the same email.
func (s *Service) checkEmailUnique(ctx context.Context, c *Client) error {
	if c.Email == nil || *c.Email == "" {
		return nil
	}

	existing, err := s.repo.FindByEmail(ctx, *c.Email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != c.ID && !id.IsNil(existing.ID) {
		return apperror.NewDuplicate("client", "email", *c.Email)
	}
	return nil
}
