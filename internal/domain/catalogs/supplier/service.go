package supplier

import (
	"tripdesk/internal/core/sequence"
	"tripdesk/internal/core/tx"
	"tripdesk/internal/domain"
)

// Service provides business logic for the Supplier catalog.
type Service struct {
	*domain.CatalogService[*Supplier]
	repo Repository
}

// NewService creates a new Supplier service.
func NewService(repo Repository, txm tx.Manager, issuer sequence.Issuer) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Supplier]{
		Repo:       repo,
		TxManager:  txm,
		Issuer:     issuer,
		EntityName: "supplier",
		CodeType:   sequence.DocumentTypeSupplier,
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}
