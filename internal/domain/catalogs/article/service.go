package article

import (
	"context"
	"fmt"
	"time"

	"tripdesk/internal/core/id"
	"tripdesk/internal/core/sequence"
	"tripdesk/internal/core/tx"
	"tripdesk/internal/domain"
)

// Service provides business logic for the Article catalog, including the
// kind-specific detail payloads.
type Service struct {
	*domain.CatalogService[*Article]
	repo      Repository
	details   *DetailRegistry
	txManager tx.Manager
	issuer    sequence.Issuer
}

// NewService creates a new Article service.
func NewService(repo Repository, details *DetailRegistry, txm tx.Manager, issuer sequence.Issuer) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Article]{
		Repo:       repo,
		TxManager:  txm,
		Issuer:     issuer,
		EntityName: "article",
		CodeType:   sequence.DocumentTypeArticle,
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
		details:        details,
		txManager:      txm,
		issuer:         issuer,
	}
}

// Create creates an article together with its kind-specific detail row.
// The detail insert rides in the same transaction as the parent row, so a
// failed detail write leaves no half-created article behind. Code issuing
// stays in its own short transaction ahead of the business one.
func (s *Service) Create(ctx context.Context, art *Article) error {
	if err := art.Validate(ctx); err != nil {
		return err
	}

	store, err := s.details.ForKind(art.Kind)
	if err != nil {
		return err
	}

	if art.Code == "" && s.issuer != nil {
		code, err := s.issuer.IssueNumber(ctx, sequence.DocumentTypeArticle, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("generate article code: %w", err)
		}
		art.Code = code
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, art); err != nil {
			return fmt.Errorf("create article: %w", err)
		}
		if art.Details != nil {
			if err := store.Save(ctx, art.ID, art.Details); err != nil {
				return fmt.Errorf("save %s details: %w", art.Kind, err)
			}
		}
		return nil
	})
}

// Update updates an article and replaces its detail row in the same
// transaction. The article's kind is immutable after creation.
func (s *Service) Update(ctx context.Context, art *Article) error {
	if err := art.Validate(ctx); err != nil {
		return err
	}

	store, err := s.details.ForKind(art.Kind)
	if err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, art); err != nil {
			return fmt.Errorf("update article: %w", err)
		}
		if art.Details != nil {
			if err := store.Save(ctx, art.ID, art.Details); err != nil {
				return fmt.Errorf("save %s details: %w", art.Kind, err)
			}
		}
		return nil
	})
}

// Delete soft-deletes an article and removes its detail row.
func (s *Service) Delete(ctx context.Context, articleID id.ID) error {
	art, err := s.CatalogService.GetByID(ctx, articleID)
	if err != nil {
		return err
	}

	store, err := s.details.ForKind(art.Kind)
	if err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.SetDeletionMark(ctx, articleID, true); err != nil {
			return fmt.Errorf("delete article: %w", err)
		}
		return store.Delete(ctx, articleID)
	})
}

// GetByID retrieves an article with its kind-specific details attached.
func (s *Service) GetByID(ctx context.Context, articleID id.ID) (*Article, error) {
	art, err := s.CatalogService.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	store, err := s.details.ForKind(art.Kind)
	if err != nil {
		return nil, err
	}
	d, err := store.Load(ctx, art.ID)
	if err != nil {
		return nil, fmt.Errorf("load %s details: %w", art.Kind, err)
	}
	art.Details = d

	return art, nil
}

// ListBySupplier retrieves articles provided by one supplier.
func (s *Service) ListBySupplier(ctx context.Context, supplierID id.ID, filter domain.ListFilter) (domain.ListResult[*Article], error) {
	return s.repo.ListBySupplier(ctx, supplierID, filter)
}
