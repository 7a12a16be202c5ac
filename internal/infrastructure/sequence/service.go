// Package sequence provides the PostgreSQL-backed implementation of the
// document numbering engine. Counter state lives in the sequence_configs
// table; every issued number comes out of a row-locked transaction.
package sequence

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cenkalti/backoff/v4"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tripdesk/internal/core/apperror"
	coresequence "tripdesk/internal/core/sequence"
	"tripdesk/internal/core/tx"
	"tripdesk/internal/infrastructure/storage/postgres"
	"tripdesk/pkg/logger"
)

const configTable = "sequence_configs"

// configStore abstracts the sequence_configs row access so the issuing logic
// can be tested without a database.
type configStore interface {
	Get(ctx context.Context, docType coresequence.DocumentType) (coresequence.Config, error)
	// GetForUpdate locks the type's row for the rest of the transaction.
	GetForUpdate(ctx context.Context, docType coresequence.DocumentType) (coresequence.Config, error)
	Save(ctx context.Context, cfg coresequence.Config) error
	// Insert creates the row if absent; existing rows are left untouched.
	Insert(ctx context.Context, cfg coresequence.Config) error
}

// Service implements coresequence.Issuer and coresequence.Registry on
// PostgreSQL.
type Service struct {
	txManager  tx.Manager
	store      configStore
	maxRetries uint64
}

// Ensure compile-time interface compliance.
var (
	_ coresequence.Issuer   = (*Service)(nil)
	_ coresequence.Registry = (*Service)(nil)
)

// New creates a sequence service backed by the given transaction manager.
func New(txManager *postgres.TxManager) *Service {
	return &Service{
		txManager:  txManager,
		store:      &pgConfigStore{txManager: txManager},
		maxRetries: 3,
	}
}

// newWithStore is used by tests to substitute the row store.
func newWithStore(txManager tx.Manager, store configStore) *Service {
	return &Service{
		txManager:  txManager,
		store:      store,
		maxRetries: 3,
	}
}

// IssueNumber issues the next number for a document type. The counter row is
// locked, reset if the period rolled over, incremented, rendered and saved in
// one transaction, so concurrent callers serialize on the row lock and an
// aborted caller spends no counter value. Transient concurrency failures are
// retried with exponential backoff before surfacing as a conflict.
func (s *Service) IssueNumber(ctx context.Context, docType coresequence.DocumentType, now time.Time) (string, error) {
	var number string

	operation := func() error {
		err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
			cfg, err := s.store.GetForUpdate(ctx, docType)
			if err != nil {
				return err
			}

			if coresequence.ShouldReset(cfg.ResetInterval, cfg.LastReset, now) {
				cfg.Counter = 0
				cfg.LastReset = now
			}
			cfg.Counter++

			number = coresequence.Render(cfg, cfg.Counter, now)
			return s.store.Save(ctx, cfg)
		})
		if err == nil {
			return nil
		}
		if postgres.IsRetryable(err) {
			logger.Warn(ctx, "number issue retry", "type", docType, "error", err)
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		if postgres.IsRetryable(err) {
			return "", apperror.NewConcurrencyConflict("issue number", err).
				WithDetail("type", string(docType))
		}
		return "", err
	}

	return number, nil
}

// GetConfig retrieves the counter configuration for a type.
func (s *Service) GetConfig(ctx context.Context, docType coresequence.DocumentType) (*coresequence.Config, error) {
	cfg, err := s.store.Get(ctx, docType)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UpdateConfig applies an administrative patch. The counter and last reset
// stamp are issuer-owned and survive every patch untouched.
func (s *Service) UpdateConfig(ctx context.Context, docType coresequence.DocumentType, patch coresequence.ConfigPatch) (*coresequence.Config, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated coresequence.Config
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		cfg, err := s.store.GetForUpdate(ctx, docType)
		if err != nil {
			return err
		}
		updated = patch.Apply(cfg)
		return s.store.Save(ctx, updated)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sequence config updated", "type", docType)
	return &updated, nil
}

// Provision creates the counter row for a type if it does not exist yet.
// Called at bootstrap; an existing row keeps its counter state.
func (s *Service) Provision(ctx context.Context, cfg coresequence.Config) error {
	if cfg.Format == "" {
		cfg.Format = coresequence.DefaultFormat
	}
	if err := coresequence.ValidateFormat(cfg.Format); err != nil {
		return err
	}
	return s.store.Insert(ctx, cfg)
}

// --- PostgreSQL row store ---

type pgConfigStore struct {
	txManager *postgres.TxManager
}

func (p *pgConfigStore) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (p *pgConfigStore) selectCols() []string {
	return postgres.ExtractDBColumns[coresequence.Config]()
}

func (p *pgConfigStore) get(ctx context.Context, docType coresequence.DocumentType, forUpdate bool) (coresequence.Config, error) {
	var cfg coresequence.Config

	q := p.builder().
		Select(p.selectCols()...).
		From(configTable).
		Where(squirrel.Eq{"type": docType})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return cfg, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, p.txManager.GetQuerier(ctx), &cfg, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return cfg, apperror.NewNotFound("sequence config", string(docType))
		}
		return cfg, fmt.Errorf("get sequence config: %w", err)
	}
	return cfg, nil
}

func (p *pgConfigStore) Get(ctx context.Context, docType coresequence.DocumentType) (coresequence.Config, error) {
	return p.get(ctx, docType, false)
}

func (p *pgConfigStore) GetForUpdate(ctx context.Context, docType coresequence.DocumentType) (coresequence.Config, error) {
	return p.get(ctx, docType, true)
}

func (p *pgConfigStore) Save(ctx context.Context, cfg coresequence.Config) error {
	sql, args, err := p.builder().
		Update(configTable).
		Set("prefix", cfg.Prefix).
		Set("format", cfg.Format).
		Set("counter", cfg.Counter).
		Set("reset_interval", cfg.ResetInterval).
		Set("last_reset", cfg.LastReset).
		Where(squirrel.Eq{"type": cfg.Type}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := p.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("save sequence config: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("sequence config", string(cfg.Type))
	}
	return nil
}

func (p *pgConfigStore) Insert(ctx context.Context, cfg coresequence.Config) error {
	sql, args, err := p.builder().
		Insert(configTable).
		SetMap(postgres.StructToMap(cfg)).
		Suffix("ON CONFLICT (type) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := p.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("provision sequence config: %w", err)
	}
	return nil
}
