package sequence

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripdesk/internal/core/apperror"
	coresequence "tripdesk/internal/core/sequence"
	"tripdesk/internal/core/tx"
)

// fakeStore mimics the row-lock semantics of the real table: GetForUpdate
// blocks until the previous holder saved, so concurrent issuers serialize.
type fakeStore struct {
	mu   sync.Mutex
	cfgs map[coresequence.DocumentType]coresequence.Config
}

func newFakeStore(cfgs ...coresequence.Config) *fakeStore {
	s := &fakeStore{cfgs: make(map[coresequence.DocumentType]coresequence.Config)}
	for _, cfg := range cfgs {
		s.cfgs[cfg.Type] = cfg
	}
	return s
}

func (s *fakeStore) Get(_ context.Context, docType coresequence.DocumentType) (coresequence.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.cfgs[docType]
	if !ok {
		return cfg, apperror.NewNotFound("sequence config", string(docType))
	}
	return cfg, nil
}

func (s *fakeStore) GetForUpdate(_ context.Context, docType coresequence.DocumentType) (coresequence.Config, error) {
	s.mu.Lock()
	cfg, ok := s.cfgs[docType]
	if !ok {
		s.mu.Unlock()
		return cfg, apperror.NewNotFound("sequence config", string(docType))
	}
	return cfg, nil
}

func (s *fakeStore) Save(_ context.Context, cfg coresequence.Config) error {
	s.cfgs[cfg.Type] = cfg
	s.mu.Unlock()
	return nil
}

func (s *fakeStore) Insert(_ context.Context, cfg coresequence.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cfgs[cfg.Type]; ok {
		return nil
	}
	s.cfgs[cfg.Type] = cfg
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func invoiceConfig(counter int64, lastReset time.Time) coresequence.Config {
	return coresequence.Config{
		Type:          coresequence.DocumentTypeInvoice,
		Prefix:        "INV",
		Format:        coresequence.DefaultFormat,
		Counter:       counter,
		ResetInterval: coresequence.ResetYearly,
		LastReset:     lastReset,
	}
}

func TestService_IssueNumber(t *testing.T) {
	ctx := context.Background()

	t.Run("sequential numbers", func(t *testing.T) {
		store := newFakeStore(invoiceConfig(0, date(2025, time.March, 1)))
		svc := newWithStore(&tx.MockManager{}, store)

		first, err := svc.IssueNumber(ctx, coresequence.DocumentTypeInvoice, date(2025, time.March, 10))
		require.NoError(t, err)
		assert.Equal(t, "INV-2025-0001", first)

		second, err := svc.IssueNumber(ctx, coresequence.DocumentTypeInvoice, date(2025, time.March, 11))
		require.NoError(t, err)
		assert.Equal(t, "INV-2025-0002", second)
	})

	t.Run("yearly reset at period boundary", func(t *testing.T) {
		store := newFakeStore(invoiceConfig(37, date(2025, time.December, 30)))
		svc := newWithStore(&tx.MockManager{}, store)

		got, err := svc.IssueNumber(ctx, coresequence.DocumentTypeInvoice, date(2026, time.January, 2))
		require.NoError(t, err)
		assert.Equal(t, "INV-2026-0001", got)

		saved := store.cfgs[coresequence.DocumentTypeInvoice]
		assert.Equal(t, int64(1), saved.Counter)
		assert.Equal(t, date(2026, time.January, 2), saved.LastReset)
	})

	t.Run("monthly reset", func(t *testing.T) {
		store := newFakeStore(coresequence.Config{
			Type:          coresequence.DocumentTypePaymentVoucher,
			Prefix:        "PV",
			Format:        "{PREFIX}-{YYYY}{MM}-{SEQ}",
			Counter:       12,
			ResetInterval: coresequence.ResetMonthly,
			LastReset:     date(2025, time.February, 1),
		})
		svc := newWithStore(&tx.MockManager{}, store)

		got, err := svc.IssueNumber(ctx, coresequence.DocumentTypePaymentVoucher, date(2025, time.March, 1))
		require.NoError(t, err)
		assert.Equal(t, "PV-202503-0001", got)

		saved := store.cfgs[coresequence.DocumentTypePaymentVoucher]
		assert.Equal(t, int64(1), saved.Counter)
		assert.Equal(t, date(2025, time.March, 1), saved.LastReset, "reset anchor must move to the issue date")
	})

	t.Run("no reset within period", func(t *testing.T) {
		store := newFakeStore(invoiceConfig(13, date(2025, time.January, 5)))
		svc := newWithStore(&tx.MockManager{}, store)

		got, err := svc.IssueNumber(ctx, coresequence.DocumentTypeInvoice, date(2025, time.November, 20))
		require.NoError(t, err)
		assert.Equal(t, "INV-2025-0014", got)

		saved := store.cfgs[coresequence.DocumentTypeInvoice]
		assert.Equal(t, int64(14), saved.Counter)
		assert.Equal(t, date(2025, time.January, 5), saved.LastReset, "reset anchor must not move within the period")
	})

	t.Run("unprovisioned type", func(t *testing.T) {
		svc := newWithStore(&tx.MockManager{}, newFakeStore())
		_, err := svc.IssueNumber(ctx, coresequence.DocumentTypeOrder, date(2025, time.March, 1))
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestService_IssueNumber_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(invoiceConfig(0, date(2025, time.June, 1)))
	svc := newWithStore(&tx.MockManager{}, store)

	const n = 50
	numbers := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			num, err := svc.IssueNumber(ctx, coresequence.DocumentTypeInvoice, date(2025, time.June, 15))
			if assert.NoError(t, err) {
				numbers <- num
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]struct{}, n)
	for num := range numbers {
		_, dup := seen[num]
		assert.Falsef(t, dup, "duplicate number %s", num)
		seen[num] = struct{}{}
	}
	assert.Len(t, seen, n)
}

// flakyStore fails GetForUpdate a set number of times before delegating,
// simulating lock waits that time out under contention.
type flakyStore struct {
	*fakeStore
	failures int
	err      error
}

func (s *flakyStore) GetForUpdate(ctx context.Context, docType coresequence.DocumentType) (coresequence.Config, error) {
	if s.failures > 0 {
		s.failures--
		return coresequence.Config{}, s.err
	}
	return s.fakeStore.GetForUpdate(ctx, docType)
}

func TestService_IssueNumber_RetriesLockTimeout(t *testing.T) {
	ctx := context.Background()
	lockTimeout := fmt.Errorf("lock sequence row: %w", &pgconn.PgError{Code: "55P03"})

	t.Run("transient lock timeout is retried", func(t *testing.T) {
		store := &flakyStore{
			fakeStore: newFakeStore(invoiceConfig(0, date(2025, time.March, 1))),
			failures:  1,
			err:       lockTimeout,
		}
		svc := newWithStore(&tx.MockManager{}, store)

		got, err := svc.IssueNumber(ctx, coresequence.DocumentTypeInvoice, date(2025, time.March, 10))
		require.NoError(t, err)
		assert.Equal(t, "INV-2025-0001", got)
	})

	t.Run("exhausted retries surface as concurrency conflict", func(t *testing.T) {
		store := &flakyStore{
			fakeStore: newFakeStore(invoiceConfig(0, date(2025, time.March, 1))),
			failures:  10,
			err:       lockTimeout,
		}
		svc := newWithStore(&tx.MockManager{}, store)

		_, err := svc.IssueNumber(ctx, coresequence.DocumentTypeInvoice, date(2025, time.March, 10))
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeConcurrencyConflict, appErr.Code)
	})

	t.Run("permanent errors are not retried", func(t *testing.T) {
		store := &flakyStore{
			fakeStore: newFakeStore(invoiceConfig(0, date(2025, time.March, 1))),
			failures:  10,
			err:       fmt.Errorf("lock sequence row: %w", &pgconn.PgError{Code: "42P01"}),
		}
		svc := newWithStore(&tx.MockManager{}, store)

		_, err := svc.IssueNumber(ctx, coresequence.DocumentTypeInvoice, date(2025, time.March, 10))
		require.Error(t, err)
		assert.Equal(t, 9, store.failures, "only one attempt expected")
	})
}

func TestService_UpdateConfig(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(invoiceConfig(42, date(2025, time.January, 1)))
	svc := newWithStore(&tx.MockManager{}, store)

	newPrefix := "FACT"
	newFormat := "{PREFIX}-{YY}-{SEQ}"
	updated, err := svc.UpdateConfig(ctx, coresequence.DocumentTypeInvoice, coresequence.ConfigPatch{
		Prefix: &newPrefix,
		Format: &newFormat,
	})
	require.NoError(t, err)
	assert.Equal(t, "FACT", updated.Prefix)
	assert.Equal(t, newFormat, updated.Format)
	assert.Equal(t, int64(42), updated.Counter, "patch must not touch the counter")
	assert.Equal(t, date(2025, time.January, 1), updated.LastReset)

	// The counter continues from where it was, under the new template.
	got, err := svc.IssueNumber(ctx, coresequence.DocumentTypeInvoice, date(2025, time.July, 1))
	require.NoError(t, err)
	assert.Equal(t, "FACT-25-0043", got)
}

func TestService_UpdateConfig_RejectsMalformedTemplate(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(invoiceConfig(0, date(2025, time.January, 1)))
	svc := newWithStore(&tx.MockManager{}, store)

	bad := "{PREFIX}-{YYYY}" // no {SEQ}
	_, err := svc.UpdateConfig(ctx, coresequence.DocumentTypeInvoice, coresequence.ConfigPatch{Format: &bad})
	require.Error(t, err)

	// Configuration must be unchanged after the rejected patch.
	cfg, err := svc.GetConfig(ctx, coresequence.DocumentTypeInvoice)
	require.NoError(t, err)
	assert.Equal(t, coresequence.DefaultFormat, cfg.Format)
}

func TestService_Provision(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(invoiceConfig(99, date(2025, time.January, 1)))
	svc := newWithStore(&tx.MockManager{}, store)

	// Provisioning an existing type keeps its counter state.
	require.NoError(t, svc.Provision(ctx, invoiceConfig(0, time.Time{})))
	cfg, err := svc.GetConfig(ctx, coresequence.DocumentTypeInvoice)
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.Counter)

	// New types get the default template when none is given.
	require.NoError(t, svc.Provision(ctx, coresequence.Config{
		Type:          coresequence.DocumentTypeOrder,
		Prefix:        "ORD",
		ResetInterval: coresequence.ResetYearly,
	}))
	cfg, err = svc.GetConfig(ctx, coresequence.DocumentTypeOrder)
	require.NoError(t, err)
	assert.Equal(t, coresequence.DefaultFormat, cfg.Format)
}
