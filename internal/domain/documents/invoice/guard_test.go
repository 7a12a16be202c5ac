package invoice

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripdesk/internal/core/apperror"
	"tripdesk/internal/core/id"
	"tripdesk/internal/domain"
)

type mockRepo struct {
	byID    map[id.ID]*Invoice
	byOrder map[id.ID]id.ID
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		byID:    make(map[id.ID]*Invoice),
		byOrder: make(map[id.ID]id.ID),
	}
}

func (r *mockRepo) Create(_ context.Context, inv *Invoice) error {
	if _, ok := r.byOrder[inv.OrderID]; ok {
		return apperror.NewDuplicate("invoice", "orderId", inv.OrderID.String())
	}
	cp := *inv
	r.byID[inv.ID] = &cp
	r.byOrder[inv.OrderID] = inv.ID
	return nil
}

func (r *mockRepo) GetByID(_ context.Context, invoiceID id.ID) (*Invoice, error) {
	inv, ok := r.byID[invoiceID]
	if !ok {
		return nil, apperror.NewNotFound("invoice", invoiceID.String())
	}
	cp := *inv
	return &cp, nil
}

func (r *mockRepo) GetByNumber(_ context.Context, number string) (*Invoice, error) {
	for _, inv := range r.byID {
		if inv.Number == number {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("invoice", number)
}

func (r *mockRepo) GetForUpdate(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	return r.GetByID(ctx, invoiceID)
}

func (r *mockRepo) GetByOrderID(ctx context.Context, orderID id.ID) (*Invoice, error) {
	invoiceID, ok := r.byOrder[orderID]
	if !ok {
		return nil, apperror.NewNotFound("invoice", orderID.String())
	}
	return r.GetByID(ctx, invoiceID)
}

func (r *mockRepo) GetByOrderIDForUpdate(ctx context.Context, orderID id.ID) (*Invoice, error) {
	return r.GetByOrderID(ctx, orderID)
}

func (r *mockRepo) UpdateAmounts(_ context.Context, invoiceID id.ID, exclTax, tax, inclTax decimal.Decimal) error {
	inv, ok := r.byID[invoiceID]
	if !ok {
		return apperror.NewNotFound("invoice", invoiceID.String())
	}
	inv.AmountExclTax = exclTax
	inv.TaxAmount = tax
	inv.AmountInclTax = inclTax
	return nil
}

func (r *mockRepo) Update(_ context.Context, inv *Invoice) error {
	if _, ok := r.byID[inv.ID]; !ok {
		return apperror.NewNotFound("invoice", inv.ID.String())
	}
	cp := *inv
	r.byID[inv.ID] = &cp
	return nil
}

func (r *mockRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*Invoice], error) {
	res := domain.ListResult[*Invoice]{Limit: filter.Limit, Offset: filter.Offset}
	for _, inv := range r.byID {
		res.Items = append(res.Items, inv)
	}
	res.TotalCount = int64(len(res.Items))
	return res, nil
}

func seedInvoice(t *testing.T, repo *mockRepo, status Status, total int64) *Invoice {
	t.Helper()
	inv := New(id.New(), decimal.NewFromInt(total), "EUR")
	inv.Number = "INV-2026-0001"
	inv.Status = status
	require.NoError(t, repo.Create(context.Background(), inv))
	return inv
}

func TestGuard_OnOrderPriceChange(t *testing.T) {
	ctx := context.Background()

	t.Run("no invoice lets the change through", func(t *testing.T) {
		guard := NewGuard(newMockRepo())
		assert.NoError(t, guard.OnOrderPriceChange(ctx, id.New(), decimal.NewFromInt(500)))
	})

	for _, status := range []Status{StatusPending, StatusUnpaid} {
		t.Run("open "+string(status)+" invoice mirrors the new price", func(t *testing.T) {
			repo := newMockRepo()
			inv := seedInvoice(t, repo, status, 1000)
			inv.TaxAmount = decimal.NewFromInt(50) // stale tax gets reset by the mirror
			require.NoError(t, repo.Update(ctx, inv))

			guard := NewGuard(repo)
			require.NoError(t, guard.OnOrderPriceChange(ctx, inv.OrderID, decimal.NewFromInt(1337)))

			got, err := repo.GetByID(ctx, inv.ID)
			require.NoError(t, err)
			assert.True(t, got.AmountExclTax.Equal(decimal.NewFromInt(1337)))
			assert.True(t, got.AmountInclTax.Equal(decimal.NewFromInt(1337)))
			assert.True(t, got.TaxAmount.IsZero())
			assert.Equal(t, status, got.Status, "mirroring must not touch the status")
		})
	}

	for _, status := range []Status{StatusPaid, StatusCancelled} {
		t.Run("terminal "+string(status)+" invoice vetoes the change", func(t *testing.T) {
			repo := newMockRepo()
			inv := seedInvoice(t, repo, status, 1000)

			guard := NewGuard(repo)
			err := guard.OnOrderPriceChange(ctx, inv.OrderID, decimal.NewFromInt(1337))
			require.Error(t, err)
			assert.True(t, apperror.IsImmutableInvoice(err))

			got, err := repo.GetByID(ctx, inv.ID)
			require.NoError(t, err)
			assert.True(t, got.AmountInclTax.Equal(decimal.NewFromInt(1000)),
				"vetoed change must leave the amounts untouched")
		})
	}
}
