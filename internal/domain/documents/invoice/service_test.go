package invoice

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripdesk/internal/core/apperror"
	"tripdesk/internal/core/id"
	"tripdesk/internal/core/sequence"
	"tripdesk/internal/core/tx"
	"tripdesk/internal/domain/documents/order"
)

type mockOrderSource struct {
	orders map[id.ID]*order.Order
}

func (s *mockOrderSource) GetForUpdate(_ context.Context, orderID id.ID) (*order.Order, error) {
	o, ok := s.orders[orderID]
	if !ok {
		return nil, apperror.NewNotFound("order", orderID.String())
	}
	return o, nil
}

func newTestService(t *testing.T) (*Service, *mockRepo, *order.Order) {
	t.Helper()
	o := order.New(id.New())
	o.Number = "ORD-2026-0001"
	o.TotalAmount = decimal.NewFromInt(2500)

	repo := newMockRepo()
	orders := &mockOrderSource{orders: map[id.ID]*order.Order{o.ID: o}}
	svc := NewService(repo, orders, &tx.MockManager{}, &sequence.MockIssuer{})
	return svc, repo, o
}

func TestService_CreateForOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("mirrors order total", func(t *testing.T) {
		svc, _, o := newTestService(t)

		inv, err := svc.CreateForOrder(ctx, o.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, inv.Number)
		assert.Equal(t, StatusPending, inv.Status)
		assert.True(t, inv.AmountExclTax.Equal(o.TotalAmount))
		assert.True(t, inv.AmountInclTax.Equal(o.TotalAmount))
		assert.True(t, inv.TaxAmount.IsZero())
	})

	t.Run("second invoice for same order is rejected", func(t *testing.T) {
		svc, _, o := newTestService(t)

		_, err := svc.CreateForOrder(ctx, o.ID)
		require.NoError(t, err)

		_, err = svc.CreateForOrder(ctx, o.ID)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
	})

	t.Run("cancelled order cannot be invoiced", func(t *testing.T) {
		svc, _, o := newTestService(t)
		o.Status = order.StatusCancelled

		_, err := svc.CreateForOrder(ctx, o.ID)
		assert.Error(t, err)
	})

	t.Run("unknown order", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.CreateForOrder(ctx, id.New())
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestService_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("pending to paid", func(t *testing.T) {
		svc, _, o := newTestService(t)
		inv, err := svc.CreateForOrder(ctx, o.ID)
		require.NoError(t, err)

		updated, err := svc.SetStatus(ctx, inv.ID, StatusPaid)
		require.NoError(t, err)
		assert.Equal(t, StatusPaid, updated.Status)
	})

	t.Run("unpaid bounces back to pending", func(t *testing.T) {
		svc, _, o := newTestService(t)
		inv, err := svc.CreateForOrder(ctx, o.ID)
		require.NoError(t, err)

		_, err = svc.SetStatus(ctx, inv.ID, StatusUnpaid)
		require.NoError(t, err)
		updated, err := svc.SetStatus(ctx, inv.ID, StatusPending)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, updated.Status)
	})

	t.Run("terminal invoice rejects transitions", func(t *testing.T) {
		svc, _, o := newTestService(t)
		inv, err := svc.CreateForOrder(ctx, o.ID)
		require.NoError(t, err)

		_, err = svc.SetStatus(ctx, inv.ID, StatusPaid)
		require.NoError(t, err)

		_, err = svc.SetStatus(ctx, inv.ID, StatusCancelled)
		require.Error(t, err)
		assert.True(t, apperror.IsImmutableInvoice(err))
	})
}

func TestStatus_CanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusUnpaid, true},
		{StatusPending, StatusPaid, true},
		{StatusPending, StatusCancelled, true},
		{StatusUnpaid, StatusPending, true},
		{StatusUnpaid, StatusPaid, true},
		{StatusUnpaid, StatusCancelled, true},
		{StatusPaid, StatusCancelled, false},
		{StatusPaid, StatusPending, false},
		{StatusCancelled, StatusPaid, false},
		{StatusCancelled, StatusUnpaid, false},
		{StatusPending, StatusPending, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}
