package order

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
	"tripdesk/internal/domain"
)

type mockRepo struct {
	orders map[id.ID]*Order
	lines  map[id.ID][]Line
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		orders: make(map[id.ID]*Order),
		lines:  make(map[id.ID][]Line),
	}
}

func (r *mockRepo) Create(_ context.Context, o *Order) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *mockRepo) GetByID(_ context.Context, orderID id.ID) (*Order, error) {
	o, ok := r.orders[orderID]
	if !ok {
		return nil, apperror.NewNotFound("order", orderID.String())
	}
	cp := *o
	return &cp, nil
}

func (r *mockRepo) GetByNumber(_ context.Context, number string) (*Order, error) {
	for _, o := range r.orders {
		if o.Number == number {
			cp := *o
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("order", number)
}

func (r *mockRepo) GetForUpdate(ctx context.Context, orderID id.ID) (*Order, error) {
	return r.GetByID(ctx, orderID)
}

func (r *mockRepo) Update(_ context.Context, o *Order) error {
	if _, ok := r.orders[o.ID]; !ok {
		return apperror.NewNotFound("order", o.ID.String())
	}
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *mockRepo) SetDeletionMark(_ context.Context, orderID id.ID, marked bool) error {
	o, ok := r.orders[orderID]
	if !ok {
		return apperror.NewNotFound("order", orderID.String())
	}
	o.DeletionMark = marked
	return nil
}

func (r *mockRepo) SaveLines(_ context.Context, orderID id.ID, lines []Line) error {
	r.lines[orderID] = append([]Line(nil), lines...)
	return nil
}

func (r *mockRepo) GetLines(_ context.Context, orderID id.ID) ([]Line, error) {
	return r.lines[orderID], nil
}

func (r *mockRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*Order], error) {
	res := domain.ListResult[*Order]{Limit: filter.Limit, Offset: filter.Offset}
	for _, o := range r.orders {
		res.Items = append(res.Items, o)
	}
	res.TotalCount = int64(len(res.Items))
	return res, nil
}

type mockGuard struct {
	calls int
	err   error
}

func (g *mockGuard) OnOrderPriceChange(_ context.Context, _ id.ID, _ decimal.Decimal) error {
	g.calls++
	return g.err
}

func newTestService(guard PriceGuard) (*Service, *mockRepo) {
	repo := newMockRepo()
	svc := NewService(repo, &tx.MockManager{}, &sequence.MockIssuer{}, guard)
	return svc, repo
}

func testOrder(t *testing.T) *Order {
	t.Helper()
	o := New(id.New())
	o.Lines = []Line{
		NewLine(id.New(), 2, decimal.NewFromInt(500)),
		NewLine(id.New(), 1, decimal.NewFromInt(250)),
	}
	return o
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(&mockGuard{})

	o := testOrder(t)
	require.NoError(t, svc.Create(ctx, o))

	assert.NotEmpty(t, o.Number)
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(1250)))

	stored, err := svc.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.Number, stored.Number)
	assert.Len(t, stored.Lines, 2)
	assert.Len(t, repo.lines[o.ID], 2)
}

func TestService_ChangePrice(t *testing.T) {
	ctx := context.Background()

	t.Run("guard approves", func(t *testing.T) {
		guard := &mockGuard{}
		svc, _ := newTestService(guard)
		o := testOrder(t)
		require.NoError(t, svc.Create(ctx, o))

		updated, err := svc.ChangePrice(ctx, o.ID, decimal.NewFromInt(999))
		require.NoError(t, err)
		assert.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(999)))
		assert.Equal(t, 1, guard.calls)
	})

	t.Run("guard vetoes", func(t *testing.T) {
		guard := &mockGuard{err: apperror.NewImmutableInvoice(id.New().String(), "PAID")}
		svc, _ := newTestService(guard)
		o := testOrder(t)
		require.NoError(t, svc.Create(ctx, o))
		before := o.TotalAmount

		_, err := svc.ChangePrice(ctx, o.ID, decimal.NewFromInt(999))
		require.Error(t, err)
		assert.True(t, apperror.IsImmutableInvoice(err))

		stored, err := svc.GetByID(ctx, o.ID)
		require.NoError(t, err)
		assert.True(t, stored.TotalAmount.Equal(before), "vetoed change must not alter the total")
	})

	t.Run("unchanged price skips guard", func(t *testing.T) {
		guard := &mockGuard{}
		svc, _ := newTestService(guard)
		o := testOrder(t)
		require.NoError(t, svc.Create(ctx, o))

		_, err := svc.ChangePrice(ctx, o.ID, o.TotalAmount)
		require.NoError(t, err)
		assert.Zero(t, guard.calls)
	})

	t.Run("negative total rejected", func(t *testing.T) {
		svc, _ := newTestService(&mockGuard{})
		_, err := svc.ChangePrice(ctx, id.New(), decimal.NewFromInt(-5))
		assert.Error(t, err)
	})

	t.Run("cancelled order rejected", func(t *testing.T) {
		guard := &mockGuard{}
		svc, _ := newTestService(guard)
		o := testOrder(t)
		require.NoError(t, svc.Create(ctx, o))
		_, err := svc.SetStatus(ctx, o.ID, StatusCancelled)
		require.NoError(t, err)

		_, err = svc.ChangePrice(ctx, o.ID, decimal.NewFromInt(1))
		require.Error(t, err)
		assert.Zero(t, guard.calls)
	})
}

func TestService_Update_RunsGuardOnTotalChange(t *testing.T) {
	ctx := context.Background()
	guard := &mockGuard{}
	svc, _ := newTestService(guard)

	o := testOrder(t)
	require.NoError(t, svc.Create(ctx, o))

	// Same lines, same total: guard must not run.
	require.NoError(t, svc.Update(ctx, o))
	assert.Zero(t, guard.calls)

	o.Lines = append(o.Lines, NewLine(id.New(), 1, decimal.NewFromInt(100)))
	require.NoError(t, svc.Update(ctx, o))
	assert.Equal(t, 1, guard.calls)
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(1350)))
}

func TestService_SetStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(&mockGuard{})

	o := testOrder(t)
	require.NoError(t, svc.Create(ctx, o))

	updated, err := svc.SetStatus(ctx, o.ID, StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, updated.Status)

	// Confirmed orders cannot go back to draft.
	_, err = svc.SetStatus(ctx, o.ID, StatusDraft)
	assert.Error(t, err)

	_, err = svc.SetStatus(ctx, o.ID, StatusCancelled)
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, o.ID, StatusConfirmed)
	assert.Error(t, err)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(&mockGuard{})

	o := testOrder(t)
	require.NoError(t, svc.Create(ctx, o))
	require.NoError(t, svc.Delete(ctx, o.ID))
	assert.True(t, repo.orders[o.ID].DeletionMark)

	confirmed := testOrder(t)
	require.NoError(t, svc.Create(ctx, confirmed))
	_, err := svc.SetStatus(ctx, confirmed.ID, StatusConfirmed)
	require.NoError(t, err)
	assert.Error(t, svc.Delete(ctx, confirmed.ID))
}
