package voucher

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
	"tripdesk/internal/domain/documents/invoice"
)

type mockRepo struct {
	vouchers map[id.ID]*PaymentVoucher
}

func newMockRepo() *mockRepo {
	return &mockRepo{vouchers: make(map[id.ID]*PaymentVoucher)}
}

func (r *mockRepo) Create(_ context.Context, v *PaymentVoucher) error {
	cp := *v
	r.vouchers[v.ID] = &cp
	return nil
}

func (r *mockRepo) GetByID(_ context.Context, voucherID id.ID) (*PaymentVoucher, error) {
	v, ok := r.vouchers[voucherID]
	if !ok {
		return nil, apperror.NewNotFound("payment voucher", voucherID.String())
	}
	cp := *v
	return &cp, nil
}

func (r *mockRepo) GetByNumber(_ context.Context, number string) (*PaymentVoucher, error) {
	for _, v := range r.vouchers {
		if v.Number == number {
			cp := *v
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("payment voucher", number)
}

func (r *mockRepo) ListByInvoice(_ context.Context, invoiceID id.ID) ([]*PaymentVoucher, error) {
	var out []*PaymentVoucher
	for _, v := range r.vouchers {
		if v.InvoiceID == invoiceID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *mockRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*PaymentVoucher], error) {
	res := domain.ListResult[*PaymentVoucher]{Limit: filter.Limit, Offset: filter.Offset}
	for _, v := range r.vouchers {
		res.Items = append(res.Items, v)
	}
	res.TotalCount = int64(len(res.Items))
	return res, nil
}

type mockInvoiceRepo struct {
	invoices map[id.ID]*invoice.Invoice
}

func (r *mockInvoiceRepo) Create(_ context.Context, inv *invoice.Invoice) error {
	r.invoices[inv.ID] = inv
	return nil
}

func (r *mockInvoiceRepo) GetByID(_ context.Context, invoiceID id.ID) (*invoice.Invoice, error) {
	inv, ok := r.invoices[invoiceID]
	if !ok {
		return nil, apperror.NewNotFound("invoice", invoiceID.String())
	}
	cp := *inv
	return &cp, nil
}

func (r *mockInvoiceRepo) GetByNumber(_ context.Context, number string) (*invoice.Invoice, error) {
	return nil, apperror.NewNotFound("invoice", number)
}

func (r *mockInvoiceRepo) GetForUpdate(ctx context.Context, invoiceID id.ID) (*invoice.Invoice, error) {
	return r.GetByID(ctx, invoiceID)
}

func (r *mockInvoiceRepo) GetByOrderID(_ context.Context, orderID id.ID) (*invoice.Invoice, error) {
	return nil, apperror.NewNotFound("invoice", orderID.String())
}

func (r *mockInvoiceRepo) GetByOrderIDForUpdate(ctx context.Context, orderID id.ID) (*invoice.Invoice, error) {
	return r.GetByOrderID(ctx, orderID)
}

func (r *mockInvoiceRepo) UpdateAmounts(_ context.Context, invoiceID id.ID, exclTax, tax, inclTax decimal.Decimal) error {
	inv := r.invoices[invoiceID]
	inv.AmountExclTax, inv.TaxAmount, inv.AmountInclTax = exclTax, tax, inclTax
	return nil
}

func (r *mockInvoiceRepo) Update(_ context.Context, inv *invoice.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *mockInvoiceRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*invoice.Invoice], error) {
	return domain.ListResult[*invoice.Invoice]{}, nil
}

func newTestService(t *testing.T, status invoice.Status, total int64) (*Service, *mockInvoiceRepo, *invoice.Invoice) {
	t.Helper()
	inv := invoice.New(id.New(), decimal.NewFromInt(total), "EUR")
	inv.Number = "INV-2026-0001"
	inv.Status = status

	invoices := &mockInvoiceRepo{invoices: map[id.ID]*invoice.Invoice{inv.ID: inv}}
	svc := NewService(newMockRepo(), invoices, &tx.MockManager{}, &sequence.MockIssuer{})
	return svc, invoices, inv
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("partial payment keeps invoice open", func(t *testing.T) {
		svc, invoices, inv := newTestService(t, invoice.StatusUnpaid, 1000)

		v, err := svc.Create(ctx, CreateInput{InvoiceID: inv.ID, Amount: decimal.NewFromInt(400), Method: MethodCard})
		require.NoError(t, err)
		assert.NotEmpty(t, v.Number)

		got, err := invoices.GetByID(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, invoice.StatusUnpaid, got.Status)
	})

	t.Run("covering payment settles the invoice", func(t *testing.T) {
		svc, invoices, inv := newTestService(t, invoice.StatusUnpaid, 1000)

		_, err := svc.Create(ctx, CreateInput{InvoiceID: inv.ID, Amount: decimal.NewFromInt(400), Method: MethodCard})
		require.NoError(t, err)
		_, err = svc.Create(ctx, CreateInput{InvoiceID: inv.ID, Amount: decimal.NewFromInt(600), Method: MethodTransfer})
		require.NoError(t, err)

		got, err := invoices.GetByID(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, invoice.StatusPaid, got.Status)
	})

	t.Run("terminal invoice rejects payments", func(t *testing.T) {
		for _, status := range []invoice.Status{invoice.StatusPaid, invoice.StatusCancelled} {
			svc, _, inv := newTestService(t, status, 1000)
			_, err := svc.Create(ctx, CreateInput{InvoiceID: inv.ID, Amount: decimal.NewFromInt(100), Method: MethodCash})
			require.Error(t, err)
			assert.True(t, apperror.IsImmutableInvoice(err))
		}
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		svc, _, inv := newTestService(t, invoice.StatusUnpaid, 1000)
		_, err := svc.Create(ctx, CreateInput{InvoiceID: inv.ID, Amount: decimal.Zero, Method: MethodCash})
		assert.Error(t, err)
	})
}
