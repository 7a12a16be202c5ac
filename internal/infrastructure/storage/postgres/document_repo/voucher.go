package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tripdesk/internal/core/id"
	"tripdesk/internal/domain/documents/voucher"
	"tripdesk/internal/infrastructure/storage/postgres"
)

const voucherTable = "doc_payment_vouchers"

// VoucherRepo implements voucher.Repository.
type VoucherRepo struct {
	*BaseDocumentRepo[*voucher.PaymentVoucher]
}

// NewVoucherRepo creates a new payment voucher repository.
func NewVoucherRepo(txManager *postgres.TxManager) *VoucherRepo {
	return &VoucherRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*voucher.PaymentVoucher](
			txManager,
			voucherTable,
			postgres.ExtractDBColumns[voucher.PaymentVoucher](),
			func() *voucher.PaymentVoucher { return &voucher.PaymentVoucher{} },
		),
	}
}

// ListByInvoice retrieves all vouchers paying one invoice.
func (r *VoucherRepo) ListByInvoice(ctx context.Context, invoiceID id.ID) ([]*voucher.PaymentVoucher, error) {
	sql, args, err := r.BaseSelect().
		Where(squirrel.Eq{"invoice_id": invoiceID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*voucher.PaymentVoucher
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list by invoice: %w", err)
	}
	return items, nil
}

// Compile-time interface check.
var _ voucher.Repository = (*VoucherRepo)(nil)
