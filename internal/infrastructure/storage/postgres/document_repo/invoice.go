package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"tripdesk/internal/core/apperror"
	"tripdesk/internal/core/id"
	"tripdesk/internal/domain/documents/invoice"
	"tripdesk/internal/infrastructure/storage/postgres"
)

const invoiceTable = "doc_invoices"

// InvoiceRepo implements invoice.Repository. The table carries a unique
// constraint on order_id, so at most one invoice exists per order.
type InvoiceRepo struct {
	*BaseDocumentRepo[*invoice.Invoice]
}

// NewInvoiceRepo creates a new invoice repository.
func NewInvoiceRepo(txManager *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*invoice.Invoice](
			txManager,
			invoiceTable,
			postgres.ExtractDBColumns[invoice.Invoice](),
			func() *invoice.Invoice { return &invoice.Invoice{} },
		),
	}
}

// Create inserts a new invoice, translating the one-invoice-per-order
// constraint into a duplicate error.
func (r *InvoiceRepo) Create(ctx context.Context, inv *invoice.Invoice) error {
	err := r.BaseDocumentRepo.Create(ctx, inv)
	if postgres.IsUniqueViolation(err, "doc_invoices_order_id_key") {
		return apperror.NewDuplicate("invoice", "orderId", inv.OrderID.String()).WithCause(err)
	}
	return err
}

// GetByOrderID retrieves the invoice billing an order.
func (r *InvoiceRepo) GetByOrderID(ctx context.Context, orderID id.ID) (*invoice.Invoice, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"order_id": orderID}).
		Limit(1)
	return r.FindOne(ctx, q)
}

// GetByOrderIDForUpdate is GetByOrderID under a row lock.
func (r *InvoiceRepo) GetByOrderIDForUpdate(ctx context.Context, orderID id.ID) (*invoice.Invoice, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"order_id": orderID}).
		Suffix("FOR UPDATE")
	return r.FindOne(ctx, q)
}

// UpdateAmounts rewrites the amount columns without touching the rest of the
// row. Used by the consistency guard inside the order's transaction.
func (r *InvoiceRepo) UpdateAmounts(ctx context.Context, invoiceID id.ID, exclTax, tax, inclTax decimal.Decimal) error {
	sql, args, err := r.Builder().
		Update(invoiceTable).
		Set("amount_excl_tax", exclTax).
		Set("tax_amount", tax).
		Set("amount_incl_tax", inclTax).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": invoiceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update amounts: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update invoice amounts: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("invoice", invoiceID.String())
	}

	if err := r.LogAudit(ctx, invoiceID, postgres.AuditActionPriceChange, map[string]any{
		"amount_excl_tax": exclTax,
		"tax_amount":      tax,
		"amount_incl_tax": inclTax,
	}); err != nil {
		return fmt.Errorf("audit price change: %w", err)
	}

	return nil
}

// Compile-time interface check.
var _ invoice.Repository = (*InvoiceRepo)(nil)
