package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tripdesk/internal/core/id"
	"tripdesk/internal/domain/documents/order"
	"tripdesk/internal/infrastructure/storage/postgres"
)

const (
	orderTable     = "doc_orders"
	orderLineTable = "doc_order_lines"
)

// OrderRepo implements order.Repository.
type OrderRepo struct {
	*BaseDocumentRepo[*order.Order]
	txManager *postgres.TxManager
	lineCols  []string
}

// NewOrderRepo creates a new order repository.
func NewOrderRepo(txManager *postgres.TxManager) *OrderRepo {
	return &OrderRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*order.Order](
			txManager,
			orderTable,
			postgres.ExtractDBColumns[order.Order](),
			func() *order.Order { return &order.Order{} },
		),
		txManager: txManager,
		lineCols:  postgres.ExtractDBColumns[order.Line](),
	}
}

// SaveLines replaces the order's lines: delete then insert. Callers run this
// inside the order's transaction.
func (r *OrderRepo) SaveLines(ctx context.Context, orderID id.ID, lines []order.Line) error {
	querier := r.Querier(ctx)

	delSQL, delArgs, err := r.Builder().
		Delete(orderLineTable).
		Where(squirrel.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete lines: %w", err)
	}
	if _, err := querier.Exec(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("delete order lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(orderLineTable).
		Columns(r.lineCols...)
	for _, line := range lines {
		line.OrderID = orderID
		data := postgres.StructToMap(line)
		vals := make([]any, 0, len(r.lineCols))
		for _, col := range r.lineCols {
			vals = append(vals, data[col])
		}
		q = q.Values(vals...)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert order lines: %w", err)
	}

	return nil
}

// GetLines retrieves the order's lines.
func (r *OrderRepo) GetLines(ctx context.Context, orderID id.ID) ([]order.Line, error) {
	sql, args, err := r.Builder().
		Select(r.lineCols...).
		From(orderLineTable).
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []order.Line
	if err := pgxscan.Select(ctx, r.Querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get order lines: %w", err)
	}
	return lines, nil
}

// Compile-time interface check.
var _ order.Repository = (*OrderRepo)(nil)
