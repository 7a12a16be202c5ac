package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tripdesk/internal/core/id"
	"tripdesk/internal/domain"
	"tripdesk/internal/domain/catalogs/article"
	"tripdesk/internal/infrastructure/storage/postgres"
)

const articleTable = "cat_articles"

// ArticleRepo implements article.Repository for the parent rows. Detail rows
// go through the per-kind stores in article_details.go.
type ArticleRepo struct {
	*BaseCatalogRepo[*article.Article]
}

// NewArticleRepo creates a new article repository.
func NewArticleRepo(txManager *postgres.TxManager) *ArticleRepo {
	return &ArticleRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*article.Article](
			txManager,
			articleTable,
			postgres.ExtractDBColumns[article.Article](),
			func() *article.Article { return &article.Article{} },
		),
	}
}

// ListBySupplier retrieves articles provided by one supplier.
func (r *ArticleRepo) ListBySupplier(ctx context.Context, supplierID id.ID, filter domain.ListFilter) (domain.ListResult[*article.Article], error) {
	result := domain.ListResult[*article.Article]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.BaseSelect().
		Where(squirrel.Eq{"supplier_id": supplierID})
	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	countSQL, countArgs, err := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.Querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("name ASC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list by supplier: %w", err)
	}

	return result, nil
}

// Compile-time interface check.
var _ article.Repository = (*ArticleRepo)(nil)
