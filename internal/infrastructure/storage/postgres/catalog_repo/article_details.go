package catalog_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tripdesk/internal/core/apperror"
	"tripdesk/internal/core/id"
	"tripdesk/internal/domain/catalogs/article"
	"tripdesk/internal/infrastructure/storage/postgres"
)

// detailStore persists one article kind's detail payload in its own table,
// keyed by article_id. Implements article.DetailStore.
type detailStore struct {
	txManager *postgres.TxManager
	tableName string
	cols      []string
	newFn     func() article.Details
}

func newDetailStore[D any](txManager *postgres.TxManager, tableName string, newFn func() article.Details) *detailStore {
	return &detailStore{
		txManager: txManager,
		tableName: tableName,
		cols:      postgres.ExtractDBColumns[D](),
		newFn:     newFn,
	}
}

func (s *detailStore) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Save upserts the detail row for an article.
func (s *detailStore) Save(ctx context.Context, articleID id.ID, d article.Details) error {
	data := postgres.StructToMap(d)
	if data == nil {
		return fmt.Errorf("no db tags found in %s details", s.tableName)
	}
	data["article_id"] = articleID

	updates := make([]string, 0, len(s.cols))
	for _, col := range s.cols {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	sql, args, err := s.builder().
		Insert(s.tableName).
		SetMap(data).
		Suffix("ON CONFLICT (article_id) DO UPDATE SET " + strings.Join(updates, ", ")).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := s.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("upsert %s: %w", s.tableName, err)
	}
	return nil
}

// Load retrieves the detail row for an article.
func (s *detailStore) Load(ctx context.Context, articleID id.ID) (article.Details, error) {
	dst := s.newFn()

	sql, args, err := s.builder().
		Select(s.cols...).
		From(s.tableName).
		Where(squirrel.Eq{"article_id": articleID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, s.txManager.GetQuerier(ctx), dst, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(s.tableName, articleID.String())
		}
		return nil, fmt.Errorf("load %s: %w", s.tableName, err)
	}
	return dst, nil
}

// Delete removes the detail row for an article.
func (s *detailStore) Delete(ctx context.Context, articleID id.ID) error {
	sql, args, err := s.builder().
		Delete(s.tableName).
		Where(squirrel.Eq{"article_id": articleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := s.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete %s: %w", s.tableName, err)
	}
	return nil
}

// Compile-time interface check.
var _ article.DetailStore = (*detailStore)(nil)

// NewArticleDetailRegistry wires one detail store per article kind.
func NewArticleDetailRegistry(txManager *postgres.TxManager) *article.DetailRegistry {
	reg := article.NewDetailRegistry()
	reg.Register(article.KindFlight,
		newDetailStore[article.FlightDetails](txManager, "art_flight_details", func() article.Details { return &article.FlightDetails{} }))
	reg.Register(article.KindHotel,
		newDetailStore[article.HotelDetails](txManager, "art_hotel_details", func() article.Details { return &article.HotelDetails{} }))
	reg.Register(article.KindTour,
		newDetailStore[article.TourDetails](txManager, "art_tour_details", func() article.Details { return &article.TourDetails{} }))
	reg.Register(article.KindTransfer,
		newDetailStore[article.TransferDetails](txManager, "art_transfer_details", func() article.Details { return &article.TransferDetails{} }))
	reg.Register(article.KindExcursion,
		newDetailStore[article.ExcursionDetails](txManager, "art_excursion_details", func() article.Details { return &article.ExcursionDetails{} }))
	reg.Register(article.KindInsurance,
		newDetailStore[article.InsuranceDetails](txManager, "art_insurance_details", func() article.Details { return &article.InsuranceDetails{} }))
	return reg
}
