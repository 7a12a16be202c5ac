package article

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripdesk/internal/core/id"
)

func validArticle(kind Kind, details Details) *Article {
	a := &Article{
		Kind:       kind,
		SupplierID: id.New(),
		Price:      decimal.NewFromInt(100),
		Currency:   "EUR",
		Details:    details,
	}
	a.Name = "Test article"
	return a
}

func TestArticle_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid flight", func(t *testing.T) {
		a := validArticle(KindFlight, &FlightDetails{
			Airline:       "LH",
			FlightNo:      "LH1300",
			DepartureCity: "Frankfurt",
			ArrivalCity:   "Barcelona",
		})
		assert.NoError(t, a.Validate(ctx))
	})

	t.Run("unknown kind", func(t *testing.T) {
		a := validArticle(Kind("cruise"), nil)
		assert.Error(t, a.Validate(ctx))
	})

	t.Run("negative price", func(t *testing.T) {
		a := validArticle(KindHotel, nil)
		a.Price = decimal.NewFromInt(-1)
		assert.Error(t, a.Validate(ctx))
	})

	t.Run("details kind mismatch", func(t *testing.T) {
		a := validArticle(KindHotel, &FlightDetails{Airline: "LH"})
		assert.Error(t, a.Validate(ctx))
	})

	t.Run("missing supplier", func(t *testing.T) {
		a := validArticle(KindTour, nil)
		a.SupplierID = id.Nil()
		assert.Error(t, a.Validate(ctx))
	})
}

type stubStore struct {
	kind  Kind
	saved map[id.ID]Details
}

func newStubStore(kind Kind) *stubStore {
	return &stubStore{kind: kind, saved: make(map[id.ID]Details)}
}

func (s *stubStore) Save(_ context.Context, articleID id.ID, d Details) error {
	s.saved[articleID] = d
	return nil
}

func (s *stubStore) Load(_ context.Context, articleID id.ID) (Details, error) {
	return s.saved[articleID], nil
}

func (s *stubStore) Delete(_ context.Context, articleID id.ID) error {
	delete(s.saved, articleID)
	return nil
}

func TestDetailRegistry(t *testing.T) {
	reg := NewDetailRegistry()
	flight := newStubStore(KindFlight)
	hotel := newStubStore(KindHotel)
	reg.Register(KindFlight, flight)
	reg.Register(KindHotel, hotel)

	got, err := reg.ForKind(KindFlight)
	require.NoError(t, err)
	assert.Same(t, DetailStore(flight), got)

	got, err = reg.ForKind(KindHotel)
	require.NoError(t, err)
	assert.Same(t, DetailStore(hotel), got)

	_, err = reg.ForKind(KindInsurance)
	assert.Error(t, err)
}

func TestDetails_DetailKind(t *testing.T) {
	cases := []struct {
		details Details
		want    Kind
	}{
		{&FlightDetails{}, KindFlight},
		{&HotelDetails{}, KindHotel},
		{&TourDetails{}, KindTour},
		{&TransferDetails{}, KindTransfer},
		{&ExcursionDetails{}, KindExcursion},
		{&InsuranceDetails{}, KindInsurance},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.details.DetailKind())
	}
}
