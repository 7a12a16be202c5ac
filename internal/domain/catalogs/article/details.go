package article

import (
	"context"
	"time"

	"tripdesk/internal/core/apperror"
	"tripdesk/internal/core/id"
)

// Details is the kind-specific payload of an article.
type Details interface {
	DetailKind() Kind
}

// --- Detail variants (one per subtype, stored in per-kind tables) ---

// FlightDetails describes a flight product.
type FlightDetails struct {
	Airline       string `db:"airline" json:"airline"`
	FlightNo      string `db:"flight_no" json:"flightNo"`
	DepartureCity string `db:"departure_city" json:"departureCity"`
	ArrivalCity   string `db:"arrival_city" json:"arrivalCity"`
	CabinClass    string `db:"cabin_class" json:"cabinClass"`
}

func (FlightDetails) DetailKind() Kind { return KindFlight }

// HotelDetails describes a hotel stay product.
type HotelDetails struct {
	City     string `db:"city" json:"city"`
	Stars    int    `db:"stars" json:"stars"`
	Board    string `db:"board" json:"board"` // RO, BB, HB, FB, AI
	RoomType string `db:"room_type" json:"roomType"`
	Nights   int    `db:"nights" json:"nights"`
}

func (HotelDetails) DetailKind() Kind { return KindHotel }

// TourDetails describes a packaged tour.
type TourDetails struct {
	Destination string     `db:"destination" json:"destination"`
	Days        int        `db:"days" json:"days"`
	DepartsAt   *time.Time `db:"departs_at" json:"departsAt,omitempty"`
	Operator    string     `db:"operator" json:"operator"`
}

func (TourDetails) DetailKind() Kind { return KindTour }

// TransferDetails describes a ground transfer.
type TransferDetails struct {
	FromLocation string `db:"from_location" json:"fromLocation"`
	ToLocation   string `db:"to_location" json:"toLocation"`
	VehicleType  string `db:"vehicle_type" json:"vehicleType"`
	Seats        int    `db:"seats" json:"seats"`
}

func (TransferDetails) DetailKind() Kind { return KindTransfer }

// ExcursionDetails describes a local excursion.
type ExcursionDetails struct {
	Location      string `db:"location" json:"location"`
	DurationHours int    `db:"duration_hours" json:"durationHours"`
	Guided        bool   `db:"guided" json:"guided"`
	Language      string `db:"language" json:"language"`
}

func (ExcursionDetails) DetailKind() Kind { return KindExcursion }

// InsuranceDetails describes a travel insurance product.
type InsuranceDetails struct {
	Insurer      string `db:"insurer" json:"insurer"`
	CoverageType string `db:"coverage_type" json:"coverageType"`
	CoverageDays int    `db:"coverage_days" json:"coverageDays"`
	PolicyTerms  string `db:"policy_terms" json:"policyTerms"`
}

func (InsuranceDetails) DetailKind() Kind { return KindInsurance }

// --- Storage strategy ---

// DetailStore persists one kind's detail data. Implementations live in
// infrastructure (one table per kind).
type DetailStore interface {
	Save(ctx context.Context, articleID id.ID, d Details) error
	Load(ctx context.Context, articleID id.ID) (Details, error)
	Delete(ctx context.Context, articleID id.ID) error
}

// DetailRegistry resolves a kind to its storage strategy exactly once.
type DetailRegistry struct {
	stores map[Kind]DetailStore
}

// NewDetailRegistry creates an empty registry.
func NewDetailRegistry() *DetailRegistry {
	return &DetailRegistry{stores: make(map[Kind]DetailStore)}
}

// Register binds a kind to its store. Last registration wins.
func (r *DetailRegistry) Register(k Kind, s DetailStore) {
	r.stores[k] = s
}

// ForKind returns the store for a kind.
func (r *DetailRegistry) ForKind(k Kind) (DetailStore, error) {
	s, ok := r.stores[k]
	if !ok {
		return nil, apperror.NewInternal(nil).
			WithDetail("reason", "no detail store registered").
			WithDetail("kind", string(k))
	}
	return s, nil
}
