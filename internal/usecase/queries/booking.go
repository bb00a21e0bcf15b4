package queries

import (
	"context"
	"time"

	"vehicle-rentals/internal/domain/booking"
	"vehicle-rentals/internal/infra"
	"vehicle-rentals/internal/pkg/clock"
	"vehicle-rentals/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrBookingAccess   = errs.New("booking access denied")
)

// Read models (DTO for read side)
type BookingView struct {
	ID              uuid.UUID `json:"id"`
	VehicleID       uuid.UUID `json:"vehicle_id"`
	VehicleMake     string    `json:"vehicle_make"`
	VehicleModel    string    `json:"vehicle_model"`
	UserID          uuid.UUID `json:"user_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Reviewed        bool      `json:"reviewed"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type BookingListItem struct {
	ID              uuid.UUID `json:"id"`
	VehicleID       uuid.UUID `json:"vehicle_id"`
	VehicleMake     string    `json:"vehicle_make"`
	VehicleModel    string    `json:"vehicle_model"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Reviewed        bool      `json:"reviewed"`
	CreatedAt       time.Time `json:"created_at"`
}

// BookedPeriod exposes only the occupied dates of a vehicle, letting clients
// render a calendar without leaking who booked it.
type BookedPeriod struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
	ActivePeriodsByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*BookedPeriod, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
	VehicleCalendar(ctx context.Context, vehicleID uuid.UUID) ([]*BookedPeriod, error)
}

type bookingQueriesImpl struct {
	repo  BookingViewRepo
	clock clock.Clock
}

func NewBookingQueries(repo BookingViewRepo, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{repo: repo, clock: clk}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if view.UserID != actorID && actorRole != RoleAdmin {
		// Hide existence from other customers.
		return nil, ErrBookingNotFound
	}
	view.Status = q.effectiveStatus(view.Status, view.EndDate)
	return view, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error) {
	rows, err := q.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		row.Status = q.effectiveStatus(row.Status, row.EndDate)
	}
	return rows, nil
}

func (q *bookingQueriesImpl) VehicleCalendar(ctx context.Context, vehicleID uuid.UUID) ([]*BookedPeriod, error) {
	return q.repo.ActivePeriodsByVehicle(ctx, vehicleID)
}

// Expiry is never written back to storage. A confirmed booking whose end date
// has passed reads as expired.
func (q *bookingQueriesImpl) effectiveStatus(status string, endDate time.Time) string {
	if status == string(booking.StatusConfirmed) && clock.TruncateToDay(endDate).Before(clock.Today(q.clock)) {
		return string(booking.StatusExpired)
	}
	return status
}
