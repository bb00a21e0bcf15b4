//go:build unit || e2e

package builder

import (
	"time"

	dombooking "vehicle-rentals/internal/domain/booking"
	reqdto "vehicle-rentals/internal/handler/dto/request"
	"vehicle-rentals/internal/usecase/queries"
	"vehicle-rentals/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID              uuid.UUID
	VehicleID       uuid.UUID
	VehicleMake     string
	VehicleModel    string
	UserID          uuid.UUID
	StartDate       time.Time
	EndDate         time.Time
	Status          dombooking.Status
	TotalPriceCents int64
	Reviewed        bool
	CreatedAt       time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:           uuid.New(),
		VehicleID:    uuid.New(),
		VehicleMake:  "Toyota",
		VehicleModel: "RAV4",
		UserID:       uuid.New(),
		StartDate:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Status:       dombooking.StatusConfirmed,
		// 4 whole days at $50.00
		TotalPriceCents: 20000,
		Reviewed:        false,
		CreatedAt:       time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDates() dombooking.DateRange {
	dates, err := dombooking.NewDateRange(b.StartDate, b.EndDate)
	if err != nil {
		panic(err)
	}
	return dates
}

func (b *BookingBuilder) BuildDomain() *dombooking.Booking {
	return dombooking.ReconstructBooking(
		b.ID, b.VehicleID, b.UserID,
		b.BuildDates(), b.Status, dombooking.MustMoney(b.TotalPriceCents), b.Reviewed,
		b.CreatedAt, b.CreatedAt,
	)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		VehicleID: b.VehicleID,
		StartDate: b.StartDate.Format(dombooking.ISODate),
		EndDate:   b.EndDate.Format(dombooking.ISODate),
	}
}

func (b *BookingBuilder) BuildModifyRequestDTO() reqdto.ModifyBookingRequest {
	return reqdto.ModifyBookingRequest{
		StartDate: b.StartDate.Format(dombooking.ISODate),
		EndDate:   b.EndDate.Format(dombooking.ISODate),
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:              b.ID,
		VehicleID:       b.VehicleID,
		VehicleMake:     b.VehicleMake,
		VehicleModel:    b.VehicleModel,
		UserID:          b.UserID,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		Status:          string(b.Status),
		TotalPriceCents: b.TotalPriceCents,
		Reviewed:        b.Reviewed,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:              b.ID,
		VehicleID:       b.VehicleID,
		VehicleMake:     b.VehicleMake,
		VehicleModel:    b.VehicleModel,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		Status:          string(b.Status),
		TotalPriceCents: b.TotalPriceCents,
		Reviewed:        b.Reviewed,
		CreatedAt:       b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:              b.ID,
		VehicleID:       b.VehicleID,
		UserID:          b.UserID,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		Status:          string(b.Status),
		TotalPriceCents: b.TotalPriceCents,
		Reviewed:        b.Reviewed,
	}
}

func (b *BookingBuilder) BuildBookedRange() dombooking.BookedRange {
	return dombooking.BookedRange{
		BookingID: b.ID,
		Dates:     b.BuildDates(),
		Status:    b.Status,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithID(id uuid.UUID) *BookingBuilder {
	b.ID = id
	return b
}

func (b *BookingBuilder) WithVehicleID(vehicleID uuid.UUID) *BookingBuilder {
	b.VehicleID = vehicleID
	return b
}

func (b *BookingBuilder) WithUserID(userID uuid.UUID) *BookingBuilder {
	b.UserID = userID
	return b
}

func (b *BookingBuilder) WithDates(start, end string) *BookingBuilder {
	s, err := time.ParseInLocation(dombooking.ISODate, start, time.UTC)
	if err != nil {
		panic(err)
	}
	e, err := time.ParseInLocation(dombooking.ISODate, end, time.UTC)
	if err != nil {
		panic(err)
	}
	b.StartDate = s
	b.EndDate = e
	return b
}

func (b *BookingBuilder) WithStatus(status dombooking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithTotalPriceCents(cents int64) *BookingBuilder {
	b.TotalPriceCents = cents
	return b
}

func (b *BookingBuilder) WithReviewed(reviewed bool) *BookingBuilder {
	b.Reviewed = reviewed
	return b
}

func (b *BookingBuilder) WithCreatedAt(createdAt time.Time) *BookingBuilder {
	b.CreatedAt = createdAt
	return b
}

func (b *BookingBuilder) AsCancelled() *BookingBuilder {
	b.Status = dombooking.StatusCancelled
	return b
}

// AsElapsed shifts the range well into the past relative to the default
// mock-clock date used across the command tests.
func (b *BookingBuilder) AsElapsed() *BookingBuilder {
	return b.WithDates("2024-01-02", "2024-01-06")
}
