package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrBookingCancelled = errors.New("booking is already cancelled")
	ErrBookingElapsed   = errors.New("booking has already elapsed")
	ErrNotYetElapsed    = errors.New("booking has not yet elapsed")
	ErrAlreadyReviewed  = errors.New("booking has already been reviewed")
	ErrInvalidStatus    = errors.New("invalid booking status")
)

type Booking struct {
	id         uuid.UUID
	vehicleID  uuid.UUID
	userID     uuid.UUID
	dates      DateRange
	status     Status
	totalPrice Money
	reviewed   bool
	createdAt  time.Time
	updatedAt  time.Time
}

// NewBooking builds a confirmed booking. Availability and pricing are the
// caller's responsibility: the usecase re-checks the candidate range against
// a fresh snapshot inside the same transaction that persists the row.
func NewBooking(vehicleID, userID uuid.UUID, dates DateRange, totalPrice Money) *Booking {
	return &Booking{
		id:         uuid.New(),
		vehicleID:  vehicleID,
		userID:     userID,
		dates:      dates,
		status:     StatusConfirmed,
		totalPrice: totalPrice,
	}
}

func ReconstructBooking(
	id, vehicleID, userID uuid.UUID,
	dates DateRange,
	status Status,
	totalPrice Money,
	reviewed bool,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		vehicleID:  vehicleID,
		userID:     userID,
		dates:      dates,
		status:     status,
		totalPrice: totalPrice,
		reviewed:   reviewed,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (b *Booking) IsCancelled() bool {
	return b.status == StatusCancelled
}

// HasElapsed reports whether the rental period fully lies in the past.
func (b *Booking) HasElapsed(today time.Time) bool {
	return b.dates.HasElapsed(today)
}

// EffectiveStatus derives the read-time status: a confirmed booking whose
// end date has passed reads as expired without any background job.
func (b *Booking) EffectiveStatus(today time.Time) Status {
	if b.status == StatusConfirmed && b.HasElapsed(today) {
		return StatusExpired
	}
	return b.status
}

// EnsureMutable reports why the booking can no longer change. Elapsed and
// cancelled bookings are immutable.
func (b *Booking) EnsureMutable(today time.Time) error {
	if b.IsCancelled() {
		return ErrBookingCancelled
	}
	if b.HasElapsed(today) {
		return ErrBookingElapsed
	}
	return nil
}

// Modify atomically replaces the date range and the recomputed price.
func (b *Booking) Modify(newDates DateRange, newPrice Money, today time.Time) error {
	if err := b.EnsureMutable(today); err != nil {
		return err
	}
	b.dates = newDates
	b.totalPrice = newPrice
	return nil
}

// Cancel is irreversible; a cancelled booking never counts toward
// availability again.
func (b *Booking) Cancel(today time.Time) error {
	if err := b.EnsureMutable(today); err != nil {
		return err
	}
	b.status = StatusCancelled
	return nil
}

// CanReview opens the review window: the rental must have fully elapsed
// while confirmed, and no review may exist yet.
func (b *Booking) CanReview(today time.Time) bool {
	return b.status == StatusConfirmed && b.HasElapsed(today) && !b.reviewed
}

// MarkReviewed flips the reviewed flag exactly once. The persistence layer
// additionally guards the flip with a compare-and-set so concurrent
// duplicates lose.
func (b *Booking) MarkReviewed(today time.Time) error {
	if b.reviewed {
		return ErrAlreadyReviewed
	}
	if !b.HasElapsed(today) {
		return ErrNotYetElapsed
	}
	if b.status != StatusConfirmed {
		return ErrInvalidStatus
	}
	b.reviewed = true
	return nil
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) VehicleID() uuid.UUID { return b.vehicleID }
func (b *Booking) UserID() uuid.UUID    { return b.userID }
func (b *Booking) Dates() DateRange     { return b.dates }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) TotalPrice() Money    { return b.totalPrice }
func (b *Booking) Reviewed() bool       { return b.reviewed }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
