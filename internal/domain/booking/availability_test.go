//go:build unit

package booking_test

import (
	"testing"

	"vehicle-rentals/internal/domain/booking"
	"vehicle-rentals/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAvailable(t *testing.T) {
	existing := []booking.BookedRange{
		builder.NewBookingBuilder().WithDates("2024-03-01", "2024-03-05").BuildBookedRange(),
	}

	cases := []struct {
		name       string
		start, end string
		available  bool
	}{
		{name: "overlapping tail is rejected", start: "2024-03-04", end: "2024-03-06", available: false},
		{name: "day after the booked range is free", start: "2024-03-06", end: "2024-03-08", available: true},
		{name: "starting on the booked end date conflicts", start: "2024-03-05", end: "2024-03-08", available: false},
		{name: "ending on the booked start date conflicts", start: "2024-02-27", end: "2024-03-01", available: false},
		{name: "identical range conflicts", start: "2024-03-01", end: "2024-03-05", available: false},
		{name: "well before is free", start: "2024-02-20", end: "2024-02-25", available: true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			candidate := mustRange(t, c.start, c.end)
			assert.Equal(t, c.available, booking.IsAvailable(candidate, existing))
		})
	}

	t.Run("no existing bookings", func(t *testing.T) {
		candidate := mustRange(t, "2024-03-01", "2024-03-05")
		assert.True(t, booking.IsAvailable(candidate, nil))
	})

	t.Run("zero candidate defaults to available", func(t *testing.T) {
		assert.True(t, booking.IsAvailable(booking.DateRange{}, existing))
	})

	t.Run("cancelled bookings free their dates", func(t *testing.T) {
		cancelled := []booking.BookedRange{
			builder.NewBookingBuilder().WithDates("2024-03-01", "2024-03-05").AsCancelled().BuildBookedRange(),
		}
		candidate := mustRange(t, "2024-03-01", "2024-03-05")
		assert.True(t, booking.IsAvailable(candidate, cancelled))
	})
}

func TestIsAvailableExcluding(t *testing.T) {
	own := builder.NewBookingBuilder().WithDates("2024-03-01", "2024-03-05").BuildBookedRange()
	other := builder.NewBookingBuilder().WithDates("2024-03-10", "2024-03-12").BuildBookedRange()
	existing := []booking.BookedRange{own, other}

	t.Run("a booking does not conflict with itself", func(t *testing.T) {
		candidate := mustRange(t, "2024-03-02", "2024-03-06")
		assert.False(t, booking.IsAvailableExcluding(candidate, existing, uuid.Nil))
		assert.True(t, booking.IsAvailableExcluding(candidate, existing, own.BookingID))
	})

	t.Run("exclusion does not hide other bookings", func(t *testing.T) {
		candidate := mustRange(t, "2024-03-09", "2024-03-11")
		assert.False(t, booking.IsAvailableExcluding(candidate, existing, own.BookingID))
	})
}

func TestFirstConflict(t *testing.T) {
	booked := builder.NewBookingBuilder().WithDates("2024-03-01", "2024-03-05").BuildBookedRange()
	existing := []booking.BookedRange{booked}

	t.Run("returns the blocking range", func(t *testing.T) {
		candidate := mustRange(t, "2024-03-04", "2024-03-06")
		conflict, found := booking.FirstConflict(candidate, existing, uuid.Nil)
		require.True(t, found)
		assert.Equal(t, booked.BookingID, conflict.BookingID)
	})

	t.Run("no conflict", func(t *testing.T) {
		candidate := mustRange(t, "2024-03-06", "2024-03-08")
		_, found := booking.FirstConflict(candidate, existing, uuid.Nil)
		assert.False(t, found)
	})

	t.Run("zero candidate never conflicts", func(t *testing.T) {
		_, found := booking.FirstConflict(booking.DateRange{}, existing, uuid.Nil)
		assert.False(t, found)
	})
}
