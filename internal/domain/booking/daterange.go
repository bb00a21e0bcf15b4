package booking

import (
	"errors"
	"time"

	"vehicle-rentals/internal/pkg/clock"
)

const ISODate = "2006-01-02"

var (
	ErrStartAfterEnd = errors.New("start date must not be after end date")
	ErrMalformedDate = errors.New("date must be an ISO calendar date (YYYY-MM-DD)")
)

// DateRange is an inclusive calendar-day interval. Both endpoints are
// truncated to UTC midnight; time-of-day never participates in comparisons.
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	s := clock.TruncateToDay(start)
	e := clock.TruncateToDay(end)
	if s.After(e) {
		return DateRange{}, ErrStartAfterEnd
	}
	return DateRange{start: s, end: e}, nil
}

func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.ParseInLocation(ISODate, start, time.UTC)
	if err != nil {
		return DateRange{}, ErrMalformedDate
	}
	e, err := time.ParseInLocation(ISODate, end, time.UTC)
	if err != nil {
		return DateRange{}, ErrMalformedDate
	}
	return NewDateRange(s, e)
}

func (r DateRange) Start() time.Time {
	return r.start
}

func (r DateRange) End() time.Time {
	return r.end
}

func (r DateRange) IsZero() bool {
	return r.start.IsZero() && r.end.IsZero()
}

// Days returns the whole-day count between start and end. A same-day range
// yields zero; pricing rejects it rather than quoting a free rental.
func (r DateRange) Days() int {
	return int(r.end.Sub(r.start) / (24 * time.Hour))
}

// Overlaps uses the inclusive-inclusive rule: a booking that ends the day
// another begins still conflicts. Same-day handoff is deliberately disallowed.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.start.After(other.end) && !r.end.Before(other.start)
}

// HasElapsed reports whether the whole range lies strictly before today.
func (r DateRange) HasElapsed(today time.Time) bool {
	return r.end.Before(clock.TruncateToDay(today))
}

func (r DateRange) Equal(other DateRange) bool {
	return r.start.Equal(other.start) && r.end.Equal(other.end)
}

func (r DateRange) String() string {
	return r.start.Format(ISODate) + "/" + r.end.Format(ISODate)
}
