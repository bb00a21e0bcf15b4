package booking

import "github.com/google/uuid"

// BookedRange is the slice of an existing booking that matters for
// availability decisions.
type BookedRange struct {
	BookingID uuid.UUID
	Dates     DateRange
	Status    Status
}

// IsAvailable decides whether a candidate range may be booked given the
// vehicle's existing bookings. Cancelled bookings never block. A zero-value
// candidate resolves to available; that default serves UI previews only, and
// the create/modify usecases always re-validate a concrete range against a
// fresh snapshot before committing.
func IsAvailable(candidate DateRange, existing []BookedRange) bool {
	return IsAvailableExcluding(candidate, existing, uuid.Nil)
}

// IsAvailableExcluding is IsAvailable with one booking left out of
// consideration, used when re-checking a modified booking against its
// siblings.
func IsAvailableExcluding(candidate DateRange, existing []BookedRange, exclude uuid.UUID) bool {
	if candidate.IsZero() {
		return true
	}
	for _, b := range existing {
		if b.Status == StatusCancelled {
			continue
		}
		if exclude != uuid.Nil && b.BookingID == exclude {
			continue
		}
		if candidate.Overlaps(b.Dates) {
			return false
		}
	}
	return true
}

// FirstConflict returns the existing range that blocks the candidate, so
// callers can report the specific conflict instead of a bare rejection.
func FirstConflict(candidate DateRange, existing []BookedRange, exclude uuid.UUID) (BookedRange, bool) {
	if candidate.IsZero() {
		return BookedRange{}, false
	}
	for _, b := range existing {
		if b.Status == StatusCancelled {
			continue
		}
		if exclude != uuid.Nil && b.BookingID == exclude {
			continue
		}
		if candidate.Overlaps(b.Dates) {
			return b, true
		}
	}
	return BookedRange{}, false
}
