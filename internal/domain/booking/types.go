package booking

// Status is the stored lifecycle state of a booking. "Expired" is never
// stored: it is derived at read time from the range's end date, see
// Booking.EffectiveStatus.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"

	// StatusExpired is derived, not persisted.
	StatusExpired Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}
