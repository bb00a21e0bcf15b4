package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Vehicle errors
	ErrVehicleNotFound = errors.New("vehicle not found")

	// Booking errors
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingConflict  = errors.New("booking dates conflict with an existing booking")
	ErrDuplicateBooking = errors.New("duplicate booking")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrBookingElapsed   = errors.New("booking has already elapsed")

	// Review errors
	ErrReviewNotEligible = errors.New("booking is not eligible for review")

	// Availability errors
	ErrAvailabilityUnknown = errors.New("existing bookings could not be fetched")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
