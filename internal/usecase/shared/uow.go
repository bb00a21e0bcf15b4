package shared

import (
	"context"
	"time"

	"vehicle-rentals/internal/domain/booking"
	"vehicle-rentals/internal/domain/review"
	"vehicle-rentals/internal/domain/vehicle"
	"vehicle-rentals/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: command-side reads outside a transaction
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Vehicles() VehicleRepository
	Reviews() ReviewRepository
	RatingStats() RatingStatsRepository
	Idempotency() IdempotencyRepository
	Users() UserRepository
	// Reads returns command reads bound to this transaction, so availability
	// re-checks see the freshest committed state.
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	VehicleByID(ctx context.Context, id uuid.UUID) (*VehicleSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// BookedRangesByVehicle returns every non-deleted booking row for the
	// vehicle, cancelled included; the availability rule itself decides what
	// blocks.
	BookedRangesByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]booking.BookedRange, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	UpdateDates(ctx context.Context, tx db.DBTX, id uuid.UUID, dates booking.DateRange, totalPriceCents int64) error
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error
	// MarkReviewed performs the compare-and-set flip of the reviewed flag
	// and reports whether this call won it.
	MarkReviewed(ctx context.Context, tx db.DBTX, id uuid.UUID) (bool, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, tx db.DBTX, v *vehicle.Vehicle) (uuid.UUID, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, tx db.DBTX, rev *review.Review) (uuid.UUID, error)
}

type RatingStatsRepository interface {
	RecalcVehicleRatingStats(ctx context.Context, tx db.DBTX, vehicleID uuid.UUID) error
}

type IdempotencyRepository interface {
	// TryInsert claims the key and reports whether this call won the claim.
	TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, responseHash string, bookingID uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, name, email, passwordHash, role string) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}
