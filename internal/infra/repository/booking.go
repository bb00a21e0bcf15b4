package repository

import (
	"context"
	"errors"

	"vehicle-rentals/internal/domain/booking"
	"vehicle-rentals/internal/infra"
	"vehicle-rentals/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation    = "23505"
	pgErrCodeExclusionViolation = "23P01"
	pgErrCodeForeignKeyViolated = "23503"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	const q = `
		INSERT INTO bookings (id, vehicle_id, user_id, start_date, end_date, status, total_price_cents, reviewed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, q,
		b.ID(), b.VehicleID(), b.UserID(),
		b.Dates().Start(), b.Dates().End(),
		b.Status().String(), b.TotalPrice().Cents(), b.Reviewed(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapBookingWriteErr("failed to create booking", err)
	}

	return id, nil
}

func (r *BookingRepository) UpdateDates(ctx context.Context, tx db.DBTX, id uuid.UUID, dates booking.DateRange, totalPriceCents int64) error {
	const q = `
		UPDATE bookings
		SET start_date = $2, end_date = $3, total_price_cents = $4, updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, q, id, dates.Start(), dates.End(), totalPriceCents)
	if err != nil {
		return wrapBookingWriteErr("failed to update booking dates", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error {
	const q = `UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`

	tag, err := tx.Exec(ctx, q, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// MarkReviewed flips reviewed under a compare-and-set; of two concurrent
// submissions only one sees an affected row.
func (r *BookingRepository) MarkReviewed(ctx context.Context, tx db.DBTX, id uuid.UUID) (bool, error) {
	const q = `UPDATE bookings SET reviewed = TRUE, updated_at = now() WHERE id = $1 AND reviewed = FALSE`

	tag, err := tx.Exec(ctx, q, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark booking reviewed", err)
	}
	return tag.RowsAffected() == 1, nil
}

// The bookings table carries an exclusion constraint on overlapping date
// ranges per vehicle for non-cancelled rows; a violation is the storage
// layer losing the race that the in-transaction availability check already
// minimized.
func wrapBookingWriteErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeExclusionViolation:
			return infra.WrapRepoErr(msg, err, infra.KindConflict)
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		case pgErrCodeForeignKeyViolated:
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		}
	}
	return infra.WrapRepoErr(msg, err)
}
