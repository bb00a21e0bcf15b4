package readstore

import (
	"context"
	"time"

	"vehicle-rentals/internal/domain/booking"
	"vehicle-rentals/internal/infra"
	"vehicle-rentals/internal/infra/db"
	"vehicle-rentals/internal/pkg/pgconv"
	"vehicle-rentals/internal/usecase/shared"

	"github.com/google/uuid"
)

// CommandReadStore serves the write side's snapshot reads. Bound to a
// transaction it sees exactly the state the transaction will commit against.
type CommandReadStore struct {
	db db.DBTX
}

func NewCommandReadStore(dbtx db.DBTX) *CommandReadStore {
	return &CommandReadStore{db: dbtx}
}

func (s *CommandReadStore) VehicleByID(ctx context.Context, id uuid.UUID) (*shared.VehicleSnapshot, error) {
	const q = `
		SELECT id, make, model, vehicle_type, location, price_per_day_cents
		FROM vehicles
		WHERE id = $1`

	var snap shared.VehicleSnapshot
	err := s.db.QueryRow(ctx, q, id).Scan(
		&snap.ID, &snap.Make, &snap.Model, &snap.VehicleType, &snap.Location, &snap.PricePerDayCents,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find vehicle by ID", err)
	}
	return &snap, nil
}

func (s *CommandReadStore) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	const q = `
		SELECT id, vehicle_id, user_id, start_date, end_date, status, total_price_cents, reviewed
		FROM bookings
		WHERE id = $1`

	var snap shared.BookingSnapshot
	err := s.db.QueryRow(ctx, q, id).Scan(
		&snap.ID, &snap.VehicleID, &snap.UserID,
		&snap.StartDate, &snap.EndDate,
		&snap.Status, &snap.TotalPriceCents, &snap.Reviewed,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return &snap, nil
}

func (s *CommandReadStore) BookedRangesByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]booking.BookedRange, error) {
	const q = `
		SELECT id, start_date, end_date, status
		FROM bookings
		WHERE vehicle_id = $1`

	rows, err := s.db.Query(ctx, q, vehicleID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booked ranges", err)
	}
	defer rows.Close()

	var result []booking.BookedRange
	for rows.Next() {
		var (
			id         uuid.UUID
			start, end time.Time
			status     string
		)
		if err := rows.Scan(&id, &start, &end, &status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booked range", err)
		}
		dates, err := booking.NewDateRange(start, end)
		if err != nil {
			return nil, infra.WrapRepoErr("stored booking has invalid range", err)
		}
		result = append(result, booking.BookedRange{
			BookingID: id,
			Dates:     dates,
			Status:    booking.Status(status),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booked ranges", err)
	}
	return result, nil
}

func (s *CommandReadStore) UserByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	const q = `
		SELECT id, name, email, password_hash, role, is_active
		FROM users
		WHERE email = $1`

	var snap shared.UserSnapshot
	err := s.db.QueryRow(ctx, q, email).Scan(
		&snap.ID, &snap.Name, &snap.Email, &snap.PasswordHash, &snap.Role, &snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return &snap, nil
}

func (s *CommandReadStore) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	const q = `
		SELECT key, user_id, status, request_hash, result_booking_id, expires_at
		FROM idempotency_keys
		WHERE key = $1 AND user_id = $2`

	var rec shared.IdempotencyRecord
	err := s.db.QueryRow(ctx, q, key, userID).Scan(
		&rec.Key, &rec.UserID, &rec.Status, &rec.RequestHash, &rec.ResultBookingID, &rec.ExpiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find idempotency key", err)
	}
	return &rec, nil
}
