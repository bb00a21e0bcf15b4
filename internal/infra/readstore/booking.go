package readstore

import (
	"context"

	"vehicle-rentals/internal/infra"
	"vehicle-rentals/internal/infra/db"
	"vehicle-rentals/internal/pkg/pgconv"
	"vehicle-rentals/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	const q = `
		SELECT b.id, b.vehicle_id, v.make, v.model, b.user_id,
		       b.start_date, b.end_date, b.status, b.total_price_cents, b.reviewed,
		       b.created_at, b.updated_at
		FROM bookings b
		JOIN vehicles v ON v.id = b.vehicle_id
		WHERE b.id = $1`

	var view queries.BookingView
	err := r.db.QueryRow(ctx, q, id).Scan(
		&view.ID, &view.VehicleID, &view.VehicleMake, &view.VehicleModel, &view.UserID,
		&view.StartDate, &view.EndDate, &view.Status, &view.TotalPriceCents, &view.Reviewed,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking view by id", err)
	}
	return &view, nil
}

func (r *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error) {
	const q = `
		SELECT b.id, b.vehicle_id, v.make, v.model,
		       b.start_date, b.end_date, b.status, b.total_price_cents, b.reviewed,
		       b.created_at
		FROM bookings b
		JOIN vehicles v ON v.id = b.vehicle_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id DESC`

	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by user", err)
	}
	defer rows.Close()

	var result []*queries.BookingListItem
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(
			&item.ID, &item.VehicleID, &item.VehicleMake, &item.VehicleModel,
			&item.StartDate, &item.EndDate, &item.Status, &item.TotalPriceCents, &item.Reviewed,
			&item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking list", err)
	}
	return result, nil
}

// Cancelled bookings no longer block the calendar, so they are filtered here
// rather than by the caller.
func (r *BookingReadStore) ActivePeriodsByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*queries.BookedPeriod, error) {
	const q = `
		SELECT start_date, end_date
		FROM bookings
		WHERE vehicle_id = $1 AND status <> 'cancelled'
		ORDER BY start_date`

	rows, err := r.db.Query(ctx, q, vehicleID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booked periods", err)
	}
	defer rows.Close()

	var result []*queries.BookedPeriod
	for rows.Next() {
		var period queries.BookedPeriod
		if err := rows.Scan(&period.StartDate, &period.EndDate); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booked period", err)
		}
		result = append(result, &period)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booked periods", err)
	}
	return result, nil
}
