package readstore

import (
	"context"
	"time"

	"vehicle-rentals/internal/infra"
	"vehicle-rentals/internal/infra/db"
	"vehicle-rentals/internal/pkg/pgconv"
	"vehicle-rentals/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VehicleReadStore struct {
	db db.DBTX
}

func NewVehicleReadStore(dbtx db.DBTX) *VehicleReadStore {
	return &VehicleReadStore{db: dbtx}
}

const vehicleListColumns = `
	v.id, v.make, v.model, v.vehicle_type, v.location, v.price_per_day_cents,
	v.images[1],
	COALESCE(s.total_reviews, 0), COALESCE(s.average_rating, 0),
	v.created_at`

// Filters collapse to no-ops when NULL so a single statement covers every
// combination.
const vehicleListFilter = `
	($1::text IS NULL OR v.vehicle_type = $1)
	AND ($2::text IS NULL OR v.location ILIKE '%' || $2 || '%')
	AND ($3::bigint IS NULL OR v.price_per_day_cents >= $3)
	AND ($4::bigint IS NULL OR v.price_per_day_cents <= $4)`

func (r *VehicleReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.VehicleView, error) {
	const q = `
		SELECT v.id, v.make, v.model, v.vehicle_type, v.location, v.price_per_day_cents,
		       v.images,
		       COALESCE(s.total_reviews, 0), COALESCE(s.average_rating, 0),
		       v.created_at, v.updated_at
		FROM vehicles v
		LEFT JOIN vehicle_rating_stats s ON s.vehicle_id = v.id
		WHERE v.id = $1`

	var view queries.VehicleView
	err := r.db.QueryRow(ctx, q, id).Scan(
		&view.ID, &view.Make, &view.Model, &view.VehicleType, &view.Location, &view.PricePerDayCents,
		&view.Images,
		&view.TotalReviews, &view.AverageRating,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get vehicle view by id", err)
	}
	return &view, nil
}

func (r *VehicleReadStore) ListFirstPage(ctx context.Context, filters queries.VehicleFilters, limit int32) ([]*queries.VehicleListItem, error) {
	q := `
		SELECT` + vehicleListColumns + `
		FROM vehicles v
		LEFT JOIN vehicle_rating_stats s ON s.vehicle_id = v.id
		WHERE` + vehicleListFilter + `
		ORDER BY v.created_at DESC, v.id DESC
		LIMIT $5`

	rows, err := r.db.Query(ctx, q,
		filters.VehicleType, filters.Location, filters.PriceMinCents, filters.PriceMaxCents, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vehicles first page", err)
	}
	defer rows.Close()
	return scanVehicleListItems(rows)
}

func (r *VehicleReadStore) ListKeyset(ctx context.Context, filters queries.VehicleFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.VehicleListItem, error) {
	q := `
		SELECT` + vehicleListColumns + `
		FROM vehicles v
		LEFT JOIN vehicle_rating_stats s ON s.vehicle_id = v.id
		WHERE` + vehicleListFilter + `
		AND (v.created_at, v.id) < ($5, $6)
		ORDER BY v.created_at DESC, v.id DESC
		LIMIT $7`

	rows, err := r.db.Query(ctx, q,
		filters.VehicleType, filters.Location, filters.PriceMinCents, filters.PriceMaxCents,
		pgconv.TimeToPgtype(lastCreatedAt), lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vehicles keyset", err)
	}
	defer rows.Close()
	return scanVehicleListItems(rows)
}

func (r *VehicleReadStore) GetRatingStats(ctx context.Context, vehicleID uuid.UUID) (*queries.VehicleRatingStats, error) {
	const q = `
		SELECT vehicle_id, total_reviews, average_rating,
		       rating_1_count, rating_2_count, rating_3_count, rating_4_count, rating_5_count,
		       updated_at
		FROM vehicle_rating_stats
		WHERE vehicle_id = $1`

	var stats queries.VehicleRatingStats
	err := r.db.QueryRow(ctx, q, vehicleID).Scan(
		&stats.VehicleID, &stats.TotalReviews, &stats.AverageRating,
		&stats.Rating1Count, &stats.Rating2Count, &stats.Rating3Count, &stats.Rating4Count, &stats.Rating5Count,
		&stats.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			// return zero stats if not initialized yet
			return &queries.VehicleRatingStats{VehicleID: vehicleID}, nil
		}
		return nil, infra.WrapRepoErr("failed to get vehicle rating stats", err)
	}
	return &stats, nil
}

func scanVehicleListItems(rows pgx.Rows) ([]*queries.VehicleListItem, error) {
	var result []*queries.VehicleListItem
	for rows.Next() {
		var item queries.VehicleListItem
		if err := rows.Scan(
			&item.ID, &item.Make, &item.Model, &item.VehicleType, &item.Location, &item.PricePerDayCents,
			&item.ThumbnailURL,
			&item.TotalReviews, &item.AverageRating,
			&item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan vehicle list item", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate vehicle list", err)
	}
	return result, nil
}
