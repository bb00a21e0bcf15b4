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

type ReviewReadStore struct {
	db db.DBTX
}

func NewReviewReadStore(dbtx db.DBTX) *ReviewReadStore {
	return &ReviewReadStore{db: dbtx}
}

const reviewListColumns = `
	r.id, r.user_id, u.name, r.rating, r.comment, r.created_at`

func (r *ReviewReadStore) FindByVehicleFirstPage(ctx context.Context, vehicleID uuid.UUID, limit int32) ([]*queries.ReviewListItem, error) {
	q := `
		SELECT` + reviewListColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.vehicle_id = $1
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, q, vehicleID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get reviews first page by vehicle", err)
	}
	defer rows.Close()
	return scanReviewListItems(rows)
}

func (r *ReviewReadStore) FindByVehicleKeyset(ctx context.Context, vehicleID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ReviewListItem, error) {
	q := `
		SELECT` + reviewListColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.vehicle_id = $1
		AND (r.created_at, r.id) < ($2, $3)
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $4`

	rows, err := r.db.Query(ctx, q, vehicleID, pgconv.TimeToPgtype(lastCreatedAt), lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get reviews keyset by vehicle", err)
	}
	defer rows.Close()
	return scanReviewListItems(rows)
}

func scanReviewListItems(rows pgx.Rows) ([]*queries.ReviewListItem, error) {
	var result []*queries.ReviewListItem
	for rows.Next() {
		var item queries.ReviewListItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.UserName, &item.Rating, &item.Comment, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan review list item", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate review list", err)
	}
	return result, nil
}
