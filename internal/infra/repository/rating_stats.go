package repository

import (
	"context"

	"vehicle-rentals/internal/infra"
	"vehicle-rentals/internal/infra/db"

	"github.com/google/uuid"
)

type RatingStatsRepository struct{}

func NewRatingStatsRepository() *RatingStatsRepository {
	return &RatingStatsRepository{}
}

// RecalcVehicleRatingStats rebuilds the denormalized per-vehicle rating row
// from the reviews table inside the caller's transaction.
func (r *RatingStatsRepository) RecalcVehicleRatingStats(ctx context.Context, tx db.DBTX, vehicleID uuid.UUID) error {
	const q = `
		INSERT INTO vehicle_rating_stats (
			vehicle_id, total_reviews, average_rating,
			rating_1_count, rating_2_count, rating_3_count, rating_4_count, rating_5_count,
			updated_at
		)
		SELECT
			$1,
			COUNT(*),
			COALESCE(AVG(rating), 0),
			COUNT(*) FILTER (WHERE rating = 1),
			COUNT(*) FILTER (WHERE rating = 2),
			COUNT(*) FILTER (WHERE rating = 3),
			COUNT(*) FILTER (WHERE rating = 4),
			COUNT(*) FILTER (WHERE rating = 5),
			now()
		FROM reviews
		WHERE vehicle_id = $1
		ON CONFLICT (vehicle_id) DO UPDATE SET
			total_reviews = EXCLUDED.total_reviews,
			average_rating = EXCLUDED.average_rating,
			rating_1_count = EXCLUDED.rating_1_count,
			rating_2_count = EXCLUDED.rating_2_count,
			rating_3_count = EXCLUDED.rating_3_count,
			rating_4_count = EXCLUDED.rating_4_count,
			rating_5_count = EXCLUDED.rating_5_count,
			updated_at = EXCLUDED.updated_at`

	if _, err := tx.Exec(ctx, q, vehicleID); err != nil {
		return infra.WrapRepoErr("failed to recalc vehicle rating stats", err)
	}
	return nil
}
