package repository

import (
	"context"
	"errors"

	"vehicle-rentals/internal/domain/review"
	"vehicle-rentals/internal/infra"
	"vehicle-rentals/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type ReviewRepository struct{}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

func (r *ReviewRepository) Create(ctx context.Context, tx db.DBTX, rev *review.Review) (uuid.UUID, error) {
	const q = `
		INSERT INTO reviews (id, booking_id, vehicle_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, q,
		rev.ID(), rev.BookingID(), rev.VehicleID(), rev.UserID(),
		rev.Rating().Value(), rev.Comment().String(),
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			// reviews.booking_id is unique; the reviewed flag should have
			// caught this first
			return uuid.Nil, infra.WrapRepoErr("review already exists for booking", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create review", err)
	}

	return id, nil
}
