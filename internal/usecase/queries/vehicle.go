package queries

import (
	"context"
	"time"

	"vehicle-rentals/internal/infra"
	"vehicle-rentals/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrVehicleNotFound = errs.New("vehicle not found")

// Read models (DTO for read side)
type VehicleView struct {
	ID               uuid.UUID `json:"id"`
	Make             string    `json:"make"`
	Model            string    `json:"model"`
	VehicleType      string    `json:"vehicle_type"`
	Location         string    `json:"location"`
	PricePerDayCents int64     `json:"price_per_day_cents"`
	Images           []string  `json:"images"`
	TotalReviews     int32     `json:"total_reviews"`
	AverageRating    float64   `json:"average_rating"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type VehicleListItem struct {
	ID               uuid.UUID `json:"id"`
	Make             string    `json:"make"`
	Model            string    `json:"model"`
	VehicleType      string    `json:"vehicle_type"`
	Location         string    `json:"location"`
	PricePerDayCents int64     `json:"price_per_day_cents"`
	ThumbnailURL     *string   `json:"thumbnail_url,omitempty"`
	TotalReviews     int32     `json:"total_reviews"`
	AverageRating    float64   `json:"average_rating"`
	CreatedAt        time.Time `json:"created_at"`
}

type VehicleRatingStats struct {
	VehicleID     uuid.UUID `json:"vehicle_id"`
	TotalReviews  int32     `json:"total_reviews"`
	AverageRating float64   `json:"average_rating"`
	Rating1Count  int32     `json:"rating_1_count"`
	Rating2Count  int32     `json:"rating_2_count"`
	Rating3Count  int32     `json:"rating_3_count"`
	Rating4Count  int32     `json:"rating_4_count"`
	Rating5Count  int32     `json:"rating_5_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type VehicleFilters struct {
	VehicleType   *string
	Location      *string
	PriceMinCents *int64
	PriceMaxCents *int64
}

type VehicleReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
	ListFirstPage(ctx context.Context, filters VehicleFilters, limit int32) ([]*VehicleListItem, error)
	ListKeyset(ctx context.Context, filters VehicleFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*VehicleListItem, error)
	GetRatingStats(ctx context.Context, vehicleID uuid.UUID) (*VehicleRatingStats, error)
}

type VehicleQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
	List(ctx context.Context, filters VehicleFilters, cursor *Cursor, limit int) ([]*VehicleListItem, *Cursor, error)
	GetRatingStats(ctx context.Context, vehicleID uuid.UUID) (*VehicleRatingStats, error)
}

type vehicleQueriesImpl struct {
	readStore VehicleReadStore
}

func NewVehicleQueries(readStore VehicleReadStore) VehicleQueries {
	return &vehicleQueriesImpl{readStore: readStore}
}

func (q *vehicleQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*VehicleView, error) {
	v, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return v, nil
}

func (q *vehicleQueriesImpl) List(ctx context.Context, filters VehicleFilters, cursor *Cursor, limit int) ([]*VehicleListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*VehicleListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.readStore.ListFirstPage(ctx, filters, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.readStore.ListKeyset(ctx, filters, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func (q *vehicleQueriesImpl) GetRatingStats(ctx context.Context, vehicleID uuid.UUID) (*VehicleRatingStats, error) {
	return q.readStore.GetRatingStats(ctx, vehicleID)
}
