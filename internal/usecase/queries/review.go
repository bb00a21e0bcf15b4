package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ReviewListItem struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int32     `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewReadStore interface {
	FindByVehicleFirstPage(ctx context.Context, vehicleID uuid.UUID, limit int32) ([]*ReviewListItem, error)
	FindByVehicleKeyset(ctx context.Context, vehicleID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*ReviewListItem, error)
}

type ReviewQueries interface {
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID, cursor *Cursor, limit int) ([]*ReviewListItem, *Cursor, error)
}

type reviewQueriesImpl struct {
	readStore ReviewReadStore
}

func NewReviewQueries(readStore ReviewReadStore) ReviewQueries {
	return &reviewQueriesImpl{readStore: readStore}
}

func (q *reviewQueriesImpl) ListByVehicle(ctx context.Context, vehicleID uuid.UUID, cursor *Cursor, limit int) ([]*ReviewListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*ReviewListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.readStore.FindByVehicleFirstPage(ctx, vehicleID, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.readStore.FindByVehicleKeyset(ctx, vehicleID, lastCreatedAt, lastID, int32(limit+1))
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
