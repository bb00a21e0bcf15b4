package response

import (
	"time"

	"vehicle-rentals/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int32     `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReviewPageResponse struct {
	Reviews []*ReviewResponse `json:"reviews"`
	Next    *string           `json:"next,omitempty"`
}

func FromReviewPage(items []*queries.ReviewListItem, next *queries.Cursor) *ReviewPageResponse {
	reviews := make([]*ReviewResponse, len(items))
	for i, item := range items {
		reviews[i] = &ReviewResponse{
			ID:        item.ID,
			UserID:    item.UserID,
			UserName:  item.UserName,
			Rating:    item.Rating,
			Comment:   item.Comment,
			CreatedAt: item.CreatedAt,
		}
	}
	resp := &ReviewPageResponse{Reviews: reviews}
	if next != nil {
		resp.Next = &next.After
	}
	return resp
}
