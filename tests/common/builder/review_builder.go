//go:build unit || e2e

package builder

import (
	"time"

	domreview "vehicle-rentals/internal/domain/review"
	reqdto "vehicle-rentals/internal/handler/dto/request"
	"vehicle-rentals/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReviewBuilder struct {
	UserID    uuid.UUID
	UserName  string
	VehicleID uuid.UUID
	BookingID uuid.UUID
	Rating    int
	Comment   string
	CreatedAt time.Time
}

func NewReviewBuilder() *ReviewBuilder {
	return &ReviewBuilder{
		UserID:    uuid.New(),
		UserName:  "Test Reviewer",
		VehicleID: uuid.New(),
		BookingID: uuid.New(),
		Rating:    5,
		Comment:   "Great car, smooth pickup!",
		CreatedAt: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func (r *ReviewBuilder) With(mutate func(*ReviewBuilder)) *ReviewBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *ReviewBuilder) BuildDomain() (*domreview.Review, error) {
	return domreview.NewReview(uuid.Nil, r.UserID, r.VehicleID, r.BookingID, r.Rating, r.Comment, r.CreatedAt)
}

func (r *ReviewBuilder) BuildSubmitRequestDTO() reqdto.SubmitReviewRequest {
	return reqdto.SubmitReviewRequest{
		BookingID: r.BookingID,
		Rating:    r.Rating,
		Comment:   r.Comment,
	}
}

func (r *ReviewBuilder) BuildListItem() *queries.ReviewListItem {
	return &queries.ReviewListItem{
		ID:        uuid.New(),
		UserID:    r.UserID,
		UserName:  r.UserName,
		Rating:    int32(r.Rating),
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func (r *ReviewBuilder) BuildVehicleRatingStats() *queries.VehicleRatingStats {
	return &queries.VehicleRatingStats{
		VehicleID:     r.VehicleID,
		TotalReviews:  10,
		AverageRating: 4.2,
		Rating1Count:  1,
		Rating2Count:  1,
		Rating3Count:  2,
		Rating4Count:  3,
		Rating5Count:  3,
		UpdatedAt:     r.CreatedAt,
	}
}

// Fluent builder methods
func (r *ReviewBuilder) WithUserID(userID uuid.UUID) *ReviewBuilder {
	r.UserID = userID
	return r
}

func (r *ReviewBuilder) WithVehicleID(vehicleID uuid.UUID) *ReviewBuilder {
	r.VehicleID = vehicleID
	return r
}

func (r *ReviewBuilder) WithBookingID(bookingID uuid.UUID) *ReviewBuilder {
	r.BookingID = bookingID
	return r
}

func (r *ReviewBuilder) WithRating(rating int) *ReviewBuilder {
	r.Rating = rating
	return r
}

func (r *ReviewBuilder) WithComment(comment string) *ReviewBuilder {
	r.Comment = comment
	return r
}

func (r *ReviewBuilder) WithCreatedAt(createdAt time.Time) *ReviewBuilder {
	r.CreatedAt = createdAt
	return r
}
