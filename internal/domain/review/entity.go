package review

import (
	"time"

	"github.com/google/uuid"
)

// Review closes out an elapsed booking. One per booking, enforced by the
// booking's reviewed flag plus a unique constraint on booking_id.
type Review struct {
	id        uuid.UUID
	userID    uuid.UUID
	vehicleID uuid.UUID
	bookingID uuid.UUID
	rating    Rating
	comment   Comment
	createdAt time.Time
	updatedAt time.Time
}

func NewReview(id, userID, vehicleID, bookingID uuid.UUID, ratingValue int, commentText string, now time.Time) (*Review, error) {
	rating, err := NewRating(ratingValue)
	if err != nil {
		return nil, err
	}

	comment, err := NewComment(commentText)
	if err != nil {
		return nil, err
	}

	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Review{
		id:        id,
		userID:    userID,
		vehicleID: vehicleID,
		bookingID: bookingID,
		rating:    rating,
		comment:   comment,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func (r *Review) ID() uuid.UUID        { return r.id }
func (r *Review) UserID() uuid.UUID    { return r.userID }
func (r *Review) VehicleID() uuid.UUID { return r.vehicleID }
func (r *Review) BookingID() uuid.UUID { return r.bookingID }
func (r *Review) Rating() Rating       { return r.rating }
func (r *Review) Comment() Comment     { return r.comment }
func (r *Review) CreatedAt() time.Time { return r.createdAt }
func (r *Review) UpdatedAt() time.Time { return r.updatedAt }
