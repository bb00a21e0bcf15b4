package commands

import (
	"context"

	"vehicle-rentals/internal/domain/review"
	"vehicle-rentals/internal/infra"
	"vehicle-rentals/internal/pkg/clock"
	"vehicle-rentals/internal/pkg/errs"
	"vehicle-rentals/internal/usecase/shared"

	"github.com/google/uuid"
)

type SubmitReviewRequest struct {
	BookingID uuid.UUID `json:"booking_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
}

type SubmitReviewResult struct {
	ReviewID uuid.UUID
}

type ReviewCommands interface {
	SubmitReview(ctx context.Context, req SubmitReviewRequest, userID uuid.UUID) (*SubmitReviewResult, error)
}

type reviewUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReviewUseCase(uow shared.UnitOfWork, clk clock.Clock) ReviewCommands {
	return &reviewUseCaseImpl{uow: uow, clock: clk}
}

// SubmitReview checks eligibility, flips the booking's reviewed flag and
// inserts the review in one transaction, then folds the new rating into the
// vehicle's stats. The flag flip is a compare-and-set, so of two concurrent
// submissions for the same booking exactly one commits.
func (uc *reviewUseCaseImpl) SubmitReview(ctx context.Context, req SubmitReviewRequest, userID uuid.UUID) (*SubmitReviewResult, error) {
	var createdID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().BookingByID(ctx, req.BookingID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.Mark(derr, errs.ErrBookingNotFound)
			}
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}
		if snap.UserID != userID {
			return errs.Mark(errs.New("booking belongs to another user"), errs.ErrBookingNotFound)
		}

		b, derr := reconstructFromSnapshot(snap)
		if derr != nil {
			return derr
		}
		if !b.CanReview(clock.Today(uc.clock)) {
			return errs.ErrReviewNotEligible
		}

		won, derr := tx.Bookings().MarkReviewed(ctx, tx.DB(), snap.ID)
		if derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}
		if !won {
			return errs.Mark(review.ErrReviewAlreadyExists, errs.ErrReviewNotEligible)
		}

		rev, derr := review.NewReview(uuid.Nil, userID, snap.VehicleID, snap.ID, req.Rating, req.Comment, uc.clock.Now())
		if derr != nil {
			return errs.Mark(derr, errs.ErrDomainValidation)
		}

		id, derr := tx.Reviews().Create(ctx, tx.DB(), rev)
		if derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return errs.Mark(derr, errs.ErrReviewNotEligible)
			}
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}
		createdID = id

		return tx.RatingStats().RecalcVehicleRatingStats(ctx, tx.DB(), snap.VehicleID)
	})
	if err != nil {
		return nil, err
	}
	return &SubmitReviewResult{ReviewID: createdID}, nil
}
