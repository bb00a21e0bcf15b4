//go:build unit

package commands_test

import (
	"context"
	"testing"

	"vehicle-rentals/internal/domain/review"
	"vehicle-rentals/internal/infra"
	"vehicle-rentals/internal/pkg/clock"
	"vehicle-rentals/internal/pkg/errs"
	"vehicle-rentals/internal/usecase/commands"
	"vehicle-rentals/internal/usecase/shared"
	"vehicle-rentals/tests/common/builder"
	sharedmock "vehicle-rentals/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type reviewMocks struct {
	uow      *sharedmock.MockUnitOfWork
	tx       *sharedmock.MockTx
	reads    *sharedmock.MockCommandReads
	bookings *sharedmock.MockBookingRepository
	reviews  *sharedmock.MockReviewRepository
	stats    *sharedmock.MockRatingStatsRepository
}

func newReviewMocks(ctrl *gomock.Controller) *reviewMocks {
	m := &reviewMocks{
		uow:      sharedmock.NewMockUnitOfWork(ctrl),
		tx:       sharedmock.NewMockTx(ctrl),
		reads:    sharedmock.NewMockCommandReads(ctrl),
		bookings: sharedmock.NewMockBookingRepository(ctrl),
		reviews:  sharedmock.NewMockReviewRepository(ctrl),
		stats:    sharedmock.NewMockRatingStatsRepository(ctrl),
	}
	m.tx.EXPECT().DB().Return(nil).AnyTimes()
	m.tx.EXPECT().Reads().Return(m.reads).AnyTimes()
	m.tx.EXPECT().Bookings().Return(m.bookings).AnyTimes()
	m.tx.EXPECT().Reviews().Return(m.reviews).AnyTimes()
	m.tx.EXPECT().RatingStats().Return(m.stats).AnyTimes()
	m.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, m.tx)
		},
	).AnyTimes()
	return m
}

func (m *reviewMocks) useCase() commands.ReviewCommands {
	return commands.NewReviewUseCase(m.uow, clock.NewMockClock(commandNow))
}

func TestSubmitReview(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	elapsedSnapshot := func() *shared.BookingSnapshot {
		return builder.NewBookingBuilder().WithUserID(userID).AsElapsed().BuildSnapshot()
	}

	t.Run("records review for an elapsed booking", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		m := newReviewMocks(ctrl)

		snap := elapsedSnapshot()
		req := commands.SubmitReviewRequest{BookingID: snap.ID, Rating: 5, Comment: "Great car, smooth pickup!"}
		reviewID := uuid.New()

		m.reads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil)
		m.bookings.EXPECT().MarkReviewed(gomock.Any(), gomock.Any(), snap.ID).Return(true, nil)
		m.reviews.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, rev *review.Review) (uuid.UUID, error) {
				assert.Equal(t, userID, rev.UserID())
				assert.Equal(t, snap.VehicleID, rev.VehicleID())
				assert.Equal(t, snap.ID, rev.BookingID())
				assert.Equal(t, 5, rev.Rating().Value())
				return reviewID, nil
			})
		m.stats.EXPECT().RecalcVehicleRatingStats(gomock.Any(), gomock.Any(), snap.VehicleID).Return(nil)

		result, err := m.useCase().SubmitReview(context.Background(), req, userID)

		require.NoError(t, err)
		assert.Equal(t, reviewID, result.ReviewID)
	})

	t.Run("returns not found for unknown booking", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		m := newReviewMocks(ctrl)

		bookingID := uuid.New()
		m.reads.EXPECT().
			BookingByID(gomock.Any(), bookingID).
			Return(nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound))

		_, err := m.useCase().SubmitReview(context.Background(), commands.SubmitReviewRequest{BookingID: bookingID, Rating: 4}, userID)

		require.ErrorIs(t, err, errs.ErrBookingNotFound)
	})

	t.Run("hides bookings that belong to another user", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		m := newReviewMocks(ctrl)

		snap := builder.NewBookingBuilder().AsElapsed().BuildSnapshot()
		m.reads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil)

		_, err := m.useCase().SubmitReview(context.Background(), commands.SubmitReviewRequest{BookingID: snap.ID, Rating: 4}, userID)

		require.ErrorIs(t, err, errs.ErrBookingNotFound)
	})

	t.Run("rejects review before the rental ends", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		m := newReviewMocks(ctrl)

		// Default builder dates lie after commandNow, so the rental has not
		// elapsed yet.
		snap := builder.NewBookingBuilder().WithUserID(userID).BuildSnapshot()
		m.reads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil)

		_, err := m.useCase().SubmitReview(context.Background(), commands.SubmitReviewRequest{BookingID: snap.ID, Rating: 4}, userID)

		require.ErrorIs(t, err, errs.ErrReviewNotEligible)
	})

	t.Run("rejects review of a cancelled booking", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		m := newReviewMocks(ctrl)

		snap := builder.NewBookingBuilder().WithUserID(userID).AsElapsed().AsCancelled().BuildSnapshot()
		m.reads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil)

		_, err := m.useCase().SubmitReview(context.Background(), commands.SubmitReviewRequest{BookingID: snap.ID, Rating: 4}, userID)

		require.ErrorIs(t, err, errs.ErrReviewNotEligible)
	})

	t.Run("rejects second review of the same booking", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		m := newReviewMocks(ctrl)

		snap := builder.NewBookingBuilder().WithUserID(userID).AsElapsed().WithReviewed(true).BuildSnapshot()
		m.reads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil)

		_, err := m.useCase().SubmitReview(context.Background(), commands.SubmitReviewRequest{BookingID: snap.ID, Rating: 4}, userID)

		require.ErrorIs(t, err, errs.ErrReviewNotEligible)
	})

	t.Run("loses the race when another submission flips the flag first", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		m := newReviewMocks(ctrl)

		snap := elapsedSnapshot()
		m.reads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil)
		m.bookings.EXPECT().MarkReviewed(gomock.Any(), gomock.Any(), snap.ID).Return(false, nil)

		_, err := m.useCase().SubmitReview(context.Background(), commands.SubmitReviewRequest{BookingID: snap.ID, Rating: 4}, userID)

		require.ErrorIs(t, err, errs.ErrReviewNotEligible)
	})

	t.Run("rejects out-of-range rating", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		m := newReviewMocks(ctrl)

		snap := elapsedSnapshot()
		m.reads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil)
		m.bookings.EXPECT().MarkReviewed(gomock.Any(), gomock.Any(), snap.ID).Return(true, nil)

		_, err := m.useCase().SubmitReview(context.Background(), commands.SubmitReviewRequest{BookingID: snap.ID, Rating: 6}, userID)

		require.ErrorIs(t, err, errs.ErrDomainValidation)
	})

	t.Run("treats duplicate insert as ineligible", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		m := newReviewMocks(ctrl)

		snap := elapsedSnapshot()
		m.reads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil)
		m.bookings.EXPECT().MarkReviewed(gomock.Any(), gomock.Any(), snap.ID).Return(true, nil)
		m.reviews.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("duplicate review", nil, infra.KindDuplicateKey))

		_, err := m.useCase().SubmitReview(context.Background(), commands.SubmitReviewRequest{BookingID: snap.ID, Rating: 4, Comment: "ok"}, userID)

		require.ErrorIs(t, err, errs.ErrReviewNotEligible)
	})
}
