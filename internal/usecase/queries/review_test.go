//go:build unit

package queries_test

import (
	"context"
	"testing"

	"vehicle-rentals/internal/usecase/queries"
	"vehicle-rentals/tests/common/builder"
	queriesmock "vehicle-rentals/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReviewQueriesListByVehicle(t *testing.T) {
	ctx := context.Background()
	vehicleID := uuid.New()

	newQueries := func(t *testing.T) (*queriesmock.MockReviewReadStore, queries.ReviewQueries) {
		t.Helper()
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockReviewReadStore(ctrl)
		return store, queries.NewReviewQueries(store)
	}

	t.Run("full page produces a next cursor", func(t *testing.T) {
		store, q := newQueries(t)
		items := []*queries.ReviewListItem{
			builder.NewReviewBuilder().BuildListItem(),
			builder.NewReviewBuilder().BuildListItem(),
			builder.NewReviewBuilder().BuildListItem(),
		}
		store.EXPECT().FindByVehicleFirstPage(ctx, vehicleID, int32(3)).Return(items, nil)

		got, next, err := q.ListByVehicle(ctx, vehicleID, nil, 2)
		require.NoError(t, err)
		assert.Len(t, got, 2)
		require.NotNil(t, next)

		_, gotID, derr := queries.DecodeAfterCursor(next.After)
		require.NoError(t, derr)
		assert.Equal(t, got[1].ID, gotID)
	})

	t.Run("cursor switches to keyset query", func(t *testing.T) {
		store, q := newQueries(t)
		last := builder.NewReviewBuilder().BuildListItem()
		after := queries.EncodeAfterCursor(last.CreatedAt, last.ID)

		store.EXPECT().FindByVehicleKeyset(ctx, vehicleID, gomock.Any(), last.ID, int32(21)).
			Return(nil, nil)

		got, next, err := q.ListByVehicle(ctx, vehicleID, &queries.Cursor{After: after}, 20)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Nil(t, next)
	})

	t.Run("invalid cursor is rejected", func(t *testing.T) {
		_, q := newQueries(t)

		_, _, err := q.ListByVehicle(ctx, vehicleID, &queries.Cursor{After: "bogus"}, 20)
		require.ErrorIs(t, err, queries.ErrInvalidCursor)
	})
}
