//go:build unit

package queries_test

import (
	"context"
	"testing"

	"vehicle-rentals/internal/infra"
	"vehicle-rentals/internal/usecase/queries"
	"vehicle-rentals/tests/common/builder"
	queriesmock "vehicle-rentals/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newVehicleQueries(t *testing.T) (*queriesmock.MockVehicleReadStore, queries.VehicleQueries) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockVehicleReadStore(ctrl)
	return store, queries.NewVehicleQueries(store)
}

func listItems(n int) []*queries.VehicleListItem {
	items := make([]*queries.VehicleListItem, n)
	for i := range items {
		items[i] = builder.NewVehicleBuilder().BuildListItem()
	}
	return items
}

func TestVehicleQueriesGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the view", func(t *testing.T) {
		store, q := newVehicleQueries(t)
		view := builder.NewVehicleBuilder().BuildView()
		store.EXPECT().FindByID(ctx, view.ID).Return(view, nil)

		got, err := q.GetByID(ctx, view.ID)
		require.NoError(t, err)
		assert.Equal(t, view, got)
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		store, q := newVehicleQueries(t)
		id := uuid.New()
		store.EXPECT().FindByID(ctx, id).
			Return(nil, infra.WrapRepoErr("vehicle not found", nil, infra.KindNotFound))

		_, err := q.GetByID(ctx, id)
		require.ErrorIs(t, err, queries.ErrVehicleNotFound)
	})
}

func TestVehicleQueriesList(t *testing.T) {
	ctx := context.Background()

	t.Run("full page produces a next cursor", func(t *testing.T) {
		store, q := newVehicleQueries(t)
		// The store is asked for one extra row to detect a further page.
		store.EXPECT().ListFirstPage(ctx, queries.VehicleFilters{}, int32(4)).
			Return(listItems(4), nil)

		items, next, err := q.List(ctx, queries.VehicleFilters{}, nil, 3)
		require.NoError(t, err)
		assert.Len(t, items, 3)
		require.NotNil(t, next)

		gotTime, gotID, derr := queries.DecodeAfterCursor(next.After)
		require.NoError(t, derr)
		assert.Equal(t, items[2].ID, gotID)
		assert.Equal(t, items[2].CreatedAt.UnixMicro(), gotTime.UnixMicro())
	})

	t.Run("short page has no next cursor", func(t *testing.T) {
		store, q := newVehicleQueries(t)
		store.EXPECT().ListFirstPage(ctx, queries.VehicleFilters{}, int32(4)).
			Return(listItems(2), nil)

		items, next, err := q.List(ctx, queries.VehicleFilters{}, nil, 3)
		require.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Nil(t, next)
	})

	t.Run("cursor switches to keyset query", func(t *testing.T) {
		store, q := newVehicleQueries(t)
		last := builder.NewVehicleBuilder().BuildListItem()
		after := queries.EncodeAfterCursor(last.CreatedAt, last.ID)

		store.EXPECT().ListKeyset(ctx, queries.VehicleFilters{}, gomock.Any(), last.ID, int32(21)).
			Return(listItems(1), nil)

		items, next, err := q.List(ctx, queries.VehicleFilters{}, &queries.Cursor{After: after}, 0)
		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Nil(t, next)
	})

	t.Run("invalid cursor is rejected", func(t *testing.T) {
		_, q := newVehicleQueries(t)

		_, _, err := q.List(ctx, queries.VehicleFilters{}, &queries.Cursor{After: "garbage"}, 10)
		require.ErrorIs(t, err, queries.ErrInvalidCursor)
	})

	t.Run("filters pass through unchanged", func(t *testing.T) {
		store, q := newVehicleQueries(t)
		vehicleType := "SUV"
		priceMax := int64(10000)
		filters := queries.VehicleFilters{VehicleType: &vehicleType, PriceMaxCents: &priceMax}
		store.EXPECT().ListFirstPage(ctx, filters, int32(21)).Return(nil, nil)

		_, _, err := q.List(ctx, filters, nil, 20)
		require.NoError(t, err)
	})
}

func TestVehicleQueriesGetRatingStats(t *testing.T) {
	ctx := context.Background()
	store, q := newVehicleQueries(t)
	stats := builder.NewReviewBuilder().BuildVehicleRatingStats()
	store.EXPECT().GetRatingStats(ctx, stats.VehicleID).Return(stats, nil)

	got, err := q.GetRatingStats(ctx, stats.VehicleID)
	require.NoError(t, err)
	assert.Equal(t, stats, got)
}
