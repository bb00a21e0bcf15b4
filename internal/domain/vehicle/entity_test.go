//go:build unit

package vehicle_test

import (
	"testing"

	"vehicle-rentals/internal/domain/booking"
	"vehicle-rentals/internal/domain/vehicle"
	"vehicle-rentals/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewType(t *testing.T) {
	for _, valid := range []string{"SUV", "Van", "Sedan", "Hatchback"} {
		vt, err := vehicle.NewType(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, vt.String())
	}

	_, err := vehicle.NewType("Tractor")
	require.ErrorIs(t, err, vehicle.ErrInvalidType)

	// Types are case sensitive; the DB check constraint matches exactly.
	_, err = vehicle.NewType("suv")
	require.ErrorIs(t, err, vehicle.ErrInvalidType)
}

func TestNewVehicle(t *testing.T) {
	t.Run("builds a valid vehicle", func(t *testing.T) {
		b := builder.NewVehicleBuilder()
		v, err := b.BuildDomain()

		require.NoError(t, err)
		assert.Equal(t, b.ID, v.ID())
		assert.Equal(t, "Toyota", v.Make())
		assert.Equal(t, vehicle.TypeSUV, v.VehicleType())
		assert.Equal(t, int64(5000), v.PricePerDay().Cents())
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		v, err := vehicle.NewVehicle(uuid.New(), "  Toyota ", " RAV4 ", vehicle.TypeSUV, " Berlin ", booking.MustMoney(5000), nil)

		require.NoError(t, err)
		assert.Equal(t, "Toyota", v.Make())
		assert.Equal(t, "RAV4", v.Model())
		assert.Equal(t, "Berlin", v.Location())
	})

	t.Run("rejects blank fields", func(t *testing.T) {
		_, err := builder.NewVehicleBuilder().With(func(b *builder.VehicleBuilder) { b.Make = "  " }).BuildDomain()
		require.ErrorIs(t, err, vehicle.ErrEmptyMake)

		_, err = builder.NewVehicleBuilder().With(func(b *builder.VehicleBuilder) { b.Model = "" }).BuildDomain()
		require.ErrorIs(t, err, vehicle.ErrEmptyModel)

		_, err = builder.NewVehicleBuilder().With(func(b *builder.VehicleBuilder) { b.Location = "" }).BuildDomain()
		require.ErrorIs(t, err, vehicle.ErrEmptyLocation)
	})

	t.Run("rejects a non-positive daily rate", func(t *testing.T) {
		_, err := builder.NewVehicleBuilder().With(func(b *builder.VehicleBuilder) { b.PricePerDayCents = 0 }).BuildDomain()
		require.ErrorIs(t, err, vehicle.ErrNonPositiveRate)
	})
}
