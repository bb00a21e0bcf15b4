//go:build unit || e2e

package builder

import (
	"time"

	dombooking "vehicle-rentals/internal/domain/booking"
	"vehicle-rentals/internal/domain/vehicle"
	"vehicle-rentals/internal/usecase/queries"
	"vehicle-rentals/internal/usecase/shared"

	"github.com/google/uuid"
)

type VehicleBuilder struct {
	ID               uuid.UUID
	Make             string
	Model            string
	VehicleType      vehicle.Type
	Location         string
	PricePerDayCents int64
	Images           []string
	TotalReviews     int32
	AverageRating    float64
	CreatedAt        time.Time
}

func NewVehicleBuilder() *VehicleBuilder {
	return &VehicleBuilder{
		ID:               uuid.New(),
		Make:             "Toyota",
		Model:            "RAV4",
		VehicleType:      vehicle.TypeSUV,
		Location:         "Berlin",
		PricePerDayCents: 5000,
		Images:           []string{"https://img.example.com/rav4-front.jpg"},
		TotalReviews:     0,
		AverageRating:    0,
		CreatedAt:        time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC),
	}
}

func (v *VehicleBuilder) With(mutate func(*VehicleBuilder)) *VehicleBuilder {
	mutate(v)
	return v
}

// Build methods
func (v *VehicleBuilder) BuildDomain() (*vehicle.Vehicle, error) {
	return vehicle.NewVehicle(v.ID, v.Make, v.Model, v.VehicleType, v.Location, dombooking.MustMoney(v.PricePerDayCents), v.Images)
}

func (v *VehicleBuilder) BuildView() *queries.VehicleView {
	return &queries.VehicleView{
		ID:               v.ID,
		Make:             v.Make,
		Model:            v.Model,
		VehicleType:      v.VehicleType.String(),
		Location:         v.Location,
		PricePerDayCents: v.PricePerDayCents,
		Images:           v.Images,
		TotalReviews:     v.TotalReviews,
		AverageRating:    v.AverageRating,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.CreatedAt,
	}
}

func (v *VehicleBuilder) BuildListItem() *queries.VehicleListItem {
	var thumbnail *string
	if len(v.Images) > 0 {
		thumbnail = &v.Images[0]
	}
	return &queries.VehicleListItem{
		ID:               v.ID,
		Make:             v.Make,
		Model:            v.Model,
		VehicleType:      v.VehicleType.String(),
		Location:         v.Location,
		PricePerDayCents: v.PricePerDayCents,
		ThumbnailURL:     thumbnail,
		TotalReviews:     v.TotalReviews,
		AverageRating:    v.AverageRating,
		CreatedAt:        v.CreatedAt,
	}
}

func (v *VehicleBuilder) BuildSnapshot() *shared.VehicleSnapshot {
	return &shared.VehicleSnapshot{
		ID:               v.ID,
		Make:             v.Make,
		Model:            v.Model,
		VehicleType:      v.VehicleType.String(),
		Location:         v.Location,
		PricePerDayCents: v.PricePerDayCents,
	}
}

// Fluent builder methods
func (v *VehicleBuilder) WithID(id uuid.UUID) *VehicleBuilder {
	v.ID = id
	return v
}

func (v *VehicleBuilder) WithMakeModel(make, model string) *VehicleBuilder {
	v.Make = make
	v.Model = model
	return v
}

func (v *VehicleBuilder) WithVehicleType(t vehicle.Type) *VehicleBuilder {
	v.VehicleType = t
	return v
}

func (v *VehicleBuilder) WithLocation(location string) *VehicleBuilder {
	v.Location = location
	return v
}

func (v *VehicleBuilder) WithPricePerDayCents(cents int64) *VehicleBuilder {
	v.PricePerDayCents = cents
	return v
}

func (v *VehicleBuilder) WithImages(images []string) *VehicleBuilder {
	v.Images = images
	return v
}

func (v *VehicleBuilder) WithCreatedAt(createdAt time.Time) *VehicleBuilder {
	v.CreatedAt = createdAt
	return v
}
