package repository

import (
	"context"

	"vehicle-rentals/internal/domain/vehicle"
	"vehicle-rentals/internal/infra"
	"vehicle-rentals/internal/infra/db"

	"github.com/google/uuid"
)

type VehicleRepository struct{}

func NewVehicleRepository() *VehicleRepository {
	return &VehicleRepository{}
}

func (r *VehicleRepository) Create(ctx context.Context, tx db.DBTX, v *vehicle.Vehicle) (uuid.UUID, error) {
	const q = `
		INSERT INTO vehicles (id, make, model, vehicle_type, location, price_per_day_cents, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, q,
		v.ID(), v.Make(), v.Model(), v.VehicleType().String(), v.Location(), v.PricePerDay().Cents(), v.Images(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create vehicle", err)
	}

	return id, nil
}
