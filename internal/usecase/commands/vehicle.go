package commands

import (
	"context"

	"vehicle-rentals/internal/domain/booking"
	"vehicle-rentals/internal/domain/vehicle"
	"vehicle-rentals/internal/pkg/errs"
	"vehicle-rentals/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateVehicleRequest struct {
	Make             string   `json:"make"`
	Model            string   `json:"model"`
	VehicleType      string   `json:"vehicle_type"`
	Location         string   `json:"location"`
	PricePerDayCents int64    `json:"price_per_day_cents"`
	Images           []string `json:"images"`
}

type CreateVehicleResult struct {
	VehicleID uuid.UUID
}

type VehicleCommands interface {
	CreateVehicle(ctx context.Context, req CreateVehicleRequest) (*CreateVehicleResult, error)
}

type vehicleUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewVehicleUseCase(uow shared.UnitOfWork) VehicleCommands {
	return &vehicleUseCaseImpl{uow: uow}
}

// CreateVehicle adds a vehicle to the catalog. Route-level authorization
// restricts this to admins; the aggregate owns all field validation.
func (uc *vehicleUseCaseImpl) CreateVehicle(ctx context.Context, req CreateVehicleRequest) (*CreateVehicleResult, error) {
	vehicleType, err := vehicle.NewType(req.VehicleType)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	pricePerDay, err := booking.NewMoney(req.PricePerDayCents)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	images := req.Images
	if images == nil {
		images = []string{}
	}

	v, err := vehicle.NewVehicle(uuid.New(), req.Make, req.Model, vehicleType, req.Location, pricePerDay, images)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Vehicles().Create(ctx, tx.DB(), v)
		if derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateVehicleResult{VehicleID: createdID}, nil
}
