package vehicle

import (
	"errors"
	"strings"
	"time"

	"vehicle-rentals/internal/domain/booking"

	"github.com/google/uuid"
)

var (
	ErrEmptyMake       = errors.New("vehicle make cannot be empty")
	ErrEmptyModel      = errors.New("vehicle model cannot be empty")
	ErrInvalidType     = errors.New("invalid vehicle type")
	ErrEmptyLocation   = errors.New("vehicle location cannot be empty")
	ErrNonPositiveRate = errors.New("price per day must be positive")
)

type Type string

const (
	TypeSUV       Type = "SUV"
	TypeVan       Type = "Van"
	TypeSedan     Type = "Sedan"
	TypeHatchback Type = "Hatchback"
)

func NewType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeSUV, TypeVan, TypeSedan, TypeHatchback:
		return t, nil
	default:
		return "", ErrInvalidType
	}
}

func (t Type) String() string {
	return string(t)
}

// Vehicle is owned by the catalog; the booking engine only ever reads it.
type Vehicle struct {
	id          uuid.UUID
	make        string
	model       string
	vehicleType Type
	location    string
	pricePerDay booking.Money
	images      []string
	createdAt   time.Time
	updatedAt   time.Time
}

func NewVehicle(id uuid.UUID, make, model string, vehicleType Type, location string, pricePerDay booking.Money, images []string) (*Vehicle, error) {
	make = strings.TrimSpace(make)
	model = strings.TrimSpace(model)
	location = strings.TrimSpace(location)
	if make == "" {
		return nil, ErrEmptyMake
	}
	if model == "" {
		return nil, ErrEmptyModel
	}
	if location == "" {
		return nil, ErrEmptyLocation
	}
	if pricePerDay.Cents() <= 0 {
		return nil, ErrNonPositiveRate
	}
	return &Vehicle{
		id:          id,
		make:        make,
		model:       model,
		vehicleType: vehicleType,
		location:    location,
		pricePerDay: pricePerDay,
		images:      images,
	}, nil
}

func (v *Vehicle) ID() uuid.UUID              { return v.id }
func (v *Vehicle) Make() string               { return v.make }
func (v *Vehicle) Model() string              { return v.model }
func (v *Vehicle) VehicleType() Type          { return v.vehicleType }
func (v *Vehicle) Location() string           { return v.location }
func (v *Vehicle) PricePerDay() booking.Money { return v.pricePerDay }
func (v *Vehicle) Images() []string           { return v.images }
func (v *Vehicle) CreatedAt() time.Time       { return v.createdAt }
func (v *Vehicle) UpdatedAt() time.Time       { return v.updatedAt }
