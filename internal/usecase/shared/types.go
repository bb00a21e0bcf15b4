package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots keep the command layer independent of read-side view
// types.
type VehicleSnapshot struct {
	ID               uuid.UUID
	Make             string
	Model            string
	VehicleType      string
	Location         string
	PricePerDayCents int64
}

type BookingSnapshot struct {
	ID              uuid.UUID
	VehicleID       uuid.UUID
	UserID          uuid.UUID
	StartDate       time.Time
	EndDate         time.Time
	Status          string
	TotalPriceCents int64
	Reviewed        bool
}

type UserSnapshot struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}
