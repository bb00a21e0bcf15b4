package request

import (
	"github.com/google/uuid"
)

// Dates travel as ISO calendar dates ("2006-01-02"); the domain layer parses
// and validates the range.
type CreateBookingRequest struct {
	VehicleID uuid.UUID `json:"vehicle_id" binding:"required"`
	StartDate string    `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string    `json:"end_date" binding:"required,datetime=2006-01-02"`
}

type ModifyBookingRequest struct {
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
}
