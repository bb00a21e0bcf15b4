package response

import (
	"time"

	"vehicle-rentals/internal/usecase/queries"

	"github.com/google/uuid"
)

const isoDate = "2006-01-02"

type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	VehicleID       uuid.UUID `json:"vehicleId"`
	VehicleMake     string    `json:"vehicleMake"`
	VehicleModel    string    `json:"vehicleModel"`
	UserID          uuid.UUID `json:"userId"`
	StartDate       string    `json:"startDate"`
	EndDate         string    `json:"endDate"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	Reviewed        bool      `json:"reviewed"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type BookingListResponse struct {
	ID              uuid.UUID `json:"id"`
	VehicleID       uuid.UUID `json:"vehicleId"`
	VehicleMake     string    `json:"vehicleMake"`
	VehicleModel    string    `json:"vehicleModel"`
	StartDate       string    `json:"startDate"`
	EndDate         string    `json:"endDate"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	Reviewed        bool      `json:"reviewed"`
	CreatedAt       time.Time `json:"createdAt"`
}

type BookedPeriodResponse struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:              rm.ID,
		VehicleID:       rm.VehicleID,
		VehicleMake:     rm.VehicleMake,
		VehicleModel:    rm.VehicleModel,
		UserID:          rm.UserID,
		StartDate:       rm.StartDate.Format(isoDate),
		EndDate:         rm.EndDate.Format(isoDate),
		Status:          rm.Status,
		TotalPriceCents: rm.TotalPriceCents,
		Reviewed:        rm.Reviewed,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:              rm.ID,
		VehicleID:       rm.VehicleID,
		VehicleMake:     rm.VehicleMake,
		VehicleModel:    rm.VehicleModel,
		StartDate:       rm.StartDate.Format(isoDate),
		EndDate:         rm.EndDate.Format(isoDate),
		Status:          rm.Status,
		TotalPriceCents: rm.TotalPriceCents,
		Reviewed:        rm.Reviewed,
		CreatedAt:       rm.CreatedAt,
	}
}

func FromBookedPeriod(rm *queries.BookedPeriod) *BookedPeriodResponse {
	return &BookedPeriodResponse{
		StartDate: rm.StartDate.Format(isoDate),
		EndDate:   rm.EndDate.Format(isoDate),
	}
}
