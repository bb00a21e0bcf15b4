package response

import (
	"time"

	"vehicle-rentals/internal/usecase/queries"

	"github.com/google/uuid"
)

type VehicleResponse struct {
	ID               uuid.UUID `json:"id"`
	Make             string    `json:"make"`
	Model            string    `json:"model"`
	VehicleType      string    `json:"vehicleType"`
	Location         string    `json:"location"`
	PricePerDayCents int64     `json:"pricePerDayCents"`
	Images           []string  `json:"images"`
	TotalReviews     int32     `json:"totalReviews"`
	AverageRating    float64   `json:"averageRating"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type VehicleListResponse struct {
	ID               uuid.UUID `json:"id"`
	Make             string    `json:"make"`
	Model            string    `json:"model"`
	VehicleType      string    `json:"vehicleType"`
	Location         string    `json:"location"`
	PricePerDayCents int64     `json:"pricePerDayCents"`
	ThumbnailURL     *string   `json:"thumbnailUrl,omitempty"`
	TotalReviews     int32     `json:"totalReviews"`
	AverageRating    float64   `json:"averageRating"`
}

type VehiclePageResponse struct {
	Vehicles []*VehicleListResponse `json:"vehicles"`
	Next     *string                `json:"next,omitempty"`
}

type RatingStatsResponse struct {
	VehicleID     uuid.UUID `json:"vehicleId"`
	TotalReviews  int32     `json:"totalReviews"`
	AverageRating float64   `json:"averageRating"`
	Rating1Count  int32     `json:"rating1Count"`
	Rating2Count  int32     `json:"rating2Count"`
	Rating3Count  int32     `json:"rating3Count"`
	Rating4Count  int32     `json:"rating4Count"`
	Rating5Count  int32     `json:"rating5Count"`
}

func FromVehicleView(rm *queries.VehicleView) *VehicleResponse {
	images := rm.Images
	if images == nil {
		images = []string{}
	}
	return &VehicleResponse{
		ID:               rm.ID,
		Make:             rm.Make,
		Model:            rm.Model,
		VehicleType:      rm.VehicleType,
		Location:         rm.Location,
		PricePerDayCents: rm.PricePerDayCents,
		Images:           images,
		TotalReviews:     rm.TotalReviews,
		AverageRating:    rm.AverageRating,
		CreatedAt:        rm.CreatedAt,
		UpdatedAt:        rm.UpdatedAt,
	}
}

func FromVehicleListItem(rm *queries.VehicleListItem) *VehicleListResponse {
	return &VehicleListResponse{
		ID:               rm.ID,
		Make:             rm.Make,
		Model:            rm.Model,
		VehicleType:      rm.VehicleType,
		Location:         rm.Location,
		PricePerDayCents: rm.PricePerDayCents,
		ThumbnailURL:     rm.ThumbnailURL,
		TotalReviews:     rm.TotalReviews,
		AverageRating:    rm.AverageRating,
	}
}

func FromVehiclePage(items []*queries.VehicleListItem, next *queries.Cursor) *VehiclePageResponse {
	vehicles := make([]*VehicleListResponse, len(items))
	for i, item := range items {
		vehicles[i] = FromVehicleListItem(item)
	}
	resp := &VehiclePageResponse{Vehicles: vehicles}
	if next != nil {
		resp.Next = &next.After
	}
	return resp
}

func FromRatingStats(rm *queries.VehicleRatingStats) *RatingStatsResponse {
	return &RatingStatsResponse{
		VehicleID:     rm.VehicleID,
		TotalReviews:  rm.TotalReviews,
		AverageRating: rm.AverageRating,
		Rating1Count:  rm.Rating1Count,
		Rating2Count:  rm.Rating2Count,
		Rating3Count:  rm.Rating3Count,
		Rating4Count:  rm.Rating4Count,
		Rating5Count:  rm.Rating5Count,
	}
}
