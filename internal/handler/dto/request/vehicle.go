package request

type CreateVehicleRequest struct {
	Make             string   `json:"make" binding:"required"`
	Model            string   `json:"model" binding:"required"`
	VehicleType      string   `json:"vehicle_type" binding:"required"`
	Location         string   `json:"location" binding:"required"`
	PricePerDayCents int64    `json:"price_per_day_cents" binding:"required,gt=0"`
	Images           []string `json:"images"`
}
