package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	reqdto "vehicle-rentals/internal/handler/dto/request"
	resdto "vehicle-rentals/internal/handler/dto/response"
	"vehicle-rentals/internal/pkg/errs"
	"vehicle-rentals/internal/usecase/commands"
	"vehicle-rentals/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VehicleHandler struct {
	vehicleCommands commands.VehicleCommands
	vehicleQueries  queries.VehicleQueries
	reviewQueries   queries.ReviewQueries
	bookingQueries  queries.BookingQueries
}

func NewVehicleHandler(
	vehicleCommands commands.VehicleCommands,
	vehicleQueries queries.VehicleQueries,
	reviewQueries queries.ReviewQueries,
	bookingQueries queries.BookingQueries,
) *VehicleHandler {
	return &VehicleHandler{
		vehicleCommands: vehicleCommands,
		vehicleQueries:  vehicleQueries,
		reviewQueries:   reviewQueries,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create vehicle
// @Description Add a vehicle to the catalog (admin only)
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateVehicleRequest true "Vehicle"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /vehicles [post]
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req reqdto.CreateVehicleRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.vehicleCommands.CreateVehicle(c.Request.Context(), commands.CreateVehicleRequest{
		Make:             req.Make,
		Model:            req.Model,
		VehicleType:      req.VehicleType,
		Location:         req.Location,
		PricePerDayCents: req.PricePerDayCents,
		Images:           req.Images,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid vehicle data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id": result.VehicleID.String(),
	})
}

// @Summary List vehicles
// @Description List vehicles with optional type, location and price filters
// @Tags vehicles
// @Produce json
// @Param type query string false "Vehicle type (SUV, Van, Sedan, Hatchback)"
// @Param location query string false "Location substring match"
// @Param price_min query int false "Minimum daily price in cents"
// @Param price_max query int false "Maximum daily price in cents"
// @Param after query string false "Pagination cursor"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.VehiclePageResponse
// @Failure 400 {object} map[string]string
// @Router /vehicles [get]
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	filters, err := parseVehicleFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	cursor := parseCursor(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	items, next, err := h.vehicleQueries.List(c.Request.Context(), filters, cursor, limit)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidCursor) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid pagination cursor",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromVehiclePage(items, next))
}

// @Summary Get vehicle
// @Description Get vehicle details by ID
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} resdto.VehicleResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /vehicles/{id} [get]
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.vehicleQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrVehicleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Vehicle not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromVehicleView(view))
}

// @Summary List vehicle reviews
// @Description List reviews for a vehicle, newest first
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param after query string false "Pagination cursor"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.ReviewPageResponse
// @Failure 400 {object} map[string]string
// @Router /vehicles/{id}/reviews [get]
func (h *VehicleHandler) ListVehicleReviews(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	cursor := parseCursor(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	items, next, err := h.reviewQueries.ListByVehicle(c.Request.Context(), id, cursor, limit)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidCursor) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid pagination cursor",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromReviewPage(items, next))
}

// @Summary Get vehicle rating stats
// @Description Get aggregated rating statistics for a vehicle
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} resdto.RatingStatsResponse
// @Failure 400 {object} map[string]string
// @Router /vehicles/{id}/rating-stats [get]
func (h *VehicleHandler) GetRatingStats(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	stats, err := h.vehicleQueries.GetRatingStats(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRatingStats(stats))
}

// @Summary Get vehicle calendar
// @Description List the booked periods of a vehicle for availability previews
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {array} resdto.BookedPeriodResponse
// @Failure 400 {object} map[string]string
// @Router /vehicles/{id}/calendar [get]
func (h *VehicleHandler) GetVehicleCalendar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	periods, err := h.bookingQueries.VehicleCalendar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.BookedPeriodResponse, len(periods))
	for i, p := range periods {
		response[i] = resdto.FromBookedPeriod(p)
	}
	c.JSON(http.StatusOK, response)
}

func parseVehicleFilters(c *gin.Context) (queries.VehicleFilters, error) {
	var filters queries.VehicleFilters

	if t := strings.TrimSpace(c.Query("type")); t != "" {
		filters.VehicleType = &t
	}
	if loc := strings.TrimSpace(c.Query("location")); loc != "" {
		filters.Location = &loc
	}
	if raw := c.Query("price_min"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			return filters, errors.New("price_min must be a non-negative integer")
		}
		filters.PriceMinCents = &v
	}
	if raw := c.Query("price_max"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			return filters, errors.New("price_max must be a non-negative integer")
		}
		filters.PriceMaxCents = &v
	}
	return filters, nil
}

func parseCursor(c *gin.Context) *queries.Cursor {
	if after := c.Query("after"); after != "" {
		return &queries.Cursor{After: after}
	}
	return nil
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}
