package api

import (
	"errors"
	"net/http"

	reqdto "vehicle-rentals/internal/handler/dto/request"
	"vehicle-rentals/internal/handler/middleware"
	"vehicle-rentals/internal/pkg/errs"
	"vehicle-rentals/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewCommands commands.ReviewCommands
}

func NewReviewHandler(reviewCommands commands.ReviewCommands) *ReviewHandler {
	return &ReviewHandler{
		reviewCommands: reviewCommands,
	}
}

// @Summary Submit review
// @Description Review a completed booking; one review per booking
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SubmitReviewRequest true "Review request"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reviews [post]
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.SubmitReviewRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.reviewCommands.SubmitReview(c.Request.Context(), commands.SubmitReviewRequest{
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}, userID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, errs.ErrReviewNotEligible):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Booking is not eligible for review",
			})
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid review data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id": result.ReviewID.String(),
	})
}
