//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"vehicle-rentals/internal/domain/user"
	"vehicle-rentals/internal/handler/api"
	resdto "vehicle-rentals/internal/handler/dto/response"
	"vehicle-rentals/internal/pkg/errs"
	"vehicle-rentals/internal/usecase/commands"
	"vehicle-rentals/internal/usecase/queries"
	"vehicle-rentals/tests/common/builder"
	"vehicle-rentals/tests/common/httptest"
	"vehicle-rentals/tests/common/testutil"
	commandsmock "vehicle-rentals/tests/mock/commands"
	queriesmock "vehicle-rentals/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	userID       uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleCustomer)
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, s.handler.CreateBooking)
	s.router.GET("/bookings", authMiddleware, s.handler.GetUserBookings)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.GetBooking)
	s.router.PUT("/bookings/:id", authMiddleware, s.handler.ModifyBooking)
	s.router.DELETE("/bookings/:id", authMiddleware, s.handler.CancelBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) idempotencyHeaders() map[string]string {
	return map[string]string{"Idempotency-Key": uuid.NewString()}
}

// ================================================================================
// TestCreateBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"

	bb := builder.NewBookingBuilder().WithUserID(s.userID)
	reqBody := bb.BuildCreateRequestDTO()
	view := bb.BuildView()

	s.Run("success: returns 201 Created for a fresh booking", func() {
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any(), s.userID, gomock.Any()).
			Return(&commands.CreateBookingResult{Booking: view, IsReplayed: false}, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", s.idempotencyHeaders())

		var res resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
		s.Equal(view.ID, res.ID)
	})

	s.Run("success: returns 200 OK when the request is replayed", func() {
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any(), s.userID, gomock.Any()).
			Return(&commands.CreateBookingResult{Booking: view, IsReplayed: true}, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", s.idempotencyHeaders())

		var res resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(view.ID, res.ID)
	})

	s.Run("error: returns 400 without an Idempotency-Key header", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "idempotency key required")
	})

	s.Run("error: returns 400 for a malformed Idempotency-Key", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token",
			map[string]string{"Idempotency-Key": "not-a-uuid"})

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid idempotency key format")
	})

	s.Run("error: returns 400 for malformed request body", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("start_date", "03/01/2024"))

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body, "bearer-token", s.idempotencyHeaders())

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: returns 401 without authentication", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: returns 404 for unknown vehicle", func() {
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any(), s.userID, gomock.Any()).
			Return(nil, errs.ErrVehicleNotFound)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", s.idempotencyHeaders())

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Vehicle not found")
	})

	s.Run("error: returns 409 when the dates conflict", func() {
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any(), s.userID, gomock.Any()).
			Return(nil, errs.ErrBookingConflict)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", s.idempotencyHeaders())

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Vehicle is already booked for the requested dates")
	})

	s.Run("error: returns 409 when the key is reused with a different payload", func() {
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any(), s.userID, gomock.Any()).
			Return(nil, errs.ErrDuplicateBooking)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", s.idempotencyHeaders())

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Duplicate booking request with different parameters")
	})

	s.Run("error: returns 409 while the original request is in flight", func() {
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any(), s.userID, gomock.Any()).
			Return(nil, errs.ErrIdempotencyInProgress)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", s.idempotencyHeaders())

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Booking request is currently being processed")
	})

	s.Run("error: returns 422 for an invalid date range", func() {
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any(), s.userID, gomock.Any()).
			Return(nil, errs.ErrInvalidDateRange)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", s.idempotencyHeaders())

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid date range")
	})

	s.Run("error: returns 503 when availability cannot be verified", func() {
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any(), s.userID, gomock.Any()).
			Return(nil, errs.ErrAvailabilityUnknown)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", s.idempotencyHeaders())

		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Availability could not be verified, try again")
	})
}

// ================================================================================
// TestGetBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestGetBooking() {
	view := builder.NewBookingBuilder().WithUserID(s.userID).BuildView()
	url := "/bookings/" + view.ID.String()

	s.Run("success: returns booking by ID", func() {
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), s.userID, queries.RoleCustomer, view.ID).
			Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var res resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(view.ID, res.ID)
		s.Equal(view.TotalPriceCents, res.TotalPriceCents)
	})

	s.Run("error: returns 400 for malformed ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid ID format")
	})

	s.Run("error: returns 404 for unknown or foreign booking", func() {
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), s.userID, queries.RoleCustomer, view.ID).
			Return(nil, queries.ErrBookingNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

// ================================================================================
// TestGetUserBookings
// ================================================================================

func (s *BookingHandlerTestSuite) TestGetUserBookings() {
	url := "/bookings"

	s.Run("success: returns the user's bookings", func() {
		items := []*queries.BookingListItem{
			builder.NewBookingBuilder().WithUserID(s.userID).BuildListItem(),
			builder.NewBookingBuilder().WithUserID(s.userID).WithDates("2024-04-01", "2024-04-03").BuildListItem(),
		}
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID).Return(items, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var res []*resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Len(res, 2)
		s.Equal(items[0].ID, res[0].ID)
	})

	s.Run("success: returns empty list when the user has no bookings", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID).Return(nil, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var res []*resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Empty(res)
	})
}

// ================================================================================
// TestModifyBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestModifyBooking() {
	bb := builder.NewBookingBuilder().WithUserID(s.userID)
	bookingID := bb.ID
	url := "/bookings/" + bookingID.String()
	reqBody := bb.WithDates("2024-03-08", "2024-03-10").BuildModifyRequestDTO()
	view := bb.WithTotalPriceCents(15000).BuildView()

	s.Run("success: returns 200 with the repriced booking", func() {
		s.mockCommands.EXPECT().
			ModifyBooking(gomock.Any(), bookingID, gomock.Any(), s.userID, queries.RoleCustomer).
			Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")

		var res resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(int64(15000), res.TotalPriceCents)
	})

	s.Run("error: returns 400 for malformed request body", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("end_date", nil))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, body, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: returns 404 for unknown or foreign booking", func() {
		s.mockCommands.EXPECT().
			ModifyBooking(gomock.Any(), bookingID, gomock.Any(), s.userID, queries.RoleCustomer).
			Return(nil, errs.ErrBookingNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: returns 409 when the new dates conflict", func() {
		s.mockCommands.EXPECT().
			ModifyBooking(gomock.Any(), bookingID, gomock.Any(), s.userID, queries.RoleCustomer).
			Return(nil, errs.ErrBookingConflict)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Vehicle is already booked for the requested dates")
	})

	s.Run("error: returns 422 when the booking already elapsed", func() {
		s.mockCommands.EXPECT().
			ModifyBooking(gomock.Any(), bookingID, gomock.Any(), s.userID, queries.RoleCustomer).
			Return(nil, errs.ErrBookingElapsed)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Booking has already elapsed")
	})

	s.Run("error: returns 422 for a cancelled booking", func() {
		s.mockCommands.EXPECT().
			ModifyBooking(gomock.Any(), bookingID, gomock.Any(), s.userID, queries.RoleCustomer).
			Return(nil, errs.ErrDomainValidation)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Booking cannot be changed in its current state")
	})
}

// ================================================================================
// TestCancelBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().
			CancelBooking(gomock.Any(), bookingID, s.userID, queries.RoleCustomer).
			Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")

		s.Equal(http.StatusNoContent, rec.Code)
		s.Empty(rec.Body.String())
	})

	s.Run("error: returns 404 for unknown or foreign booking", func() {
		s.mockCommands.EXPECT().
			CancelBooking(gomock.Any(), bookingID, s.userID, queries.RoleCustomer).
			Return(errs.ErrBookingNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: returns 422 when cancelling twice", func() {
		s.mockCommands.EXPECT().
			CancelBooking(gomock.Any(), bookingID, s.userID, queries.RoleCustomer).
			Return(errs.ErrDomainValidation)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Booking cannot be changed in its current state")
	})
}
