//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"vehicle-rentals/internal/domain/user"
	"vehicle-rentals/internal/handler/api"
	reqdto "vehicle-rentals/internal/handler/dto/request"
	resdto "vehicle-rentals/internal/handler/dto/response"
	"vehicle-rentals/internal/handler/middleware"
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

type VehicleHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockCtrl            *gomock.Controller
	mockVehicleCommands *commandsmock.MockVehicleCommands
	mockVehicleQueries  *queriesmock.MockVehicleQueries
	mockReviewQueries   *queriesmock.MockReviewQueries
	mockBookingQueries  *queriesmock.MockBookingQueries
	handler             *api.VehicleHandler
	actorRole           user.Role
}

func (s *VehicleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockVehicleCommands = commandsmock.NewMockVehicleCommands(s.mockCtrl)
	s.mockVehicleQueries = queriesmock.NewMockVehicleQueries(s.mockCtrl)
	s.mockReviewQueries = queriesmock.NewMockReviewQueries(s.mockCtrl)
	s.mockBookingQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewVehicleHandler(s.mockVehicleCommands, s.mockVehicleQueries, s.mockReviewQueries, s.mockBookingQueries)
	s.actorRole = user.RoleAdmin

	// Mock authentication middleware; the real RequireAdmin runs behind it so
	// the role gate itself is exercised.
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", s.actorRole)
		c.Next()
	}
	adminOnly := middleware.NewAuthMiddleware(nil).RequireAdmin()

	s.router.POST("/vehicles", authMiddleware, adminOnly, s.handler.CreateVehicle)
	s.router.GET("/vehicles", s.handler.ListVehicles)
	s.router.GET("/vehicles/:id", s.handler.GetVehicle)
	s.router.GET("/vehicles/:id/reviews", s.handler.ListVehicleReviews)
	s.router.GET("/vehicles/:id/rating-stats", s.handler.GetRatingStats)
	s.router.GET("/vehicles/:id/calendar", s.handler.GetVehicleCalendar)
}

func (s *VehicleHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestVehicleHandlerSuite(t *testing.T) {
	suite.Run(t, new(VehicleHandlerTestSuite))
}

// ================================================================================
// TestCreateVehicle
// ================================================================================

func (s *VehicleHandlerTestSuite) createVehicleBody() reqdto.CreateVehicleRequest {
	return reqdto.CreateVehicleRequest{
		Make:             "Toyota",
		Model:            "RAV4",
		VehicleType:      "SUV",
		Location:         "Berlin",
		PricePerDayCents: 5000,
		Images:           []string{"https://img.example.com/rav4-front.jpg"},
	}
}

func (s *VehicleHandlerTestSuite) TestCreateVehicle() {
	s.Run("success: an admin adds a vehicle", func() {
		vehicleID := uuid.New()
		s.mockVehicleCommands.EXPECT().
			CreateVehicle(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req commands.CreateVehicleRequest) (*commands.CreateVehicleResult, error) {
				s.Equal("Toyota", req.Make)
				s.Equal("SUV", req.VehicleType)
				s.Equal(int64(5000), req.PricePerDayCents)
				return &commands.CreateVehicleResult{VehicleID: vehicleID}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/vehicles", s.createVehicleBody(), "admin-token")

		var res map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
		s.Equal(vehicleID.String(), res["id"])
	})

	s.Run("error: a customer is rejected before the command runs", func() {
		s.actorRole = user.RoleCustomer
		defer func() { s.actorRole = user.RoleAdmin }()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/vehicles", s.createVehicleBody(), "customer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/vehicles", s.createVehicleBody(), "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: 400 when required fields are missing", func() {
		body := testutil.DtoMap(s.T(), s.createVehicleBody(), testutil.Field("make", nil))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/vehicles", body, "admin-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 400 when the domain rejects the vehicle", func() {
		body := testutil.DtoMap(s.T(), s.createVehicleBody(), testutil.Field("vehicle_type", "Tractor"))
		s.mockVehicleCommands.EXPECT().
			CreateVehicle(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrDomainValidation)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/vehicles", body, "admin-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid vehicle data")
	})
}

// ================================================================================
// TestListVehicles
// ================================================================================

func (s *VehicleHandlerTestSuite) TestListVehicles() {
	s.Run("success: returns a page of vehicles", func() {
		items := []*queries.VehicleListItem{
			builder.NewVehicleBuilder().BuildListItem(),
			builder.NewVehicleBuilder().WithMakeModel("Ford", "Transit").BuildListItem(),
		}
		next := &queries.Cursor{After: "opaque-cursor"}
		s.mockVehicleQueries.EXPECT().
			List(gomock.Any(), queries.VehicleFilters{}, gomock.Nil(), 0).
			Return(items, next, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/vehicles", nil, "")

		var res resdto.VehiclePageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Len(res.Vehicles, 2)
		s.Require().NotNil(res.Next)
		s.Equal("opaque-cursor", *res.Next)
	})

	s.Run("success: forwards filters, cursor and limit", func() {
		s.mockVehicleQueries.EXPECT().
			List(gomock.Any(), gomock.Any(), gomock.Any(), 10).
			DoAndReturn(func(_ any, filters queries.VehicleFilters, cursor *queries.Cursor, _ int) ([]*queries.VehicleListItem, *queries.Cursor, error) {
				s.Require().NotNil(filters.VehicleType)
				s.Equal("SUV", *filters.VehicleType)
				s.Require().NotNil(filters.PriceMaxCents)
				s.Equal(int64(8000), *filters.PriceMaxCents)
				s.Require().NotNil(cursor)
				s.Equal("abc", cursor.After)
				return nil, nil, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/vehicles?type=SUV&price_max=8000&after=abc&limit=10", nil, "")

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: returns 400 for a negative price filter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/vehicles?price_min=-5", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "price_min must be a non-negative integer")
	})

	s.Run("error: returns 400 for an invalid cursor", func() {
		s.mockVehicleQueries.EXPECT().
			List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrInvalidCursor)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/vehicles?after=garbage", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid pagination cursor")
	})
}

// ================================================================================
// TestGetVehicle
// ================================================================================

func (s *VehicleHandlerTestSuite) TestGetVehicle() {
	view := builder.NewVehicleBuilder().BuildView()
	url := "/vehicles/" + view.ID.String()

	s.Run("success: returns vehicle details", func() {
		s.mockVehicleQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var res resdto.VehicleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(view.ID, res.ID)
		s.Equal(view.PricePerDayCents, res.PricePerDayCents)
	})

	s.Run("error: returns 400 for malformed ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/vehicles/not-a-uuid", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid ID format")
	})

	s.Run("error: returns 404 for unknown vehicle", func() {
		s.mockVehicleQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(nil, queries.ErrVehicleNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Vehicle not found")
	})
}

// ================================================================================
// TestListVehicleReviews
// ================================================================================

func (s *VehicleHandlerTestSuite) TestListVehicleReviews() {
	vehicleID := uuid.New()
	url := "/vehicles/" + vehicleID.String() + "/reviews"

	s.Run("success: returns a page of reviews", func() {
		items := []*queries.ReviewListItem{
			builder.NewReviewBuilder().WithVehicleID(vehicleID).BuildListItem(),
		}
		s.mockReviewQueries.EXPECT().
			ListByVehicle(gomock.Any(), vehicleID, gomock.Nil(), 0).
			Return(items, nil, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var res resdto.ReviewPageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Len(res.Reviews, 1)
		s.Nil(res.Next)
	})

	s.Run("error: returns 400 for an invalid cursor", func() {
		s.mockReviewQueries.EXPECT().
			ListByVehicle(gomock.Any(), vehicleID, gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrInvalidCursor)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?after=garbage", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid pagination cursor")
	})
}

// ================================================================================
// TestGetRatingStats
// ================================================================================

func (s *VehicleHandlerTestSuite) TestGetRatingStats() {
	vehicleID := uuid.New()
	url := "/vehicles/" + vehicleID.String() + "/rating-stats"

	s.Run("success: returns aggregated stats", func() {
		stats := builder.NewReviewBuilder().WithVehicleID(vehicleID).BuildVehicleRatingStats()
		s.mockVehicleQueries.EXPECT().GetRatingStats(gomock.Any(), vehicleID).Return(stats, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var res resdto.RatingStatsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(vehicleID, res.VehicleID)
		s.Equal(stats.TotalReviews, res.TotalReviews)
		s.InDelta(stats.AverageRating, res.AverageRating, 0.001)
	})
}

// ================================================================================
// TestGetVehicleCalendar
// ================================================================================

func (s *VehicleHandlerTestSuite) TestGetVehicleCalendar() {
	vehicleID := uuid.New()
	url := "/vehicles/" + vehicleID.String() + "/calendar"

	s.Run("success: returns booked periods as calendar dates", func() {
		bb := builder.NewBookingBuilder().WithVehicleID(vehicleID)
		periods := []*queries.BookedPeriod{
			{StartDate: bb.StartDate, EndDate: bb.EndDate},
		}
		s.mockBookingQueries.EXPECT().VehicleCalendar(gomock.Any(), vehicleID).Return(periods, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var res []*resdto.BookedPeriodResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Require().Len(res, 1)
		s.Equal("2024-03-01", res[0].StartDate)
		s.Equal("2024-03-05", res[0].EndDate)
	})

	s.Run("success: returns empty list when nothing is booked", func() {
		s.mockBookingQueries.EXPECT().VehicleCalendar(gomock.Any(), vehicleID).Return(nil, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var res []*resdto.BookedPeriodResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Empty(res)
	})
}
