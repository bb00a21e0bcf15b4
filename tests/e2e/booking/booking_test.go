//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	stdhttptest "net/http/httptest"
	"testing"
	"time"

	"vehicle-rentals/internal/domain/user"
	"vehicle-rentals/internal/handler/dto/request"
	"vehicle-rentals/internal/handler/dto/response"
	"vehicle-rentals/tests/common/authtest"
	"vehicle-rentals/tests/common/dbtest"
	"vehicle-rentals/tests/common/httptest"
	"vehicle-rentals/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL = "/api/bookings"
	isoDate     = "2006-01-02"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

// days from now, as a calendar date string
func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format(isoDate)
}

func (s *BookingSuite) createBooking(t *testing.T, token string, vehicleID uuid.UUID, start, end, idempotencyKey string) *stdhttptest.ResponseRecorder {
	t.Helper()
	reqBody := request.CreateBookingRequest{
		VehicleID: vehicleID,
		StartDate: start,
		EndDate:   end,
	}
	return httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, reqBody, token,
		map[string]string{"Idempotency-Key": idempotencyKey})
}

// =============================================================================
// TestCreateBooking
// =============================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("a booking can be created, fetched and listed", func() {
		t := s.T()

		vehicleID := dbtest.CreateTestVehicle(t, s.DB, "Toyota", "RAV4", 5000)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "renter@example.com", string(user.RoleCustomer))

		rec := s.createBooking(t, token, vehicleID, futureDate(10), futureDate(13), uuid.NewString())
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusCreated, &created)
		require.Equal(t, vehicleID, created.VehicleID)
		require.Equal(t, "confirmed", created.Status)
		// 3 rental days at 5000 cents
		require.Equal(t, int64(15000), created.TotalPriceCents)

		getRec := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.ID.String(), nil, token)
		var fetched response.BookingResponse
		httptest.AssertSuccessResponse(t, getRec, http.StatusOK, &fetched)

		if diff := cmp.Diff(created, fetched, cmpopts.IgnoreFields(response.BookingResponse{}, "CreatedAt", "UpdatedAt")); diff != "" {
			t.Errorf("fetched booking differs from created (-created +fetched):\n%s", diff)
		}

		listRec := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, token)
		var list []response.BookingListResponse
		httptest.AssertSuccessResponse(t, listRec, http.StatusOK, &list)
		require.Len(t, list, 1)
		require.Equal(t, created.ID, list[0].ID)
	})

	s.Run("replaying the same idempotency key returns the original booking", func() {
		t := s.T()

		vehicleID := dbtest.CreateTestVehicle(t, s.DB, "Toyota", "RAV4", 5000)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "renter@example.com", string(user.RoleCustomer))
		key := uuid.NewString()

		first := s.createBooking(t, token, vehicleID, futureDate(10), futureDate(13), key)
		require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

		second := s.createBooking(t, token, vehicleID, futureDate(10), futureDate(13), key)
		require.Equal(t, http.StatusOK, second.Code, second.Body.String())

		var a, b response.BookingResponse
		httptest.AssertSuccessResponse(t, first, http.StatusCreated, &a)
		httptest.AssertSuccessResponse(t, second, http.StatusOK, &b)
		require.Equal(t, a.ID, b.ID, "replay must not create a second booking")
	})

	s.Run("overlapping dates on the same vehicle are rejected", func() {
		t := s.T()

		vehicleID := dbtest.CreateTestVehicle(t, s.DB, "Toyota", "RAV4", 5000)
		first := authtest.CreateAndLogin(t, s.DB, s.Router, "first@example.com", string(user.RoleCustomer))
		second := authtest.CreateAndLogin(t, s.DB, s.Router, "second@example.com", string(user.RoleCustomer))

		rec := s.createBooking(t, first, vehicleID, futureDate(10), futureDate(14), uuid.NewString())
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		conflict := s.createBooking(t, second, vehicleID, futureDate(13), futureDate(16), uuid.NewString())
		httptest.AssertErrorResponse(t, conflict, http.StatusConflict, "already booked")
	})

	s.Run("a handoff on the same calendar day still conflicts", func() {
		t := s.T()

		vehicleID := dbtest.CreateTestVehicle(t, s.DB, "Toyota", "RAV4", 5000)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "renter@example.com", string(user.RoleCustomer))

		rec := s.createBooking(t, token, vehicleID, futureDate(10), futureDate(12), uuid.NewString())
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		// Starting on the previous booking's end date occupies the same day.
		conflict := s.createBooking(t, token, vehicleID, futureDate(12), futureDate(14), uuid.NewString())
		httptest.AssertErrorResponse(t, conflict, http.StatusConflict, "already booked")
	})

	s.Run("reversed dates are rejected", func() {
		t := s.T()

		vehicleID := dbtest.CreateTestVehicle(t, s.DB, "Toyota", "RAV4", 5000)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "renter@example.com", string(user.RoleCustomer))

		rec := s.createBooking(t, token, vehicleID, futureDate(13), futureDate(10), uuid.NewString())
		httptest.AssertErrorResponse(t, rec, http.StatusUnprocessableEntity, "Invalid date range")
	})
}

// =============================================================================
// TestModifyBooking
// =============================================================================

func (s *BookingSuite) TestModifyBooking() {
	s.Run("new dates reprice the booking", func() {
		t := s.T()

		vehicleID := dbtest.CreateTestVehicle(t, s.DB, "Toyota", "RAV4", 5000)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "renter@example.com", string(user.RoleCustomer))

		rec := s.createBooking(t, token, vehicleID, futureDate(10), futureDate(13), uuid.NewString())
		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusCreated, &created)

		modRec := httptest.PerformRequest(t, s.Router, http.MethodPut, bookingsURL+"/"+created.ID.String(),
			request.ModifyBookingRequest{StartDate: futureDate(20), EndDate: futureDate(21)}, token)

		var modified response.BookingResponse
		httptest.AssertSuccessResponse(t, modRec, http.StatusOK, &modified)
		// 1 rental day at 5000 cents
		require.Equal(t, int64(5000), modified.TotalPriceCents)
		require.Equal(t, futureDate(20), modified.StartDate)
	})

	s.Run("new dates may not overlap another booking", func() {
		t := s.T()

		vehicleID := dbtest.CreateTestVehicle(t, s.DB, "Toyota", "RAV4", 5000)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "renter@example.com", string(user.RoleCustomer))

		rec := s.createBooking(t, token, vehicleID, futureDate(10), futureDate(12), uuid.NewString())
		var mine response.BookingResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusCreated, &mine)

		other := s.createBooking(t, token, vehicleID, futureDate(20), futureDate(22), uuid.NewString())
		require.Equal(t, http.StatusCreated, other.Code, other.Body.String())

		modRec := httptest.PerformRequest(t, s.Router, http.MethodPut, bookingsURL+"/"+mine.ID.String(),
			request.ModifyBookingRequest{StartDate: futureDate(21), EndDate: futureDate(23)}, token)
		httptest.AssertErrorResponse(t, modRec, http.StatusConflict, "already booked")
	})

	s.Run("another customer's booking is invisible", func() {
		t := s.T()

		vehicleID := dbtest.CreateTestVehicle(t, s.DB, "Toyota", "RAV4", 5000)
		owner := authtest.CreateAndLogin(t, s.DB, s.Router, "owner@example.com", string(user.RoleCustomer))
		intruder := authtest.CreateAndLogin(t, s.DB, s.Router, "intruder@example.com", string(user.RoleCustomer))

		rec := s.createBooking(t, owner, vehicleID, futureDate(10), futureDate(12), uuid.NewString())
		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusCreated, &created)

		modRec := httptest.PerformRequest(t, s.Router, http.MethodPut, bookingsURL+"/"+created.ID.String(),
			request.ModifyBookingRequest{StartDate: futureDate(20), EndDate: futureDate(21)}, intruder)
		httptest.AssertErrorResponse(t, modRec, http.StatusNotFound, "Booking not found")
	})
}

// =============================================================================
// TestCancelBooking
// =============================================================================

func (s *BookingSuite) TestCancelBooking() {
	s.Run("cancelling frees the dates for someone else", func() {
		t := s.T()

		vehicleID := dbtest.CreateTestVehicle(t, s.DB, "Toyota", "RAV4", 5000)
		first := authtest.CreateAndLogin(t, s.DB, s.Router, "first@example.com", string(user.RoleCustomer))
		second := authtest.CreateAndLogin(t, s.DB, s.Router, "second@example.com", string(user.RoleCustomer))

		rec := s.createBooking(t, first, vehicleID, futureDate(10), futureDate(13), uuid.NewString())
		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusCreated, &created)

		delRec := httptest.PerformRequest(t, s.Router, http.MethodDelete, bookingsURL+"/"+created.ID.String(), nil, first)
		require.Equal(t, http.StatusNoContent, delRec.Code, delRec.Body.String())

		rebook := s.createBooking(t, second, vehicleID, futureDate(10), futureDate(13), uuid.NewString())
		require.Equal(t, http.StatusCreated, rebook.Code, rebook.Body.String())
	})

	s.Run("cancelling twice is rejected", func() {
		t := s.T()

		vehicleID := dbtest.CreateTestVehicle(t, s.DB, "Toyota", "RAV4", 5000)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "renter@example.com", string(user.RoleCustomer))

		rec := s.createBooking(t, token, vehicleID, futureDate(10), futureDate(13), uuid.NewString())
		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusCreated, &created)

		url := bookingsURL + "/" + created.ID.String()
		require.Equal(t, http.StatusNoContent, httptest.PerformRequest(t, s.Router, http.MethodDelete, url, nil, token).Code)

		again := httptest.PerformRequest(t, s.Router, http.MethodDelete, url, nil, token)
		httptest.AssertErrorResponse(t, again, http.StatusUnprocessableEntity, "cannot be changed")
	})
}

// =============================================================================
// TestVehicleCalendar
// =============================================================================

func (s *BookingSuite) TestVehicleCalendar() {
	s.Run("active bookings appear as booked periods", func() {
		t := s.T()

		vehicleID := dbtest.CreateTestVehicle(t, s.DB, "Toyota", "RAV4", 5000)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "renter@example.com", string(user.RoleCustomer))

		rec := s.createBooking(t, token, vehicleID, futureDate(10), futureDate(13), uuid.NewString())
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		calRec := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf("/api/vehicles/%s/calendar", vehicleID), nil, "")

		var periods []response.BookedPeriodResponse
		httptest.AssertSuccessResponse(t, calRec, http.StatusOK, &periods)
		require.Len(t, periods, 1)
		require.Equal(t, futureDate(10), periods[0].StartDate)
		require.Equal(t, futureDate(13), periods[0].EndDate)
	})
}
