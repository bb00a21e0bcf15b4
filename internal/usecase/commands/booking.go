package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vehicle-rentals/internal/domain/booking"
	"vehicle-rentals/internal/infra"
	"vehicle-rentals/internal/pkg/clock"
	"vehicle-rentals/internal/pkg/errs"
	"vehicle-rentals/internal/usecase/queries"
	"vehicle-rentals/internal/usecase/shared"

	"github.com/google/uuid"
)

const idempotencyKeyTTL = 24 * time.Hour

type CreateBookingRequest struct {
	VehicleID uuid.UUID `json:"vehicle_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
}

type ModifyBookingRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type CreateBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest, userID uuid.UUID, idempotencyKey uuid.UUID) (*CreateBookingResult, error)
	ModifyBooking(ctx context.Context, bookingID uuid.UUID, req ModifyBookingRequest, actorID uuid.UUID, actorRole string) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID, actorRole string) error
}

type bookingUseCaseImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	calculator     booking.PriceCalculator
	clock          clock.Clock
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	calculator booking.PriceCalculator,
	clk clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		calculator:     calculator,
		clock:          clk,
	}
}

func (uc *bookingUseCaseImpl) CreateBooking(
	ctx context.Context,
	req CreateBookingRequest,
	userID uuid.UUID,
	idempotencyKey uuid.UUID,
) (*CreateBookingResult, error) {
	requestHash := calculateRequestHash(req)
	expiresAt := uc.clock.Now().Add(idempotencyKeyTTL)

	replayed, err := uc.handleIdempotency(ctx, idempotencyKey, userID, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &CreateBookingResult{Booking: replayed, IsReplayed: true}, nil
	}

	dates, err := booking.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidDateRange)
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		vehicle, derr := tx.Reads().VehicleByID(ctx, req.VehicleID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.Mark(derr, errs.ErrVehicleNotFound)
			}
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}

		if derr := uc.ensureAvailable(ctx, tx, req.VehicleID, dates, uuid.Nil); derr != nil {
			return derr
		}

		price, derr := uc.quote(vehicle.PricePerDayCents, dates)
		if derr != nil {
			return derr
		}

		id, derr := tx.Bookings().Create(ctx, tx.DB(), booking.NewBooking(req.VehicleID, userID, dates, price))
		if derr != nil {
			return mapBookingWriteErr(derr)
		}
		createdID = id

		return tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, userID, calculateIDHash(id), id)
	})
	if err != nil {
		return nil, err
	}

	view, err := uc.bookingQueries.GetByID(ctx, userID, queries.RoleCustomer, createdID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return &CreateBookingResult{Booking: view, IsReplayed: false}, nil
}

func (uc *bookingUseCaseImpl) ModifyBooking(
	ctx context.Context,
	bookingID uuid.UUID,
	req ModifyBookingRequest,
	actorID uuid.UUID,
	actorRole string,
) (*queries.BookingView, error) {
	newDates, err := booking.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidDateRange)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, derr := uc.loadOwnedBooking(ctx, tx, bookingID, actorID, actorRole)
		if derr != nil {
			return derr
		}

		if derr := b.EnsureMutable(clock.Today(uc.clock)); derr != nil {
			return mapLifecycleErr(derr)
		}

		// Re-submitting the current dates is a no-op, not a conflict with
		// itself.
		if b.Dates().Equal(newDates) {
			return nil
		}

		if derr := uc.ensureAvailable(ctx, tx, b.VehicleID(), newDates, b.ID()); derr != nil {
			return derr
		}

		vehicle, derr := tx.Reads().VehicleByID(ctx, b.VehicleID())
		if derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}
		price, derr := uc.quote(vehicle.PricePerDayCents, newDates)
		if derr != nil {
			return derr
		}

		if derr := b.Modify(newDates, price, clock.Today(uc.clock)); derr != nil {
			return mapLifecycleErr(derr)
		}

		if derr := tx.Bookings().UpdateDates(ctx, tx.DB(), b.ID(), b.Dates(), b.TotalPrice().Cents()); derr != nil {
			return mapBookingWriteErr(derr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.bookingQueries.GetByID(ctx, actorID, actorRole, bookingID)
}

func (uc *bookingUseCaseImpl) CancelBooking(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID, actorRole string) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, derr := uc.loadOwnedBooking(ctx, tx, bookingID, actorID, actorRole)
		if derr != nil {
			return derr
		}

		if derr := b.Cancel(clock.Today(uc.clock)); derr != nil {
			return mapLifecycleErr(derr)
		}

		return tx.Bookings().UpdateStatus(ctx, tx.DB(), b.ID(), b.Status())
	})
}

// handleIdempotency claims the key or resolves its prior outcome. A nil,
// nil return means the key is fresh and the caller owns the create.
func (uc *bookingUseCaseImpl) handleIdempotency(
	ctx context.Context,
	idempotencyKey, userID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*queries.BookingView, error) {
	var claimed bool
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var derr error
		claimed, derr = tx.Idempotency().TryInsert(ctx, tx.DB(), idempotencyKey, userID, "POST /bookings", requestHash, expiresAt)
		return derr
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}
	if claimed {
		return nil, nil
	}

	existing, err := uc.uow.CommandReads().IdempotencyByKey(ctx, idempotencyKey, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}

	switch existing.Status {
	case "completed":
		if existing.ResultBookingID != nil {
			return uc.bookingQueries.GetByID(ctx, userID, queries.RoleAdmin, *existing.ResultBookingID)
		}
		return nil, errs.New("completed request missing result booking ID")

	case "processing":
		if existing.RequestHash != requestHash {
			return nil, errs.ErrDuplicateBooking
		}
		return nil, errs.ErrIdempotencyInProgress

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

// ensureAvailable re-checks the candidate range against a fresh snapshot of
// the vehicle's bookings inside the current transaction. A failed fetch
// blocks the booking; availability is never assumed.
func (uc *bookingUseCaseImpl) ensureAvailable(ctx context.Context, tx shared.Tx, vehicleID uuid.UUID, candidate booking.DateRange, exclude uuid.UUID) error {
	existing, err := tx.Reads().BookedRangesByVehicle(ctx, vehicleID)
	if err != nil {
		return errs.Mark(err, errs.ErrAvailabilityUnknown)
	}
	if conflict, found := booking.FirstConflict(candidate, existing, exclude); found {
		return errs.Mark(
			errs.New(fmt.Sprintf("requested %s overlaps booked %s", candidate, conflict.Dates)),
			errs.ErrBookingConflict,
		)
	}
	return nil
}

func (uc *bookingUseCaseImpl) loadOwnedBooking(ctx context.Context, tx shared.Tx, bookingID, actorID uuid.UUID, actorRole string) (*booking.Booking, error) {
	snap, err := tx.Reads().BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if snap.UserID != actorID && actorRole != queries.RoleAdmin {
		return nil, errs.ErrBookingNotFound
	}
	return reconstructFromSnapshot(snap)
}

func (uc *bookingUseCaseImpl) quote(pricePerDayCents int64, dates booking.DateRange) (booking.Money, error) {
	rate, err := booking.NewMoney(pricePerDayCents)
	if err != nil {
		return booking.Money{}, errs.Mark(err, errs.ErrDomainValidation)
	}
	price, err := uc.calculator.Quote(rate, dates)
	if err != nil {
		return booking.Money{}, errs.Mark(err, errs.ErrInvalidDateRange)
	}
	return price, nil
}

func reconstructFromSnapshot(snap *shared.BookingSnapshot) (*booking.Booking, error) {
	dates, err := booking.NewDateRange(snap.StartDate, snap.EndDate)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	price, err := booking.NewMoney(snap.TotalPriceCents)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return booking.ReconstructBooking(
		snap.ID, snap.VehicleID, snap.UserID,
		dates, booking.Status(snap.Status), price, snap.Reviewed,
		time.Time{}, time.Time{},
	), nil
}

func mapBookingWriteErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, errs.ErrBookingConflict)
	case infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(err, errs.ErrDuplicateBooking)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.Mark(err, errs.ErrVehicleNotFound)
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}

func mapLifecycleErr(err error) error {
	if errors.Is(err, booking.ErrBookingElapsed) {
		return errs.Mark(err, errs.ErrBookingElapsed)
	}
	return errs.Mark(err, errs.ErrDomainValidation)
}

func calculateRequestHash(req CreateBookingRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
