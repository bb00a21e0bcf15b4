package components

import (
	"vehicle-rentals/internal/domain/booking"
	"vehicle-rentals/internal/pkg/clock"
	"vehicle-rentals/internal/usecase"
	"vehicle-rentals/internal/usecase/commands"
	"vehicle-rentals/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		booking.NewDailyRateCalculator,
		fx.As(new(booking.PriceCalculator)),
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewVehicleQueries,
		queries.NewBookingQueries,
		queries.NewReviewQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingUseCase,
		commands.NewVehicleUseCase,
		commands.NewReviewUseCase,
	),
)
