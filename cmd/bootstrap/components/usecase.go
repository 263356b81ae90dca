package components

import (
	"log/slog"
	"time"

	"tourbook/internal/pkg/clock"
	"tourbook/internal/pkg/config"
	"tourbook/internal/usecase/commands"
	"tourbook/internal/usecase/queries"
	"tourbook/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewAvailability,
	NewCapacityLedger,
	NewStaffingDispatcher,
	commands.NewCapacityReconciler,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewBookingCommands,
		NewBulkCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewStatsQueries,
		NewAvailabilityQueries,
	),
)

func NewAvailability(clk clock.Clock, loc *time.Location) *shared.Availability {
	return shared.NewAvailability(clk, loc)
}

func NewCapacityLedger(engine *shared.Availability, logger *slog.Logger, cfg config.Config) *commands.CapacityLedger {
	return commands.NewCapacityLedger(engine, logger, cfg.Capacity.DynamicSlotLock)
}

func NewStaffingDispatcher(recalc shared.GuideRecalculator, logger *slog.Logger, cfg config.Config) *commands.StaffingDispatcher {
	return commands.NewStaffingDispatcher(recalc, cfg.Capacity.RecalcTimeout, logger)
}

func NewAvailabilityQueries(reads shared.CalendarReads, engine *shared.Availability, cfg config.Config) queries.AvailabilityQueries {
	return queries.NewAvailabilityQueries(reads, engine, queries.AvailabilityOptions{
		AlmostFullThreshold: cfg.Capacity.AlmostFullThreshold,
		MaxHeatmapDays:      cfg.Capacity.MaxHeatmapDays,
	})
}

type bookingCommandDeps struct {
	fx.In

	UoW      shared.UnitOfWork
	Engine   *shared.Availability
	Ledger   *commands.CapacityLedger
	Staffing *commands.StaffingDispatcher
	Refs     shared.ReferenceGenerator
	Views    queries.BookingQueries
	Logger   *slog.Logger
	Config   config.Config
}

func NewBookingCommands(d bookingCommandDeps) commands.BookingCommands {
	return commands.NewBookingCommands(d.UoW, d.Engine, d.Ledger, d.Staffing, d.Refs, d.Views, d.Logger,
		commands.BookingOptions{ReferencePrefix: d.Config.Business.ReferencePrefix})
}

type bulkCommandDeps struct {
	fx.In

	UoW      shared.UnitOfWork
	Engine   *shared.Availability
	Ledger   *commands.CapacityLedger
	Staffing *commands.StaffingDispatcher
	Bookings commands.BookingCommands
	Logger   *slog.Logger
	Config   config.Config
}

func NewBulkCommands(d bulkCommandDeps) commands.BulkCommands {
	return commands.NewBulkCommands(d.UoW, d.Engine, d.Ledger, d.Staffing, d.Bookings, d.Logger,
		commands.BulkOptions{
			MaxItems:              d.Config.Bulk.MaxItems,
			RescheduleConcurrency: d.Config.Bulk.RescheduleConcurrency,
		})
}
