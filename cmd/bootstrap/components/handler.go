package components

import (
	"tourbook/internal/handler"
	"tourbook/internal/handler/api"
	"tourbook/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewBulkHandler,
		api.NewAvailabilityHandler,
		api.NewStatsHandler,
		middleware.NewAuthMiddleware,
		func(b *api.BookingHandler, bulk *api.BulkHandler, a *api.AvailabilityHandler, s *api.StatsHandler) handler.Handlers {
			return handler.Handlers{Bookings: b, Bulk: bulk, Availability: a, Stats: s}
		},
	),
	fx.Invoke(handler.NewRouter),
)
