package components

import (
	"time"

	"tourbook/internal/infra/db"
	"tourbook/internal/infra/readstore"
	"tourbook/internal/infra/refgen"
	"tourbook/internal/infra/repository"
	"tourbook/internal/infra/uow"
	"tourbook/internal/pkg/clock"
	"tourbook/internal/pkg/config"
	"tourbook/internal/usecase/queries"
	"tourbook/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewStatsReadStore,
			fx.As(new(queries.StatsReadStore)),
		),
		// Calendar reads outside a transaction go straight to the pool.
		func(u shared.UnitOfWork) shared.CalendarReads {
			return u.CommandReads()
		},
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		uow.NewPostgresUoW,
		fx.Annotate(
			NewGuideRecalculator,
			fx.As(new(shared.GuideRecalculator)),
		),
		fx.Annotate(
			repository.NewScheduleReconciler,
			fx.As(new(shared.ScheduleReconciler)),
		),
		fx.Annotate(
			NewReferenceGenerator,
			fx.As(new(shared.ReferenceGenerator)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewGuideRecalculator(conn db.DBTX, cfg config.Config) *repository.GuideRecalculator {
	return repository.NewGuideRecalculator(conn, cfg.Capacity.GuestsPerGuide)
}

func NewReferenceGenerator(rdb *redis.Client, clk clock.Clock, loc *time.Location) *refgen.RedisGenerator {
	return refgen.NewRedisGenerator(rdb, clk, loc)
}
