package components

import (
	"context"
	"time"

	"tourbook/internal/pkg/config"
	"tourbook/internal/usecase/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

const reconcileTimeout = 5 * time.Minute

var JobsModule = fx.Module("jobs",
	fx.Invoke(RegisterJobs),
)

// RegisterJobs runs the booked-count reconciliation on a cron schedule and
// drains in-flight guide recalculations on shutdown.
func RegisterJobs(
	lc fx.Lifecycle,
	cfg config.Config,
	reconciler *commands.CapacityReconciler,
	staffing *commands.StaffingDispatcher,
) error {
	scheduler := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	if cfg.Jobs.ReconcileEnabled {
		_, err := scheduler.AddFunc(cfg.Jobs.ReconcileSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
			defer cancel()
			// Run logs its own outcome.
			_, _ = reconciler.Run(ctx)
		})
		if err != nil {
			return err
		}
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			scheduler.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			done := scheduler.Stop()
			select {
			case <-done.Done():
			case <-ctx.Done():
			}
			staffing.Wait()
			return nil
		},
	})
	return nil
}
