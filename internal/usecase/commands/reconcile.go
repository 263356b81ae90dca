package commands

import (
	"context"
	"log/slog"

	"tourbook/internal/usecase/shared"
)

// CapacityReconciler repairs schedule counters that drifted from their bookings.
type CapacityReconciler struct {
	store  shared.ScheduleReconciler
	engine *shared.Availability
	logger *slog.Logger
}

func NewCapacityReconciler(store shared.ScheduleReconciler, engine *shared.Availability, logger *slog.Logger) *CapacityReconciler {
	return &CapacityReconciler{store: store, engine: engine, logger: logger}
}

// Run fixes every schedule that has not started yet and returns how many changed.
func (r *CapacityReconciler) Run(ctx context.Context) (int, error) {
	drifts, err := r.store.ReconcileBookedCounts(ctx, r.engine.Now())
	if err != nil {
		r.logger.ErrorContext(ctx, "capacity reconcile failed", slog.String("error", err.Error()))
		return 0, err
	}

	for _, d := range drifts {
		r.logger.WarnContext(ctx, "schedule booked_count drift corrected",
			slog.String("organization_id", d.OrganizationID.String()),
			slog.String("schedule_id", d.ScheduleID.String()),
			slog.Int("recorded", d.Recorded),
			slog.Int("actual", d.Actual),
		)
	}
	r.logger.InfoContext(ctx, "capacity reconcile finished", slog.Int("corrected", len(drifts)))
	return len(drifts), nil
}
