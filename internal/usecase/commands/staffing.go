package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tourbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// StaffingDispatcher runs guide recalculation in the background. Failures are
// logged and never reach the caller.
type StaffingDispatcher struct {
	recalc  shared.GuideRecalculator
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

func NewStaffingDispatcher(recalc shared.GuideRecalculator, timeout time.Duration, logger *slog.Logger) *StaffingDispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &StaffingDispatcher{recalc: recalc, timeout: timeout, logger: logger}
}

// Dispatch schedules a recalculation for each distinct schedule id.
func (d *StaffingDispatcher) Dispatch(ctx context.Context, orgID uuid.UUID, scheduleIDs ...uuid.UUID) {
	seen := make(map[uuid.UUID]struct{}, len(scheduleIDs))
	base := context.WithoutCancel(ctx)

	for _, id := range scheduleIDs {
		if id == uuid.Nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		d.wg.Add(1)
		go d.run(base, orgID, id)
	}
}

func (d *StaffingDispatcher) run(base context.Context, orgID, scheduleID uuid.UUID) {
	defer d.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("guide recalculation panicked",
				slog.String("organization_id", orgID.String()),
				slog.String("schedule_id", scheduleID.String()),
				slog.Any("panic", r),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(base, d.timeout)
	defer cancel()

	if err := d.recalc.Recalculate(ctx, orgID, scheduleID); err != nil {
		d.logger.Error("guide recalculation failed",
			slog.String("organization_id", orgID.String()),
			slog.String("schedule_id", scheduleID.String()),
			slog.String("error", err.Error()),
		)
	}
}

// Wait blocks until every dispatched recalculation has finished.
func (d *StaffingDispatcher) Wait() {
	d.wg.Wait()
}
