package commands

import (
	"context"
	"log/slog"

	"tourbook/internal/domain/availability"
	"tourbook/internal/domain/booking"
	"tourbook/internal/pkg/errs"
	"tourbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// Claim describes seats a booking is about to take.
type Claim struct {
	// Spots is added to a schedule counter.
	Spots int
	// Total is the booking's whole party, checked against a dynamic slot.
	Total int
	// BookingID is left out of dynamic counts when the booking already exists.
	BookingID *uuid.UUID
}

// CapacityLedger reserves and releases seats inside a booking transaction.
type CapacityLedger struct {
	engine          *shared.Availability
	logger          *slog.Logger
	dynamicSlotLock bool
}

func NewCapacityLedger(engine *shared.Availability, logger *slog.Logger, dynamicSlotLock bool) *CapacityLedger {
	return &CapacityLedger{engine: engine, logger: logger, dynamicSlotLock: dynamicSlotLock}
}

func (l *CapacityLedger) Reserve(ctx context.Context, tx shared.Tx, orgID uuid.UUID, model booking.CapacityModel, claim Claim) error {
	return booking.MatchCapacity(model,
		func(m booking.Materialized) error {
			return l.reserveSchedule(ctx, tx, orgID, m.ScheduleID, claim.Spots)
		},
		func(d booking.Dynamic) error {
			return l.reserveSlot(ctx, tx, orgID, d.Slot, claim)
		},
	)
}

func (l *CapacityLedger) Release(ctx context.Context, tx shared.Tx, orgID uuid.UUID, model booking.CapacityModel, spots int) error {
	return booking.MatchCapacity(model,
		func(m booking.Materialized) error {
			if spots <= 0 {
				return nil
			}
			return tx.Schedules().Release(ctx, orgID, m.ScheduleID, spots)
		},
		func(booking.Dynamic) error {
			// dynamic capacity is recomputed from booking rows on every read
			return nil
		},
	)
}

func (l *CapacityLedger) reserveSchedule(ctx context.Context, tx shared.Tx, orgID, scheduleID uuid.UUID, spots int) error {
	if spots <= 0 {
		return nil
	}
	ok, err := tx.Schedules().Reserve(ctx, orgID, scheduleID, spots)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	attrs := []any{
		slog.String("organization_id", orgID.String()),
		slog.String("schedule_id", scheduleID.String()),
		slog.Int("requested", spots),
	}
	if snap, serr := tx.Reads().ScheduleByID(ctx, orgID, scheduleID); serr == nil {
		attrs = append(attrs,
			slog.Int("booked_count", snap.BookedCount),
			slog.Int("max_participants", snap.MaxParticipants),
		)
	}
	l.logger.WarnContext(ctx, "capacity race on schedule", attrs...)
	return errs.CapacityExceeded()
}

func (l *CapacityLedger) reserveSlot(ctx context.Context, tx shared.Tx, orgID uuid.UUID, slot availability.Slot, claim Claim) error {
	if !l.dynamicSlotLock {
		return nil
	}
	if err := tx.LockSlot(ctx, orgID, slot); err != nil {
		return err
	}

	res, err := l.engine.CheckSlot(ctx, tx.Reads(), orgID, slot, claim.Total, claim.BookingID)
	if err != nil {
		return err
	}
	if res.Available {
		return nil
	}

	l.logger.WarnContext(ctx, "capacity race on slot",
		slog.String("organization_id", orgID.String()),
		slog.String("slot", slot.String()),
		slog.Int("requested", claim.Total),
		slog.Int("booked_count", res.BookedCount),
		slog.Int("max_participants", res.MaxCapacity),
	)
	return errs.CapacityExceeded()
}
