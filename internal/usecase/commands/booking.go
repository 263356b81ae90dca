package commands

import (
	"context"
	"log/slog"
	"time"

	"tourbook/internal/domain/availability"
	"tourbook/internal/domain/booking"
	"tourbook/internal/pkg/errs"
	"tourbook/internal/pkg/patch"
	"tourbook/internal/usecase/queries"
	"tourbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	CustomerID      uuid.UUID
	ScheduleID      *uuid.UUID
	TourID          *uuid.UUID
	BookingDate     *time.Time
	BookingTime     *string
	Adults          int
	Children        int
	Infants         int
	SubtotalCents   *int64
	DiscountCents   *int64
	TaxCents        *int64
	TotalCents      *int64
	SpecialRequests *string
	InternalNotes   *string
	Participants    []ParticipantInput
}

type ParticipantInput struct {
	FirstName           string
	LastName            string
	Email               *string
	Phone               *string
	Type                string
	DietaryRequirements *string
	AccessibilityNeeds  *string
}

type UpdateBookingRequest struct {
	Adults          *int
	Children        *int
	Infants         *int
	DiscountCents   *int64
	TaxCents        *int64
	TotalCents      *int64
	SpecialRequests *string
	InternalNotes   *string
}

// RescheduleRequest targets either a schedule or a tour date and time.
// TourID defaults to the booking's current tour.
type RescheduleRequest struct {
	ScheduleID  *uuid.UUID
	TourID      *uuid.UUID
	BookingDate *time.Time
	BookingTime *string
}

//go:generate mockgen -destination=../../../tests/mock/commands/commands.go -package=commandsmock tourbook/internal/usecase/commands BookingCommands,BulkCommands

type BookingCommands interface {
	Create(ctx context.Context, orgID uuid.UUID, req CreateBookingRequest) (*queries.BookingView, error)
	Update(ctx context.Context, orgID, id uuid.UUID, req UpdateBookingRequest) (*queries.BookingView, error)
	Confirm(ctx context.Context, orgID, id uuid.UUID) (*queries.BookingView, error)
	Cancel(ctx context.Context, orgID, id uuid.UUID, reason *string) (*queries.BookingView, error)
	MarkNoShow(ctx context.Context, orgID, id uuid.UUID) (*queries.BookingView, error)
	Complete(ctx context.Context, orgID, id uuid.UUID) (*queries.BookingView, error)
	Reschedule(ctx context.Context, orgID, id uuid.UUID, req RescheduleRequest) (*queries.BookingView, error)
	UpdatePaymentStatus(ctx context.Context, orgID, id uuid.UUID, status string) (*queries.BookingView, error)
}

type BookingOptions struct {
	ReferencePrefix string
}

type bookingCommandsImpl struct {
	uow      shared.UnitOfWork
	engine   *shared.Availability
	ledger   *CapacityLedger
	staffing *StaffingDispatcher
	refs     shared.ReferenceGenerator
	views    queries.BookingQueries
	logger   *slog.Logger
	opts     BookingOptions
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	engine *shared.Availability,
	ledger *CapacityLedger,
	staffing *StaffingDispatcher,
	refs shared.ReferenceGenerator,
	views queries.BookingQueries,
	logger *slog.Logger,
	opts BookingOptions,
) BookingCommands {
	if opts.ReferencePrefix == "" {
		opts.ReferencePrefix = "BK"
	}
	return &bookingCommandsImpl{
		uow:      uow,
		engine:   engine,
		ledger:   ledger,
		staffing: staffing,
		refs:     refs,
		views:    views,
		logger:   logger,
		opts:     opts,
	}
}

// target is a resolved place to put a booking.
type target struct {
	slot       availability.Slot
	scheduleID *uuid.UUID
	tour       *shared.TourSnapshot
	unitPrice  int64
}

func (t target) model() booking.CapacityModel {
	if t.scheduleID != nil {
		return booking.Materialized{ScheduleID: *t.scheduleID}
	}
	return booking.Dynamic{Slot: t.slot}
}

func (uc *bookingCommandsImpl) Create(ctx context.Context, orgID uuid.UUID, req CreateBookingRequest) (*queries.BookingView, error) {
	guests, err := booking.NewGuests(req.Adults, req.Children, req.Infants)
	if err != nil {
		return nil, err
	}

	reads := uc.uow.CommandReads()
	if _, err = reads.CustomerByID(ctx, orgID, req.CustomerID); err != nil {
		return nil, err
	}

	dest, err := uc.resolveTarget(ctx, reads, orgID, req.ScheduleID, req.TourID, req.BookingDate, req.BookingTime, guests.Total(), nil)
	if err != nil {
		return nil, err
	}

	pricing, err := booking.CalculatePricing(booking.PriceInput{
		UnitPriceCents: dest.unitPrice,
		Adults:         guests.Adults,
		Currency:       dest.tour.Currency,
		SubtotalCents:  req.SubtotalCents,
		DiscountCents:  req.DiscountCents,
		TaxCents:       req.TaxCents,
		TotalCents:     req.TotalCents,
	})
	if err != nil {
		return nil, err
	}

	ref, err := uc.refs.Generate(ctx, orgID, uc.opts.ReferencePrefix)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate booking reference")
	}

	b, err := booking.NewBooking(booking.NewBookingParams{
		OrganizationID:  orgID,
		CustomerID:      req.CustomerID,
		ReferenceNumber: ref,
		Slot:            dest.slot,
		ScheduleID:      dest.scheduleID,
		Guests:          guests,
		Pricing:         pricing,
		SpecialRequests: req.SpecialRequests,
		InternalNotes:   req.InternalNotes,
	}, uc.engine.Now())
	if err != nil {
		return nil, err
	}

	participants := make([]booking.Participant, 0, len(req.Participants))
	for _, in := range req.Participants {
		p, perr := booking.NewParticipant(b.ID(), in.FirstName, in.LastName, booking.ParticipantType(in.Type))
		if perr != nil {
			return nil, perr
		}
		p.Email, p.Phone = in.Email, in.Phone
		p.DietaryRequirements, p.AccessibilityNeeds = in.DietaryRequirements, in.AccessibilityNeeds
		participants = append(participants, p)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if rerr := uc.ledger.Reserve(ctx, tx, orgID, b.CapacityModel(), Claim{Spots: guests.Total(), Total: guests.Total()}); rerr != nil {
			return rerr
		}
		if cerr := tx.Bookings().Create(ctx, b); cerr != nil {
			return cerr
		}
		if len(participants) == 0 {
			return nil
		}
		return tx.Participants().CreateMany(ctx, participants)
	})
	if err != nil {
		return nil, err
	}

	uc.afterCapacityChange(ctx, orgID, b.ScheduleID())
	uc.logger.InfoContext(ctx, "booking created",
		slog.String("organization_id", orgID.String()),
		slog.String("booking_id", b.ID().String()),
		slog.String("reference_number", b.ReferenceNumber()),
		slog.String("slot", b.Slot().String()),
		slog.Int("total_participants", b.TotalParticipants()),
		slog.Int64("total_cents", b.Pricing().TotalCents),
	)
	return uc.views.GetByID(ctx, orgID, b.ID())
}

func (uc *bookingCommandsImpl) Update(ctx context.Context, orgID, id uuid.UUID, req UpdateBookingRequest) (*queries.BookingView, error) {
	var before, after booking.Record
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, ferr := tx.Bookings().FindForUpdate(ctx, orgID, id)
		if ferr != nil {
			return ferr
		}
		before = b.Record()
		now := uc.engine.Now()

		current := b.Guests()
		if patch.Differs(req.Adults, current.Adults) || patch.Differs(req.Children, current.Children) || patch.Differs(req.Infants, current.Infants) {
			guests, gerr := booking.NewGuests(
				patch.Coalesce(req.Adults, current.Adults),
				patch.Coalesce(req.Children, current.Children),
				patch.Coalesce(req.Infants, current.Infants),
			)
			if gerr != nil {
				return gerr
			}
			delta, gerr := b.ChangeGuests(guests, now)
			if gerr != nil {
				return gerr
			}
			if gerr = uc.applyGuestDelta(ctx, tx, orgID, b, delta); gerr != nil {
				return gerr
			}
		}

		derr := b.UpdateDetails(booking.Details{
			SpecialRequests: req.SpecialRequests,
			InternalNotes:   req.InternalNotes,
			DiscountCents:   req.DiscountCents,
			TaxCents:        req.TaxCents,
			TotalCents:      req.TotalCents,
		}, now)
		if derr != nil {
			return derr
		}
		after = b.Record()
		return tx.Bookings().Save(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	if before.Guests.Total() != after.Guests.Total() {
		uc.afterCapacityChange(ctx, orgID, after.ScheduleID)
	}
	uc.logger.InfoContext(ctx, "booking updated",
		slog.String("organization_id", orgID.String()),
		slog.String("booking_id", id.String()),
		slog.Int("participants_before", before.Guests.Total()),
		slog.Int("participants_after", after.Guests.Total()),
		slog.Int64("total_before", before.Pricing.TotalCents),
		slog.Int64("total_after", after.Pricing.TotalCents),
	)
	return uc.views.GetByID(ctx, orgID, id)
}

// applyGuestDelta validates growth against the booking's own slot and moves
// schedule counters by the difference.
func (uc *bookingCommandsImpl) applyGuestDelta(ctx context.Context, tx shared.Tx, orgID uuid.UUID, b *booking.Booking, delta int) error {
	if delta < 0 {
		return uc.ledger.Release(ctx, tx, orgID, b.CapacityModel(), -delta)
	}
	if delta == 0 {
		return nil
	}

	id := b.ID()
	total := b.TotalParticipants()
	err := booking.MatchCapacity(b.CapacityModel(),
		func(m booking.Materialized) error {
			sched, err := tx.Reads().ScheduleByID(ctx, orgID, m.ScheduleID)
			if err != nil {
				return err
			}
			return scheduleHasRoom(sched, delta)
		},
		func(d booking.Dynamic) error {
			res, err := uc.engine.CheckSlot(ctx, tx.Reads(), orgID, d.Slot, total, &id)
			if err != nil {
				return err
			}
			return slotError(res.SlotCheck)
		},
	)
	if err != nil {
		return err
	}
	return uc.ledger.Reserve(ctx, tx, orgID, b.CapacityModel(), Claim{Spots: delta, Total: total, BookingID: &id})
}

func (uc *bookingCommandsImpl) Confirm(ctx context.Context, orgID, id uuid.UUID) (*queries.BookingView, error) {
	return uc.transition(ctx, orgID, id, "booking confirmed", func(b *booking.Booking, now time.Time) error {
		return b.Confirm(now)
	})
}

func (uc *bookingCommandsImpl) Complete(ctx context.Context, orgID, id uuid.UUID) (*queries.BookingView, error) {
	return uc.transition(ctx, orgID, id, "booking completed", func(b *booking.Booking, now time.Time) error {
		return b.Complete(now)
	})
}

func (uc *bookingCommandsImpl) MarkNoShow(ctx context.Context, orgID, id uuid.UUID) (*queries.BookingView, error) {
	return uc.transition(ctx, orgID, id, "booking marked no-show", func(b *booking.Booking, now time.Time) error {
		return b.MarkNoShow(now)
	})
}

func (uc *bookingCommandsImpl) transition(ctx context.Context, orgID, id uuid.UUID, msg string, apply func(*booking.Booking, time.Time) error) (*queries.BookingView, error) {
	var from, to booking.Status
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindForUpdate(ctx, orgID, id)
		if err != nil {
			return err
		}
		from = b.Status()
		if err = apply(b, uc.engine.Now()); err != nil {
			return err
		}
		to = b.Status()
		return tx.Bookings().Save(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, msg,
		slog.String("organization_id", orgID.String()),
		slog.String("booking_id", id.String()),
		slog.String("status_before", from.String()),
		slog.String("status_after", to.String()),
	)
	return uc.views.GetByID(ctx, orgID, id)
}

func (uc *bookingCommandsImpl) Cancel(ctx context.Context, orgID, id uuid.UUID, reason *string) (*queries.BookingView, error) {
	var from booking.Status
	var scheduleID *uuid.UUID
	var released int
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindForUpdate(ctx, orgID, id)
		if err != nil {
			return err
		}
		from = b.Status()
		if err = b.Cancel(reason, uc.engine.Now()); err != nil {
			return err
		}
		scheduleID = b.ScheduleID()
		released = b.TotalParticipants()
		if err = uc.ledger.Release(ctx, tx, orgID, b.CapacityModel(), released); err != nil {
			return err
		}
		return tx.Bookings().Save(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	uc.afterCapacityChange(ctx, orgID, scheduleID)
	uc.logger.InfoContext(ctx, "booking cancelled",
		slog.String("organization_id", orgID.String()),
		slog.String("booking_id", id.String()),
		slog.String("status_before", from.String()),
		slog.Int("released", released),
		slog.Any("reason", reason),
	)
	return uc.views.GetByID(ctx, orgID, id)
}

func (uc *bookingCommandsImpl) Reschedule(ctx context.Context, orgID, id uuid.UUID, req RescheduleRequest) (*queries.BookingView, error) {
	var before, after booking.Record
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindForUpdate(ctx, orgID, id)
		if err != nil {
			return err
		}
		if err = b.CheckReschedulable(); err != nil {
			return err
		}
		before = b.Record()

		tourID := req.TourID
		if tourID == nil && req.ScheduleID == nil {
			tourID = patch.Ptr(b.TourID())
		}
		dest, err := uc.resolveTarget(ctx, tx.Reads(), orgID, req.ScheduleID, tourID, req.BookingDate, req.BookingTime, b.TotalParticipants(), b)
		if err != nil {
			return err
		}

		total := b.TotalParticipants()
		if err = uc.ledger.Release(ctx, tx, orgID, b.CapacityModel(), total); err != nil {
			return err
		}
		bookingID := b.ID()
		if err = uc.ledger.Reserve(ctx, tx, orgID, dest.model(), Claim{Spots: total, Total: total, BookingID: &bookingID}); err != nil {
			return err
		}
		if err = b.MoveTo(dest.slot, dest.scheduleID, uc.engine.Now()); err != nil {
			return err
		}
		after = b.Record()
		return tx.Bookings().Save(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	uc.afterCapacityChange(ctx, orgID, before.ScheduleID, after.ScheduleID)
	uc.logger.InfoContext(ctx, "booking rescheduled",
		slog.String("organization_id", orgID.String()),
		slog.String("booking_id", id.String()),
		slog.String("slot_before", availability.NewSlot(before.TourID, before.BookingDate, before.BookingTime).String()),
		slog.String("slot_after", availability.NewSlot(after.TourID, after.BookingDate, after.BookingTime).String()),
		slog.Any("schedule_before", before.ScheduleID),
		slog.Any("schedule_after", after.ScheduleID),
	)
	return uc.views.GetByID(ctx, orgID, id)
}

func (uc *bookingCommandsImpl) UpdatePaymentStatus(ctx context.Context, orgID, id uuid.UUID, status string) (*queries.BookingView, error) {
	next, err := booking.ParsePaymentStatus(status)
	if err != nil {
		return nil, err
	}

	var from booking.PaymentStatus
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, ferr := tx.Bookings().FindForUpdate(ctx, orgID, id)
		if ferr != nil {
			return ferr
		}
		from = b.PaymentStatus()
		if ferr = b.SetPaymentStatus(next, uc.engine.Now()); ferr != nil {
			return ferr
		}
		return tx.Bookings().Save(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "booking payment status updated",
		slog.String("organization_id", orgID.String()),
		slog.String("booking_id", id.String()),
		slog.String("payment_status_before", from.String()),
		slog.String("payment_status_after", next.String()),
	)
	return uc.views.GetByID(ctx, orgID, id)
}

// resolveTarget validates a destination for spots guests. self is the booking
// being moved, whose own seats do not count against the destination.
func (uc *bookingCommandsImpl) resolveTarget(
	ctx context.Context,
	reads shared.CommandReads,
	orgID uuid.UUID,
	scheduleID, tourID *uuid.UUID,
	date *time.Time,
	at *string,
	spots int,
	self *booking.Booking,
) (*target, error) {
	hasSlot := tourID != nil && date != nil && at != nil
	if (scheduleID == nil) == !hasSlot {
		return nil, errs.Validation("Provide either schedule_id or tour_id with booking_date and booking_time")
	}

	if scheduleID != nil {
		sched, err := reads.ScheduleByID(ctx, orgID, *scheduleID)
		if err != nil {
			return nil, err
		}
		if sched.StartsAt.Before(uc.engine.Now()) {
			return nil, errs.Validation("Cannot book a schedule that has already started")
		}
		room := spots
		if self != nil && self.ScheduleID() != nil && *self.ScheduleID() == sched.ID {
			room -= self.TotalParticipants()
		}
		if err = scheduleHasRoom(sched, room); err != nil {
			return nil, err
		}
		tour, err := reads.TourByID(ctx, orgID, sched.TourID)
		if err != nil {
			return nil, err
		}
		return &target{
			slot:       availability.SlotAt(sched.TourID, sched.StartsAt, uc.engine.Location()),
			scheduleID: &sched.ID,
			tour:       tour,
			unitPrice:  tour.BasePriceCents,
		}, nil
	}

	clock, err := availability.ParseClockTime(*at)
	if err != nil {
		return nil, err
	}
	slot := availability.NewSlot(*tourID, *date, clock)

	var exclude *uuid.UUID
	if self != nil {
		exclude = patch.Ptr(self.ID())
	}
	res, err := uc.engine.CheckSlot(ctx, reads, orgID, slot, spots, exclude)
	if err != nil {
		return nil, err
	}
	if err = slotError(res.SlotCheck); err != nil {
		return nil, err
	}

	price := res.Tour.BasePriceCents
	if res.Window != nil && res.Window.PriceCents != nil {
		price = *res.Window.PriceCents
	}
	return &target{slot: slot, tour: res.Tour, unitPrice: price}, nil
}

func (uc *bookingCommandsImpl) afterCapacityChange(ctx context.Context, orgID uuid.UUID, scheduleIDs ...*uuid.UUID) {
	ids := make([]uuid.UUID, 0, len(scheduleIDs))
	for _, id := range scheduleIDs {
		if id != nil {
			ids = append(ids, *id)
		}
	}
	if len(ids) > 0 {
		uc.staffing.Dispatch(ctx, orgID, ids...)
	}
}

func scheduleHasRoom(sched *shared.ScheduleSnapshot, spots int) error {
	if spots <= 0 {
		return nil
	}
	remaining := sched.SpotsRemaining()
	if remaining <= 0 {
		return errs.Validation("This departure is sold out")
	}
	if remaining < spots {
		return errs.Validation("Only %d spots remaining", remaining)
	}
	return nil
}

// slotError turns an unavailable check into the error returned to callers.
func slotError(check availability.SlotCheck) error {
	if check.Available {
		return nil
	}
	switch check.Reason {
	case availability.ReasonPastDate:
		return errs.Validation("Cannot book a date in the past")
	case availability.ReasonBlackout:
		return errs.Validation("Tour is not available on this date")
	case availability.ReasonNotOperating:
		return errs.Validation("Tour does not operate at this date and time")
	case availability.ReasonSoldOut:
		return errs.Validation("This time slot is sold out")
	default:
		return errs.Validation("Only %d spots remaining", check.SpotsRemaining)
	}
}
