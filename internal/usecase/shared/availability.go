package shared

import (
	"context"
	"time"

	"tourbook/internal/domain/availability"
	"tourbook/internal/pkg/clock"
	"tourbook/internal/pkg/dates"
	"tourbook/internal/pkg/errs"

	"github.com/google/uuid"
)

// Availability evaluates slots against stored calendars. Nothing is cached
// between calls; every check re-reads storage.
type Availability struct {
	clock clock.Clock
	loc   *time.Location
}

func NewAvailability(clk clock.Clock, loc *time.Location) *Availability {
	if loc == nil {
		loc = time.UTC
	}
	return &Availability{clock: clk, loc: loc}
}

func (a *Availability) Now() time.Time {
	return a.clock.Now()
}

// Today is the current date in the business timezone.
func (a *Availability) Today() time.Time {
	return dates.Today(a.clock.Now(), a.loc)
}

func (a *Availability) Location() *time.Location {
	return a.loc
}

// Calendars loads calendars for tours in from..to with three batched reads.
func (a *Availability) Calendars(ctx context.Context, reads CalendarReads, tours []TourSnapshot, from, to time.Time) ([]*availability.Calendar, error) {
	ids := make([]uuid.UUID, len(tours))
	for i, t := range tours {
		ids[i] = t.ID
	}

	windows, err := reads.Windows(ctx, ids, from, to)
	if err != nil {
		return nil, err
	}
	departures, err := reads.DepartureTimes(ctx, ids)
	if err != nil {
		return nil, err
	}
	blackouts, err := reads.Blackouts(ctx, ids, from, to)
	if err != nil {
		return nil, err
	}

	cals := make([]*availability.Calendar, len(tours))
	for i, t := range tours {
		cals[i] = availability.NewCalendar(t.ID, t.MaxParticipants, windows, departures, blackouts)
	}
	return cals, nil
}

type SlotResult struct {
	availability.SlotCheck
	Window *availability.Window
	Tour   *TourSnapshot
}

// CheckSlot decides whether requested spots fit in slot. exclude leaves a
// booking's own participants out of the booked count.
func (a *Availability) CheckSlot(ctx context.Context, reads CalendarReads, orgID uuid.UUID, slot availability.Slot, requested int, exclude *uuid.UUID) (*SlotResult, error) {
	if requested < 1 {
		return nil, errs.Validation("Requested spots must be at least 1")
	}

	tour, err := reads.TourByID(ctx, orgID, slot.TourID)
	if err != nil {
		return nil, err
	}

	cals, err := a.Calendars(ctx, reads, []TourSnapshot{*tour}, slot.Date, slot.Date)
	if err != nil {
		return nil, err
	}
	res := cals[0].Resolve(a.Today(), slot.Date, slot.Time)
	if !res.Operates() {
		return &SlotResult{SlotCheck: availability.Decide(res, 0, requested), Tour: tour}, nil
	}

	usage, err := reads.BookedParticipants(ctx, orgID, UsageFilter{
		TourIDs:          []uuid.UUID{slot.TourID},
		From:             slot.Date,
		To:               slot.Date,
		Time:             &slot.Time,
		ExcludeBookingID: exclude,
	})
	if err != nil {
		return nil, err
	}

	booked := usage.Booked(slot.TourID, slot.Date, slot.Time)
	return &SlotResult{
		SlotCheck: availability.Decide(res, booked, requested),
		Window:    res.Window,
		Tour:      tour,
	}, nil
}
