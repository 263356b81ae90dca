package queries

import (
	"context"
	"time"

	"tourbook/internal/domain/availability"
	"tourbook/internal/pkg/dates"
	"tourbook/internal/pkg/errs"
	"tourbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type SlotAvailabilityRequest struct {
	TourID           uuid.UUID
	Date             time.Time
	Time             string
	RequestedSpots   int
	ExcludeBookingID *uuid.UUID
}

type HeatmapRequest struct {
	From    time.Time
	To      time.Time
	TourIDs []uuid.UUID
}

type AvailabilityQueries interface {
	CheckSlotAvailability(ctx context.Context, orgID uuid.UUID, req SlotAvailabilityRequest) (*availability.SlotCheck, error)
	GetAvailableDatesForMonth(ctx context.Context, orgID, tourID uuid.UUID, year int, month time.Month) ([]availability.DateAvailability, error)
	GetCapacityHeatmap(ctx context.Context, orgID uuid.UUID, req HeatmapRequest) ([]availability.HeatmapEntry, error)
}

type AvailabilityOptions struct {
	AlmostFullThreshold int
	MaxHeatmapDays      int
}

type availabilityQueriesImpl struct {
	reads  shared.CalendarReads
	engine *shared.Availability
	opts   AvailabilityOptions
}

func NewAvailabilityQueries(reads shared.CalendarReads, engine *shared.Availability, opts AvailabilityOptions) AvailabilityQueries {
	return &availabilityQueriesImpl{reads: reads, engine: engine, opts: opts}
}

func (q *availabilityQueriesImpl) CheckSlotAvailability(ctx context.Context, orgID uuid.UUID, req SlotAvailabilityRequest) (*availability.SlotCheck, error) {
	at, err := availability.ParseClockTime(req.Time)
	if err != nil {
		return nil, err
	}
	slot := availability.NewSlot(req.TourID, req.Date, at)

	res, err := q.engine.CheckSlot(ctx, q.reads, orgID, slot, req.RequestedSpots, req.ExcludeBookingID)
	if err != nil {
		return nil, err
	}
	return &res.SlotCheck, nil
}

func (q *availabilityQueriesImpl) GetAvailableDatesForMonth(ctx context.Context, orgID, tourID uuid.UUID, year int, month time.Month) ([]availability.DateAvailability, error) {
	if month < time.January || month > time.December {
		return nil, errs.Validation("Month must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return nil, errs.Validation("Year is out of range")
	}

	tour, err := q.reads.TourByID(ctx, orgID, tourID)
	if err != nil {
		return nil, err
	}

	first, last := dates.MonthBounds(year, month)
	cals, err := q.engine.Calendars(ctx, q.reads, []shared.TourSnapshot{*tour}, first, last)
	if err != nil {
		return nil, err
	}
	usage, err := q.reads.BookedParticipants(ctx, orgID, shared.UsageFilter{
		TourIDs: []uuid.UUID{tourID},
		From:    first,
		To:      last,
	})
	if err != nil {
		return nil, err
	}

	return availability.BuildMonth(cals[0], q.engine.Today(), year, month, usage, q.opts.AlmostFullThreshold), nil
}

func (q *availabilityQueriesImpl) GetCapacityHeatmap(ctx context.Context, orgID uuid.UUID, req HeatmapRequest) ([]availability.HeatmapEntry, error) {
	from, to := dates.Of(req.From), dates.Of(req.To)
	if to.Before(from) {
		return nil, errs.Validation("End date must not be before start date")
	}
	if days := dates.DaysBetween(from, to); q.opts.MaxHeatmapDays > 0 && days > q.opts.MaxHeatmapDays {
		return nil, errs.Validation("Date range cannot exceed %d days", q.opts.MaxHeatmapDays)
	}

	tours, err := q.reads.ToursByOrganization(ctx, orgID, req.TourIDs)
	if err != nil {
		return nil, err
	}
	if len(req.TourIDs) > 0 && len(tours) != len(uniqueIDs(req.TourIDs)) {
		for _, id := range req.TourIDs {
			if !containsTour(tours, id) {
				return nil, errs.NotFound("tour", id)
			}
		}
	}
	if len(tours) == 0 {
		return []availability.HeatmapEntry{}, nil
	}

	cals, err := q.engine.Calendars(ctx, q.reads, tours, from, to)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(tours))
	for i, t := range tours {
		ids[i] = t.ID
	}
	usage, err := q.reads.BookedParticipants(ctx, orgID, shared.UsageFilter{TourIDs: ids, From: from, To: to})
	if err != nil {
		return nil, err
	}

	return availability.BuildHeatmap(cals, from, to, usage), nil
}

func uniqueIDs(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func containsTour(tours []shared.TourSnapshot, id uuid.UUID) bool {
	for _, t := range tours {
		if t.ID == id {
			return true
		}
	}
	return false
}
