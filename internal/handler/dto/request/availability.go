package request

import (
	"strings"

	"tourbook/internal/pkg/errs"
	"tourbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotAvailabilityQuery struct {
	TourID           string `form:"tour_id" binding:"required,uuid"`
	Date             string `form:"date" binding:"required"`
	Time             string `form:"time" binding:"required"`
	Spots            int    `form:"spots" binding:"omitempty,min=1"`
	ExcludeBookingID string `form:"exclude_booking_id" binding:"omitempty,uuid"`
}

func (q SlotAvailabilityQuery) ToQuery() (queries.SlotAvailabilityRequest, error) {
	var req queries.SlotAvailabilityRequest
	tourID, err := uuid.Parse(q.TourID)
	if err != nil {
		return req, errs.Validation("Invalid tour id")
	}
	date, err := ParseDate(q.Date)
	if err != nil {
		return req, err
	}
	req = queries.SlotAvailabilityRequest{
		TourID:         tourID,
		Date:           date,
		Time:           q.Time,
		RequestedSpots: q.Spots,
	}
	if req.RequestedSpots == 0 {
		req.RequestedSpots = 1
	}
	if q.ExcludeBookingID != "" {
		id, err := uuid.Parse(q.ExcludeBookingID)
		if err != nil {
			return req, errs.Validation("Invalid booking id")
		}
		req.ExcludeBookingID = &id
	}
	return req, nil
}

type MonthQuery struct {
	Year  int `form:"year" binding:"required"`
	Month int `form:"month" binding:"required"`
}

type HeatmapQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
	// comma separated; empty means every active tour
	TourIDs string `form:"tour_ids"`
}

func (q HeatmapQuery) ToQuery() (queries.HeatmapRequest, error) {
	var req queries.HeatmapRequest
	from, err := ParseDate(q.From)
	if err != nil {
		return req, err
	}
	to, err := ParseDate(q.To)
	if err != nil {
		return req, err
	}
	req.From, req.To = from, to
	for _, raw := range strings.Split(q.TourIDs, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return req, errs.Validation("Invalid tour id: %s", raw)
		}
		req.TourIDs = append(req.TourIDs, id)
	}
	return req, nil
}

type SummaryQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

type NeedsActionQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}
