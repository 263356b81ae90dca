package response

import (
	"fmt"

	"tourbook/internal/domain/availability"
	"tourbook/internal/pkg/dates"
)

// ReasonMessage turns a slot reason code into text for people.
func ReasonMessage(reason availability.Reason, spotsRemaining int) string {
	switch reason {
	case availability.ReasonNone:
		return ""
	case availability.ReasonPastDate:
		return "Cannot book a date in the past"
	case availability.ReasonBlackout:
		return "Tour is not available on this date"
	case availability.ReasonNotOperating:
		return "Tour does not operate at this date and time"
	case availability.ReasonSoldOut:
		return "This time slot is sold out"
	case availability.ReasonInsufficientCapacity:
		return fmt.Sprintf("Only %d spots remaining", spotsRemaining)
	default:
		return "This time slot is unavailable"
	}
}

type SlotAvailabilityResponse struct {
	Available      bool    `json:"available"`
	SpotsRemaining int     `json:"spots_remaining"`
	MaxCapacity    int     `json:"max_capacity"`
	BookedCount    int     `json:"booked_count"`
	Reason         *string `json:"reason,omitempty"`
	Message        *string `json:"message,omitempty"`
}

func FromSlotCheck(c *availability.SlotCheck) *SlotAvailabilityResponse {
	res := &SlotAvailabilityResponse{
		Available:      c.Available,
		SpotsRemaining: c.SpotsRemaining,
		MaxCapacity:    c.MaxCapacity,
		BookedCount:    c.BookedCount,
	}
	if c.Reason != availability.ReasonNone {
		reason := string(c.Reason)
		msg := ReasonMessage(c.Reason, c.SpotsRemaining)
		res.Reason, res.Message = &reason, &msg
	}
	return res
}

type TimeSlotResponse struct {
	Time           string `json:"time"`
	Label          string `json:"label,omitempty"`
	SpotsRemaining int    `json:"spots_remaining"`
	MaxCapacity    int    `json:"max_capacity"`
	BookedCount    int    `json:"booked_count"`
	Available      bool   `json:"available"`
	AlmostFull     bool   `json:"almost_full"`
}

type DateAvailabilityResponse struct {
	Date           string             `json:"date"`
	IsBlackout     bool               `json:"is_blackout"`
	BlackoutReason *string            `json:"blackout_reason,omitempty"`
	PriceCents     *int64             `json:"price_cents,omitempty"`
	MeetingPoint   *string            `json:"meeting_point,omitempty"`
	Slots          []TimeSlotResponse `json:"slots"`
}

func FromMonth(days []availability.DateAvailability) []DateAvailabilityResponse {
	res := make([]DateAvailabilityResponse, len(days))
	for i, d := range days {
		slots := make([]TimeSlotResponse, len(d.Slots))
		for j, s := range d.Slots {
			slots[j] = TimeSlotResponse{
				Time:           s.Time.String(),
				Label:          s.Label,
				SpotsRemaining: s.SpotsRemaining,
				MaxCapacity:    s.MaxCapacity,
				BookedCount:    s.BookedCount,
				Available:      s.Available,
				AlmostFull:     s.AlmostFull,
			}
		}
		res[i] = DateAvailabilityResponse{
			Date:           dates.Format(d.Date),
			IsBlackout:     d.IsBlackout,
			BlackoutReason: d.BlackoutReason,
			PriceCents:     d.PriceCents,
			MeetingPoint:   d.MeetingPoint,
			Slots:          slots,
		}
	}
	return res
}

type HeatmapEntryResponse struct {
	TourID      string  `json:"tour_id"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	BookedCount int     `json:"booked_count"`
	MaxCapacity int     `json:"max_capacity"`
	Utilization float64 `json:"utilization"`
	Level       string  `json:"level"`
}

func FromHeatmap(entries []availability.HeatmapEntry) []HeatmapEntryResponse {
	res := make([]HeatmapEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = HeatmapEntryResponse{
			TourID:      e.TourID.String(),
			Date:        dates.Format(e.Date),
			Time:        e.Time.String(),
			BookedCount: e.BookedCount,
			MaxCapacity: e.MaxCapacity,
			Utilization: e.Utilization,
			Level:       string(e.Level),
		}
	}
	return res
}
