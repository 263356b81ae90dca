package availability

import (
	"time"

	"tourbook/internal/pkg/dates"

	"github.com/google/uuid"
)

// Usage holds booked participant counts per slot.
type Usage map[SlotKey]int

func (u Usage) Booked(tourID uuid.UUID, date time.Time, at ClockTime) int {
	return u[SlotKey{TourID: tourID, Date: dates.Format(date), Time: at.String()}]
}

type TimeSlot struct {
	Time           ClockTime
	Label          string
	SpotsRemaining int
	MaxCapacity    int
	BookedCount    int
	Available      bool
	AlmostFull     bool
}

type DateAvailability struct {
	Date           time.Time
	IsBlackout     bool
	BlackoutReason *string
	PriceCents     *int64
	MeetingPoint   *string
	Slots          []TimeSlot
}

// BuildMonth lists the bookable days of a month from today onwards. Days the
// tour does not operate are left out; blackout days are kept and flagged.
func BuildMonth(cal *Calendar, today time.Time, year int, month time.Month, usage Usage, almostFullThreshold int) []DateAvailability {
	first, last := dates.MonthBounds(year, month)
	out := make([]DateAvailability, 0, last.Day())
	for _, date := range dates.Between(first, last) {
		if date.Before(today) {
			continue
		}
		day := cal.Day(date)
		if day.Blackout != nil {
			out = append(out, DateAvailability{
				Date:           date,
				IsBlackout:     true,
				BlackoutReason: day.Blackout.Reason,
			})
			continue
		}
		if day.Window == nil {
			continue
		}

		capacity := cal.CapacityOn(day.Window)
		slots := make([]TimeSlot, 0, len(cal.Departures()))
		for _, dep := range cal.Departures() {
			booked := usage.Booked(cal.TourID(), date, dep.Time)
			remaining := max(capacity-booked, 0)
			slots = append(slots, TimeSlot{
				Time:           dep.Time,
				Label:          dep.Label,
				SpotsRemaining: remaining,
				MaxCapacity:    capacity,
				BookedCount:    booked,
				Available:      remaining > 0,
				AlmostFull:     remaining > 0 && remaining <= almostFullThreshold,
			})
		}
		out = append(out, DateAvailability{
			Date:         date,
			PriceCents:   day.Window.PriceCents,
			MeetingPoint: day.Window.MeetingPoint,
			Slots:        slots,
		})
	}
	return out
}
