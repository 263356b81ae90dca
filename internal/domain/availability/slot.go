package availability

import (
	"time"
)

// Reason explains why a slot is unavailable. Empty means available.
type Reason string

const (
	ReasonNone                 Reason = ""
	ReasonPastDate             Reason = "past_date"
	ReasonBlackout             Reason = "blackout"
	ReasonNotOperating         Reason = "not_operating"
	ReasonSoldOut              Reason = "sold_out"
	ReasonInsufficientCapacity Reason = "insufficient_capacity"
)

// NotOperatingDetail narrows ReasonNotOperating for logs and diagnostics.
type NotOperatingDetail string

const (
	DetailNoWindow    NotOperatingDetail = "no_window"
	DetailWrongDay    NotOperatingDetail = "wrong_day"
	DetailNoDeparture NotOperatingDetail = "no_departure"
)

type SlotCheck struct {
	Available      bool
	SpotsRemaining int
	MaxCapacity    int
	BookedCount    int
	Reason         Reason
	Detail         NotOperatingDetail
}

// Resolution is the capacity a slot offers before looking at bookings.
type Resolution struct {
	Reason   Reason
	Detail   NotOperatingDetail
	Window   *Window
	Capacity int
}

func (r Resolution) Operates() bool {
	return r.Reason == ReasonNone
}

// Resolve applies the date rules in order: past, blackout, window, departure time.
func (c *Calendar) Resolve(today, date time.Time, at ClockTime) Resolution {
	day := c.Day(date)
	if day.Date.Before(today) {
		return Resolution{Reason: ReasonPastDate}
	}
	if day.Blackout != nil {
		return Resolution{Reason: ReasonBlackout}
	}
	if day.Window == nil {
		detail := DetailNoWindow
		if day.Match == MatchWrongDay {
			detail = DetailWrongDay
		}
		return Resolution{Reason: ReasonNotOperating, Detail: detail}
	}
	if _, ok := c.Departure(at); !ok {
		return Resolution{Reason: ReasonNotOperating, Detail: DetailNoDeparture}
	}
	return Resolution{Window: day.Window, Capacity: c.CapacityOn(day.Window)}
}

// Decide compares a resolved slot against what is already booked.
func Decide(res Resolution, booked, requested int) SlotCheck {
	if !res.Operates() {
		return SlotCheck{Reason: res.Reason, Detail: res.Detail}
	}
	remaining := res.Capacity - booked
	check := SlotCheck{
		Available:      true,
		SpotsRemaining: max(remaining, 0),
		MaxCapacity:    res.Capacity,
		BookedCount:    booked,
	}
	if remaining < requested {
		check.Available = false
		check.Reason = ReasonInsufficientCapacity
		if remaining <= 0 {
			check.Reason = ReasonSoldOut
		}
	}
	return check
}
