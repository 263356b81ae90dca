// Package urgency ranks upcoming bookings that still need operator attention.
package urgency

import (
	"time"

	"tourbook/internal/domain/availability"
	"tourbook/internal/domain/booking"
)

type Tier string

const (
	TierCritical Tier = "critical"
	TierHigh     Tier = "high"
	TierMedium   Tier = "medium"
	TierLow      Tier = "low"
	TierNone     Tier = "none"
	TierPast     Tier = "past"
)

const (
	criticalWithin = 24 * time.Hour
	highWithin     = 48 * time.Hour
	mediumWithin   = 7 * 24 * time.Hour
)

var severity = map[Tier]int{
	TierCritical: 0,
	TierHigh:     1,
	TierMedium:   2,
	TierLow:      3,
	TierNone:     4,
	TierPast:     5,
}

// Severity orders tiers most urgent first.
func (t Tier) Severity() int {
	if s, ok := severity[t]; ok {
		return s
	}
	return len(severity)
}

type Input struct {
	ScheduleStart *time.Time
	BookingDate   *time.Time
	BookingTime   *availability.ClockTime
	Status        booking.Status
	PaymentStatus booking.PaymentStatus
}

// TourTime prefers the schedule start; otherwise the booking date and time in loc.
// A booking date without a time counts from the start of that day.
func (in Input) TourTime(loc *time.Location) (time.Time, bool) {
	if in.ScheduleStart != nil {
		return *in.ScheduleStart, true
	}
	if in.BookingDate == nil {
		return time.Time{}, false
	}
	at := availability.ClockTime{}
	if in.BookingTime != nil {
		at = *in.BookingTime
	}
	return at.On(*in.BookingDate, loc), true
}

// HasIssue is true while a booking awaits confirmation or payment.
func (in Input) HasIssue() bool {
	return in.Status == booking.StatusPending || !in.PaymentStatus.Settled()
}

func Classify(in Input, now time.Time, loc *time.Location) Tier {
	at, ok := in.TourTime(loc)
	if !ok {
		return TierNone
	}
	if at.Before(now) {
		return TierPast
	}
	if !in.HasIssue() {
		return TierNone
	}

	until := at.Sub(now)
	switch {
	case until <= criticalWithin:
		return TierCritical
	case until <= highWithin:
		return TierHigh
	case until <= mediumWithin:
		return TierMedium
	default:
		return TierLow
	}
}
