package availability

import (
	"fmt"
	"time"

	"tourbook/internal/pkg/dates"
	"tourbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidClockTime = &errs.ValidationError{Message: "time must be in HH:MM format"}
	ErrInvalidWeekday   = &errs.ValidationError{Message: "weekday must be between 0 (Sunday) and 6 (Saturday)"}
)

// ClockTime is a departure time of day with minute precision.
type ClockTime struct {
	minutes int
}

func ParseClockTime(s string) (ClockTime, error) {
	// Postgres TIME columns render as HH:MM:SS; accept and drop the seconds.
	if len(s) == 8 && s[5] == ':' && s[6] == '0' && s[7] == '0' {
		s = s[:5]
	}
	if len(s) != 5 || s[2] != ':' {
		return ClockTime{}, ErrInvalidClockTime
	}
	h, okH := twoDigits(s[0], s[1])
	m, okM := twoDigits(s[3], s[4])
	if !okH || !okM || h > 23 || m > 59 {
		return ClockTime{}, ErrInvalidClockTime
	}
	return ClockTime{minutes: h*60 + m}, nil
}

func MustClockTime(s string) ClockTime {
	c, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// ClockTimeOf truncates t to the minute in its own location.
func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime{minutes: t.Hour()*60 + t.Minute()}
}

// SlotAt is the slot a timestamp falls on, read in loc.
func SlotAt(tourID uuid.UUID, t time.Time, loc *time.Location) Slot {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return NewSlot(tourID, local, ClockTimeOf(local))
}

func (c ClockTime) Hour() int   { return c.minutes / 60 }
func (c ClockTime) Minute() int { return c.minutes % 60 }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// On places the time of day on a calendar date in loc.
func (c ClockTime) On(date time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, loc)
}

// Weekdays is a set of days of the week, bit i set for time.Weekday(i).
type Weekdays uint8

func NewWeekdays(days ...int) (Weekdays, error) {
	var w Weekdays
	for _, d := range days {
		if d < 0 || d > 6 {
			return 0, ErrInvalidWeekday
		}
		w |= 1 << uint(d)
	}
	return w, nil
}

func (w Weekdays) Has(day time.Weekday) bool {
	return w&(1<<uint(day)) != 0
}

func (w Weekdays) Ints() []int {
	out := make([]int, 0, 7)
	for d := 0; d < 7; d++ {
		if w.Has(time.Weekday(d)) {
			out = append(out, d)
		}
	}
	return out
}

// Slot addresses one bookable run of a tour.
type Slot struct {
	TourID uuid.UUID
	Date   time.Time
	Time   ClockTime
}

func NewSlot(tourID uuid.UUID, date time.Time, t ClockTime) Slot {
	return Slot{TourID: tourID, Date: dates.Of(date), Time: t}
}

func (s Slot) Key() SlotKey {
	return SlotKey{TourID: s.TourID, Date: dates.Format(s.Date), Time: s.Time.String()}
}

func (s Slot) String() string {
	return fmt.Sprintf("%s@%s %s", s.TourID, dates.Format(s.Date), s.Time)
}

// SlotKey is the comparable form of a Slot used to index booked counts.
type SlotKey struct {
	TourID uuid.UUID
	Date   string
	Time   string
}
