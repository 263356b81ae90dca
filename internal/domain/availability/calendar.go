package availability

import (
	"sort"
	"time"

	"tourbook/internal/pkg/dates"

	"github.com/google/uuid"
)

type DepartureTime struct {
	ID        uuid.UUID
	TourID    uuid.UUID
	Time      ClockTime
	Label     string
	IsActive  bool
	SortOrder int
}

type Blackout struct {
	TourID uuid.UUID
	Date   time.Time
	Reason *string
}

// Calendar is everything needed to decide whether a tour runs on a given day.
type Calendar struct {
	tourID          uuid.UUID
	defaultCapacity int
	windows         []Window
	departures      []DepartureTime
	blackouts       map[string]Blackout
}

func NewCalendar(tourID uuid.UUID, defaultCapacity int, windows []Window, departures []DepartureTime, blackouts []Blackout) *Calendar {
	cal := &Calendar{
		tourID:          tourID,
		defaultCapacity: defaultCapacity,
		blackouts:       make(map[string]Blackout, len(blackouts)),
	}
	for _, w := range windows {
		if w.TourID == tourID {
			cal.windows = append(cal.windows, w)
		}
	}
	for _, d := range departures {
		if d.TourID == tourID && d.IsActive {
			cal.departures = append(cal.departures, d)
		}
	}
	sort.SliceStable(cal.departures, func(i, j int) bool {
		a, b := cal.departures[i], cal.departures[j]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.Time.minutes < b.Time.minutes
	})
	for _, b := range blackouts {
		if b.TourID == tourID {
			cal.blackouts[dates.Format(b.Date)] = b
		}
	}
	return cal
}

func (c *Calendar) TourID() uuid.UUID           { return c.tourID }
func (c *Calendar) DefaultCapacity() int        { return c.defaultCapacity }
func (c *Calendar) Departures() []DepartureTime { return c.departures }

func (c *Calendar) Departure(t ClockTime) (DepartureTime, bool) {
	for _, d := range c.departures {
		if d.Time == t {
			return d, true
		}
	}
	return DepartureTime{}, false
}

// Day describes the tour's schedule on one date.
type Day struct {
	Date     time.Time
	Blackout *Blackout
	Window   *Window
	Match    MatchKind
}

func (d Day) Operates() bool {
	return d.Blackout == nil && d.Window != nil
}

func (c *Calendar) Day(date time.Time) Day {
	date = dates.Of(date)
	day := Day{Date: date}
	if b, ok := c.blackouts[dates.Format(date)]; ok {
		day.Blackout = &b
		return day
	}
	day.Window, day.Match = SelectWindow(c.windows, date)
	return day
}

// CapacityOn is the window override when set, the tour default otherwise.
func (c *Calendar) CapacityOn(w *Window) int {
	if w != nil && w.MaxParticipants != nil {
		return *w.MaxParticipants
	}
	return c.defaultCapacity
}
