//go:build unit || e2e

package builder

import (
	"time"

	"tourbook/internal/domain/availability"
	"tourbook/internal/pkg/dates"

	"github.com/google/uuid"
)

type CalendarBuilder struct {
	tourID     uuid.UUID
	capacity   int
	windows    []availability.Window
	departures []availability.DepartureTime
	blackouts  []availability.Blackout
}

// NewCalendarBuilder returns a tour that runs every day from 2026-01-01 at 09:00
// with room for 10 guests.
func NewCalendarBuilder() *CalendarBuilder {
	tourID := uuid.New()
	return &CalendarBuilder{
		tourID:   tourID,
		capacity: 10,
		windows:  []availability.Window{OpenWindow(tourID, dates.New(2026, 1, 1), 0, 1, 2, 3, 4, 5, 6)},
		departures: []availability.DepartureTime{
			{ID: uuid.New(), TourID: tourID, Time: availability.MustClockTime("09:00"), Label: "Morning", IsActive: true},
		},
	}
}

// OpenWindow is an active window without an end date or overrides.
func OpenWindow(tourID uuid.UUID, start time.Time, days ...int) availability.Window {
	wd, err := availability.NewWeekdays(days...)
	if err != nil {
		panic(err)
	}
	return availability.Window{
		ID:         uuid.New(),
		TourID:     tourID,
		StartDate:  start,
		DaysOfWeek: wd,
		IsActive:   true,
	}
}

func (b *CalendarBuilder) TourID() uuid.UUID {
	return b.tourID
}

func (b *CalendarBuilder) WithCapacity(n int) *CalendarBuilder {
	b.capacity = n
	return b
}

// WithWindows replaces the default window. Windows are re-pointed at this tour.
func (b *CalendarBuilder) WithWindows(windows ...availability.Window) *CalendarBuilder {
	b.windows = b.windows[:0]
	for _, w := range windows {
		w.TourID = b.tourID
		b.windows = append(b.windows, w)
	}
	return b
}

func (b *CalendarBuilder) WithDepartures(times ...string) *CalendarBuilder {
	b.departures = b.departures[:0]
	for i, t := range times {
		b.departures = append(b.departures, availability.DepartureTime{
			ID:        uuid.New(),
			TourID:    b.tourID,
			Time:      availability.MustClockTime(t),
			Label:     t,
			IsActive:  true,
			SortOrder: i,
		})
	}
	return b
}

func (b *CalendarBuilder) WithBlackout(date time.Time, reason string) *CalendarBuilder {
	b.blackouts = append(b.blackouts, availability.Blackout{TourID: b.tourID, Date: date, Reason: &reason})
	return b
}

func (b *CalendarBuilder) Build() *availability.Calendar {
	return availability.NewCalendar(b.tourID, b.capacity, b.windows, b.departures, b.blackouts)
}

func (b *CalendarBuilder) Capacity() int                            { return b.capacity }
func (b *CalendarBuilder) Windows() []availability.Window           { return b.windows }
func (b *CalendarBuilder) Departures() []availability.DepartureTime { return b.departures }
func (b *CalendarBuilder) Blackouts() []availability.Blackout       { return b.blackouts }
