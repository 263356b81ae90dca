package availability

import (
	"bytes"
	"math"
	"sort"
	"time"

	"tourbook/internal/pkg/dates"

	"github.com/google/uuid"
)

// Window is a recurring rule describing when a tour operates.
type Window struct {
	ID              uuid.UUID
	TourID          uuid.UUID
	StartDate       time.Time
	EndDate         *time.Time
	DaysOfWeek      Weekdays
	MaxParticipants *int
	PriceCents      *int64
	MeetingPoint    *string
	IsActive        bool
}

// CoversDate reports whether the window is active and its date range contains date.
func (w Window) CoversDate(date time.Time) bool {
	if !w.IsActive {
		return false
	}
	d := dates.Of(date)
	if d.Before(dates.Of(w.StartDate)) {
		return false
	}
	return w.EndDate == nil || !d.After(dates.Of(*w.EndDate))
}

func (w Window) Matches(date time.Time) bool {
	return w.CoversDate(date) && w.DaysOfWeek.Has(date.Weekday())
}

func (w Window) spanDays() int {
	if w.EndDate == nil {
		return math.MaxInt
	}
	return dates.DaysBetween(w.StartDate, *w.EndDate)
}

// MatchKind tells why a window lookup failed.
type MatchKind string

const (
	MatchFound    MatchKind = "found"
	MatchNoWindow MatchKind = "no_window"
	MatchWrongDay MatchKind = "wrong_day"
)

// SelectWindow picks the window that applies on date. Overlapping matches are
// resolved narrowest date range first, then latest start date, then lowest id.
func SelectWindow(windows []Window, date time.Time) (*Window, MatchKind) {
	var candidates []Window
	covered := false
	for _, w := range windows {
		if !w.CoversDate(date) {
			continue
		}
		covered = true
		if w.DaysOfWeek.Has(date.Weekday()) {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		if covered {
			return nil, MatchWrongDay
		}
		return nil, MatchNoWindow
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if sa, sb := a.spanDays(), b.spanDays(); sa != sb {
			return sa < sb
		}
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.After(b.StartDate)
		}
		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	})
	w := candidates[0]
	return &w, MatchFound
}
