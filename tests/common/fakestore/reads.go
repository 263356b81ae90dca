//go:build unit || e2e

package fakestore

import (
	"context"
	"slices"
	"strings"
	"time"

	"tourbook/internal/domain/availability"
	"tourbook/internal/pkg/dates"
	"tourbook/internal/pkg/errs"
	"tourbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// reads answers from a fixed transaction state, or from the committed state
// of store when st is nil.
type reads struct {
	store *Store
	st    *state
}

func (r *reads) view(fn func(st *state)) {
	if r.st != nil {
		fn(r.st)
		return
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	fn(r.store.state)
}

func (r *reads) TourByID(_ context.Context, orgID, id uuid.UUID) (*shared.TourSnapshot, error) {
	var (
		t  shared.TourSnapshot
		ok bool
	)
	r.view(func(st *state) { t, ok = st.tours[id] })
	if !ok || t.OrganizationID != orgID {
		return nil, errs.NotFound("tour", id)
	}
	return &t, nil
}

func (r *reads) ToursByOrganization(_ context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]shared.TourSnapshot, error) {
	var out []shared.TourSnapshot
	r.view(func(st *state) {
		for _, t := range st.tours {
			if t.OrganizationID != orgID {
				continue
			}
			if len(ids) == 0 && t.Status != "active" {
				continue
			}
			if len(ids) > 0 && !slices.Contains(ids, t.ID) {
				continue
			}
			out = append(out, t)
		}
	})
	slices.SortFunc(out, func(a, b shared.TourSnapshot) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return out, nil
}

func (r *reads) CustomerByID(_ context.Context, orgID, id uuid.UUID) (*shared.CustomerSnapshot, error) {
	var (
		c  shared.CustomerSnapshot
		ok bool
	)
	r.view(func(st *state) { c, ok = st.customers[id] })
	if !ok || c.OrganizationID != orgID {
		return nil, errs.NotFound("customer", id)
	}
	return &c, nil
}

func (r *reads) ScheduleByID(_ context.Context, orgID, id uuid.UUID) (*shared.ScheduleSnapshot, error) {
	var (
		s  shared.ScheduleSnapshot
		ok bool
	)
	r.view(func(st *state) { s, ok = st.schedules[id] })
	if !ok || s.OrganizationID != orgID {
		return nil, errs.NotFound("schedule", id)
	}
	return &s, nil
}

func (r *reads) Windows(_ context.Context, tourIDs []uuid.UUID, from, to time.Time) ([]availability.Window, error) {
	var out []availability.Window
	r.view(func(st *state) {
		for _, w := range st.windows {
			if !slices.Contains(tourIDs, w.TourID) || !w.IsActive {
				continue
			}
			if dates.Of(w.StartDate).After(dates.Of(to)) {
				continue
			}
			if w.EndDate != nil && dates.Of(*w.EndDate).Before(dates.Of(from)) {
				continue
			}
			out = append(out, w)
		}
	})
	return out, nil
}

func (r *reads) DepartureTimes(_ context.Context, tourIDs []uuid.UUID) ([]availability.DepartureTime, error) {
	var out []availability.DepartureTime
	r.view(func(st *state) {
		for _, d := range st.departures {
			if slices.Contains(tourIDs, d.TourID) && d.IsActive {
				out = append(out, d)
			}
		}
	})
	return out, nil
}

func (r *reads) Blackouts(_ context.Context, tourIDs []uuid.UUID, from, to time.Time) ([]availability.Blackout, error) {
	var out []availability.Blackout
	r.view(func(st *state) {
		for _, b := range st.blackouts {
			d := dates.Of(b.Date)
			if slices.Contains(tourIDs, b.TourID) && !d.Before(dates.Of(from)) && !d.After(dates.Of(to)) {
				out = append(out, b)
			}
		}
	})
	return out, nil
}

func (r *reads) BookedParticipants(_ context.Context, orgID uuid.UUID, f shared.UsageFilter) (availability.Usage, error) {
	usage := availability.Usage{}
	r.view(func(st *state) {
		for _, b := range st.bookings {
			if b.OrganizationID != orgID || !holdsCapacity(b) || !slices.Contains(f.TourIDs, b.TourID) {
				continue
			}
			d := dates.Of(b.BookingDate)
			if d.Before(dates.Of(f.From)) || d.After(dates.Of(f.To)) {
				continue
			}
			if f.Time != nil && *f.Time != b.BookingTime {
				continue
			}
			if f.ExcludeBookingID != nil && *f.ExcludeBookingID == b.ID {
				continue
			}
			usage[availability.NewSlot(b.TourID, b.BookingDate, b.BookingTime).Key()] += b.Guests.Total()
		}
	})
	return usage, nil
}
