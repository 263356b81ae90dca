//go:build unit || e2e

package fakestore

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"tourbook/internal/domain/booking"
	"tourbook/internal/pkg/dates"
	"tourbook/internal/pkg/errs"
	"tourbook/internal/usecase/queries"
	"tourbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var _ queries.BookingReadStore = (*Store)(nil)

func (s *Store) FindByID(_ context.Context, orgID, id uuid.UUID) (*queries.BookingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.state.bookings[id]
	if !ok || r.OrganizationID != orgID {
		return nil, errs.NotFound("booking", id)
	}
	return s.state.view(r), nil
}

func (s *Store) FindPage(_ context.Context, orgID uuid.UUID, f queries.BookingFilter, after *queries.PageKey, limit int) ([]*queries.BookingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows []booking.Record
	for _, r := range s.state.bookings {
		if r.OrganizationID != orgID {
			continue
		}
		if f.Status != nil && r.Status != *f.Status {
			continue
		}
		if f.TourID != nil && r.TourID != *f.TourID {
			continue
		}
		if f.DateFrom != nil && dates.Of(r.BookingDate).Before(dates.Of(*f.DateFrom)) {
			continue
		}
		if f.DateTo != nil && dates.Of(r.BookingDate).After(dates.Of(*f.DateTo)) {
			continue
		}
		rows = append(rows, r)
	}
	slices.SortFunc(rows, func(a, b booking.Record) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID.String(), a.ID.String())
	})

	out := make([]*queries.BookingView, 0, limit)
	for _, r := range rows {
		if after != nil {
			c := r.CreatedAt.Compare(after.CreatedAt)
			if c > 0 || (c == 0 && r.ID.String() >= after.ID.String()) {
				continue
			}
		}
		out = append(out, s.state.view(r))
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (st *state) view(r booking.Record) *queries.BookingView {
	tour := st.tours[r.TourID]
	cust := st.customers[r.CustomerID]
	v := &queries.BookingView{
		ID:                 r.ID,
		OrganizationID:     r.OrganizationID,
		ReferenceNumber:    r.ReferenceNumber,
		Tour:               queries.TourRef{ID: r.TourID, Name: tour.Name},
		Customer:           queries.CustomerRef{ID: r.CustomerID, Name: cust.Name, Email: cust.Email},
		BookingDate:        r.BookingDate,
		BookingTime:        r.BookingTime.String(),
		ScheduleID:         r.ScheduleID,
		Adults:             r.Guests.Adults,
		Children:           r.Guests.Children,
		Infants:            r.Guests.Infants,
		TotalParticipants:  r.Guests.Total(),
		SubtotalCents:      r.Pricing.SubtotalCents,
		DiscountCents:      r.Pricing.DiscountCents,
		TaxCents:           r.Pricing.TaxCents,
		TotalCents:         r.Pricing.TotalCents,
		Currency:           r.Pricing.Currency,
		Status:             r.Status.String(),
		PaymentStatus:      r.PaymentStatus.String(),
		ConfirmedAt:        r.ConfirmedAt,
		CancelledAt:        r.CancelledAt,
		CancellationReason: r.CancellationReason,
		CompletedAt:        r.CompletedAt,
		NoShowAt:           r.NoShowAt,
		PaidAt:             r.PaidAt,
		SpecialRequests:    r.SpecialRequests,
		InternalNotes:      r.InternalNotes,
		Participants:       []queries.ParticipantView{},
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
	for _, p := range st.participants[r.ID] {
		v.Participants = append(v.Participants, queries.ParticipantView{
			ID:                  p.ID,
			FirstName:           p.FirstName,
			LastName:            p.LastName,
			Email:               p.Email,
			Phone:               p.Phone,
			Type:                string(p.Type),
			DietaryRequirements: p.DietaryRequirements,
			AccessibilityNeeds:  p.AccessibilityNeeds,
		})
	}
	return v
}

// Guides recomputes guides_required on the store's schedules.
type Guides struct {
	store          *Store
	guestsPerGuide int
	calls          atomic.Int64
	err            error
}

var _ shared.GuideRecalculator = (*Guides)(nil)

func NewGuides(store *Store, guestsPerGuide int) *Guides {
	return &Guides{store: store, guestsPerGuide: guestsPerGuide}
}

// FailWith makes every later call return err.
func (g *Guides) FailWith(err error) *Guides {
	g.err = err
	return g
}

func (g *Guides) Calls() int64 { return g.calls.Load() }

func (g *Guides) Recalculate(_ context.Context, orgID, scheduleID uuid.UUID) error {
	g.calls.Add(1)
	if g.err != nil {
		return g.err
	}
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	s, ok := g.store.state.schedules[scheduleID]
	if !ok || s.OrganizationID != orgID {
		return errs.NotFound("schedule", scheduleID)
	}
	s.GuidesRequired = int(math.Ceil(float64(s.BookedCount) / float64(g.guestsPerGuide)))
	g.store.state.schedules[scheduleID] = s
	return nil
}

// References hands out PREFIX-000001, PREFIX-000002 and so on.
type References struct {
	mu   sync.Mutex
	next int
}

var _ shared.ReferenceGenerator = (*References)(nil)

func (r *References) Generate(_ context.Context, _ uuid.UUID, prefix string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	return fmt.Sprintf("%s-%06d", prefix, r.next), nil
}
