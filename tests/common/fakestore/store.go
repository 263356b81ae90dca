//go:build unit || e2e

// Package fakestore is an in-memory UnitOfWork. Transactions are serialized
// and run against a copy of the data that replaces the committed state only
// when the callback succeeds.
package fakestore

import (
	"context"
	"maps"
	"sync"
	"sync/atomic"

	"tourbook/internal/domain/availability"
	"tourbook/internal/domain/booking"
	"tourbook/internal/usecase/shared"
	"tourbook/tests/common/builder"

	"github.com/google/uuid"
)

type state struct {
	tours        map[uuid.UUID]shared.TourSnapshot
	customers    map[uuid.UUID]shared.CustomerSnapshot
	schedules    map[uuid.UUID]shared.ScheduleSnapshot
	windows      []availability.Window
	departures   []availability.DepartureTime
	blackouts    []availability.Blackout
	bookings     map[uuid.UUID]booking.Record
	participants map[uuid.UUID][]booking.Participant
}

func (s *state) clone() *state {
	c := &state{
		tours:        maps.Clone(s.tours),
		customers:    maps.Clone(s.customers),
		schedules:    maps.Clone(s.schedules),
		windows:      append([]availability.Window(nil), s.windows...),
		departures:   append([]availability.DepartureTime(nil), s.departures...),
		blackouts:    append([]availability.Blackout(nil), s.blackouts...),
		bookings:     maps.Clone(s.bookings),
		participants: make(map[uuid.UUID][]booking.Participant, len(s.participants)),
	}
	for k, v := range s.participants {
		c.participants[k] = append([]booking.Participant(nil), v...)
	}
	return c
}

type Store struct {
	mu    sync.Mutex
	state *state

	commits   atomic.Int64
	rollbacks atomic.Int64
	slotLocks atomic.Int64
}

var _ shared.UnitOfWork = (*Store)(nil)

func New() *Store {
	return &Store{state: &state{
		tours:        map[uuid.UUID]shared.TourSnapshot{},
		customers:    map[uuid.UUID]shared.CustomerSnapshot{},
		schedules:    map[uuid.UUID]shared.ScheduleSnapshot{},
		bookings:     map[uuid.UUID]booking.Record{},
		participants: map[uuid.UUID][]booking.Participant{},
	}}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(ctx, &tx{store: s, st: work}); err != nil {
		s.rollbacks.Add(1)
		return err
	}
	s.state = work
	s.commits.Add(1)
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, reads shared.CommandReads) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, &reads{st: s.state})
}

func (s *Store) CommandReads() shared.CommandReads {
	return &reads{store: s}
}

func (s *Store) Commits() int64   { return s.commits.Load() }
func (s *Store) Rollbacks() int64 { return s.rollbacks.Load() }
func (s *Store) SlotLocks() int64 { return s.slotLocks.Load() }

// Seeding. These write straight to the committed state.

func (s *Store) AddTour(t shared.TourSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.tours[t.ID] = t
}

// AddCalendar registers a tour with the builder's id, capacity and calendar rows.
func (s *Store) AddCalendar(orgID uuid.UUID, b *builder.CalendarBuilder, basePriceCents int64) shared.TourSnapshot {
	t := shared.TourSnapshot{
		ID:              b.TourID(),
		OrganizationID:  orgID,
		Name:            "Tour " + b.TourID().String()[:8],
		BasePriceCents:  basePriceCents,
		Currency:        "USD",
		MaxParticipants: b.Capacity(),
		Status:          "active",
		DurationMinutes: 120,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.tours[t.ID] = t
	s.state.windows = append(s.state.windows, b.Windows()...)
	s.state.departures = append(s.state.departures, b.Departures()...)
	s.state.blackouts = append(s.state.blackouts, b.Blackouts()...)
	return t
}

func (s *Store) AddCustomer(orgID uuid.UUID) shared.CustomerSnapshot {
	c := shared.CustomerSnapshot{ID: uuid.New(), OrganizationID: orgID, Name: "Jane Doe", Email: "jane@example.com"}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.customers[c.ID] = c
	return c
}

func (s *Store) AddSchedule(sched shared.ScheduleSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.schedules[sched.ID] = sched
}

func (s *Store) AddBooking(r booking.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.bookings[r.ID] = r
}

// Inspection of committed state.

func (s *Store) Schedule(id uuid.UUID) shared.ScheduleSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.schedules[id]
}

func (s *Store) Booking(id uuid.UUID) (booking.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.state.bookings[id]
	return r, ok
}

func (s *Store) Participants(bookingID uuid.UUID) []booking.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]booking.Participant(nil), s.state.participants[bookingID]...)
}

// HeldSpots sums participants of capacity-holding bookings on a slot.
func (s *Store) HeldSpots(slot availability.Slot) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.state.bookings {
		if holdsCapacity(r) && availability.NewSlot(r.TourID, r.BookingDate, r.BookingTime).Key() == slot.Key() {
			n += r.Guests.Total()
		}
	}
	return n
}

func holdsCapacity(r booking.Record) bool {
	return r.Status == booking.StatusPending || r.Status == booking.StatusConfirmed
}
