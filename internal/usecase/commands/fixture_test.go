//go:build unit

package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"tourbook/internal/domain/availability"
	"tourbook/internal/pkg/clock"
	"tourbook/internal/pkg/dates"
	"tourbook/internal/usecase/commands"
	"tourbook/internal/usecase/queries"
	"tourbook/internal/usecase/shared"
	"tourbook/tests/common/builder"
	"tourbook/tests/common/fakestore"

	"github.com/google/uuid"
)

var (
	fixtureNow = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	tourDay    = dates.New(2026, 6, 15)
)

type fixture struct {
	store    *fakestore.Store
	clock    *clock.MockClock
	engine   *shared.Availability
	guides   *fakestore.Guides
	staffing *commands.StaffingDispatcher
	bookings commands.BookingCommands
	bulk     commands.BulkCommands

	orgID    uuid.UUID
	customer shared.CustomerSnapshot
	tour     shared.TourSnapshot
	calendar *builder.CalendarBuilder
}

type fixtureOpts struct {
	capacity int
	noLock   bool
	maxItems int
	calendar func(*builder.CalendarBuilder)
}

func newFixture(t *testing.T, opts fixtureOpts) *fixture {
	t.Helper()
	if opts.capacity == 0 {
		opts.capacity = 10
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := fakestore.New()
	clk := clock.NewMockClock(fixtureNow)
	engine := shared.NewAvailability(clk, time.UTC)
	guides := fakestore.NewGuides(store, 6)
	staffing := commands.NewStaffingDispatcher(guides, time.Second, logger)
	ledger := commands.NewCapacityLedger(engine, logger, !opts.noLock)
	views := queries.NewBookingQueries(store)

	bookings := commands.NewBookingCommands(store, engine, ledger, staffing, &fakestore.References{}, views, logger, commands.BookingOptions{})
	bulk := commands.NewBulkCommands(store, engine, ledger, staffing, bookings, logger, commands.BulkOptions{MaxItems: opts.maxItems, RescheduleConcurrency: 4})

	cal := builder.NewCalendarBuilder().WithCapacity(opts.capacity).WithDepartures("09:00", "14:00")
	if opts.calendar != nil {
		opts.calendar(cal)
	}

	orgID := uuid.New()
	f := &fixture{
		store:    store,
		clock:    clk,
		engine:   engine,
		guides:   guides,
		staffing: staffing,
		bookings: bookings,
		bulk:     bulk,
		orgID:    orgID,
		calendar: cal,
	}
	f.customer = store.AddCustomer(orgID)
	f.tour = store.AddCalendar(orgID, cal, 5000)
	t.Cleanup(staffing.Wait)
	return f
}

// slotRequest books adults on the fixture tour at tourDay.
func (f *fixture) slotRequest(at string, adults int) commands.CreateBookingRequest {
	tourID, date := f.tour.ID, tourDay
	return commands.CreateBookingRequest{
		CustomerID:  f.customer.ID,
		TourID:      &tourID,
		BookingDate: &date,
		BookingTime: &at,
		Adults:      adults,
	}
}

func (f *fixture) slot(at string) availability.Slot {
	return availability.NewSlot(f.tour.ID, tourDay, availability.MustClockTime(at))
}

// addSchedule registers a departure of the fixture tour at tourDay 09:00 UTC.
func (f *fixture) addSchedule(maxParticipants, booked int) shared.ScheduleSnapshot {
	starts := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
	s := shared.ScheduleSnapshot{
		ID:              uuid.New(),
		OrganizationID:  f.orgID,
		TourID:          f.tour.ID,
		StartsAt:        starts,
		EndsAt:          starts.Add(2 * time.Hour),
		MaxParticipants: maxParticipants,
		BookedCount:     booked,
	}
	f.store.AddSchedule(s)
	return s
}

// seedBooking stores a booking on the fixture tour and returns its id.
func (f *fixture) seedBooking(mutate func(*builder.BookingBuilder)) uuid.UUID {
	b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.OrganizationID = f.orgID
		b.CustomerID = f.customer.ID
		b.TourID = f.tour.ID
		b.BookingDate = tourDay
	})
	if mutate != nil {
		b.With(mutate)
	}
	f.store.AddBooking(b.BuildRecord())
	return b.ID
}
