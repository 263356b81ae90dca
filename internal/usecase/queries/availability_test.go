//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"tourbook/internal/domain/availability"
	"tourbook/internal/domain/booking"
	"tourbook/internal/pkg/clock"
	"tourbook/internal/pkg/dates"
	"tourbook/internal/pkg/errs"
	"tourbook/internal/usecase/queries"
	"tourbook/internal/usecase/shared"
	"tourbook/tests/common/builder"
	"tourbook/tests/common/fakestore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type availabilityFixture struct {
	store *fakestore.Store
	q     queries.AvailabilityQueries
	orgID uuid.UUID
	cal   *builder.CalendarBuilder
	tour  shared.TourSnapshot
}

func newAvailabilityFixture(t *testing.T) *availabilityFixture {
	t.Helper()
	store := fakestore.New()
	engine := shared.NewAvailability(clock.NewMockClock(time.Date(2026, 6, 10, 8, 0, 0, 0, time.UTC)), time.UTC)
	orgID := uuid.New()
	cal := builder.NewCalendarBuilder().WithCapacity(5).WithBlackout(dates.New(2026, 6, 20), "festival")
	tour := store.AddCalendar(orgID, cal, 4000)

	return &availabilityFixture{
		store: store,
		q:     queries.NewAvailabilityQueries(store.CommandReads(), engine, queries.AvailabilityOptions{AlmostFullThreshold: 2, MaxHeatmapDays: 93}),
		orgID: orgID,
		cal:   cal,
		tour:  tour,
	}
}

func (f *availabilityFixture) book(date time.Time, adults int, status booking.Status) uuid.UUID {
	b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.OrganizationID = f.orgID
		b.TourID = f.tour.ID
		b.BookingDate = date
		b.Adults = adults
		b.Status = status
	})
	f.store.AddBooking(b.BuildRecord())
	return b.ID
}

func TestAvailabilityQueries_CheckSlotAvailability(t *testing.T) {
	ctx := context.Background()
	day := dates.New(2026, 6, 12)

	testCases := []struct {
		name    string
		date    time.Time
		at      string
		spots   int
		exclude bool
		expect  availability.SlotCheck
	}{
		{
			name:   "available with room left",
			date:   day,
			at:     "09:00",
			spots:  1,
			expect: availability.SlotCheck{Available: true, SpotsRemaining: 2, MaxCapacity: 5, BookedCount: 3},
		},
		{
			name:   "insufficient capacity",
			date:   day,
			at:     "09:00",
			spots:  3,
			expect: availability.SlotCheck{SpotsRemaining: 2, MaxCapacity: 5, BookedCount: 3, Reason: availability.ReasonInsufficientCapacity},
		},
		{
			name:    "own booking left out of the count",
			date:    day,
			at:      "09:00",
			spots:   5,
			exclude: true,
			expect:  availability.SlotCheck{Available: true, SpotsRemaining: 5, MaxCapacity: 5},
		},
		{
			name:   "blackout",
			date:   dates.New(2026, 6, 20),
			at:     "09:00",
			spots:  1,
			expect: availability.SlotCheck{Reason: availability.ReasonBlackout},
		},
		{
			name:   "past date",
			date:   dates.New(2026, 6, 9),
			at:     "09:00",
			spots:  1,
			expect: availability.SlotCheck{Reason: availability.ReasonPastDate},
		},
		{
			name:   "no departure at that time",
			date:   day,
			at:     "15:00",
			spots:  1,
			expect: availability.SlotCheck{Reason: availability.ReasonNotOperating, Detail: availability.DetailNoDeparture},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAvailabilityFixture(t)
			own := f.book(day, 3, booking.StatusConfirmed)
			f.book(day, 4, booking.StatusCancelled)

			req := queries.SlotAvailabilityRequest{TourID: f.tour.ID, Date: tc.date, Time: tc.at, RequestedSpots: tc.spots}
			if tc.exclude {
				req.ExcludeBookingID = &own
			}

			got, err := f.q.CheckSlotAvailability(ctx, f.orgID, req)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, *got)
		})
	}

	t.Run("error: zero spots", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		_, err := f.q.CheckSlotAvailability(ctx, f.orgID, queries.SlotAvailabilityRequest{TourID: f.tour.ID, Date: day, Time: "09:00"})
		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("error: tour of another organization", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		_, err := f.q.CheckSlotAvailability(ctx, uuid.New(), queries.SlotAvailabilityRequest{TourID: f.tour.ID, Date: day, Time: "09:00", RequestedSpots: 1})
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
	})
}

func TestAvailabilityQueries_GetAvailableDatesForMonth(t *testing.T) {
	ctx := context.Background()
	f := newAvailabilityFixture(t)
	f.book(dates.New(2026, 6, 12), 4, booking.StatusPending)

	days, err := f.q.GetAvailableDatesForMonth(ctx, f.orgID, f.tour.ID, 2026, time.June)
	require.NoError(t, err)

	// June 10 through June 30
	require.Len(t, days, 21)
	assert.Equal(t, "2026-06-10", dates.Format(days[0].Date))

	byDate := make(map[string]availability.DateAvailability, len(days))
	for _, d := range days {
		byDate[dates.Format(d.Date)] = d
	}

	festival := byDate["2026-06-20"]
	assert.True(t, festival.IsBlackout)
	require.NotNil(t, festival.BlackoutReason)
	assert.Equal(t, "festival", *festival.BlackoutReason)
	assert.Empty(t, festival.Slots)

	busy := byDate["2026-06-12"]
	require.Len(t, busy.Slots, 1)
	assert.Equal(t, 1, busy.Slots[0].SpotsRemaining)
	assert.True(t, busy.Slots[0].Available)
	assert.True(t, busy.Slots[0].AlmostFull)

	t.Run("error: month out of range", func(t *testing.T) {
		_, err := f.q.GetAvailableDatesForMonth(ctx, f.orgID, f.tour.ID, 2026, time.Month(13))
		require.Error(t, err)
		assert.Equal(t, "Month must be between 1 and 12", errs.UserMessage(err))
	})

	t.Run("error: unknown tour", func(t *testing.T) {
		_, err := f.q.GetAvailableDatesForMonth(ctx, f.orgID, uuid.New(), 2026, time.June)
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
	})
}

func TestAvailabilityQueries_GetCapacityHeatmap(t *testing.T) {
	ctx := context.Background()

	t.Run("success: one entry per operating slot", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		f.book(dates.New(2026, 6, 19), 5, booking.StatusConfirmed)

		entries, err := f.q.GetCapacityHeatmap(ctx, f.orgID, queries.HeatmapRequest{
			From: dates.New(2026, 6, 19),
			To:   dates.New(2026, 6, 21),
		})
		require.NoError(t, err)

		// the 20th is blacked out
		require.Len(t, entries, 2)
		assert.Equal(t, availability.LevelFull, entries[0].Level)
		assert.Equal(t, availability.LevelEmpty, entries[1].Level)
	})

	testCases := []struct {
		name     string
		req      func(f *availabilityFixture) queries.HeatmapRequest
		notFound bool
		message  string
	}{
		{
			name: "end before start",
			req: func(*availabilityFixture) queries.HeatmapRequest {
				return queries.HeatmapRequest{From: dates.New(2026, 6, 20), To: dates.New(2026, 6, 19)}
			},
			message: "End date must not be before start date",
		},
		{
			name: "range too long",
			req: func(*availabilityFixture) queries.HeatmapRequest {
				return queries.HeatmapRequest{From: dates.New(2026, 6, 1), To: dates.New(2026, 12, 31)}
			},
			message: "Date range cannot exceed 93 days",
		},
		{
			name: "unknown tour id",
			req: func(f *availabilityFixture) queries.HeatmapRequest {
				return queries.HeatmapRequest{From: dates.New(2026, 6, 19), To: dates.New(2026, 6, 19), TourIDs: []uuid.UUID{f.tour.ID, uuid.New()}}
			},
			notFound: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAvailabilityFixture(t)
			_, err := f.q.GetCapacityHeatmap(ctx, f.orgID, tc.req(f))
			require.Error(t, err)
			if tc.notFound {
				assert.True(t, errs.IsNotFound(err))
				return
			}
			assert.Equal(t, tc.message, errs.UserMessage(err))
		})
	}

	t.Run("success: organization without tours", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		entries, err := f.q.GetCapacityHeatmap(ctx, uuid.New(), queries.HeatmapRequest{From: dates.New(2026, 6, 19), To: dates.New(2026, 6, 19)})
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
