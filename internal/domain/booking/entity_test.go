//go:build unit

package booking_test

import (
	"testing"
	"time"

	"tourbook/internal/domain/availability"
	"tourbook/internal/domain/booking"
	"tourbook/internal/pkg/dates"
	"tourbook/internal/pkg/errs"
	"tourbook/internal/pkg/patch"
	"tourbook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 6, 2, 8, 0, 0, 0, time.UTC)

var allStatuses = []booking.Status{
	booking.StatusPending,
	booking.StatusConfirmed,
	booking.StatusCompleted,
	booking.StatusCancelled,
	booking.StatusNoShow,
}

func TestBooking_TransitionMatrix(t *testing.T) {
	type operation struct {
		name    string
		allowed []booking.Status
		target  booking.Status
		apply   func(*booking.Booking) error
	}
	slot := availability.NewSlot(uuid.New(), dates.New(2026, 6, 20), availability.MustClockTime("14:00"))

	operations := []operation{
		{
			name:    "confirm",
			allowed: []booking.Status{booking.StatusPending},
			target:  booking.StatusConfirmed,
			apply:   func(b *booking.Booking) error { return b.Confirm(now) },
		},
		{
			name:    "complete",
			allowed: []booking.Status{booking.StatusConfirmed},
			target:  booking.StatusCompleted,
			apply:   func(b *booking.Booking) error { return b.Complete(now) },
		},
		{
			name:    "no-show",
			allowed: []booking.Status{booking.StatusConfirmed},
			target:  booking.StatusNoShow,
			apply:   func(b *booking.Booking) error { return b.MarkNoShow(now) },
		},
		{
			name:    "cancel",
			allowed: []booking.Status{booking.StatusPending, booking.StatusConfirmed},
			target:  booking.StatusCancelled,
			apply:   func(b *booking.Booking) error { return b.Cancel(nil, now) },
		},
		{
			name:    "reschedule",
			allowed: []booking.Status{booking.StatusPending, booking.StatusConfirmed},
			apply:   func(b *booking.Booking) error { return b.MoveTo(slot, nil, now) },
		},
	}

	for _, op := range operations {
		for _, from := range allStatuses {
			t.Run(op.name+" from "+from.String(), func(t *testing.T) {
				b := builder.NewBookingBuilder().With(func(bb *builder.BookingBuilder) { bb.Status = from }).BuildDomain()

				err := op.apply(b)

				if !contains(op.allowed, from) {
					require.Error(t, err)
					assert.True(t, errs.IsValidation(err))
					assert.Equal(t, from, b.Status(), "status must not change on a rejected transition")
					return
				}
				require.NoError(t, err)
				if op.target != "" {
					assert.Equal(t, op.target, b.Status())
				}
			})
		}
	}
}

func contains(list []booking.Status, s booking.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestBooking_TransitionMessages(t *testing.T) {
	tests := []struct {
		name  string
		from  booking.Status
		apply func(*booking.Booking) error
		want  string
	}{
		{
			name:  "confirm twice",
			from:  booking.StatusConfirmed,
			apply: func(b *booking.Booking) error { return b.Confirm(now) },
			want:  "Cannot confirm booking with status: confirmed",
		},
		{
			name:  "cancel twice",
			from:  booking.StatusCancelled,
			apply: func(b *booking.Booking) error { return b.Cancel(nil, now) },
			want:  "Booking is already cancelled",
		},
		{
			name:  "cancel completed",
			from:  booking.StatusCompleted,
			apply: func(b *booking.Booking) error { return b.Cancel(nil, now) },
			want:  "Cannot cancel a completed booking",
		},
		{
			name:  "cancel no-show",
			from:  booking.StatusNoShow,
			apply: func(b *booking.Booking) error { return b.Cancel(nil, now) },
			want:  "Cannot cancel booking with status: no_show",
		},
		{
			name:  "complete pending",
			from:  booking.StatusPending,
			apply: func(b *booking.Booking) error { return b.Complete(now) },
			want:  "Cannot complete booking with status: pending",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := builder.NewBookingBuilder().With(func(bb *builder.BookingBuilder) { bb.Status = tt.from }).BuildDomain()
			err := tt.apply(b)
			require.Error(t, err)
			assert.Equal(t, tt.want, errs.UserMessage(err))
		})
	}
}

func TestBooking_Cancel(t *testing.T) {
	b := builder.NewBookingBuilder().BuildDomain()
	reason := "customer request"

	require.NoError(t, b.Cancel(&reason, now))

	rec := b.Record()
	require.NotNil(t, rec.CancelledAt)
	assert.Equal(t, now, *rec.CancelledAt)
	assert.Equal(t, &reason, rec.CancellationReason)
}

func TestBooking_CapacityModel(t *testing.T) {
	scheduleID := uuid.New()
	bb := builder.NewBookingBuilder()

	dynamic := bb.BuildDomain().CapacityModel()
	materialized := bb.With(func(b *builder.BookingBuilder) { b.ScheduleID = &scheduleID }).BuildDomain().CapacityModel()

	describe := func(m booking.CapacityModel) string {
		return booking.MatchCapacity(m,
			func(mm booking.Materialized) string { return "schedule " + mm.ScheduleID.String() },
			func(d booking.Dynamic) string { return "slot " + d.Slot.Time.String() },
		)
	}
	assert.Equal(t, "slot 09:00", describe(dynamic))
	assert.Equal(t, "schedule "+scheduleID.String(), describe(materialized))
}

func TestBooking_ChangeGuests(t *testing.T) {
	t.Run("returns the participant delta", func(t *testing.T) {
		b := builder.NewBookingBuilder().BuildDomain()

		delta, err := b.ChangeGuests(booking.Guests{Adults: 3, Children: 1}, now)

		require.NoError(t, err)
		assert.Equal(t, 2, delta)
		assert.Equal(t, 4, b.TotalParticipants())
	})

	t.Run("terminal booking rejects guest changes", func(t *testing.T) {
		b := builder.NewBookingBuilder().With(func(bb *builder.BookingBuilder) { bb.Status = booking.StatusCompleted }).BuildDomain()

		_, err := b.ChangeGuests(booking.Guests{Adults: 1}, now)

		assert.True(t, errs.IsValidation(err))
		assert.Equal(t, 2, b.TotalParticipants())
	})
}

func TestBooking_SetPaymentStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    booking.PaymentStatus
		to      booking.PaymentStatus
		wantErr bool
	}{
		{name: "pay pending booking", from: booking.PaymentPending, to: booking.PaymentPaid},
		{name: "refund paid booking", from: booking.PaymentPaid, to: booking.PaymentRefunded},
		{name: "refund partially paid booking", from: booking.PaymentPartial, to: booking.PaymentRefunded},
		{name: "refund unpaid booking", from: booking.PaymentPending, to: booking.PaymentRefunded, wantErr: true},
		{name: "refund failed payment", from: booking.PaymentFailed, to: booking.PaymentRefunded, wantErr: true},
		{name: "mark failed", from: booking.PaymentPending, to: booking.PaymentFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := builder.NewBookingBuilder().With(func(bb *builder.BookingBuilder) { bb.PaymentStatus = tt.from }).BuildDomain()

			err := b.SetPaymentStatus(tt.to, now)

			if tt.wantErr {
				assert.True(t, errs.IsValidation(err))
				assert.Equal(t, tt.from, b.PaymentStatus())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, b.PaymentStatus())
			if tt.to == booking.PaymentPaid {
				assert.Equal(t, &now, b.Record().PaidAt)
			}
		})
	}
}

func TestBooking_UpdateDetailsRecomputesTotal(t *testing.T) {
	b := builder.NewBookingBuilder().BuildDomain()

	err := b.UpdateDetails(booking.Details{DiscountCents: patch.Ptr(int64(1500)), TaxCents: patch.Ptr(int64(800))}, now)

	require.NoError(t, err)
	assert.Equal(t, int64(10000-1500+800), b.Pricing().TotalCents)
}

func TestBooking_UpdateDetailsTotalOverride(t *testing.T) {
	// created with an explicit total of 9000 against a 10000 subtotal
	newBooking := func() *booking.Booking {
		r := builder.NewBookingBuilder().BuildRecord()
		r.Pricing.TotalCents = 9000
		return booking.Reconstruct(r)
	}

	testCases := []struct {
		name        string
		details     booking.Details
		expectTotal int64
	}{
		{name: "notes only keep the override", details: booking.Details{InternalNotes: patch.Ptr("vip")}, expectTotal: 9000},
		{name: "tax edit recomputes the total", details: booking.Details{TaxCents: patch.Ptr(int64(500))}, expectTotal: 10500},
		{name: "tax edit with a total keeps the given total", details: booking.Details{TaxCents: patch.Ptr(int64(500)), TotalCents: patch.Ptr(int64(9400))}, expectTotal: 9400},
		{name: "total alone replaces the override", details: booking.Details{TotalCents: patch.Ptr(int64(8000))}, expectTotal: 8000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := newBooking()

			require.NoError(t, b.UpdateDetails(tc.details, now))
			assert.Equal(t, tc.expectTotal, b.Pricing().TotalCents)
			assert.Equal(t, int64(10000), b.Pricing().SubtotalCents)
		})
	}

	t.Run("error: negative total is rejected", func(t *testing.T) {
		b := newBooking()
		err := b.UpdateDetails(booking.Details{TotalCents: patch.Ptr(int64(-1))}, now)
		assert.True(t, errs.IsValidation(err))
		assert.Equal(t, int64(9000), b.Pricing().TotalCents)
	})
}
