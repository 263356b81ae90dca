//go:build unit || e2e

package fakestore

import (
	"context"
	"slices"
	"time"

	"tourbook/internal/domain/availability"
	"tourbook/internal/domain/booking"
	"tourbook/internal/pkg/errs"
	"tourbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type tx struct {
	store *Store
	st    *state
}

func (t *tx) Bookings() shared.BookingRepository         { return bookingRepo{st: t.st} }
func (t *tx) Participants() shared.ParticipantRepository { return participantRepo{st: t.st} }
func (t *tx) Schedules() shared.ScheduleRepository       { return scheduleRepo{st: t.st} }
func (t *tx) Reads() shared.CommandReads                 { return &reads{st: t.st} }

// LockSlot only counts calls; transactions are already serialized.
func (t *tx) LockSlot(_ context.Context, _ uuid.UUID, _ availability.Slot) error {
	t.store.slotLocks.Add(1)
	return nil
}

type bookingRepo struct{ st *state }

func (r bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if _, ok := r.st.bookings[b.ID()]; ok {
		return errs.New("duplicate booking id")
	}
	r.st.bookings[b.ID()] = b.Record()
	return nil
}

func (r bookingRepo) Save(_ context.Context, b *booking.Booking) error {
	cur, ok := r.st.bookings[b.ID()]
	if !ok || cur.OrganizationID != b.OrganizationID() {
		return errs.NotFound("booking", b.ID())
	}
	r.st.bookings[b.ID()] = b.Record()
	return nil
}

func (r bookingRepo) FindForUpdate(_ context.Context, orgID, id uuid.UUID) (*booking.Booking, error) {
	rec, ok := r.st.bookings[id]
	if !ok || rec.OrganizationID != orgID {
		return nil, errs.NotFound("booking", id)
	}
	return booking.Reconstruct(rec), nil
}

func (r bookingRepo) FindManyForUpdate(_ context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]*booking.Booking, error) {
	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })
	sorted = slices.Compact(sorted)

	var out []*booking.Booking
	for _, id := range sorted {
		if rec, ok := r.st.bookings[id]; ok && rec.OrganizationID == orgID {
			out = append(out, booking.Reconstruct(rec))
		}
	}
	return out, nil
}

func (r bookingRepo) UpdateStatuses(_ context.Context, orgID uuid.UUID, ids []uuid.UUID, change shared.StatusChange) error {
	for _, id := range ids {
		rec, ok := r.st.bookings[id]
		if !ok || rec.OrganizationID != orgID {
			continue
		}
		at := change.At
		rec.Status = change.Status
		rec.UpdatedAt = at
		switch change.Status {
		case booking.StatusConfirmed:
			rec.ConfirmedAt = &at
		case booking.StatusCancelled:
			rec.CancelledAt = &at
			rec.CancellationReason = change.CancellationReason
		case booking.StatusCompleted:
			rec.CompletedAt = &at
		case booking.StatusNoShow:
			rec.NoShowAt = &at
		default:
			return errs.Validation("Cannot bulk update bookings to status: %s", change.Status)
		}
		r.st.bookings[id] = rec
	}
	return nil
}

func (r bookingRepo) UpdatePaymentStatuses(_ context.Context, orgID uuid.UUID, ids []uuid.UUID, status booking.PaymentStatus, at time.Time) error {
	for _, id := range ids {
		rec, ok := r.st.bookings[id]
		if !ok || rec.OrganizationID != orgID {
			continue
		}
		if status == booking.PaymentPaid && rec.PaymentStatus != booking.PaymentPaid {
			rec.PaidAt = &at
		}
		rec.PaymentStatus = status
		rec.UpdatedAt = at
		r.st.bookings[id] = rec
	}
	return nil
}

type participantRepo struct{ st *state }

func (r participantRepo) CreateMany(_ context.Context, participants []booking.Participant) error {
	for _, p := range participants {
		r.st.participants[p.BookingID] = append(r.st.participants[p.BookingID], p)
	}
	return nil
}

type scheduleRepo struct{ st *state }

func (r scheduleRepo) Reserve(_ context.Context, orgID, scheduleID uuid.UUID, n int) (bool, error) {
	s, ok := r.st.schedules[scheduleID]
	if !ok || s.OrganizationID != orgID || s.BookedCount+n > s.MaxParticipants {
		return false, nil
	}
	s.BookedCount += n
	r.st.schedules[scheduleID] = s
	return true, nil
}

func (r scheduleRepo) Release(_ context.Context, orgID, scheduleID uuid.UUID, n int) error {
	s, ok := r.st.schedules[scheduleID]
	if !ok || s.OrganizationID != orgID {
		return nil
	}
	s.BookedCount = max(0, s.BookedCount-n)
	r.st.schedules[scheduleID] = s
	return nil
}
