package booking

import (
	"strings"
	"time"

	"tourbook/internal/domain/availability"
	"tourbook/internal/pkg/errs"

	"github.com/google/uuid"
)

type Booking struct {
	id                 uuid.UUID
	organizationID     uuid.UUID
	referenceNumber    string
	customerID         uuid.UUID
	tourID             uuid.UUID
	bookingDate        time.Time
	bookingTime        availability.ClockTime
	scheduleID         *uuid.UUID
	guests             Guests
	pricing            Pricing
	status             Status
	paymentStatus      PaymentStatus
	confirmedAt        *time.Time
	cancelledAt        *time.Time
	cancellationReason *string
	completedAt        *time.Time
	noShowAt           *time.Time
	paidAt             *time.Time
	specialRequests    *string
	internalNotes      *string
	createdAt          time.Time
	updatedAt          time.Time
}

type NewBookingParams struct {
	OrganizationID  uuid.UUID
	CustomerID      uuid.UUID
	ReferenceNumber string
	Slot            availability.Slot
	ScheduleID      *uuid.UUID
	Guests          Guests
	Pricing         Pricing
	SpecialRequests *string
	InternalNotes   *string
}

func NewBooking(p NewBookingParams, now time.Time) (*Booking, error) {
	if p.OrganizationID == uuid.Nil || p.CustomerID == uuid.Nil || p.Slot.TourID == uuid.Nil {
		return nil, errs.New("booking requires organization, customer and tour")
	}
	ref := strings.TrimSpace(p.ReferenceNumber)
	if ref == "" {
		return nil, errs.New("booking requires a reference number")
	}
	if p.Guests.Total() < 1 {
		return nil, errs.Validation("At least one guest is required")
	}

	return &Booking{
		id:              uuid.New(),
		organizationID:  p.OrganizationID,
		referenceNumber: ref,
		customerID:      p.CustomerID,
		tourID:          p.Slot.TourID,
		bookingDate:     p.Slot.Date,
		bookingTime:     p.Slot.Time,
		scheduleID:      p.ScheduleID,
		guests:          p.Guests,
		pricing:         p.Pricing,
		status:          StatusPending,
		paymentStatus:   PaymentPending,
		specialRequests: p.SpecialRequests,
		internalNotes:   p.InternalNotes,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Record is the stored form of a booking.
type Record struct {
	ID                 uuid.UUID
	OrganizationID     uuid.UUID
	ReferenceNumber    string
	CustomerID         uuid.UUID
	TourID             uuid.UUID
	BookingDate        time.Time
	BookingTime        availability.ClockTime
	ScheduleID         *uuid.UUID
	Guests             Guests
	Pricing            Pricing
	Status             Status
	PaymentStatus      PaymentStatus
	ConfirmedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason *string
	CompletedAt        *time.Time
	NoShowAt           *time.Time
	PaidAt             *time.Time
	SpecialRequests    *string
	InternalNotes      *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func Reconstruct(r Record) *Booking {
	return &Booking{
		id:                 r.ID,
		organizationID:     r.OrganizationID,
		referenceNumber:    r.ReferenceNumber,
		customerID:         r.CustomerID,
		tourID:             r.TourID,
		bookingDate:        r.BookingDate,
		bookingTime:        r.BookingTime,
		scheduleID:         r.ScheduleID,
		guests:             r.Guests,
		pricing:            r.Pricing,
		status:             r.Status,
		paymentStatus:      r.PaymentStatus,
		confirmedAt:        r.ConfirmedAt,
		cancelledAt:        r.CancelledAt,
		cancellationReason: r.CancellationReason,
		completedAt:        r.CompletedAt,
		noShowAt:           r.NoShowAt,
		paidAt:             r.PaidAt,
		specialRequests:    r.SpecialRequests,
		internalNotes:      r.InternalNotes,
		createdAt:          r.CreatedAt,
		updatedAt:          r.UpdatedAt,
	}
}

func (b *Booking) Record() Record {
	return Record{
		ID:                 b.id,
		OrganizationID:     b.organizationID,
		ReferenceNumber:    b.referenceNumber,
		CustomerID:         b.customerID,
		TourID:             b.tourID,
		BookingDate:        b.bookingDate,
		BookingTime:        b.bookingTime,
		ScheduleID:         b.scheduleID,
		Guests:             b.guests,
		Pricing:            b.pricing,
		Status:             b.status,
		PaymentStatus:      b.paymentStatus,
		ConfirmedAt:        b.confirmedAt,
		CancelledAt:        b.cancelledAt,
		CancellationReason: b.cancellationReason,
		CompletedAt:        b.completedAt,
		NoShowAt:           b.noShowAt,
		PaidAt:             b.paidAt,
		SpecialRequests:    b.specialRequests,
		InternalNotes:      b.internalNotes,
		CreatedAt:          b.createdAt,
		UpdatedAt:          b.updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID                       { return b.id }
func (b *Booking) OrganizationID() uuid.UUID           { return b.organizationID }
func (b *Booking) ReferenceNumber() string             { return b.referenceNumber }
func (b *Booking) CustomerID() uuid.UUID               { return b.customerID }
func (b *Booking) TourID() uuid.UUID                   { return b.tourID }
func (b *Booking) BookingDate() time.Time              { return b.bookingDate }
func (b *Booking) BookingTime() availability.ClockTime { return b.bookingTime }
func (b *Booking) ScheduleID() *uuid.UUID              { return b.scheduleID }
func (b *Booking) Guests() Guests                      { return b.guests }
func (b *Booking) TotalParticipants() int              { return b.guests.Total() }
func (b *Booking) Pricing() Pricing                    { return b.pricing }
func (b *Booking) Status() Status                      { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus        { return b.paymentStatus }
func (b *Booking) CancellationReason() *string         { return b.cancellationReason }
func (b *Booking) SpecialRequests() *string            { return b.specialRequests }
func (b *Booking) InternalNotes() *string              { return b.internalNotes }
func (b *Booking) UpdatedAt() time.Time                { return b.updatedAt }

func (b *Booking) Slot() availability.Slot {
	return availability.NewSlot(b.tourID, b.bookingDate, b.bookingTime)
}

// CapacityModel is Materialized for schedule bookings and Dynamic otherwise.
func (b *Booking) CapacityModel() CapacityModel {
	if b.scheduleID != nil {
		return Materialized{ScheduleID: *b.scheduleID}
	}
	return Dynamic{Slot: b.Slot()}
}

func (b *Booking) Confirm(now time.Time) error {
	if !b.status.CanTransitionTo(StatusConfirmed) {
		return errs.Validation("Cannot confirm booking with status: %s", b.status)
	}
	b.status = StatusConfirmed
	b.confirmedAt = &now
	b.updatedAt = now
	return nil
}

func (b *Booking) Cancel(reason *string, now time.Time) error {
	switch {
	case b.status == StatusCancelled:
		return errs.Validation("Booking is already cancelled")
	case b.status == StatusCompleted:
		return errs.Validation("Cannot cancel a completed booking")
	case !b.status.CanTransitionTo(StatusCancelled):
		return errs.Validation("Cannot cancel booking with status: %s", b.status)
	}
	b.status = StatusCancelled
	b.cancelledAt = &now
	b.cancellationReason = reason
	b.updatedAt = now
	return nil
}

func (b *Booking) Complete(now time.Time) error {
	if !b.status.CanTransitionTo(StatusCompleted) {
		return errs.Validation("Cannot complete booking with status: %s", b.status)
	}
	b.status = StatusCompleted
	b.completedAt = &now
	b.updatedAt = now
	return nil
}

func (b *Booking) MarkNoShow(now time.Time) error {
	if !b.status.CanTransitionTo(StatusNoShow) {
		return errs.Validation("Cannot mark booking as no-show with status: %s", b.status)
	}
	b.status = StatusNoShow
	b.noShowAt = &now
	b.updatedAt = now
	return nil
}

// CheckReschedulable fails unless the booking still holds capacity.
func (b *Booking) CheckReschedulable() error {
	if !b.status.HoldsCapacity() {
		return errs.Validation("Cannot reschedule booking with status: %s", b.status)
	}
	return nil
}

// MoveTo points the booking at a new slot. scheduleID is nil for dynamic slots.
func (b *Booking) MoveTo(slot availability.Slot, scheduleID *uuid.UUID, now time.Time) error {
	if err := b.CheckReschedulable(); err != nil {
		return err
	}
	b.tourID = slot.TourID
	b.bookingDate = slot.Date
	b.bookingTime = slot.Time
	b.scheduleID = scheduleID
	b.updatedAt = now
	return nil
}

// ChangeGuests replaces the party and returns the change in participants.
func (b *Booking) ChangeGuests(g Guests, now time.Time) (int, error) {
	if !b.status.HoldsCapacity() {
		return 0, errs.Validation("Cannot change guests on a %s booking", b.status)
	}
	delta := g.Total() - b.guests.Total()
	b.guests = g
	b.updatedAt = now
	return delta, nil
}

// Details are the descriptive fields that change without touching capacity.
type Details struct {
	SpecialRequests *string
	InternalNotes   *string
	DiscountCents   *int64
	TaxCents        *int64
	TotalCents      *int64
}

// UpdateDetails edits descriptive fields and amounts. A discount or tax edit
// recomputes the total from the subtotal, replacing any total set explicitly
// at creation, unless TotalCents is given in the same call.
func (b *Booking) UpdateDetails(d Details, now time.Time) error {
	if d.DiscountCents != nil || d.TaxCents != nil || d.TotalCents != nil {
		subtotal := b.pricing.SubtotalCents
		p, err := CalculatePricing(PriceInput{
			Currency:      b.pricing.Currency,
			SubtotalCents: &subtotal,
			DiscountCents: coalesce(d.DiscountCents, b.pricing.DiscountCents),
			TaxCents:      coalesce(d.TaxCents, b.pricing.TaxCents),
			TotalCents:    d.TotalCents,
		})
		if err != nil {
			return err
		}
		b.pricing = p
	}
	if d.SpecialRequests != nil {
		b.specialRequests = d.SpecialRequests
	}
	if d.InternalNotes != nil {
		b.internalNotes = d.InternalNotes
	}
	b.updatedAt = now
	return nil
}

func coalesce(v *int64, fallback int64) *int64 {
	if v != nil {
		return v
	}
	return &fallback
}

func (b *Booking) SetPaymentStatus(ps PaymentStatus, now time.Time) error {
	if ps == PaymentRefunded && b.paymentStatus != PaymentPaid && b.paymentStatus != PaymentPartial {
		return errs.Validation("Cannot refund booking with payment status: %s", b.paymentStatus)
	}
	if ps == PaymentPaid && b.paymentStatus != PaymentPaid {
		b.paidAt = &now
	}
	b.paymentStatus = ps
	b.updatedAt = now
	return nil
}
