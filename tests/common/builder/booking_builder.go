//go:build unit || e2e

package builder

import (
	"time"

	"tourbook/internal/domain/availability"
	"tourbook/internal/domain/booking"
	reqdto "tourbook/internal/handler/dto/request"
	"tourbook/internal/pkg/dates"
	"tourbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID              uuid.UUID
	OrganizationID  uuid.UUID
	ReferenceNumber string
	CustomerID      uuid.UUID
	TourID          uuid.UUID
	BookingDate     time.Time
	BookingTime     string
	ScheduleID      *uuid.UUID
	Adults          int
	Children        int
	Infants         int
	SubtotalCents   int64
	Status          booking.Status
	PaymentStatus   booking.PaymentStatus
	PaidAt          *time.Time
	CreatedAt       time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:              uuid.New(),
		OrganizationID:  uuid.New(),
		ReferenceNumber: "BK-2606-00001",
		CustomerID:      uuid.New(),
		TourID:          uuid.New(),
		BookingDate:     dates.New(2026, 6, 15),
		BookingTime:     "09:00",
		Adults:          2,
		SubtotalCents:   10000,
		Status:          booking.StatusPending,
		PaymentStatus:   booking.PaymentPending,
		CreatedAt:       time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) Slot() availability.Slot {
	return availability.NewSlot(b.TourID, b.BookingDate, availability.MustClockTime(b.BookingTime))
}

func (b *BookingBuilder) BuildRecord() booking.Record {
	return booking.Record{
		ID:              b.ID,
		OrganizationID:  b.OrganizationID,
		ReferenceNumber: b.ReferenceNumber,
		CustomerID:      b.CustomerID,
		TourID:          b.TourID,
		BookingDate:     b.BookingDate,
		BookingTime:     availability.MustClockTime(b.BookingTime),
		ScheduleID:      b.ScheduleID,
		Guests:          booking.Guests{Adults: b.Adults, Children: b.Children, Infants: b.Infants},
		Pricing: booking.Pricing{
			SubtotalCents: b.SubtotalCents,
			TotalCents:    b.SubtotalCents,
			Currency:      "USD",
		},
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		PaidAt:        b.PaidAt,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildDomain() *booking.Booking {
	return booking.Reconstruct(b.BuildRecord())
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	date := dates.Format(b.BookingDate)
	tourID := b.TourID
	at := b.BookingTime
	return reqdto.CreateBookingRequest{
		CustomerID:  b.CustomerID,
		TourID:      &tourID,
		BookingDate: &date,
		BookingTime: &at,
		Adults:      b.Adults,
		Children:    b.Children,
		Infants:     b.Infants,
		Participants: []reqdto.ParticipantRequest{
			{FirstName: "Ana", LastName: "Silva", Type: "adult"},
		},
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	r := b.BuildRecord()
	return &queries.BookingView{
		ID:                r.ID,
		OrganizationID:    r.OrganizationID,
		ReferenceNumber:   r.ReferenceNumber,
		Tour:              queries.TourRef{ID: r.TourID, Name: "Harbour Walk"},
		Customer:          queries.CustomerRef{ID: r.CustomerID, Name: "Jane Doe", Email: "jane@example.com"},
		BookingDate:       r.BookingDate,
		BookingTime:       r.BookingTime.String(),
		ScheduleID:        r.ScheduleID,
		Adults:            r.Guests.Adults,
		Children:          r.Guests.Children,
		Infants:           r.Guests.Infants,
		TotalParticipants: r.Guests.Total(),
		SubtotalCents:     r.Pricing.SubtotalCents,
		TotalCents:        r.Pricing.TotalCents,
		Currency:          r.Pricing.Currency,
		Status:            r.Status.String(),
		PaymentStatus:     r.PaymentStatus.String(),
		Participants:      []queries.ParticipantView{},
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
