package request

import (
	"time"

	"tourbook/internal/domain/booking"
	"tourbook/internal/pkg/dates"
	"tourbook/internal/pkg/errs"
	"tourbook/internal/usecase/commands"
	"tourbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ParticipantRequest struct {
	FirstName           string  `json:"first_name" binding:"required,max=100"`
	LastName            string  `json:"last_name" binding:"max=100"`
	Email               *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone               *string `json:"phone,omitempty" binding:"omitempty,max=40"`
	Type                string  `json:"type" binding:"omitempty,oneof=adult child infant"`
	DietaryRequirements *string `json:"dietary_requirements,omitempty"`
	AccessibilityNeeds  *string `json:"accessibility_needs,omitempty"`
}

type CreateBookingRequest struct {
	CustomerID      uuid.UUID            `json:"customer_id" binding:"required"`
	ScheduleID      *uuid.UUID           `json:"schedule_id,omitempty"`
	TourID          *uuid.UUID           `json:"tour_id,omitempty"`
	BookingDate     *string              `json:"booking_date,omitempty" copier:"-"`
	BookingTime     *string              `json:"booking_time,omitempty"`
	Adults          int                  `json:"adults" binding:"min=0"`
	Children        int                  `json:"children" binding:"min=0"`
	Infants         int                  `json:"infants" binding:"min=0"`
	SubtotalCents   *int64               `json:"subtotal_cents,omitempty"`
	DiscountCents   *int64               `json:"discount_cents,omitempty"`
	TaxCents        *int64               `json:"tax_cents,omitempty"`
	TotalCents      *int64               `json:"total_cents,omitempty"`
	SpecialRequests *string              `json:"special_requests,omitempty" binding:"omitempty,max=2000"`
	InternalNotes   *string              `json:"internal_notes,omitempty" binding:"omitempty,max=2000"`
	Participants    []ParticipantRequest `json:"participants,omitempty" binding:"omitempty,dive"`
}

func (r CreateBookingRequest) ToCommand() (commands.CreateBookingRequest, error) {
	var cmd commands.CreateBookingRequest
	if err := copier.Copy(&cmd, &r); err != nil {
		return cmd, err
	}
	date, err := parseDatePtr(r.BookingDate)
	if err != nil {
		return cmd, err
	}
	cmd.BookingDate = date
	return cmd, nil
}

type UpdateBookingRequest struct {
	Adults          *int    `json:"adults,omitempty" binding:"omitempty,min=0"`
	Children        *int    `json:"children,omitempty" binding:"omitempty,min=0"`
	Infants         *int    `json:"infants,omitempty" binding:"omitempty,min=0"`
	DiscountCents   *int64  `json:"discount_cents,omitempty"`
	TaxCents        *int64  `json:"tax_cents,omitempty"`
	TotalCents      *int64  `json:"total_cents,omitempty"`
	SpecialRequests *string `json:"special_requests,omitempty" binding:"omitempty,max=2000"`
	InternalNotes   *string `json:"internal_notes,omitempty" binding:"omitempty,max=2000"`
}

func (r UpdateBookingRequest) ToCommand() (commands.UpdateBookingRequest, error) {
	var cmd commands.UpdateBookingRequest
	err := copier.Copy(&cmd, &r)
	return cmd, err
}

type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty" binding:"omitempty,max=500"`
}

type RescheduleBookingRequest struct {
	ScheduleID  *uuid.UUID `json:"schedule_id,omitempty"`
	TourID      *uuid.UUID `json:"tour_id,omitempty"`
	BookingDate *string    `json:"booking_date,omitempty"`
	BookingTime *string    `json:"booking_time,omitempty"`
}

func (r RescheduleBookingRequest) ToCommand() (commands.RescheduleRequest, error) {
	date, err := parseDatePtr(r.BookingDate)
	if err != nil {
		return commands.RescheduleRequest{}, err
	}
	return commands.RescheduleRequest{
		ScheduleID:  r.ScheduleID,
		TourID:      r.TourID,
		BookingDate: date,
		BookingTime: r.BookingTime,
	}, nil
}

type PaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

type ListBookingsQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending confirmed completed cancelled no_show"`
	TourID   string `form:"tour_id" binding:"omitempty,uuid"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	After    string `form:"after"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

func (q ListBookingsQuery) ToFilter() (queries.BookingFilter, error) {
	var f queries.BookingFilter
	if q.Status != "" {
		st, err := booking.ParseStatus(q.Status)
		if err != nil {
			return f, err
		}
		f.Status = &st
	}
	if q.TourID != "" {
		id, err := uuid.Parse(q.TourID)
		if err != nil {
			return f, errs.Validation("Invalid tour id")
		}
		f.TourID = &id
	}
	var err error
	if f.DateFrom, err = parseDatePtr(&q.DateFrom); err != nil {
		return f, err
	}
	if f.DateTo, err = parseDatePtr(&q.DateTo); err != nil {
		return f, err
	}
	return f, nil
}

func (q ListBookingsQuery) Cursor() *queries.Cursor {
	if q.After == "" {
		return nil
	}
	return &queries.Cursor{After: q.After}
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ParseDate reads a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := dates.Parse(s)
	if err != nil {
		return time.Time{}, errs.Validation("Invalid date: %s", s)
	}
	return d, nil
}
