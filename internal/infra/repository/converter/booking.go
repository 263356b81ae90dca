package converter

import (
	"fmt"

	"tourbook/internal/domain/availability"
	"tourbook/internal/domain/booking"
	"tourbook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// BookingColumns reads guests from the new columns and falls back to the
// legacy counts for rows written before the dual-write.
const BookingColumns = `b.id, b.organization_id, b.reference_number, b.customer_id, b.tour_id,
	b.booking_date, to_char(b.booking_time, 'HH24:MI'), b.schedule_id,
	CASE WHEN b.guest_adults + b.guest_children + b.guest_infants = 0 THEN b.adult_count ELSE b.guest_adults END,
	CASE WHEN b.guest_adults + b.guest_children + b.guest_infants = 0 THEN b.child_count ELSE b.guest_children END,
	CASE WHEN b.guest_adults + b.guest_children + b.guest_infants = 0 THEN b.infant_count ELSE b.guest_infants END,
	b.subtotal, b.discount, b.tax, b.total, b.currency, b.status, b.payment_status,
	b.confirmed_at, b.cancelled_at, b.cancellation_reason, b.completed_at, b.no_show_at, b.paid_at,
	b.special_requests, b.internal_notes, b.created_at, b.updated_at`

type bookingRow struct {
	ID                 uuid.UUID
	OrganizationID     uuid.UUID
	ReferenceNumber    string
	CustomerID         uuid.UUID
	TourID             uuid.UUID
	BookingDate        pgtype.Date
	BookingTime        string
	ScheduleID         pgtype.UUID
	Adults             int32
	Children           int32
	Infants            int32
	Subtotal           int64
	Discount           int64
	Tax                int64
	Total              int64
	Currency           string
	Status             string
	PaymentStatus      string
	ConfirmedAt        pgtype.Timestamptz
	CancelledAt        pgtype.Timestamptz
	CancellationReason pgtype.Text
	CompletedAt        pgtype.Timestamptz
	NoShowAt           pgtype.Timestamptz
	PaidAt             pgtype.Timestamptz
	SpecialRequests    pgtype.Text
	InternalNotes      pgtype.Text
	CreatedAt          pgtype.Timestamptz
	UpdatedAt          pgtype.Timestamptz
}

func (r *bookingRow) targets() []any {
	return []any{
		&r.ID, &r.OrganizationID, &r.ReferenceNumber, &r.CustomerID, &r.TourID,
		&r.BookingDate, &r.BookingTime, &r.ScheduleID,
		&r.Adults, &r.Children, &r.Infants,
		&r.Subtotal, &r.Discount, &r.Tax, &r.Total, &r.Currency, &r.Status, &r.PaymentStatus,
		&r.ConfirmedAt, &r.CancelledAt, &r.CancellationReason, &r.CompletedAt, &r.NoShowAt, &r.PaidAt,
		&r.SpecialRequests, &r.InternalNotes, &r.CreatedAt, &r.UpdatedAt,
	}
}

// ScanBooking reads one row selected with BookingColumns. extra receives any
// columns selected after them.
func ScanBooking(row pgx.Row, extra ...any) (*booking.Booking, error) {
	var r bookingRow
	if err := row.Scan(append(r.targets(), extra...)...); err != nil {
		return nil, err
	}
	return r.toDomain()
}

func (r bookingRow) toDomain() (*booking.Booking, error) {
	at, err := availability.ParseClockTime(r.BookingTime)
	if err != nil {
		return nil, fmt.Errorf("booking %s has invalid time %q: %w", r.ID, r.BookingTime, err)
	}
	status, err := booking.ParseStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", r.ID, err)
	}
	payment, err := booking.ParsePaymentStatus(r.PaymentStatus)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", r.ID, err)
	}

	date := pgconv.DatePtrFromPgtype(r.BookingDate)
	if date == nil {
		return nil, fmt.Errorf("booking %s has no date", r.ID)
	}

	return booking.Reconstruct(booking.Record{
		ID:              r.ID,
		OrganizationID:  r.OrganizationID,
		ReferenceNumber: r.ReferenceNumber,
		CustomerID:      r.CustomerID,
		TourID:          r.TourID,
		BookingDate:     *date,
		BookingTime:     at,
		ScheduleID:      pgconv.UUIDPtrFromPgtype(r.ScheduleID),
		Guests: booking.Guests{
			Adults:   int(r.Adults),
			Children: int(r.Children),
			Infants:  int(r.Infants),
		},
		Pricing: booking.Pricing{
			SubtotalCents: r.Subtotal,
			DiscountCents: r.Discount,
			TaxCents:      r.Tax,
			TotalCents:    r.Total,
			Currency:      r.Currency,
		},
		Status:             status,
		PaymentStatus:      payment,
		ConfirmedAt:        pgconv.TimePtrFromPgtype(r.ConfirmedAt),
		CancelledAt:        pgconv.TimePtrFromPgtype(r.CancelledAt),
		CancellationReason: pgconv.StringPtrFromPgtype(r.CancellationReason),
		CompletedAt:        pgconv.TimePtrFromPgtype(r.CompletedAt),
		NoShowAt:           pgconv.TimePtrFromPgtype(r.NoShowAt),
		PaidAt:             pgconv.TimePtrFromPgtype(r.PaidAt),
		SpecialRequests:    pgconv.StringPtrFromPgtype(r.SpecialRequests),
		InternalNotes:      pgconv.StringPtrFromPgtype(r.InternalNotes),
		CreatedAt:          r.CreatedAt.Time,
		UpdatedAt:          r.UpdatedAt.Time,
	}), nil
}

// BookingArgs lists the values of a booking in insert column order. Guest
// counts are written to both the new and the legacy columns.
func BookingArgs(b *booking.Booking) []any {
	r := b.Record()
	return []any{
		r.ID, r.OrganizationID, r.ReferenceNumber, r.CustomerID, r.TourID,
		pgconv.DateToPgtype(r.BookingDate), r.BookingTime.String(), pgconv.UUIDPtrToPgtype(r.ScheduleID),
		r.Guests.Adults, r.Guests.Children, r.Guests.Infants,
		r.Guests.Total(),
		r.Pricing.SubtotalCents, r.Pricing.DiscountCents, r.Pricing.TaxCents, r.Pricing.TotalCents, r.Pricing.Currency,
		string(r.Status), string(r.PaymentStatus),
		pgconv.TimePtrToPgtype(r.ConfirmedAt), pgconv.TimePtrToPgtype(r.CancelledAt),
		pgconv.StringPtrToPgtype(r.CancellationReason),
		pgconv.TimePtrToPgtype(r.CompletedAt), pgconv.TimePtrToPgtype(r.NoShowAt), pgconv.TimePtrToPgtype(r.PaidAt),
		pgconv.StringPtrToPgtype(r.SpecialRequests), pgconv.StringPtrToPgtype(r.InternalNotes),
		r.CreatedAt, r.UpdatedAt,
	}
}

// BookingUpdateArgs lists the mutable columns of a booking, keyed by id and organization.
func BookingUpdateArgs(b *booking.Booking) []any {
	r := b.Record()
	return []any{
		r.ID, r.OrganizationID,
		r.TourID, pgconv.DateToPgtype(r.BookingDate), r.BookingTime.String(), pgconv.UUIDPtrToPgtype(r.ScheduleID),
		r.Guests.Adults, r.Guests.Children, r.Guests.Infants,
		r.Guests.Total(),
		r.Pricing.SubtotalCents, r.Pricing.DiscountCents, r.Pricing.TaxCents, r.Pricing.TotalCents, r.Pricing.Currency,
		string(r.Status), string(r.PaymentStatus),
		pgconv.TimePtrToPgtype(r.ConfirmedAt), pgconv.TimePtrToPgtype(r.CancelledAt),
		pgconv.StringPtrToPgtype(r.CancellationReason),
		pgconv.TimePtrToPgtype(r.CompletedAt), pgconv.TimePtrToPgtype(r.NoShowAt), pgconv.TimePtrToPgtype(r.PaidAt),
		pgconv.StringPtrToPgtype(r.SpecialRequests), pgconv.StringPtrToPgtype(r.InternalNotes),
		r.UpdatedAt,
	}
}
