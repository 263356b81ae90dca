package repository

import (
	"context"
	"time"

	"tourbook/internal/domain/booking"
	"tourbook/internal/infra"
	"tourbook/internal/infra/db"
	"tourbook/internal/infra/repository/converter"
	"tourbook/internal/pkg/errs"
	"tourbook/internal/pkg/pgconv"
	"tourbook/internal/usecase/shared"

	"github.com/google/uuid"
)

const insertBookingSQL = `
INSERT INTO bookings (
	id, organization_id, reference_number, customer_id, tour_id,
	booking_date, booking_time, schedule_id,
	guest_adults, guest_children, guest_infants,
	total_participants,
	subtotal, discount, tax, total, currency,
	status, payment_status,
	confirmed_at, cancelled_at, cancellation_reason, completed_at, no_show_at, paid_at,
	special_requests, internal_notes, created_at, updated_at,
	adult_count, child_count, infant_count
) VALUES (
	$1, $2, $3, $4, $5,
	$6, $7::time, $8,
	$9, $10, $11,
	$12,
	$13, $14, $15, $16, $17,
	$18, $19,
	$20, $21, $22, $23, $24, $25,
	$26, $27, $28, $29,
	$9, $10, $11
)
RETURNING id`

const saveBookingSQL = `
UPDATE bookings SET
	tour_id = $3, booking_date = $4, booking_time = $5::time, schedule_id = $6,
	guest_adults = $7, guest_children = $8, guest_infants = $9,
	adult_count = $7, child_count = $8, infant_count = $9,
	total_participants = $10,
	subtotal = $11, discount = $12, tax = $13, total = $14, currency = $15,
	status = $16, payment_status = $17,
	confirmed_at = $18, cancelled_at = $19, cancellation_reason = $20,
	completed_at = $21, no_show_at = $22, paid_at = $23,
	special_requests = $24, internal_notes = $25, updated_at = $26
WHERE id = $1 AND organization_id = $2`

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(conn db.DBTX) *BookingRepository {
	return &BookingRepository{db: conn}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, insertBookingSQL, converter.BookingArgs(b)...).Scan(&id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return errs.Mark(err, errs.ErrRowNotReturned)
		}
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	tag, err := r.db.Exec(ctx, saveBookingSQL, converter.BookingUpdateArgs(b)...)
	if err != nil {
		return infra.WrapRepoErr("failed to save booking", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("booking", b.ID())
	}
	return nil
}

func (r *BookingRepository) FindForUpdate(ctx context.Context, orgID, id uuid.UUID) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+converter.BookingColumns+`
		FROM bookings b
		WHERE b.organization_id = $1 AND b.id = $2
		FOR UPDATE`, orgID, id)
	b, err := converter.ScanBooking(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.NotFound("booking", id)
		}
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}
	return b, nil
}

// FindManyForUpdate locks rows in id order so concurrent batches cannot deadlock.
// Missing ids are left out of the result.
func (r *BookingRepository) FindManyForUpdate(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]*booking.Booking, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+converter.BookingColumns+`
		FROM bookings b
		WHERE b.organization_id = $1 AND b.id = ANY($2)
		ORDER BY b.id
		FOR UPDATE`, orgID, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock bookings", err)
	}
	defer rows.Close()

	out := make([]*booking.Booking, 0, len(ids))
	for rows.Next() {
		b, err := converter.ScanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to lock bookings", err)
	}
	return out, nil
}

func (r *BookingRepository) UpdateStatuses(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID, change shared.StatusChange) error {
	if len(ids) == 0 {
		return nil
	}
	var stampColumn string
	switch change.Status {
	case booking.StatusConfirmed:
		stampColumn = "confirmed_at"
	case booking.StatusCancelled:
		stampColumn = "cancelled_at"
	case booking.StatusCompleted:
		stampColumn = "completed_at"
	case booking.StatusNoShow:
		stampColumn = "no_show_at"
	default:
		return errs.Validation("Cannot bulk update bookings to status: %s", change.Status)
	}

	sql := `UPDATE bookings SET status = $3, ` + stampColumn + ` = $4, updated_at = $4,
		cancellation_reason = CASE WHEN $3 = 'cancelled' THEN $5 ELSE cancellation_reason END
		WHERE organization_id = $1 AND id = ANY($2)`
	_, err := r.db.Exec(ctx, sql, orgID, ids, string(change.Status), change.At, pgconv.StringPtrToPgtype(change.CancellationReason))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking statuses", err)
	}
	return nil
}

func (r *BookingRepository) UpdatePaymentStatuses(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID, status booking.PaymentStatus, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`UPDATE bookings SET payment_status = $3, updated_at = $4,
			paid_at = CASE WHEN $3 = 'paid' AND payment_status <> 'paid' THEN $4 ELSE paid_at END
		WHERE organization_id = $1 AND id = ANY($2)`,
		orgID, ids, string(status), at)
	if err != nil {
		return infra.WrapRepoErr("failed to update payment statuses", err)
	}
	return nil
}
