package readstore

import (
	"context"
	"fmt"
	"strings"

	"tourbook/internal/domain/booking"
	"tourbook/internal/infra"
	"tourbook/internal/infra/db"
	"tourbook/internal/infra/repository/converter"
	"tourbook/internal/pkg/errs"
	"tourbook/internal/pkg/pgconv"
	"tourbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingViewFrom = `
	FROM bookings b
	JOIN tours t ON t.id = b.tour_id
	JOIN customers c ON c.id = b.customer_id`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(conn db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: conn}
}

type viewExtra struct {
	tourName      string
	customerName  string
	customerEmail string
}

func (e *viewExtra) targets() []any {
	return []any{&e.tourName, &e.customerName, &e.customerEmail}
}

func (s *BookingReadStore) FindByID(ctx context.Context, orgID, id uuid.UUID) (*queries.BookingView, error) {
	var extra viewExtra
	b, err := converter.ScanBooking(s.db.QueryRow(ctx,
		`SELECT `+converter.BookingColumns+`, t.name, c.name, c.email`+bookingViewFrom+`
		WHERE b.organization_id = $1 AND b.id = $2`, orgID, id), extra.targets()...)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.NotFound("booking", id)
		}
		return nil, infra.WrapRepoErr("failed to get booking view", err)
	}

	view := toBookingView(b, extra)
	participants, err := s.participants(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	view.Participants = participants[id]
	if view.Participants == nil {
		view.Participants = []queries.ParticipantView{}
	}
	return view, nil
}

// FindPage lists bookings newest first, continuing strictly after the key.
func (s *BookingReadStore) FindPage(ctx context.Context, orgID uuid.UUID, f queries.BookingFilter, after *queries.PageKey, limit int) ([]*queries.BookingView, error) {
	where := []string{"b.organization_id = $1"}
	args := []any{orgID}
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Status != nil {
		add("b.status = $%d", string(*f.Status))
	}
	if f.TourID != nil {
		add("b.tour_id = $%d", *f.TourID)
	}
	if f.DateFrom != nil {
		add("b.booking_date >= $%d", pgconv.DateToPgtype(*f.DateFrom))
	}
	if f.DateTo != nil {
		add("b.booking_date <= $%d", pgconv.DateToPgtype(*f.DateTo))
	}
	if after != nil {
		args = append(args, pgtype.Timestamptz{Time: after.CreatedAt, Valid: true}, after.ID)
		where = append(where, fmt.Sprintf("(b.created_at, b.id) < ($%d, $%d)", len(args)-1, len(args)))
	}
	args = append(args, limit)

	sql := `SELECT ` + converter.BookingColumns + `, t.name, c.name, c.email` + bookingViewFrom + `
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $` + fmt.Sprint(len(args))

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var views []*queries.BookingView
	var ids []uuid.UUID
	for rows.Next() {
		var extra viewExtra
		b, err := converter.ScanBooking(rows, extra.targets()...)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking view", err)
		}
		views = append(views, toBookingView(b, extra))
		ids = append(ids, b.ID())
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	if len(ids) == 0 {
		return views, nil
	}

	participants, err := s.participants(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, v := range views {
		v.Participants = participants[v.ID]
		if v.Participants == nil {
			v.Participants = []queries.ParticipantView{}
		}
	}
	return views, nil
}

func (s *BookingReadStore) participants(ctx context.Context, bookingIDs []uuid.UUID) (map[uuid.UUID][]queries.ParticipantView, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, booking_id, first_name, last_name, email, phone, type, dietary_requirements, accessibility_needs
		FROM booking_participants
		WHERE booking_id = ANY($1)
		ORDER BY booking_id, last_name, first_name, id`, bookingIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load participants", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]queries.ParticipantView, len(bookingIDs))
	for rows.Next() {
		var (
			p                                 queries.ParticipantView
			bookingID                         uuid.UUID
			email, phone, dietary, accessible pgtype.Text
		)
		if err := rows.Scan(&p.ID, &bookingID, &p.FirstName, &p.LastName, &email, &phone, &p.Type, &dietary, &accessible); err != nil {
			return nil, infra.WrapRepoErr("failed to scan participant", err)
		}
		p.Email = pgconv.StringPtrFromPgtype(email)
		p.Phone = pgconv.StringPtrFromPgtype(phone)
		p.DietaryRequirements = pgconv.StringPtrFromPgtype(dietary)
		p.AccessibilityNeeds = pgconv.StringPtrFromPgtype(accessible)
		out[bookingID] = append(out[bookingID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to load participants", err)
	}
	return out, nil
}

func toBookingView(b *booking.Booking, extra viewExtra) *queries.BookingView {
	r := b.Record()
	return &queries.BookingView{
		ID:                 r.ID,
		OrganizationID:     r.OrganizationID,
		ReferenceNumber:    r.ReferenceNumber,
		Tour:               queries.TourRef{ID: r.TourID, Name: extra.tourName},
		Customer:           queries.CustomerRef{ID: r.CustomerID, Name: extra.customerName, Email: extra.customerEmail},
		BookingDate:        r.BookingDate,
		BookingTime:        r.BookingTime.String(),
		ScheduleID:         r.ScheduleID,
		Adults:             r.Guests.Adults,
		Children:           r.Guests.Children,
		Infants:            r.Guests.Infants,
		TotalParticipants:  r.Guests.Total(),
		SubtotalCents:      r.Pricing.SubtotalCents,
		DiscountCents:      r.Pricing.DiscountCents,
		TaxCents:           r.Pricing.TaxCents,
		TotalCents:         r.Pricing.TotalCents,
		Currency:           r.Pricing.Currency,
		Status:             r.Status.String(),
		PaymentStatus:      r.PaymentStatus.String(),
		ConfirmedAt:        r.ConfirmedAt,
		CancelledAt:        r.CancelledAt,
		CancellationReason: r.CancellationReason,
		CompletedAt:        r.CompletedAt,
		NoShowAt:           r.NoShowAt,
		PaidAt:             r.PaidAt,
		SpecialRequests:    r.SpecialRequests,
		InternalNotes:      r.InternalNotes,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}
