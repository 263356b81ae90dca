package readstore

import (
	"context"
	"time"

	"tourbook/internal/domain/booking"
	"tourbook/internal/infra"
	"tourbook/internal/infra/db"
	"tourbook/internal/pkg/dates"
	"tourbook/internal/pkg/pgconv"
	"tourbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type StatsReadStore struct {
	db db.DBTX
}

func NewStatsReadStore(conn db.DBTX) *StatsReadStore {
	return &StatsReadStore{db: conn}
}

// UpcomingActive lists capacity-holding bookings dated from..to. A schedule
// start, when present, is returned alongside the booking's own date and time.
func (s *StatsReadStore) UpcomingActive(ctx context.Context, orgID uuid.UUID, from, to time.Time) ([]queries.UrgencyCandidate, error) {
	rows, err := s.db.Query(ctx,
		`SELECT b.id, b.reference_number, c.name, t.name, sc.starts_at,
			b.booking_date, to_char(b.booking_time, 'HH24:MI'), b.status, b.payment_status, b.total_participants
		FROM bookings b
		JOIN tours t ON t.id = b.tour_id
		JOIN customers c ON c.id = b.customer_id
		LEFT JOIN schedules sc ON sc.id = b.schedule_id
		WHERE b.organization_id = $1
			AND b.status IN ('pending', 'confirmed')
			AND b.booking_date BETWEEN $2 AND $3
		ORDER BY b.booking_date, b.booking_time, b.id`,
		orgID, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list upcoming bookings", err)
	}
	defer rows.Close()

	var out []queries.UrgencyCandidate
	for rows.Next() {
		var (
			c             queries.UrgencyCandidate
			scheduleStart pgtype.Timestamptz
			date          pgtype.Date
			status        string
			payment       string
			total         int32
		)
		if err := rows.Scan(&c.BookingID, &c.ReferenceNumber, &c.CustomerName, &c.TourName, &scheduleStart,
			&date, &c.BookingTime, &status, &payment, &total); err != nil {
			return nil, infra.WrapRepoErr("failed to scan upcoming booking", err)
		}
		c.ScheduleStart = pgconv.TimePtrFromPgtype(scheduleStart)
		c.BookingDate = dates.Of(date.Time)
		c.Status = booking.Status(status)
		c.PaymentStatus = booking.PaymentStatus(payment)
		c.TotalParticipants = int(total)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list upcoming bookings", err)
	}
	return out, nil
}

func (s *StatsReadStore) Summary(ctx context.Context, orgID uuid.UUID, from, to time.Time) (*queries.BookingSummary, error) {
	var (
		sum                                             queries.BookingSummary
		total, pending, confirmed, completed, cancelled int32
		noShow, unpaid, participants                    int32
	)
	err := s.db.QueryRow(ctx,
		`SELECT
			COUNT(*)::int,
			COUNT(*) FILTER (WHERE status = 'pending')::int,
			COUNT(*) FILTER (WHERE status = 'confirmed')::int,
			COUNT(*) FILTER (WHERE status = 'completed')::int,
			COUNT(*) FILTER (WHERE status = 'cancelled')::int,
			COUNT(*) FILTER (WHERE status = 'no_show')::int,
			COUNT(*) FILTER (WHERE status IN ('pending', 'confirmed', 'completed')
				AND payment_status NOT IN ('paid', 'refunded'))::int,
			COALESCE(SUM(total_participants) FILTER (WHERE status IN ('pending', 'confirmed', 'completed')), 0)::int,
			COALESCE(SUM(total) FILTER (WHERE status IN ('confirmed', 'completed')), 0)::bigint
		FROM bookings
		WHERE organization_id = $1 AND booking_date BETWEEN $2 AND $3`,
		orgID, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to)).
		Scan(&total, &pending, &confirmed, &completed, &cancelled, &noShow, &unpaid, &participants, &sum.RevenueCents)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to summarize bookings", err)
	}
	sum.Total, sum.Pending, sum.Confirmed = int(total), int(pending), int(confirmed)
	sum.Completed, sum.Cancelled, sum.NoShow = int(completed), int(cancelled), int(noShow)
	sum.Unpaid, sum.TotalParticipants = int(unpaid), int(participants)
	return &sum, nil
}
