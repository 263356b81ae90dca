package readstore

import (
	"context"
	"time"

	"tourbook/internal/domain/availability"
	"tourbook/internal/infra"
	"tourbook/internal/infra/db"
	"tourbook/internal/pkg/dates"
	"tourbook/internal/pkg/pgconv"
	"tourbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// CalendarReadStore loads windows, departures, blackouts and booked counts for
// many tours at once. Each method is a single query.
type CalendarReadStore struct {
	db db.DBTX
}

func NewCalendarReadStore(conn db.DBTX) *CalendarReadStore {
	return &CalendarReadStore{db: conn}
}

func (s *CalendarReadStore) Windows(ctx context.Context, tourIDs []uuid.UUID, from, to time.Time) ([]availability.Window, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, tour_id, start_date, end_date, days_of_week, max_participants, price, meeting_point, is_active
		FROM availability_windows
		WHERE tour_id = ANY($1) AND is_active
			AND start_date <= $3 AND (end_date IS NULL OR end_date >= $2)`,
		tourIDs, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load availability windows", err)
	}
	defer rows.Close()

	var windows []availability.Window
	for rows.Next() {
		var (
			w         availability.Window
			start     pgtype.Date
			end       pgtype.Date
			days      []int32
			maxPart   pgtype.Int4
			price     pgtype.Int8
			meetPoint pgtype.Text
		)
		if err := rows.Scan(&w.ID, &w.TourID, &start, &end, &days, &maxPart, &price, &meetPoint, &w.IsActive); err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability window", err)
		}
		ints := make([]int, len(days))
		for i, d := range days {
			ints[i] = int(d)
		}
		if w.DaysOfWeek, err = availability.NewWeekdays(ints...); err != nil {
			return nil, infra.WrapRepoErr("availability window has invalid days_of_week", err)
		}
		w.StartDate = dates.Of(start.Time)
		w.EndDate = pgconv.DatePtrFromPgtype(end)
		w.MaxParticipants = pgconv.Int4PtrFromPgtype(maxPart)
		w.PriceCents = pgconv.Int8PtrFromPgtype(price)
		w.MeetingPoint = pgconv.StringPtrFromPgtype(meetPoint)
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to load availability windows", err)
	}
	return windows, nil
}

func (s *CalendarReadStore) DepartureTimes(ctx context.Context, tourIDs []uuid.UUID) ([]availability.DepartureTime, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, tour_id, to_char(time, 'HH24:MI'), label, is_active, sort_order
		FROM departure_times
		WHERE tour_id = ANY($1) AND is_active
		ORDER BY tour_id, sort_order, time`, tourIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load departure times", err)
	}
	defer rows.Close()

	var out []availability.DepartureTime
	for rows.Next() {
		var (
			d         availability.DepartureTime
			clock     string
			sortOrder int32
		)
		if err := rows.Scan(&d.ID, &d.TourID, &clock, &d.Label, &d.IsActive, &sortOrder); err != nil {
			return nil, infra.WrapRepoErr("failed to scan departure time", err)
		}
		if d.Time, err = availability.ParseClockTime(clock); err != nil {
			return nil, infra.WrapRepoErr("departure time has invalid time", err)
		}
		d.SortOrder = int(sortOrder)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to load departure times", err)
	}
	return out, nil
}

func (s *CalendarReadStore) Blackouts(ctx context.Context, tourIDs []uuid.UUID, from, to time.Time) ([]availability.Blackout, error) {
	rows, err := s.db.Query(ctx,
		`SELECT tour_id, date, reason
		FROM blackout_dates
		WHERE tour_id = ANY($1) AND date BETWEEN $2 AND $3`,
		tourIDs, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load blackout dates", err)
	}
	defer rows.Close()

	var out []availability.Blackout
	for rows.Next() {
		var (
			b      availability.Blackout
			date   pgtype.Date
			reason pgtype.Text
		)
		if err := rows.Scan(&b.TourID, &date, &reason); err != nil {
			return nil, infra.WrapRepoErr("failed to scan blackout date", err)
		}
		b.Date = dates.Of(date.Time)
		b.Reason = pgconv.StringPtrFromPgtype(reason)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to load blackout dates", err)
	}
	return out, nil
}

// BookedParticipants is the one aggregate behind every availability answer.
func (s *CalendarReadStore) BookedParticipants(ctx context.Context, orgID uuid.UUID, f shared.UsageFilter) (availability.Usage, error) {
	at := pgtype.Text{}
	if f.Time != nil {
		at = pgtype.Text{String: f.Time.String(), Valid: true}
	}
	rows, err := s.db.Query(ctx,
		`SELECT tour_id, booking_date, to_char(booking_time, 'HH24:MI'), SUM(total_participants)::int
		FROM bookings
		WHERE organization_id = $1
			AND tour_id = ANY($2)
			AND booking_date BETWEEN $3 AND $4
			AND status IN ('pending', 'confirmed')
			AND ($5::text IS NULL OR booking_time = $5::time)
			AND ($6::uuid IS NULL OR id <> $6::uuid)
		GROUP BY tour_id, booking_date, booking_time`,
		orgID, f.TourIDs, pgconv.DateToPgtype(f.From), pgconv.DateToPgtype(f.To), at, pgconv.UUIDPtrToPgtype(f.ExcludeBookingID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate booked participants", err)
	}
	defer rows.Close()

	usage := availability.Usage{}
	for rows.Next() {
		var (
			tourID uuid.UUID
			date   pgtype.Date
			clock  string
			booked int32
		)
		if err := rows.Scan(&tourID, &date, &clock, &booked); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booked participants", err)
		}
		t, err := availability.ParseClockTime(clock)
		if err != nil {
			return nil, infra.WrapRepoErr("booking has invalid time", err)
		}
		usage[availability.NewSlot(tourID, date.Time, t).Key()] = int(booked)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate booked participants", err)
	}
	return usage, nil
}
