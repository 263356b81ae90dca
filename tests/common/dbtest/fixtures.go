//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike lets fixtures run against the shared pool or inside a test transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateOrganization(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), "INSERT INTO organizations (id, name) VALUES ($1, $2)", id, name)
	require.NoError(t, err)
	return id
}

// CreateTour inserts an active tour that departs at each of times, every day
// from openFrom onwards.
func CreateTour(t *testing.T, db DBLike, orgID uuid.UUID, name string, capacity int, basePriceCents int64, openFrom time.Time, times ...string) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	id := uuid.New()
	_, err := db.Exec(ctx, `INSERT INTO tours (id, organization_id, name, base_price, max_participants, duration_minutes)
		VALUES ($1, $2, $3, $4, $5, 120)`, id, orgID, name, basePriceCents, capacity)
	require.NoError(t, err)

	_, err = db.Exec(ctx, "INSERT INTO availability_windows (tour_id, start_date) VALUES ($1, $2)", id, openFrom)
	require.NoError(t, err)

	for i, at := range times {
		_, err = db.Exec(ctx, "INSERT INTO departure_times (tour_id, time, sort_order) VALUES ($1, $2::text::time, $3)", id, at, i)
		require.NoError(t, err)
	}
	return id
}

func AddBlackout(t *testing.T, db DBLike, tourID uuid.UUID, date time.Time, reason string) {
	t.Helper()

	_, err := db.Exec(context.Background(), "INSERT INTO blackout_dates (tour_id, date, reason) VALUES ($1, $2, $3)", tourID, date, reason)
	require.NoError(t, err)
}

func CreateCustomer(t *testing.T, db DBLike, orgID uuid.UUID, name, email string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), "INSERT INTO customers (id, organization_id, name, email) VALUES ($1, $2, $3, $4)",
		id, orgID, name, email)
	require.NoError(t, err)
	return id
}

func CreateSchedule(t *testing.T, db DBLike, orgID, tourID uuid.UUID, startsAt time.Time, capacity int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), `INSERT INTO schedules (id, organization_id, tour_id, starts_at, ends_at, max_participants)
		VALUES ($1, $2, $3, $4, $5, $6)`, id, orgID, tourID, startsAt, startsAt.Add(2*time.Hour), capacity)
	require.NoError(t, err)
	return id
}

// ScheduleCounts reads the materialized counters of a schedule.
func ScheduleCounts(t *testing.T, db DBLike, scheduleID uuid.UUID) (booked, guides int) {
	t.Helper()

	err := db.QueryRow(context.Background(), "SELECT booked_count, guides_required FROM schedules WHERE id = $1", scheduleID).
		Scan(&booked, &guides)
	require.NoError(t, err)
	return booked, guides
}

// CorruptBookedCount overwrites a schedule counter so reconciliation has drift to repair.
func CorruptBookedCount(t *testing.T, db DBLike, scheduleID uuid.UUID, booked int) {
	t.Helper()

	_, err := db.Exec(context.Background(), "UPDATE schedules SET booked_count = $2 WHERE id = $1", scheduleID, booked)
	require.NoError(t, err)
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every table in the public schema.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
