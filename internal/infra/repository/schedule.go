package repository

import (
	"context"
	"time"

	"tourbook/internal/infra"
	"tourbook/internal/infra/db"
	"tourbook/internal/pkg/errs"
	"tourbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type ScheduleRepository struct {
	db db.DBTX
}

func NewScheduleRepository(conn db.DBTX) *ScheduleRepository {
	return &ScheduleRepository{db: conn}
}

// Reserve is the single guarded update; the WHERE clause is the serialization point.
func (r *ScheduleRepository) Reserve(ctx context.Context, orgID, scheduleID uuid.UUID, n int) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE schedules
		SET booked_count = booked_count + $3, updated_at = now()
		WHERE organization_id = $1 AND id = $2
			AND booked_count + $3 <= max_participants`,
		orgID, scheduleID, n)
	if err != nil {
		return false, infra.WrapRepoErr("failed to reserve schedule capacity", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ScheduleRepository) Release(ctx context.Context, orgID, scheduleID uuid.UUID, n int) error {
	_, err := r.db.Exec(ctx,
		`UPDATE schedules
		SET booked_count = GREATEST(0, booked_count - $3), updated_at = now()
		WHERE organization_id = $1 AND id = $2`,
		orgID, scheduleID, n)
	if err != nil {
		return infra.WrapRepoErr("failed to release schedule capacity", err)
	}
	return nil
}

// GuideRecalculator derives guides_required from the booked count.
type GuideRecalculator struct {
	db             db.DBTX
	guestsPerGuide int
}

func NewGuideRecalculator(conn db.DBTX, guestsPerGuide int) *GuideRecalculator {
	if guestsPerGuide <= 0 {
		guestsPerGuide = 1
	}
	return &GuideRecalculator{db: conn, guestsPerGuide: guestsPerGuide}
}

func (g *GuideRecalculator) Recalculate(ctx context.Context, orgID, scheduleID uuid.UUID) error {
	tag, err := g.db.Exec(ctx,
		`UPDATE schedules
		SET guides_required = CEIL(booked_count::numeric / $3)::int, updated_at = now()
		WHERE organization_id = $1 AND id = $2`,
		orgID, scheduleID, g.guestsPerGuide)
	if err != nil {
		return infra.WrapRepoErr("failed to recalculate guides", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("schedule", scheduleID)
	}
	return nil
}

// ScheduleReconciler rewrites drifted counters of upcoming schedules. A count
// above capacity is clamped so the row still satisfies its CHECK; the drift
// reports the real sum.
type ScheduleReconciler struct {
	db db.DBTX
}

func NewScheduleReconciler(conn db.DBTX) *ScheduleReconciler {
	return &ScheduleReconciler{db: conn}
}

func (s *ScheduleReconciler) ReconcileBookedCounts(ctx context.Context, since time.Time) ([]shared.ScheduleDrift, error) {
	rows, err := s.db.Query(ctx,
		`WITH actual AS (
			SELECT s.id, s.organization_id, s.booked_count AS recorded,
				COALESCE(SUM(b.total_participants), 0)::int AS actual
			FROM schedules s
			LEFT JOIN bookings b
				ON b.schedule_id = s.id AND b.status IN ('pending', 'confirmed')
			WHERE s.starts_at >= $1
			GROUP BY s.id
		), fixed AS (
			UPDATE schedules s
			SET booked_count = LEAST(a.actual, s.max_participants), updated_at = now()
			FROM actual a
			-- rows changed since the snapshot wait for the next run
			WHERE s.id = a.id AND a.actual <> a.recorded AND s.booked_count = a.recorded
			RETURNING s.id
		)
		SELECT a.id, a.organization_id, a.recorded, a.actual
		FROM actual a
		JOIN fixed f ON f.id = a.id
		ORDER BY a.id`, since)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconcile booked counts", err)
	}
	defer rows.Close()

	var drifts []shared.ScheduleDrift
	for rows.Next() {
		var d shared.ScheduleDrift
		var recorded, actual int32
		if err := rows.Scan(&d.ScheduleID, &d.OrganizationID, &recorded, &actual); err != nil {
			return nil, infra.WrapRepoErr("failed to scan schedule drift", err)
		}
		d.Recorded, d.Actual = int(recorded), int(actual)
		drifts = append(drifts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to reconcile booked counts", err)
	}
	return drifts, nil
}
