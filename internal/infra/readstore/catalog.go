package readstore

import (
	"context"

	"tourbook/internal/infra"
	"tourbook/internal/infra/db"
	"tourbook/internal/pkg/errs"
	"tourbook/internal/pkg/pgconv"
	"tourbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const tourColumns = `id, organization_id, name, base_price, currency, max_participants, status, duration_minutes`

// CatalogReadStore serves tenant-scoped lookups of tours, customers and schedules.
type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(conn db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: conn}
}

func scanTour(row pgx.Row) (shared.TourSnapshot, error) {
	var t shared.TourSnapshot
	var maxParticipants, duration int32
	err := row.Scan(&t.ID, &t.OrganizationID, &t.Name, &t.BasePriceCents, &t.Currency, &maxParticipants, &t.Status, &duration)
	t.MaxParticipants, t.DurationMinutes = int(maxParticipants), int(duration)
	return t, err
}

func (s *CatalogReadStore) TourByID(ctx context.Context, orgID, id uuid.UUID) (*shared.TourSnapshot, error) {
	t, err := scanTour(s.db.QueryRow(ctx,
		`SELECT `+tourColumns+` FROM tours WHERE organization_id = $1 AND id = $2`, orgID, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.NotFound("tour", id)
		}
		return nil, infra.WrapRepoErr("failed to get tour", err)
	}
	return &t, nil
}

// ToursByOrganization returns active tours, or exactly the given ids regardless
// of status, ordered by name.
func (s *CatalogReadStore) ToursByOrganization(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]shared.TourSnapshot, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if len(ids) == 0 {
		rows, err = s.db.Query(ctx,
			`SELECT `+tourColumns+` FROM tours
			WHERE organization_id = $1 AND status = 'active'
			ORDER BY name, id`, orgID)
	} else {
		rows, err = s.db.Query(ctx,
			`SELECT `+tourColumns+` FROM tours
			WHERE organization_id = $1 AND id = ANY($2)
			ORDER BY name, id`, orgID, ids)
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list tours", err)
	}
	defer rows.Close()

	var tours []shared.TourSnapshot
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan tour", err)
		}
		tours = append(tours, t)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list tours", err)
	}
	return tours, nil
}

func (s *CatalogReadStore) CustomerByID(ctx context.Context, orgID, id uuid.UUID) (*shared.CustomerSnapshot, error) {
	var c shared.CustomerSnapshot
	err := s.db.QueryRow(ctx,
		`SELECT id, organization_id, name, email FROM customers
		WHERE organization_id = $1 AND id = $2`, orgID, id).
		Scan(&c.ID, &c.OrganizationID, &c.Name, &c.Email)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.NotFound("customer", id)
		}
		return nil, infra.WrapRepoErr("failed to get customer", err)
	}
	return &c, nil
}

func (s *CatalogReadStore) ScheduleByID(ctx context.Context, orgID, id uuid.UUID) (*shared.ScheduleSnapshot, error) {
	var sc shared.ScheduleSnapshot
	var maxParticipants, booked, guides int32
	err := s.db.QueryRow(ctx,
		`SELECT id, organization_id, tour_id, starts_at, ends_at, max_participants, booked_count, guides_required
		FROM schedules
		WHERE organization_id = $1 AND id = $2`, orgID, id).
		Scan(&sc.ID, &sc.OrganizationID, &sc.TourID, &sc.StartsAt, &sc.EndsAt, &maxParticipants, &booked, &guides)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.NotFound("schedule", id)
		}
		return nil, infra.WrapRepoErr("failed to get schedule", err)
	}
	sc.MaxParticipants, sc.BookedCount, sc.GuidesRequired = int(maxParticipants), int(booked), int(guides)
	return &sc, nil
}
