package repository

import (
	"context"

	"tourbook/internal/domain/booking"
	"tourbook/internal/infra"
	"tourbook/internal/infra/db"
	"tourbook/internal/pkg/pgconv"
)

type ParticipantRepository struct {
	db db.DBTX
}

func NewParticipantRepository(conn db.DBTX) *ParticipantRepository {
	return &ParticipantRepository{db: conn}
}

func (r *ParticipantRepository) CreateMany(ctx context.Context, participants []booking.Participant) error {
	for _, p := range participants {
		_, err := r.db.Exec(ctx,
			`INSERT INTO booking_participants (
				id, booking_id, first_name, last_name, email, phone, type,
				dietary_requirements, accessibility_needs
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			p.ID, p.BookingID, p.FirstName, p.LastName,
			pgconv.StringPtrToPgtype(p.Email), pgconv.StringPtrToPgtype(p.Phone), string(p.Type),
			pgconv.StringPtrToPgtype(p.DietaryRequirements), pgconv.StringPtrToPgtype(p.AccessibilityNeeds),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to create participant", err)
		}
	}
	return nil
}
