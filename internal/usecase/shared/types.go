package shared

import (
	"time"

	"github.com/google/uuid"
)

type TourSnapshot struct {
	ID              uuid.UUID
	OrganizationID  uuid.UUID
	Name            string
	BasePriceCents  int64
	Currency        string
	MaxParticipants int
	Status          string
	DurationMinutes int
}

type CustomerSnapshot struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	Email          string
}

type ScheduleSnapshot struct {
	ID              uuid.UUID
	OrganizationID  uuid.UUID
	TourID          uuid.UUID
	StartsAt        time.Time
	EndsAt          time.Time
	MaxParticipants int
	BookedCount     int
	GuidesRequired  int
}

func (s ScheduleSnapshot) SpotsRemaining() int {
	return max(s.MaxParticipants-s.BookedCount, 0)
}

type ScheduleDrift struct {
	ScheduleID     uuid.UUID
	OrganizationID uuid.UUID
	Recorded       int
	Actual         int
}
