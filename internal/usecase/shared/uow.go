package shared

import (
	"context"
	"time"

	"tourbook/internal/domain/availability"
	"tourbook/internal/domain/booking"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=../../../tests/mock/shared/shared.go -package=sharedmock tourbook/internal/usecase/shared GuideRecalculator,ReferenceGenerator,ScheduleReconciler

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, reads CommandReads) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Participants() ParticipantRepository
	Schedules() ScheduleRepository
	Reads() CommandReads
	// LockSlot takes a transaction-scoped advisory lock on a dynamic slot.
	LockSlot(ctx context.Context, orgID uuid.UUID, slot availability.Slot) error
}

type CommandReads interface {
	CalendarReads
	CustomerDirectory
	ScheduleByID(ctx context.Context, orgID, id uuid.UUID) (*ScheduleSnapshot, error)
}

// CalendarReads is what an availability decision needs from storage.
type CalendarReads interface {
	TourCatalog
	Windows(ctx context.Context, tourIDs []uuid.UUID, from, to time.Time) ([]availability.Window, error)
	DepartureTimes(ctx context.Context, tourIDs []uuid.UUID) ([]availability.DepartureTime, error)
	Blackouts(ctx context.Context, tourIDs []uuid.UUID, from, to time.Time) ([]availability.Blackout, error)
	// BookedParticipants sums total participants of capacity-holding bookings per slot.
	BookedParticipants(ctx context.Context, orgID uuid.UUID, filter UsageFilter) (availability.Usage, error)
}

type TourCatalog interface {
	TourByID(ctx context.Context, orgID, id uuid.UUID) (*TourSnapshot, error)
	// ToursByOrganization returns the organization's active tours, or only ids when given.
	ToursByOrganization(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]TourSnapshot, error)
}

type CustomerDirectory interface {
	CustomerByID(ctx context.Context, orgID, id uuid.UUID) (*CustomerSnapshot, error)
}

type UsageFilter struct {
	TourIDs          []uuid.UUID
	From             time.Time
	To               time.Time
	Time             *availability.ClockTime
	ExcludeBookingID *uuid.UUID
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	Save(ctx context.Context, b *booking.Booking) error
	// FindForUpdate locks the row for the rest of the transaction.
	FindForUpdate(ctx context.Context, orgID, id uuid.UUID) (*booking.Booking, error)
	FindManyForUpdate(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]*booking.Booking, error)
	UpdateStatuses(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID, change StatusChange) error
	UpdatePaymentStatuses(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID, status booking.PaymentStatus, at time.Time) error
}

// StatusChange is a transition applied to many bookings at once.
type StatusChange struct {
	Status             booking.Status
	At                 time.Time
	CancellationReason *string
}

type ParticipantRepository interface {
	CreateMany(ctx context.Context, participants []booking.Participant) error
}

type ScheduleRepository interface {
	// Reserve adds n to booked_count unless that would pass max_participants.
	// It reports false when the guard rejected the update.
	Reserve(ctx context.Context, orgID, scheduleID uuid.UUID, n int) (bool, error)
	// Release subtracts n from booked_count, never going below zero.
	Release(ctx context.Context, orgID, scheduleID uuid.UUID, n int) error
}

// GuideRecalculator recomputes staffing for a schedule after its bookings change.
type GuideRecalculator interface {
	Recalculate(ctx context.Context, orgID, scheduleID uuid.UUID) error
}

type ReferenceGenerator interface {
	Generate(ctx context.Context, orgID uuid.UUID, prefix string) (string, error)
}

// ScheduleReconciler rewrites booked_count of upcoming schedules from their bookings.
type ScheduleReconciler interface {
	ReconcileBookedCounts(ctx context.Context, since time.Time) ([]ScheduleDrift, error)
}
