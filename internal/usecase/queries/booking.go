package queries

import (
	"context"
	"time"

	"tourbook/internal/domain/booking"

	"github.com/google/uuid"
)

type BookingView struct {
	ID                 uuid.UUID         `json:"id"`
	OrganizationID     uuid.UUID         `json:"organization_id"`
	ReferenceNumber    string            `json:"reference_number"`
	Tour               TourRef           `json:"tour"`
	Customer           CustomerRef       `json:"customer"`
	BookingDate        time.Time         `json:"booking_date"`
	BookingTime        string            `json:"booking_time"`
	ScheduleID         *uuid.UUID        `json:"schedule_id,omitempty"`
	Adults             int               `json:"adults"`
	Children           int               `json:"children"`
	Infants            int               `json:"infants"`
	TotalParticipants  int               `json:"total_participants"`
	SubtotalCents      int64             `json:"subtotal_cents"`
	DiscountCents      int64             `json:"discount_cents"`
	TaxCents           int64             `json:"tax_cents"`
	TotalCents         int64             `json:"total_cents"`
	Currency           string            `json:"currency"`
	Status             string            `json:"status"`
	PaymentStatus      string            `json:"payment_status"`
	ConfirmedAt        *time.Time        `json:"confirmed_at,omitempty"`
	CancelledAt        *time.Time        `json:"cancelled_at,omitempty"`
	CancellationReason *string           `json:"cancellation_reason,omitempty"`
	CompletedAt        *time.Time        `json:"completed_at,omitempty"`
	NoShowAt           *time.Time        `json:"no_show_at,omitempty"`
	PaidAt             *time.Time        `json:"paid_at,omitempty"`
	SpecialRequests    *string           `json:"special_requests,omitempty"`
	InternalNotes      *string           `json:"internal_notes,omitempty"`
	Participants       []ParticipantView `json:"participants"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

type TourRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type CustomerRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type ParticipantView struct {
	ID                  uuid.UUID `json:"id"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	Email               *string   `json:"email,omitempty"`
	Phone               *string   `json:"phone,omitempty"`
	Type                string    `json:"type"`
	DietaryRequirements *string   `json:"dietary_requirements,omitempty"`
	AccessibilityNeeds  *string   `json:"accessibility_needs,omitempty"`
}

type BookingFilter struct {
	Status   *booking.Status
	TourID   *uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time
}

//go:generate mockgen -destination=../../../tests/mock/queries/queries.go -package=queriesmock tourbook/internal/usecase/queries AvailabilityQueries,BookingQueries,BookingReadStore,StatsQueries,StatsReadStore

type BookingReadStore interface {
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*BookingView, error)
	FindPage(ctx context.Context, orgID uuid.UUID, filter BookingFilter, after *PageKey, limit int) ([]*BookingView, error)
}

// PageKey is the last row of the previous page.
type PageKey struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

type BookingQueries interface {
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, orgID uuid.UUID, filter BookingFilter, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, orgID, id uuid.UUID) (*BookingView, error) {
	return q.store.FindByID(ctx, orgID, id)
}

func (q *bookingQueriesImpl) List(ctx context.Context, orgID uuid.UUID, filter BookingFilter, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error) {
	limit = ValidateLimit(limit)

	var after *PageKey
	if cursor != nil && cursor.After != "" {
		createdAt, id, err := DecodeAfterCursor(cursor.After)
		if err != nil {
			return nil, nil, err
		}
		after = &PageKey{CreatedAt: createdAt, ID: id}
	}

	rows, err := q.store.FindPage(ctx, orgID, filter, after, limit+1)
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
