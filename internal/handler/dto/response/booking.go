package response

import (
	"time"

	"tourbook/internal/pkg/dates"
	"tourbook/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID                 string                `json:"id" copier:"-"`
	ReferenceNumber    string                `json:"reference_number"`
	TourID             string                `json:"tour_id"`
	TourName           string                `json:"tour_name"`
	CustomerID         string                `json:"customer_id"`
	CustomerName       string                `json:"customer_name"`
	CustomerEmail      string                `json:"customer_email"`
	BookingDate        string                `json:"booking_date" copier:"-"`
	BookingTime        string                `json:"booking_time"`
	ScheduleID         *string               `json:"schedule_id,omitempty" copier:"-"`
	Adults             int                   `json:"adults"`
	Children           int                   `json:"children"`
	Infants            int                   `json:"infants"`
	TotalParticipants  int                   `json:"total_participants"`
	SubtotalCents      int64                 `json:"subtotal_cents"`
	DiscountCents      int64                 `json:"discount_cents"`
	TaxCents           int64                 `json:"tax_cents"`
	TotalCents         int64                 `json:"total_cents"`
	Currency           string                `json:"currency"`
	Status             string                `json:"status"`
	PaymentStatus      string                `json:"payment_status"`
	ConfirmedAt        *int64                `json:"confirmed_at,omitempty" copier:"-"`
	CancelledAt        *int64                `json:"cancelled_at,omitempty" copier:"-"`
	CancellationReason *string               `json:"cancellation_reason,omitempty"`
	CompletedAt        *int64                `json:"completed_at,omitempty" copier:"-"`
	NoShowAt           *int64                `json:"no_show_at,omitempty" copier:"-"`
	PaidAt             *int64                `json:"paid_at,omitempty" copier:"-"`
	SpecialRequests    *string               `json:"special_requests,omitempty"`
	InternalNotes      *string               `json:"internal_notes,omitempty"`
	Participants       []ParticipantResponse `json:"participants" copier:"-"`
	CreatedAt          int64                 `json:"created_at" copier:"-"`
	UpdatedAt          int64                 `json:"updated_at" copier:"-"`
}

type ParticipantResponse struct {
	ID                  string  `json:"id" copier:"-"`
	FirstName           string  `json:"first_name"`
	LastName            string  `json:"last_name"`
	Email               *string `json:"email,omitempty"`
	Phone               *string `json:"phone,omitempty"`
	Type                string  `json:"type"`
	DietaryRequirements *string `json:"dietary_requirements,omitempty"`
	AccessibilityNeeds  *string `json:"accessibility_needs,omitempty"`
}

// FromBookingView copies same-typed fields by name and formats the rest.
func FromBookingView(v *queries.BookingView) *BookingResponse {
	res := &BookingResponse{}
	_ = copier.Copy(res, v)
	res.ID = v.ID.String()
	res.TourID = v.Tour.ID.String()
	res.TourName = v.Tour.Name
	res.CustomerID = v.Customer.ID.String()
	res.CustomerName = v.Customer.Name
	res.CustomerEmail = v.Customer.Email
	res.BookingDate = dates.Format(v.BookingDate)
	if v.ScheduleID != nil {
		id := v.ScheduleID.String()
		res.ScheduleID = &id
	}
	res.ConfirmedAt = unixPtr(v.ConfirmedAt)
	res.CancelledAt = unixPtr(v.CancelledAt)
	res.CompletedAt = unixPtr(v.CompletedAt)
	res.NoShowAt = unixPtr(v.NoShowAt)
	res.PaidAt = unixPtr(v.PaidAt)
	res.CreatedAt = v.CreatedAt.Unix()
	res.UpdatedAt = v.UpdatedAt.Unix()

	res.Participants = make([]ParticipantResponse, len(v.Participants))
	for i := range v.Participants {
		_ = copier.Copy(&res.Participants[i], &v.Participants[i])
		res.Participants[i].ID = v.Participants[i].ID.String()
	}
	return res
}

func unixPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	u := t.Unix()
	return &u
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	res := make([]*BookingResponse, len(views))
	for i, v := range views {
		res[i] = FromBookingView(v)
	}
	return res
}

type BookingListResponse struct {
	Items []*BookingResponse `json:"items"`
	Next  *string            `json:"next,omitempty"`
}

func FromBookingPage(views []*queries.BookingView, next *queries.Cursor) *BookingListResponse {
	res := &BookingListResponse{Items: FromBookingViews(views)}
	if next != nil {
		res.Next = &next.After
	}
	return res
}
