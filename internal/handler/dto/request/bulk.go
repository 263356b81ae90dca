package request

import (
	"tourbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type BulkIDsRequest struct {
	BookingIDs []uuid.UUID `json:"booking_ids" binding:"required,min=1"`
}

type BulkCancelRequest struct {
	BookingIDs []uuid.UUID `json:"booking_ids" binding:"required,min=1"`
	Reason     *string     `json:"reason,omitempty" binding:"omitempty,max=500"`
}

type BulkPaymentRequest struct {
	BookingIDs    []uuid.UUID `json:"booking_ids" binding:"required,min=1"`
	PaymentStatus string      `json:"payment_status" binding:"required"`
}

type BulkRescheduleItemRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	RescheduleBookingRequest
}

type BulkRescheduleRequest struct {
	Items []BulkRescheduleItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (r BulkRescheduleRequest) ToCommand() ([]commands.BulkRescheduleItem, error) {
	items := make([]commands.BulkRescheduleItem, len(r.Items))
	for i, it := range r.Items {
		target, err := it.ToCommand()
		if err != nil {
			return nil, err
		}
		items[i] = commands.BulkRescheduleItem{BookingID: it.BookingID, Target: target}
	}
	return items, nil
}
