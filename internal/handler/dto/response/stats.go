package response

import (
	"tourbook/internal/usecase/queries"
)

type NeedsActionItemResponse struct {
	BookingID         string `json:"booking_id"`
	ReferenceNumber   string `json:"reference_number"`
	CustomerName      string `json:"customer_name"`
	TourName          string `json:"tour_name"`
	TourAt            int64  `json:"tour_at"`
	Status            string `json:"status"`
	PaymentStatus     string `json:"payment_status"`
	TotalParticipants int    `json:"total_participants"`
	Tier              string `json:"tier"`
}

type NeedsActionResponse struct {
	Items  []NeedsActionItemResponse `json:"items"`
	Counts map[string]int            `json:"counts"`
}

func FromNeedsAction(r *queries.NeedsActionReport) *NeedsActionResponse {
	res := &NeedsActionResponse{
		Items:  make([]NeedsActionItemResponse, len(r.Items)),
		Counts: make(map[string]int, len(r.Counts)),
	}
	for i, it := range r.Items {
		res.Items[i] = NeedsActionItemResponse{
			BookingID:         it.BookingID.String(),
			ReferenceNumber:   it.ReferenceNumber,
			CustomerName:      it.CustomerName,
			TourName:          it.TourName,
			TourAt:            it.TourAt.Unix(),
			Status:            it.Status,
			PaymentStatus:     it.PaymentStatus,
			TotalParticipants: it.TotalParticipants,
			Tier:              string(it.Tier),
		}
	}
	for tier, n := range r.Counts {
		res.Counts[string(tier)] = n
	}
	return res
}
