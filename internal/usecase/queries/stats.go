package queries

import (
	"context"
	"sort"
	"time"

	"tourbook/internal/domain/availability"
	"tourbook/internal/domain/booking"
	"tourbook/internal/domain/urgency"
	"tourbook/internal/pkg/dates"
	"tourbook/internal/pkg/errs"
	"tourbook/internal/usecase/shared"

	"github.com/google/uuid"
)

const needsActionHorizonDays = 30

// UrgencyCandidate is an upcoming booking still holding capacity.
type UrgencyCandidate struct {
	BookingID         uuid.UUID
	ReferenceNumber   string
	CustomerName      string
	TourName          string
	ScheduleStart     *time.Time
	BookingDate       time.Time
	BookingTime       string
	Status            booking.Status
	PaymentStatus     booking.PaymentStatus
	TotalParticipants int
}

type NeedsActionItem struct {
	BookingID         uuid.UUID    `json:"booking_id"`
	ReferenceNumber   string       `json:"reference_number"`
	CustomerName      string       `json:"customer_name"`
	TourName          string       `json:"tour_name"`
	TourAt            time.Time    `json:"tour_at"`
	Status            string       `json:"status"`
	PaymentStatus     string       `json:"payment_status"`
	TotalParticipants int          `json:"total_participants"`
	Tier              urgency.Tier `json:"tier"`
}

type NeedsActionReport struct {
	Items  []NeedsActionItem    `json:"items"`
	Counts map[urgency.Tier]int `json:"counts"`
}

type BookingSummary struct {
	Total             int   `json:"total"`
	Pending           int   `json:"pending"`
	Confirmed         int   `json:"confirmed"`
	Completed         int   `json:"completed"`
	Cancelled         int   `json:"cancelled"`
	NoShow            int   `json:"no_show"`
	Unpaid            int   `json:"unpaid"`
	TotalParticipants int   `json:"total_participants"`
	RevenueCents      int64 `json:"revenue_cents"`
}

type StatsReadStore interface {
	UpcomingActive(ctx context.Context, orgID uuid.UUID, from, to time.Time) ([]UrgencyCandidate, error)
	Summary(ctx context.Context, orgID uuid.UUID, from, to time.Time) (*BookingSummary, error)
}

type StatsQueries interface {
	NeedsAction(ctx context.Context, orgID uuid.UUID, limit int) (*NeedsActionReport, error)
	Summary(ctx context.Context, orgID uuid.UUID, from, to time.Time) (*BookingSummary, error)
}

type statsQueriesImpl struct {
	store  StatsReadStore
	engine *shared.Availability
}

func NewStatsQueries(store StatsReadStore, engine *shared.Availability) StatsQueries {
	return &statsQueriesImpl{store: store, engine: engine}
}

func (q *statsQueriesImpl) NeedsAction(ctx context.Context, orgID uuid.UUID, limit int) (*NeedsActionReport, error) {
	limit = ValidateLimit(limit)
	today := q.engine.Today()

	candidates, err := q.store.UpcomingActive(ctx, orgID, today, today.AddDate(0, 0, needsActionHorizonDays))
	if err != nil {
		return nil, err
	}

	now := q.engine.Now()
	loc := q.engine.Location()
	report := &NeedsActionReport{Items: []NeedsActionItem{}, Counts: map[urgency.Tier]int{}}
	for _, c := range candidates {
		in := urgency.Input{
			ScheduleStart: c.ScheduleStart,
			BookingDate:   &c.BookingDate,
			Status:        c.Status,
			PaymentStatus: c.PaymentStatus,
		}
		if at, perr := availability.ParseClockTime(c.BookingTime); perr == nil {
			in.BookingTime = &at
		}

		tier := urgency.Classify(in, now, loc)
		if tier == urgency.TierNone || tier == urgency.TierPast {
			continue
		}
		tourAt, _ := in.TourTime(loc)
		report.Counts[tier]++
		report.Items = append(report.Items, NeedsActionItem{
			BookingID:         c.BookingID,
			ReferenceNumber:   c.ReferenceNumber,
			CustomerName:      c.CustomerName,
			TourName:          c.TourName,
			TourAt:            tourAt,
			Status:            c.Status.String(),
			PaymentStatus:     c.PaymentStatus.String(),
			TotalParticipants: c.TotalParticipants,
			Tier:              tier,
		})
	}

	sort.SliceStable(report.Items, func(i, j int) bool {
		a, b := report.Items[i], report.Items[j]
		if a.Tier != b.Tier {
			return a.Tier.Severity() < b.Tier.Severity()
		}
		return a.TourAt.Before(b.TourAt)
	})
	if len(report.Items) > limit {
		report.Items = report.Items[:limit]
	}
	return report, nil
}

func (q *statsQueriesImpl) Summary(ctx context.Context, orgID uuid.UUID, from, to time.Time) (*BookingSummary, error) {
	from, to = dates.Of(from), dates.Of(to)
	if to.Before(from) {
		return nil, errs.Validation("End date must not be before start date")
	}
	return q.store.Summary(ctx, orgID, from, to)
}
