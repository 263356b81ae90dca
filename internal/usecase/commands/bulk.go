package commands

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"tourbook/internal/domain/booking"
	"tourbook/internal/pkg/errs"
	"tourbook/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	msgBookingNotFound = "Booking not found"
	msgInternalError   = "internal error"
)

type BulkResult struct {
	SucceededIDs []uuid.UUID     `json:"succeeded_ids"`
	Errors       []BulkItemError `json:"errors"`
}

type BulkItemError struct {
	ID    uuid.UUID `json:"id"`
	Error string    `json:"error"`
}

type BulkRescheduleItem struct {
	BookingID uuid.UUID
	Target    RescheduleRequest
}

type BulkCommands interface {
	BulkConfirm(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) (*BulkResult, error)
	BulkCancel(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID, reason *string) (*BulkResult, error)
	BulkUpdatePaymentStatus(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID, status string) (*BulkResult, error)
	BulkReschedule(ctx context.Context, orgID uuid.UUID, items []BulkRescheduleItem) (*BulkResult, error)
}

type BulkOptions struct {
	MaxItems              int
	RescheduleConcurrency int
}

type bulkCommandsImpl struct {
	uow      shared.UnitOfWork
	engine   *shared.Availability
	ledger   *CapacityLedger
	staffing *StaffingDispatcher
	bookings BookingCommands
	logger   *slog.Logger
	opts     BulkOptions
}

func NewBulkCommands(
	uow shared.UnitOfWork,
	engine *shared.Availability,
	ledger *CapacityLedger,
	staffing *StaffingDispatcher,
	bookings BookingCommands,
	logger *slog.Logger,
	opts BulkOptions,
) BulkCommands {
	if opts.MaxItems <= 0 {
		opts.MaxItems = 100
	}
	if opts.RescheduleConcurrency <= 0 {
		opts.RescheduleConcurrency = 8
	}
	return &bulkCommandsImpl{
		uow:      uow,
		engine:   engine,
		ledger:   ledger,
		staffing: staffing,
		bookings: bookings,
		logger:   logger,
		opts:     opts,
	}
}

func (uc *bulkCommandsImpl) BulkConfirm(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) (*BulkResult, error) {
	var at time.Time
	result, _, err := uc.applyBatch(ctx, orgID, ids, "bulk confirm",
		func(b *booking.Booking, now time.Time) error {
			at = now
			return b.Confirm(now)
		},
		func(ctx context.Context, tx shared.Tx, valid []*booking.Booking) error {
			return tx.Bookings().UpdateStatuses(ctx, orgID, idsOf(valid), shared.StatusChange{Status: booking.StatusConfirmed, At: at})
		},
	)
	return result, err
}

func (uc *bulkCommandsImpl) BulkCancel(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID, reason *string) (*BulkResult, error) {
	var at time.Time
	result, cancelled, err := uc.applyBatch(ctx, orgID, ids, "bulk cancel",
		func(b *booking.Booking, now time.Time) error {
			at = now
			return b.Cancel(reason, now)
		},
		func(ctx context.Context, tx shared.Tx, valid []*booking.Booking) error {
			change := shared.StatusChange{Status: booking.StatusCancelled, At: at, CancellationReason: reason}
			if err := tx.Bookings().UpdateStatuses(ctx, orgID, idsOf(valid), change); err != nil {
				return err
			}
			return uc.releaseBySchedule(ctx, tx, orgID, valid)
		},
	)
	if err != nil {
		return nil, err
	}

	var touched []uuid.UUID
	for _, b := range cancelled {
		if id := b.ScheduleID(); id != nil {
			touched = append(touched, *id)
		}
	}
	uc.staffing.Dispatch(ctx, orgID, touched...)
	return result, nil
}

func (uc *bulkCommandsImpl) BulkUpdatePaymentStatus(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID, status string) (*BulkResult, error) {
	next, err := booking.ParsePaymentStatus(status)
	if err != nil {
		return nil, err
	}
	var at time.Time
	result, _, err := uc.applyBatch(ctx, orgID, ids, "bulk payment status",
		func(b *booking.Booking, now time.Time) error {
			at = now
			return b.SetPaymentStatus(next, now)
		},
		func(ctx context.Context, tx shared.Tx, valid []*booking.Booking) error {
			return tx.Bookings().UpdatePaymentStatuses(ctx, orgID, idsOf(valid), next, at)
		},
	)
	return result, err
}

// releaseBySchedule gives back seats per schedule in id order so concurrent
// batches lock schedules in the same sequence.
func (uc *bulkCommandsImpl) releaseBySchedule(ctx context.Context, tx shared.Tx, orgID uuid.UUID, cancelled []*booking.Booking) error {
	spots := make(map[uuid.UUID]int)
	for _, b := range cancelled {
		if id := b.ScheduleID(); id != nil {
			spots[*id] += b.TotalParticipants()
		}
	}
	ids := make([]uuid.UUID, 0, len(spots))
	for id := range spots {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	for _, id := range ids {
		if err := uc.ledger.Release(ctx, tx, orgID, booking.Materialized{ScheduleID: id}, spots[id]); err != nil {
			return err
		}
	}
	return nil
}

// applyBatch loads all targets in one query, applies the single-item rule to
// each, and persists the valid ones with one batched write. It returns the
// bookings that were written.
func (uc *bulkCommandsImpl) applyBatch(
	ctx context.Context,
	orgID uuid.UUID,
	ids []uuid.UUID,
	op string,
	apply func(*booking.Booking, time.Time) error,
	persist func(context.Context, shared.Tx, []*booking.Booking) error,
) (*BulkResult, []*booking.Booking, error) {
	ids, err := uc.normalizeIDs(ids)
	if err != nil {
		return nil, nil, err
	}

	var result *BulkResult
	var valid []*booking.Booking
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = &BulkResult{SucceededIDs: []uuid.UUID{}, Errors: []BulkItemError{}}
		valid = valid[:0]

		found, ferr := tx.Bookings().FindManyForUpdate(ctx, orgID, ids)
		if ferr != nil {
			return ferr
		}
		byID := make(map[uuid.UUID]*booking.Booking, len(found))
		for _, b := range found {
			byID[b.ID()] = b
		}

		now := uc.engine.Now()
		for _, id := range ids {
			b, ok := byID[id]
			if !ok {
				result.Errors = append(result.Errors, BulkItemError{ID: id, Error: msgBookingNotFound})
				continue
			}
			if aerr := apply(b, now); aerr != nil {
				result.Errors = append(result.Errors, BulkItemError{ID: id, Error: uc.itemMessage(ctx, id, aerr)})
				continue
			}
			valid = append(valid, b)
			result.SucceededIDs = append(result.SucceededIDs, id)
		}

		if len(valid) == 0 {
			return nil
		}
		return persist(ctx, tx, valid)
	})
	if err != nil {
		return nil, nil, err
	}

	uc.logger.InfoContext(ctx, op,
		slog.String("organization_id", orgID.String()),
		slog.Int("requested", len(ids)),
		slog.Any("succeeded_ids", result.SucceededIDs),
		slog.Int("failed", len(result.Errors)),
	)
	return result, valid, nil
}

func (uc *bulkCommandsImpl) BulkReschedule(ctx context.Context, orgID uuid.UUID, items []BulkRescheduleItem) (*BulkResult, error) {
	if err := uc.checkSize(len(items)); err != nil {
		return nil, err
	}

	// each goroutine owns one index of outcomes
	outcomes := make([]error, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.opts.RescheduleConcurrency)

	for i, item := range items {
		if _, dup := seen[item.BookingID]; dup {
			outcomes[i] = errs.Validation("Booking appears more than once in the request")
			continue
		}
		seen[item.BookingID] = struct{}{}

		g.Go(func() error {
			_, outcomes[i] = uc.bookings.Reschedule(gctx, orgID, item.BookingID, item.Target)
			// every item settles on its own; never cancel siblings
			return nil
		})
	}
	_ = g.Wait()

	result := &BulkResult{SucceededIDs: []uuid.UUID{}, Errors: []BulkItemError{}}
	for i, item := range items {
		if outcomes[i] == nil {
			result.SucceededIDs = append(result.SucceededIDs, item.BookingID)
			continue
		}
		result.Errors = append(result.Errors, BulkItemError{ID: item.BookingID, Error: uc.itemMessage(ctx, item.BookingID, outcomes[i])})
	}

	uc.logger.InfoContext(ctx, "bulk reschedule",
		slog.String("organization_id", orgID.String()),
		slog.Int("requested", len(items)),
		slog.Any("succeeded_ids", result.SucceededIDs),
		slog.Int("failed", len(result.Errors)),
	)
	return result, nil
}

func (uc *bulkCommandsImpl) normalizeIDs(ids []uuid.UUID) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, uc.checkSize(len(out))
}

func (uc *bulkCommandsImpl) checkSize(n int) error {
	if n == 0 {
		return errs.Validation("No bookings selected")
	}
	if n > uc.opts.MaxItems {
		return errs.Validation("Cannot process more than %d bookings at once", uc.opts.MaxItems)
	}
	return nil
}

// itemMessage keeps domain messages and hides everything else.
func (uc *bulkCommandsImpl) itemMessage(ctx context.Context, id uuid.UUID, err error) string {
	// a missing reschedule target keeps its own entity in the message
	var nf *errs.NotFoundError
	if errs.As(err, &nf) && nf.Entity == "booking" {
		return msgBookingNotFound
	}
	if msg := errs.UserMessage(err); msg != "" {
		return msg
	}
	uc.logger.ErrorContext(ctx, "bulk item failed",
		slog.String("booking_id", id.String()),
		slog.String("error", err.Error()),
	)
	return msgInternalError
}

func idsOf(bookings []*booking.Booking) []uuid.UUID {
	out := make([]uuid.UUID, len(bookings))
	for i, b := range bookings {
		out[i] = b.ID()
	}
	return out
}
