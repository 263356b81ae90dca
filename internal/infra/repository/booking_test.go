//go:build unit

package repository_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tourbook/internal/domain/booking"
	"tourbook/internal/infra"
	"tourbook/internal/infra/repository"
	"tourbook/internal/pkg/errs"
	"tourbook/internal/usecase/shared"
	"tourbook/tests/common/builder"
	dbmock "tourbook/tests/mock/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// scanRow is a pgx.Row whose Scan is supplied by the test.
type scanRow func(dest ...any) error

func (f scanRow) Scan(dest ...any) error { return f(dest...) }

// =============================================================================
// Create
// =============================================================================

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		row        func(id uuid.UUID) pgx.Row
		expectKind infra.RepositoryErrorKind
		noRow      bool
	}{
		{
			name: "success: booking inserted",
			row: func(id uuid.UUID) pgx.Row {
				return scanRow(func(dest ...any) error {
					*dest[0].(*uuid.UUID) = id
					return nil
				})
			},
		},
		{
			name: "error: duplicate reference number",
			row: func(uuid.UUID) pgx.Row {
				return scanRow(func(...any) error {
					return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
				})
			},
			expectKind: infra.KindDuplicateKey,
		},
		{
			name: "error: unknown customer",
			row: func(uuid.UUID) pgx.Row {
				return scanRow(func(...any) error {
					return &pgconn.PgError{Code: "23503", Message: "insert violates foreign key constraint"}
				})
			},
			expectKind: infra.KindForeignKeyViolated,
		},
		{
			name: "error: insert returned nothing",
			row: func(uuid.UUID) pgx.Row {
				return scanRow(func(...any) error { return pgx.ErrNoRows })
			},
			noRow: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockDB := dbmock.NewMockDBTX(ctrl)
			b := builder.NewBookingBuilder().BuildDomain()

			mockDB.EXPECT().QueryRow(ctx, gomock.Any(), gomock.Any()).Return(tc.row(b.ID()))

			err := repository.NewBookingRepository(mockDB).Create(ctx, b)

			switch {
			case tc.noRow:
				assert.True(t, errs.Is(err, errs.ErrRowNotReturned))
			case tc.expectKind != "":
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, err, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingRepository_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("error: row vanished", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := dbmock.NewMockDBTX(ctrl)
		mockDB.EXPECT().Exec(ctx, gomock.Any(), gomock.Any()).Return(pgconn.NewCommandTag("UPDATE 0"), nil)

		err := repository.NewBookingRepository(mockDB).Save(ctx, builder.NewBookingBuilder().BuildDomain())
		assert.True(t, errs.IsNotFound(err))
	})

	t.Run("success: one row updated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := dbmock.NewMockDBTX(ctrl)
		mockDB.EXPECT().Exec(ctx, gomock.Any(), gomock.Any()).Return(pgconn.NewCommandTag("UPDATE 1"), nil)

		assert.NoError(t, repository.NewBookingRepository(mockDB).Save(ctx, builder.NewBookingBuilder().BuildDomain()))
	})
}

func TestBookingRepository_FindForUpdate_NotFound(t *testing.T) {
	ctx := context.Background()
	orgID, id := uuid.New(), uuid.New()

	ctrl := gomock.NewController(t)
	mockDB := dbmock.NewMockDBTX(ctrl)
	mockDB.EXPECT().QueryRow(ctx, gomock.Any(), orgID, id).Return(scanRow(func(...any) error { return pgx.ErrNoRows }))

	_, err := repository.NewBookingRepository(mockDB).FindForUpdate(ctx, orgID, id)
	assert.True(t, errs.IsNotFound(err))
}

// =============================================================================
// Batched writes
// =============================================================================

func TestBookingRepository_UpdateStatuses(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	at := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("success: one statement for the batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := dbmock.NewMockDBTX(ctrl)
		mockDB.EXPECT().Exec(ctx, gomock.Any(), orgID, ids, "confirmed", at, gomock.Any()).
			Return(pgconn.NewCommandTag("UPDATE 2"), nil).Times(1)

		err := repository.NewBookingRepository(mockDB).UpdateStatuses(ctx, orgID, ids, shared.StatusChange{Status: booking.StatusConfirmed, At: at})
		assert.NoError(t, err)
	})

	t.Run("success: empty batch touches nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := dbmock.NewMockDBTX(ctrl)

		err := repository.NewBookingRepository(mockDB).UpdateStatuses(ctx, orgID, nil, shared.StatusChange{Status: booking.StatusConfirmed, At: at})
		assert.NoError(t, err)
	})

	t.Run("error: status without a timestamp column", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := dbmock.NewMockDBTX(ctrl)

		err := repository.NewBookingRepository(mockDB).UpdateStatuses(ctx, orgID, ids, shared.StatusChange{Status: booking.StatusPending, At: at})
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("error: database error occurs", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := dbmock.NewMockDBTX(ctrl)
		mockDB.EXPECT().Exec(ctx, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgconn.CommandTag{}, errors.New("database connection error"))

		err := repository.NewBookingRepository(mockDB).UpdateStatuses(ctx, orgID, ids, shared.StatusChange{Status: booking.StatusCancelled, At: at})
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestBookingRepository_UpdatePaymentStatuses(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	ids := []uuid.UUID{uuid.New()}
	at := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	mockDB := dbmock.NewMockDBTX(ctrl)
	mockDB.EXPECT().Exec(ctx, gomock.Any(), orgID, ids, "paid", at).
		DoAndReturn(func(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
			// bookings already paid keep their original paid_at
			assert.Contains(t, strings.Join(strings.Fields(sql), " "),
				"paid_at = CASE WHEN $3 = 'paid' AND payment_status <> 'paid' THEN $4 ELSE paid_at END")
			return pgconn.NewCommandTag("UPDATE 1"), nil
		})

	assert.NoError(t, repository.NewBookingRepository(mockDB).UpdatePaymentStatuses(ctx, orgID, ids, booking.PaymentPaid, at))
}
