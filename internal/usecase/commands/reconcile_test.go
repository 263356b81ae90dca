//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"tourbook/internal/pkg/clock"
	"tourbook/internal/usecase/commands"
	"tourbook/internal/usecase/shared"
	sharedmock "tourbook/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCapacityReconciler_Run(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := shared.NewAvailability(clock.NewMockClock(fixtureNow), time.UTC)

	testCases := []struct {
		name          string
		setupMock     func(*sharedmock.MockScheduleReconciler)
		expectedCount int
		expectedError bool
	}{
		{
			name: "success: reports corrected schedules",
			setupMock: func(m *sharedmock.MockScheduleReconciler) {
				m.EXPECT().ReconcileBookedCounts(gomock.Any(), fixtureNow).Return([]shared.ScheduleDrift{
					{ScheduleID: uuid.New(), OrganizationID: uuid.New(), Recorded: 5, Actual: 3},
					{ScheduleID: uuid.New(), OrganizationID: uuid.New(), Recorded: 0, Actual: 2},
				}, nil)
			},
			expectedCount: 2,
		},
		{
			name: "success: nothing drifted",
			setupMock: func(m *sharedmock.MockScheduleReconciler) {
				m.EXPECT().ReconcileBookedCounts(gomock.Any(), fixtureNow).Return(nil, nil)
			},
		},
		{
			name: "error: store failure",
			setupMock: func(m *sharedmock.MockScheduleReconciler) {
				m.EXPECT().ReconcileBookedCounts(gomock.Any(), fixtureNow).Return(nil, errors.New("database connection error"))
			},
			expectedError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := sharedmock.NewMockScheduleReconciler(ctrl)
			tc.setupMock(store)

			n, err := commands.NewCapacityReconciler(store, engine, logger).Run(ctx)

			if tc.expectedError {
				require.Error(t, err)
				assert.Zero(t, n)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedCount, n)
		})
	}
}
