//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"tourbook/internal/domain/availability"
	"tourbook/internal/handler/api"
	"tourbook/internal/pkg/dates"
	"tourbook/internal/pkg/errs"
	"tourbook/internal/usecase/queries"
	"tourbook/tests/common/httptest"
	queriesmock "tourbook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
	orgID       uuid.UUID
	tourID      uuid.UUID
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	handler := api.NewAvailabilityHandler(s.mockQueries)
	s.orgID = uuid.New()
	s.tourID = uuid.New()

	auth := fakeAuth(s.orgID)
	s.router.GET("/availability/slot", auth, handler.CheckSlot)
	s.router.GET("/availability/heatmap", auth, handler.Heatmap)
	s.router.GET("/tours/:id/availability", auth, handler.Month)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestCheckSlot() {
	base := "/availability/slot?tour_id=" + s.tourID.String() + "&date=2026-06-15&time=09:00"

	s.Run("success: available slot has no reason", func() {
		s.mockQueries.EXPECT().CheckSlotAvailability(gomock.Any(), s.orgID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, req queries.SlotAvailabilityRequest) (*availability.SlotCheck, error) {
				s.Equal(s.tourID, req.TourID)
				s.True(dates.New(2026, 6, 15).Equal(req.Date))
				s.Equal("09:00", req.Time)
				s.Equal(1, req.RequestedSpots)
				s.Nil(req.ExcludeBookingID)
				return &availability.SlotCheck{Available: true, SpotsRemaining: 6, MaxCapacity: 10, BookedCount: 4}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base, nil, bearer)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(true, body["available"])
		s.Equal(float64(6), body["spots_remaining"])
		s.NotContains(body, "reason")
		s.NotContains(body, "message")
	})

	s.Run("success: shortage carries reason and message", func() {
		exclude := uuid.New()
		s.mockQueries.EXPECT().CheckSlotAvailability(gomock.Any(), s.orgID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, req queries.SlotAvailabilityRequest) (*availability.SlotCheck, error) {
				s.Equal(4, req.RequestedSpots)
				s.Require().NotNil(req.ExcludeBookingID)
				s.Equal(exclude, *req.ExcludeBookingID)
				return &availability.SlotCheck{
					SpotsRemaining: 2, MaxCapacity: 10, BookedCount: 8,
					Reason: availability.ReasonInsufficientCapacity,
				}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			base+"&spots=4&exclude_booking_id="+exclude.String(), nil, bearer)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(false, body["available"])
		s.Equal("insufficient_capacity", body["reason"])
		s.Equal("Only 2 spots remaining", body["message"])
	})

	invalid := []struct {
		name       string
		path       string
		expectCode int
	}{
		{name: "missing tour", path: "/availability/slot?date=2026-06-15&time=09:00", expectCode: http.StatusBadRequest},
		{name: "tour id not a uuid", path: "/availability/slot?tour_id=x&date=2026-06-15&time=09:00", expectCode: http.StatusBadRequest},
		{name: "spots below one", path: base + "&spots=-1", expectCode: http.StatusBadRequest},
		{name: "date not a date", path: "/availability/slot?tour_id=" + s.tourID.String() + "&date=15-06-2026&time=09:00", expectCode: http.StatusUnprocessableEntity},
	}
	for _, tc := range invalid {
		s.Run("error: "+tc.name, func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, tc.path, nil, bearer)
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
		})
	}

	s.Run("error: unknown tour returns 404", func() {
		s.mockQueries.EXPECT().CheckSlotAvailability(gomock.Any(), s.orgID, gomock.Any()).
			Return(nil, errs.NotFound("tour", s.tourID)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base, nil, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "tour not found")
	})
}

func (s *AvailabilityHandlerTestSuite) TestMonth() {
	url := "/tours/" + s.tourID.String() + "/availability?year=2026&month=6"
	reason := "festival"

	s.Run("success: renders days and slots", func() {
		days := []availability.DateAvailability{
			{Date: dates.New(2026, 6, 19), Slots: []availability.TimeSlot{
				{Time: availability.MustClockTime("09:00"), SpotsRemaining: 1, MaxCapacity: 5, BookedCount: 4, Available: true, AlmostFull: true},
			}},
			{Date: dates.New(2026, 6, 20), IsBlackout: true, BlackoutReason: &reason, Slots: []availability.TimeSlot{}},
		}
		s.mockQueries.EXPECT().GetAvailableDatesForMonth(gomock.Any(), s.orgID, s.tourID, 2026, time.June).
			Return(days, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, bearer)

		var body []map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 2)
		s.Equal("2026-06-19", body[0]["date"])
		slot := body[0]["slots"].([]any)[0].(map[string]any)
		s.Equal("09:00", slot["time"])
		s.Equal(true, slot["almost_full"])
		s.Equal(true, body[1]["is_blackout"])
		s.Equal("festival", body[1]["blackout_reason"])
	})

	s.Run("error: invalid tour id returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/tours/abc/availability?year=2026&month=6", nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid tour id")
	})

	s.Run("error: missing month returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/tours/"+s.tourID.String()+"/availability?year=2026", nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})

	s.Run("error: month out of range returns 422", func() {
		s.mockQueries.EXPECT().GetAvailableDatesForMonth(gomock.Any(), s.orgID, s.tourID, 2026, time.Month(13)).
			Return(nil, errs.Validation("Invalid month: 13")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/tours/"+s.tourID.String()+"/availability?year=2026&month=13", nil, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid month")
	})
}

func (s *AvailabilityHandlerTestSuite) TestHeatmap() {
	other := uuid.New()

	s.Run("success: parses tour ids and renders levels", func() {
		s.mockQueries.EXPECT().GetCapacityHeatmap(gomock.Any(), s.orgID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, req queries.HeatmapRequest) ([]availability.HeatmapEntry, error) {
				s.True(dates.New(2026, 6, 1).Equal(req.From))
				s.True(dates.New(2026, 6, 7).Equal(req.To))
				s.Equal([]uuid.UUID{s.tourID, other}, req.TourIDs)
				return []availability.HeatmapEntry{{
					TourID: s.tourID, Date: dates.New(2026, 6, 2), Time: availability.MustClockTime("14:00"),
					BookedCount: 5, MaxCapacity: 10, Utilization: 0.5, Level: availability.LevelModerate,
				}}, nil
			}).Times(1)

		path := "/availability/heatmap?from=2026-06-01&to=2026-06-07&tour_ids=" + s.tourID.String() + ",%20" + other.String()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, bearer)

		var body []map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal("moderate", body[0]["level"])
		s.Equal(0.5, body[0]["utilization"])
		s.Equal("14:00", body[0]["time"])
	})

	s.Run("success: no tour ids means every active tour", func() {
		s.mockQueries.EXPECT().GetCapacityHeatmap(gomock.Any(), s.orgID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, req queries.HeatmapRequest) ([]availability.HeatmapEntry, error) {
				s.Empty(req.TourIDs)
				return []availability.HeatmapEntry{}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability/heatmap?from=2026-06-01&to=2026-06-07", nil, bearer)

		var body []map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body)
	})

	s.Run("error: malformed tour id returns 422", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability/heatmap?from=2026-06-01&to=2026-06-07&tour_ids=nope", nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid tour id: nope")
	})

	s.Run("error: range too wide returns 422", func() {
		s.mockQueries.EXPECT().GetCapacityHeatmap(gomock.Any(), s.orgID, gomock.Any()).
			Return(nil, errs.Validation("Date range cannot exceed 93 days")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability/heatmap?from=2026-01-01&to=2026-12-31", nil, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Date range cannot exceed 93 days")
	})
}
