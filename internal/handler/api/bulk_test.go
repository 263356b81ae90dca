//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"

	"tourbook/internal/handler/api"
	"tourbook/internal/pkg/errs"
	"tourbook/internal/usecase/commands"
	"tourbook/tests/common/httptest"
	commandsmock "tourbook/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BulkHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBulkCommands
	orgID        uuid.UUID
	ids          []uuid.UUID
}

func (s *BulkHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBulkCommands(s.mockCtrl)
	handler := api.NewBulkHandler(s.mockCommands)
	s.orgID = uuid.New()
	s.ids = []uuid.UUID{uuid.New(), uuid.New()}

	g := s.router.Group("/bookings/bulk", fakeAuth(s.orgID))
	g.POST("/confirm", handler.Confirm)
	g.POST("/cancel", handler.Cancel)
	g.POST("/payment-status", handler.UpdatePaymentStatus)
	g.POST("/reschedule", handler.Reschedule)
}

func (s *BulkHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBulkHandlerSuite(t *testing.T) {
	suite.Run(t, new(BulkHandlerTestSuite))
}

func (s *BulkHandlerTestSuite) partial() *commands.BulkResult {
	return &commands.BulkResult{
		SucceededIDs: []uuid.UUID{s.ids[0]},
		Errors:       []commands.BulkItemError{{ID: s.ids[1], Error: "Booking not found"}},
	}
}

type bulkBody struct {
	Succeeded []string `json:"succeeded"`
	Errors    []struct {
		ID    string `json:"id"`
		Error string `json:"error"`
	} `json:"errors"`
}

func (s *BulkHandlerTestSuite) TestConfirm() {
	s.Run("success: reports each item", func() {
		s.mockCommands.EXPECT().BulkConfirm(gomock.Any(), s.orgID, s.ids).Return(s.partial(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/bulk/confirm",
			map[string]any{"booking_ids": s.ids}, bearer)

		var body bulkBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal([]string{s.ids[0].String()}, body.Succeeded)
		s.Require().Len(body.Errors, 1)
		s.Equal(s.ids[1].String(), body.Errors[0].ID)
		s.Equal("Booking not found", body.Errors[0].Error)
	})

	s.Run("error: empty selection returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/bulk/confirm",
			map[string]any{"booking_ids": []string{}}, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: oversized batch returns 422", func() {
		s.mockCommands.EXPECT().BulkConfirm(gomock.Any(), s.orgID, s.ids).
			Return(nil, errs.Validation("Cannot process more than 1 bookings at once")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/bulk/confirm",
			map[string]any{"booking_ids": s.ids}, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Cannot process more than 1 bookings at once")
	})

	s.Run("error: missing token returns 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/bulk/confirm",
			map[string]any{"booking_ids": s.ids}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

func (s *BulkHandlerTestSuite) TestCancel() {
	s.Run("success: forwards the reason", func() {
		s.mockCommands.EXPECT().BulkCancel(gomock.Any(), s.orgID, s.ids, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, _ []uuid.UUID, reason *string) (*commands.BulkResult, error) {
				s.Require().NotNil(reason)
				s.Equal("storm", *reason)
				return &commands.BulkResult{SucceededIDs: s.ids, Errors: []commands.BulkItemError{}}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/bulk/cancel",
			map[string]any{"booking_ids": s.ids, "reason": "storm"}, bearer)

		var body bulkBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Succeeded, 2)
		s.Empty(body.Errors)
	})
}

func (s *BulkHandlerTestSuite) TestUpdatePaymentStatus() {
	s.Run("success", func() {
		s.mockCommands.EXPECT().BulkUpdatePaymentStatus(gomock.Any(), s.orgID, s.ids, "refunded").
			Return(s.partial(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/bulk/payment-status",
			map[string]any{"booking_ids": s.ids, "payment_status": "refunded"}, bearer)

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: missing status returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/bulk/payment-status",
			map[string]any{"booking_ids": s.ids}, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *BulkHandlerTestSuite) TestReschedule() {
	scheduleID := uuid.New()
	tourID := uuid.New()

	s.Run("success: maps every item to a target", func() {
		s.mockCommands.EXPECT().BulkReschedule(gomock.Any(), s.orgID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, items []commands.BulkRescheduleItem) (*commands.BulkResult, error) {
				s.Require().Len(items, 2)
				s.Equal(s.ids[0], items[0].BookingID)
				s.Require().NotNil(items[0].Target.ScheduleID)
				s.Equal(scheduleID, *items[0].Target.ScheduleID)
				s.Equal(s.ids[1], items[1].BookingID)
				s.Require().NotNil(items[1].Target.BookingDate)
				s.Equal("2026-07-01", items[1].Target.BookingDate.Format("2006-01-02"))
				return s.partial(), nil
			}).Times(1)

		body := map[string]any{"items": []map[string]any{
			{"booking_id": s.ids[0], "schedule_id": scheduleID},
			{"booking_id": s.ids[1], "tour_id": tourID, "booking_date": "2026-07-01", "booking_time": "14:00"},
		}}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/bulk/reschedule", body, bearer)

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: item without booking id returns 400", func() {
		body := map[string]any{"items": []map[string]any{{"schedule_id": scheduleID}}}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/bulk/reschedule", body, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: bad date returns 422 before any move", func() {
		body := map[string]any{"items": []map[string]any{
			{"booking_id": s.ids[0], "tour_id": tourID, "booking_date": "tomorrow", "booking_time": "09:00"},
		}}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/bulk/reschedule", body, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid date: tomorrow")
	})
}
