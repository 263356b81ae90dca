//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"tourbook/internal/handler/dto/response"
	"tourbook/internal/handler/middleware"
	"tourbook/internal/infra/repository"
	"tourbook/internal/pkg/dates"
	"tourbook/internal/usecase/shared"
	"tourbook/tests/common/authtest"
	"tourbook/tests/common/dbtest"
	"tourbook/tests/common/httptest"
	"tourbook/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const bookingsURL = "/api/bookings"

type BookingSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func (s *BookingSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

type world struct {
	orgID      uuid.UUID
	tourID     uuid.UUID
	customerID uuid.UUID
	day        time.Time
	token      string
}

// seed builds an organization with one tour departing at 09:00 and 14:00.
func (s *BookingSuite) seed(t *testing.T, capacity int) world {
	t.Helper()
	today := dates.Today(time.Now(), time.UTC)
	orgID := dbtest.CreateOrganization(t, s.DB, "Harbour Tours")
	return world{
		orgID:      orgID,
		tourID:     dbtest.CreateTour(t, s.DB, orgID, "Harbour Walk", capacity, 5000, today, "09:00", "14:00"),
		customerID: dbtest.CreateCustomer(t, s.DB, orgID, "Jane Doe", "jane@example.com"),
		day:        today.AddDate(0, 0, 10),
		token:      s.jwt.GenerateToken(t, orgID, middleware.RoleOperator),
	}
}

func (w world) dynamicBody(adults int, at string) map[string]any {
	return map[string]any{
		"customer_id":  w.customerID,
		"tour_id":      w.tourID,
		"booking_date": dates.Format(w.day),
		"booking_time": at,
		"adults":       adults,
		"participants": []map[string]any{{"first_name": "Ana", "last_name": "Silva", "type": "adult"}},
	}
}

func (s *BookingSuite) create(t *testing.T, w world, body map[string]any) response.BookingResponse {
	t.Helper()
	rec := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, body, w.token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	httptest.AssertHeadersPresent(t, rec, "X-Request-ID")
	var res response.BookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, rec.Body, &res))
	return res
}

// =============================================================================
// TestCreateBooking
// =============================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: booking round trips through the read side", func() {
		t := s.T()
		w := s.seed(t, 10)

		created := s.create(t, w, w.dynamicBody(2, "09:00"))
		require.True(t, strings.HasPrefix(created.ReferenceNumber, "BK-"), created.ReferenceNumber)

		rec := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.ID, nil, w.token)
		require.Equal(t, http.StatusOK, rec.Code)
		var fetched response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, rec.Body, &fetched))

		expected := response.BookingResponse{
			ReferenceNumber:   created.ReferenceNumber,
			TourID:            w.tourID.String(),
			TourName:          "Harbour Walk",
			CustomerID:        w.customerID.String(),
			CustomerName:      "Jane Doe",
			CustomerEmail:     "jane@example.com",
			BookingDate:       dates.Format(w.day),
			BookingTime:       "09:00",
			Adults:            2,
			TotalParticipants: 2,
			SubtotalCents:     10000,
			TotalCents:        10000,
			Currency:          "USD",
			Status:            "pending",
			PaymentStatus:     "pending",
			Participants: []response.ParticipantResponse{
				{FirstName: "Ana", LastName: "Silva", Type: "adult"},
			},
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.BookingResponse{}, "ID", "TaxCents", "TotalCents", "CreatedAt", "UpdatedAt"),
			cmpopts.IgnoreFields(response.ParticipantResponse{}, "ID"),
		}
		if diff := cmp.Diff(expected, fetched, opts...); diff != "" {
			t.Errorf("booking mismatch (-want +got):\n%s", diff)
		}

		lw := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?status=pending", nil, w.token)
		require.Equal(t, http.StatusOK, lw.Code)
		var page response.BookingListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, lw.Body, &page))
		require.Len(t, page.Items, 1)
		require.Equal(t, created.ID, page.Items[0].ID)
		require.Nil(t, page.Next)
	})

	s.Run("Normal case: references are sequential per organization", func() {
		t := s.T()
		w := s.seed(t, 10)

		first := s.create(t, w, w.dynamicBody(1, "09:00"))
		second := s.create(t, w, w.dynamicBody(1, "14:00"))

		require.NotEqual(t, first.ReferenceNumber, second.ReferenceNumber)
		require.Equal(t, first.ReferenceNumber[:len(first.ReferenceNumber)-5], second.ReferenceNumber[:len(second.ReferenceNumber)-5])
	})

	s.Run("Error case: blackout date is rejected", func() {
		t := s.T()
		w := s.seed(t, 10)
		dbtest.AddBlackout(t, s.DB, w.tourID, w.day, "maintenance")

		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, w.dynamicBody(2, "09:00"), w.token)
		httptest.AssertErrorResponse(t, rec, http.StatusUnprocessableEntity, "Tour is not available on this date")
	})

	s.Run("Error case: viewer cannot write", func() {
		t := s.T()
		w := s.seed(t, 10)
		viewer := s.jwt.GenerateToken(t, w.orgID, middleware.RoleViewer)

		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, w.dynamicBody(2, "09:00"), viewer)
		httptest.AssertErrorResponse(t, rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("Error case: expired token is rejected", func() {
		t := s.T()
		w := s.seed(t, 10)
		expired := s.jwt.CreateExpiredToken(t, w.orgID, middleware.RoleAdmin)

		rec := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, expired)
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("Error case: another organization sees nothing", func() {
		t := s.T()
		w := s.seed(t, 10)
		created := s.create(t, w, w.dynamicBody(2, "09:00"))
		outsider := s.jwt.GenerateToken(t, uuid.New(), middleware.RoleAdmin)

		rec := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.ID, nil, outsider)
		httptest.AssertErrorResponse(t, rec, http.StatusNotFound, "booking not found")
	})
}

// =============================================================================
// TestCapacity
// =============================================================================

func (s *BookingSuite) TestCapacity() {
	s.Run("Normal case: concurrent bookings never oversell a dynamic slot", func() {
		t := s.T()
		w := s.seed(t, 4)

		const callers = 8
		codes := make([]int, callers)
		var wg sync.WaitGroup
		for i := range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				rec := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, w.dynamicBody(1, "09:00"), w.token)
				codes[i] = rec.Code
			}()
		}
		wg.Wait()

		created := 0
		for _, code := range codes {
			if code == http.StatusCreated {
				created++
				continue
			}
			require.Contains(t, []int{http.StatusUnprocessableEntity, http.StatusConflict}, code)
		}
		require.Equal(t, 4, created)

		url := fmt.Sprintf("/api/availability/slot?tour_id=%s&date=%s&time=09:00", w.tourID, dates.Format(w.day))
		rec := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, w.token)
		var check response.SlotAvailabilityResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &check)
		require.False(t, check.Available)
		require.Equal(t, 4, check.BookedCount)
		require.NotNil(t, check.Reason)
		require.Equal(t, "sold_out", *check.Reason)
	})

	s.Run("Normal case: concurrent bookings fill a schedule exactly", func() {
		t := s.T()
		w := s.seed(t, 10)
		scheduleID := dbtest.CreateSchedule(t, s.DB, w.orgID, w.tourID, w.day.Add(9*time.Hour), 5)

		const callers = 9
		var wg sync.WaitGroup
		for range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				body := map[string]any{"customer_id": w.customerID, "schedule_id": scheduleID, "adults": 1}
				httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, body, w.token)
			}()
		}
		wg.Wait()

		booked, _ := dbtest.ScheduleCounts(t, s.DB, scheduleID)
		require.Equal(t, 5, booked)

		var held int
		err := s.DB.QueryRow(t.Context(),
			"SELECT COUNT(*) FROM bookings WHERE schedule_id = $1 AND status IN ('pending', 'confirmed')", scheduleID).Scan(&held)
		require.NoError(t, err)
		require.Equal(t, 5, held)
	})

	s.Run("Normal case: cancelling frees seats and restaffs the schedule", func() {
		t := s.T()
		w := s.seed(t, 20)
		scheduleID := dbtest.CreateSchedule(t, s.DB, w.orgID, w.tourID, w.day.Add(9*time.Hour), 20)

		created := s.create(t, w, map[string]any{"customer_id": w.customerID, "schedule_id": scheduleID, "adults": 13})
		require.Eventually(t, func() bool {
			booked, guides := dbtest.ScheduleCounts(t, s.DB, scheduleID)
			return booked == 13 && guides == 2
		}, 5*time.Second, 50*time.Millisecond)

		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+created.ID+"/cancel",
			map[string]any{"reason": "weather"}, w.token)
		var cancelled response.BookingResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &cancelled)
		require.Equal(t, "cancelled", cancelled.Status)
		require.NotNil(t, cancelled.CancellationReason)
		require.Equal(t, "weather", *cancelled.CancellationReason)

		require.Eventually(t, func() bool {
			booked, guides := dbtest.ScheduleCounts(t, s.DB, scheduleID)
			return booked == 0 && guides == 0
		}, 5*time.Second, 50*time.Millisecond)
	})

	s.Run("Normal case: reconciliation repairs a drifted counter once", func() {
		t := s.T()
		w := s.seed(t, 10)
		scheduleID := dbtest.CreateSchedule(t, s.DB, w.orgID, w.tourID, w.day.Add(9*time.Hour), 6)
		s.create(t, w, map[string]any{"customer_id": w.customerID, "schedule_id": scheduleID, "adults": 4})
		dbtest.CorruptBookedCount(t, s.DB, scheduleID, 1)

		reconciler := repository.NewScheduleReconciler(s.DB)
		drifts, err := reconciler.ReconcileBookedCounts(t.Context(), w.day)
		require.NoError(t, err)
		require.Equal(t, []shared.ScheduleDrift{{ScheduleID: scheduleID, OrganizationID: w.orgID, Recorded: 1, Actual: 4}}, drifts)

		booked, _ := dbtest.ScheduleCounts(t, s.DB, scheduleID)
		require.Equal(t, 4, booked)

		drifts, err = reconciler.ReconcileBookedCounts(t.Context(), w.day)
		require.NoError(t, err)
		require.Empty(t, drifts)
	})

	s.Run("Normal case: reschedule moves seats between schedules", func() {
		t := s.T()
		w := s.seed(t, 10)
		from := dbtest.CreateSchedule(t, s.DB, w.orgID, w.tourID, w.day.Add(9*time.Hour), 6)
		to := dbtest.CreateSchedule(t, s.DB, w.orgID, w.tourID, w.day.Add(14*time.Hour), 6)

		created := s.create(t, w, map[string]any{"customer_id": w.customerID, "schedule_id": from, "adults": 4})

		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+created.ID+"/reschedule",
			map[string]any{"schedule_id": to}, w.token)
		var moved response.BookingResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &moved)
		require.NotNil(t, moved.ScheduleID)
		require.Equal(t, to.String(), *moved.ScheduleID)
		require.Equal(t, "14:00", moved.BookingTime)

		bookedFrom, _ := dbtest.ScheduleCounts(t, s.DB, from)
		bookedTo, _ := dbtest.ScheduleCounts(t, s.DB, to)
		require.Equal(t, 0, bookedFrom)
		require.Equal(t, 4, bookedTo)
	})

	s.Run("Error case: reschedule onto a full schedule leaves both untouched", func() {
		t := s.T()
		w := s.seed(t, 10)
		from := dbtest.CreateSchedule(t, s.DB, w.orgID, w.tourID, w.day.Add(9*time.Hour), 6)
		to := dbtest.CreateSchedule(t, s.DB, w.orgID, w.tourID, w.day.Add(14*time.Hour), 3)

		created := s.create(t, w, map[string]any{"customer_id": w.customerID, "schedule_id": from, "adults": 4})

		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+created.ID+"/reschedule",
			map[string]any{"schedule_id": to}, w.token)
		httptest.AssertErrorResponse(t, rec, http.StatusUnprocessableEntity, "Only 3 spots remaining")

		bookedFrom, _ := dbtest.ScheduleCounts(t, s.DB, from)
		bookedTo, _ := dbtest.ScheduleCounts(t, s.DB, to)
		require.Equal(t, 4, bookedFrom)
		require.Equal(t, 0, bookedTo)
	})
}

// =============================================================================
// TestLifecycle
// =============================================================================

func (s *BookingSuite) TestLifecycle() {
	s.Run("Normal case: bulk confirm then pay", func() {
		t := s.T()
		w := s.seed(t, 10)
		a := s.create(t, w, w.dynamicBody(1, "09:00"))
		b := s.create(t, w, w.dynamicBody(1, "14:00"))
		missing := uuid.New()

		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/bulk/confirm",
			map[string]any{"booking_ids": []string{a.ID, b.ID, missing.String()}}, w.token)
		var result response.BulkResultResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &result)
		require.ElementsMatch(t, []string{a.ID, b.ID}, result.Succeeded)
		require.Len(t, result.Errors, 1)
		require.Equal(t, missing.String(), result.Errors[0].ID)

		rec = httptest.PerformRequest(t, s.Router, http.MethodPut, bookingsURL+"/"+a.ID+"/payment-status",
			map[string]any{"payment_status": "paid"}, w.token)
		var paid response.BookingResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &paid)
		require.Equal(t, "confirmed", paid.Status)
		require.Equal(t, "paid", paid.PaymentStatus)
		require.NotNil(t, paid.PaidAt)
	})

	s.Run("Error case: completed booking cannot be cancelled", func() {
		t := s.T()
		w := s.seed(t, 10)
		created := s.create(t, w, w.dynamicBody(1, "09:00"))

		for _, step := range []string{"/confirm", "/complete"} {
			rec := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+created.ID+step, nil, w.token)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		}

		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+created.ID+"/cancel", nil, w.token)
		httptest.AssertErrorResponse(t, rec, http.StatusUnprocessableEntity, "Cannot cancel a completed booking")
	})
}

// =============================================================================
// TestAvailabilityAndStats
// =============================================================================

func (s *BookingSuite) TestAvailabilityAndStats() {
	s.Run("Normal case: month view flags blackouts and counts seats", func() {
		t := s.T()
		w := s.seed(t, 6)
		blackout := w.day.AddDate(0, 0, 1)
		dbtest.AddBlackout(t, s.DB, w.tourID, blackout, "festival")
		s.create(t, w, w.dynamicBody(5, "09:00"))

		url := fmt.Sprintf("/api/tours/%s/availability?year=%d&month=%d", w.tourID, w.day.Year(), int(w.day.Month()))
		rec := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, w.token)
		var days []response.DateAvailabilityResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &days)

		byDate := make(map[string]response.DateAvailabilityResponse, len(days))
		for _, d := range days {
			byDate[d.Date] = d
		}
		booked, ok := byDate[dates.Format(w.day)]
		require.True(t, ok)
		require.Len(t, booked.Slots, 2)
		require.Equal(t, 1, booked.Slots[0].SpotsRemaining)
		require.True(t, booked.Slots[0].AlmostFull)

		if blackout.Month() == w.day.Month() {
			closed, ok := byDate[dates.Format(blackout)]
			require.True(t, ok)
			require.True(t, closed.IsBlackout)
			require.Equal(t, "festival", *closed.BlackoutReason)
		}
	})

	s.Run("Normal case: heatmap and needs-action see the booking", func() {
		t := s.T()
		w := s.seed(t, 10)
		created := s.create(t, w, w.dynamicBody(5, "09:00"))

		url := fmt.Sprintf("/api/availability/heatmap?from=%s&to=%s", dates.Format(w.day), dates.Format(w.day))
		rec := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, w.token)
		var entries []response.HeatmapEntryResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &entries)
		require.Len(t, entries, 2)
		require.Equal(t, "09:00", entries[0].Time)
		require.Equal(t, 5, entries[0].BookedCount)
		require.Equal(t, "moderate", entries[0].Level)
		require.Equal(t, "empty", entries[1].Level)

		rec = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/stats/needs-action", nil, w.token)
		var report response.NeedsActionResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &report)
		require.Len(t, report.Items, 1)
		require.Equal(t, created.ID, report.Items[0].BookingID)
		require.Equal(t, "low", report.Items[0].Tier)
		require.Equal(t, map[string]int{"low": 1}, report.Counts)
	})
}
