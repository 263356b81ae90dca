package api

import (
	"net/http"
	"time"

	reqdto "tourbook/internal/handler/dto/request"
	resdto "tourbook/internal/handler/dto/response"
	"tourbook/internal/handler/httperr"
	"tourbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Check slot availability
// @Description Unavailable slots come back with a reason code and a message
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param tour_id query string true "Tour ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param time query string true "Departure time (HH:MM)"
// @Param spots query int false "Requested spots (default 1)"
// @Param exclude_booking_id query string false "Booking whose seats are ignored"
// @Success 200 {object} resdto.SlotAvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /availability/slot [get]
func (h *AvailabilityHandler) CheckSlot(c *gin.Context) {
	orgID, ok := requireOrganization(c)
	if !ok {
		return
	}
	var query reqdto.SlotAvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	req, err := query.ToQuery()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	check, err := h.q.CheckSlotAvailability(c.Request.Context(), orgID, req)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotCheck(check))
}

// @Summary Tour month calendar
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tour ID"
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {array} resdto.DateAvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /tours/{id}/availability [get]
func (h *AvailabilityHandler) Month(c *gin.Context) {
	orgID, ok := requireOrganization(c)
	if !ok {
		return
	}
	tourID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid tour id", nil)
		return
	}
	var query reqdto.MonthQuery
	if err = c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	days, err := h.q.GetAvailableDatesForMonth(c.Request.Context(), orgID, tourID, query.Year, time.Month(query.Month))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMonth(days))
}

// @Summary Capacity heatmap
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param from query string true "First date (YYYY-MM-DD)"
// @Param to query string true "Last date (YYYY-MM-DD)"
// @Param tour_ids query string false "Comma separated tour IDs"
// @Success 200 {array} resdto.HeatmapEntryResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /availability/heatmap [get]
func (h *AvailabilityHandler) Heatmap(c *gin.Context) {
	orgID, ok := requireOrganization(c)
	if !ok {
		return
	}
	var query reqdto.HeatmapQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	req, err := query.ToQuery()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	entries, err := h.q.GetCapacityHeatmap(c.Request.Context(), orgID, req)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromHeatmap(entries))
}
