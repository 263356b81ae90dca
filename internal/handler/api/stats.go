package api

import (
	"net/http"

	reqdto "tourbook/internal/handler/dto/request"
	resdto "tourbook/internal/handler/dto/response"
	"tourbook/internal/handler/httperr"
	"tourbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	q queries.StatsQueries
}

func NewStatsHandler(q queries.StatsQueries) *StatsHandler {
	return &StatsHandler{q: q}
}

// @Summary Bookings needing action
// @Description Upcoming bookings with an open issue, most urgent first
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 20)"
// @Success 200 {object} resdto.NeedsActionResponse
// @Router /stats/needs-action [get]
func (h *StatsHandler) NeedsAction(c *gin.Context) {
	orgID, ok := requireOrganization(c)
	if !ok {
		return
	}
	var query reqdto.NeedsActionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	report, err := h.q.NeedsAction(c.Request.Context(), orgID, query.Limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromNeedsAction(report))
}

// @Summary Booking summary
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param from query string true "First booking date (YYYY-MM-DD)"
// @Param to query string true "Last booking date (YYYY-MM-DD)"
// @Success 200 {object} queries.BookingSummary
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /stats/summary [get]
func (h *StatsHandler) Summary(c *gin.Context) {
	orgID, ok := requireOrganization(c)
	if !ok {
		return
	}
	var query reqdto.SummaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	from, err := reqdto.ParseDate(query.From)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	to, err := reqdto.ParseDate(query.To)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	summary, err := h.q.Summary(c.Request.Context(), orgID, from, to)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
