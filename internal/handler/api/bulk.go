package api

import (
	"net/http"

	reqdto "tourbook/internal/handler/dto/request"
	resdto "tourbook/internal/handler/dto/response"
	"tourbook/internal/handler/httperr"
	"tourbook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type BulkHandler struct {
	cmds commands.BulkCommands
}

func NewBulkHandler(cmds commands.BulkCommands) *BulkHandler {
	return &BulkHandler{cmds: cmds}
}

// @Summary Bulk confirm bookings
// @Description Per-item outcome; one bad id never fails the batch
// @Tags bulk
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BulkIDsRequest true "Booking IDs"
// @Success 200 {object} resdto.BulkResultResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/bulk/confirm [post]
func (h *BulkHandler) Confirm(c *gin.Context) {
	orgID, ok := requireOrganization(c)
	if !ok {
		return
	}
	var req reqdto.BulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.BulkConfirm(c.Request.Context(), orgID, req.BookingIDs)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBulkResult(result))
}

// @Summary Bulk cancel bookings
// @Tags bulk
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BulkCancelRequest true "Booking IDs and reason"
// @Success 200 {object} resdto.BulkResultResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/bulk/cancel [post]
func (h *BulkHandler) Cancel(c *gin.Context) {
	orgID, ok := requireOrganization(c)
	if !ok {
		return
	}
	var req reqdto.BulkCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.BulkCancel(c.Request.Context(), orgID, req.BookingIDs, req.Reason)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBulkResult(result))
}

// @Summary Bulk update payment status
// @Tags bulk
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BulkPaymentRequest true "Booking IDs and payment status"
// @Success 200 {object} resdto.BulkResultResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/bulk/payment-status [post]
func (h *BulkHandler) UpdatePaymentStatus(c *gin.Context) {
	orgID, ok := requireOrganization(c)
	if !ok {
		return
	}
	var req reqdto.BulkPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.BulkUpdatePaymentStatus(c.Request.Context(), orgID, req.BookingIDs, req.PaymentStatus)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBulkResult(result))
}

// @Summary Bulk reschedule bookings
// @Description Each item moves independently
// @Tags bulk
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BulkRescheduleRequest true "Booking IDs and targets"
// @Success 200 {object} resdto.BulkResultResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/bulk/reschedule [post]
func (h *BulkHandler) Reschedule(c *gin.Context) {
	orgID, ok := requireOrganization(c)
	if !ok {
		return
	}
	var req reqdto.BulkRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	items, err := req.ToCommand()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	result, err := h.cmds.BulkReschedule(c.Request.Context(), orgID, items)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBulkResult(result))
}
