package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lzamboni86/godrive-mobile-api/internal/dto"
	"github.com/lzamboni86/godrive-mobile-api/internal/service"
	appErrors "github.com/lzamboni86/godrive-mobile-api/pkg/errors"
	"github.com/lzamboni86/godrive-mobile-api/pkg/response"
)

// WizardHandler manages the booking wizard endpoints.
type WizardHandler struct {
	service *service.WizardService
}

// NewWizardHandler constructs handler.
func NewWizardHandler(svc *service.WizardService) *WizardHandler {
	return &WizardHandler{service: svc}
}

// Start godoc
// @Summary Start a booking draft
// @Tags Booking
// @Accept json
// @Produce json
// @Param payload body dto.StartDraftRequest true "Draft payload"
// @Success 201 {object} response.Envelope
// @Router /bookings/drafts [post]
func (h *WizardHandler) Start(c *gin.Context) {
	var req dto.StartDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	claims := claimsFromContext(c)
	view, err := h.service.StartDraft(c.Request.Context(), tokenFromContext(c), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, view)
}

// Dates godoc
// @Summary Date step view
// @Tags Booking
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Envelope
// @Router /bookings/drafts/{id}/dates [get]
func (h *WizardHandler) Dates(c *gin.Context) {
	claims := claimsFromContext(c)
	view, err := h.service.DateStep(c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// ToggleDate godoc
// @Summary Select or deselect a lesson date
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param payload body dto.ToggleDateRequest true "Date payload"
// @Success 200 {object} response.Envelope
// @Router /bookings/drafts/{id}/dates/toggle [post]
func (h *WizardHandler) ToggleDate(c *gin.Context) {
	var req dto.ToggleDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	claims := claimsFromContext(c)
	view, err := h.service.ToggleDate(c.Param("id"), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// ShiftMonth godoc
// @Summary Move the calendar a month back or forward
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param payload body dto.ShiftMonthRequest true "Direction payload"
// @Success 200 {object} response.Envelope
// @Router /bookings/drafts/{id}/month [post]
func (h *WizardHandler) ShiftMonth(c *gin.Context) {
	var req dto.ShiftMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	claims := claimsFromContext(c)
	view, err := h.service.ShiftMonth(c.Param("id"), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// ProceedDates godoc
// @Summary Advance from dates to times
// @Tags Booking
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Envelope
// @Router /bookings/drafts/{id}/dates/proceed [post]
func (h *WizardHandler) ProceedDates(c *gin.Context) {
	claims := claimsFromContext(c)
	view, err := h.service.ProceedDates(c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Times godoc
// @Summary Time step view
// @Tags Booking
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Envelope
// @Router /bookings/drafts/{id}/times [get]
func (h *WizardHandler) Times(c *gin.Context) {
	claims := claimsFromContext(c)
	view, err := h.service.TimeStep(c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// ToggleTime godoc
// @Summary Select or deselect a time slot
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param payload body dto.ToggleTimeRequest true "Time payload"
// @Success 200 {object} response.Envelope
// @Router /bookings/drafts/{id}/times/toggle [post]
func (h *WizardHandler) ToggleTime(c *gin.Context) {
	var req dto.ToggleTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	claims := claimsFromContext(c)
	view, err := h.service.ToggleTime(c.Param("id"), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// SetActiveDate godoc
// @Summary Switch the date shown in the time step
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param payload body dto.SetActiveDateRequest true "Date payload"
// @Success 200 {object} response.Envelope
// @Router /bookings/drafts/{id}/times/active [post]
func (h *WizardHandler) SetActiveDate(c *gin.Context) {
	var req dto.SetActiveDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	claims := claimsFromContext(c)
	view, err := h.service.SetActiveDate(c.Param("id"), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// ProceedTimes godoc
// @Summary Advance from times to review
// @Tags Booking
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Envelope
// @Router /bookings/drafts/{id}/times/proceed [post]
func (h *WizardHandler) ProceedTimes(c *gin.Context) {
	claims := claimsFromContext(c)
	draft, err := h.service.ProceedTimes(c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, draft)
}

// Discard godoc
// @Summary Discard a booking draft
// @Tags Booking
// @Produce json
// @Param id path string true "Draft ID"
// @Success 204
// @Router /bookings/drafts/{id} [delete]
func (h *WizardHandler) Discard(c *gin.Context) {
	claims := claimsFromContext(c)
	if err := h.service.Discard(c.Param("id"), claims.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
