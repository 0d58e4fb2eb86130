package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lzamboni86/godrive-mobile-api/internal/service"
	"github.com/lzamboni86/godrive-mobile-api/pkg/response"
)

// BookingHandler manages review, submission and the summary download.
type BookingHandler struct {
	service *service.BookingService
}

// NewBookingHandler constructs handler.
func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{service: svc}
}

// Review godoc
// @Summary Review a priced booking draft
// @Tags Booking
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Envelope
// @Router /bookings/drafts/{id}/review [get]
func (h *BookingHandler) Review(c *gin.Context) {
	claims := claimsFromContext(c)
	view, err := h.service.Review(c.Request.Context(), tokenFromContext(c), c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Submit godoc
// @Summary Submit a booking draft
// @Tags Booking
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Envelope
// @Router /bookings/drafts/{id}/submit [post]
func (h *BookingHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	result, err := h.service.Submit(c.Request.Context(), tokenFromContext(c), c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// SummaryPDF godoc
// @Summary Download the booking summary as PDF
// @Tags Booking
// @Produce application/pdf
// @Param id path string true "Draft ID"
// @Success 200 {file} binary
// @Router /bookings/drafts/{id}/summary.pdf [get]
func (h *BookingHandler) SummaryPDF(c *gin.Context) {
	claims := claimsFromContext(c)
	pdf, err := h.service.SummaryPDF(c.Request.Context(), tokenFromContext(c), c.Param("id"), claims.UserID, claims.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=booking-%s.pdf", c.Param("id")))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
