package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lzamboni86/godrive-mobile-api/internal/dto"
	"github.com/lzamboni86/godrive-mobile-api/internal/service"
	appErrors "github.com/lzamboni86/godrive-mobile-api/pkg/errors"
	"github.com/lzamboni86/godrive-mobile-api/pkg/response"
)

// CheckoutHandler manages the hosted checkout relay and payment
// confirmation endpoints.
type CheckoutHandler struct {
	service *service.CheckoutService
}

// NewCheckoutHandler constructs handler.
func NewCheckoutHandler(svc *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: svc}
}

// Relay godoc
// @Summary Handle a message from the checkout page
// @Tags Checkout
// @Accept json
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param payload body dto.CheckoutMessage true "Checkout message"
// @Success 200 {object} response.Envelope
// @Router /checkout/drafts/{draftId}/messages [post]
func (h *CheckoutHandler) Relay(c *gin.Context) {
	var msg dto.CheckoutMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	claims := claimsFromContext(c)
	reply, err := h.service.HandleMessage(c.Request.Context(), tokenFromContext(c), c.Param("draftId"), claims.UserID, msg)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reply)
}

// ConfirmCard godoc
// @Summary Confirm a tokenized card payment
// @Tags Checkout
// @Accept json
// @Produce json
// @Param payload body dto.ConfirmCardRequest true "Card payload"
// @Success 200 {object} response.Envelope
// @Router /checkout/card/confirm [post]
func (h *CheckoutHandler) ConfirmCard(c *gin.Context) {
	var req dto.ConfirmCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	claims := claimsFromContext(c)
	result, err := h.service.ConfirmCard(c.Request.Context(), tokenFromContext(c), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// PaymentStatus godoc
// @Summary Poll a payment's status
// @Tags Checkout
// @Produce json
// @Param paymentId path string true "Payment ID"
// @Success 200 {object} response.Envelope
// @Router /checkout/payments/{paymentId}/status [get]
func (h *CheckoutHandler) PaymentStatus(c *gin.Context) {
	result, err := h.service.PaymentStatus(c.Request.Context(), tokenFromContext(c), c.Param("paymentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// SendPixEmail godoc
// @Summary Email the PIX copy-and-paste code
// @Tags Checkout
// @Accept json
// @Produce json
// @Param payload body dto.PixEmailRequest true "Payment payload"
// @Success 204
// @Router /checkout/pix/email [post]
func (h *CheckoutHandler) SendPixEmail(c *gin.Context) {
	var req dto.PixEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.service.SendPixEmail(c.Request.Context(), tokenFromContext(c), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
