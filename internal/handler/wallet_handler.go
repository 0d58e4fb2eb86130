package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lzamboni86/godrive-mobile-api/internal/service"
	"github.com/lzamboni86/godrive-mobile-api/pkg/response"
)

// WalletHandler manages wallet endpoints.
type WalletHandler struct {
	service *service.WalletService
}

// NewWalletHandler constructs handler.
func NewWalletHandler(svc *service.WalletService) *WalletHandler {
	return &WalletHandler{service: svc}
}

// Balance godoc
// @Summary Wallet balance
// @Tags Wallet
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /wallet/balance [get]
func (h *WalletHandler) Balance(c *gin.Context) {
	balance, err := h.service.Balance(c.Request.Context(), tokenFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, balance)
}

// Transactions godoc
// @Summary Wallet transactions
// @Tags Wallet
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /wallet/transactions [get]
func (h *WalletHandler) Transactions(c *gin.Context) {
	txs, err := h.service.Transactions(c.Request.Context(), tokenFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, txs)
}
