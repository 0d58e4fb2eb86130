package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/lzamboni86/godrive-mobile-api/internal/models"
)

type walletUpstream interface {
	WalletBalance(ctx context.Context, token string) (*models.WalletBalance, error)
	WalletTransactions(ctx context.Context, token string) ([]models.WalletTransaction, error)
}

// WalletService exposes the student's wallet to the app.
type WalletService struct {
	api    walletUpstream
	logger *zap.Logger
}

// NewWalletService constructs a WalletService.
func NewWalletService(api walletUpstream, logger *zap.Logger) *WalletService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WalletService{api: api, logger: logger}
}

// Balance fetches the wallet balance.
func (s *WalletService) Balance(ctx context.Context, token string) (*models.WalletBalance, error) {
	return s.api.WalletBalance(ctx, token)
}

// Transactions fetches the wallet ledger.
func (s *WalletService) Transactions(ctx context.Context, token string) ([]models.WalletTransaction, error) {
	return s.api.WalletTransactions(ctx, token)
}
