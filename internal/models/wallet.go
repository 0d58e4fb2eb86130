package models

import "time"

// WalletBalance is the student's wallet as reported by the core API.
// totalBalance = availableBalance + lockedBalance is an upstream
// invariant; the gateway observes it but never enforces or simulates it.
type WalletBalance struct {
	TotalBalance     float64 `json:"totalBalance"`
	AvailableBalance float64 `json:"availableBalance"`
	LockedBalance    float64 `json:"lockedBalance"`
	UsedBalance      float64 `json:"usedBalance"`
}

// WalletTransaction is a single wallet ledger entry.
type WalletTransaction struct {
	ID            string    `json:"id"`
	Amount        float64   `json:"amount"`
	Description   string    `json:"description,omitempty"`
	BookingID     string    `json:"bookingId,omitempty"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}
