package dto

import "github.com/lzamboni86/godrive-mobile-api/internal/models"

// CheckoutMessage is what the hosted checkout page posts to the relay.
// Kind decides which of the optional fields must be present.
type CheckoutMessage struct {
	Kind models.MessageKind `json:"kind" validate:"required"`

	// DEVICE_ID
	DeviceID string `json:"deviceId,omitempty"`

	// ERROR
	Message string `json:"message,omitempty"`

	// TOKEN
	Token           string `json:"token,omitempty"`
	PaymentMethodID string `json:"paymentMethodId,omitempty"`
	IssuerID        string `json:"issuerId,omitempty"`
	Installments    int    `json:"installments,omitempty"`
}

// RelayReply instructs the app shell what to do after a checkout
// message was handled.
type RelayReply struct {
	Action models.RelayAction `json:"action"`

	// ALERT
	Alert string `json:"alert,omitempty"`

	// INJECT_PIX
	Pix *models.PixPayment `json:"pix,omitempty"`

	// NAVIGATE_CONFIRM
	Card *CardPaymentIntent `json:"card,omitempty"`
}

// CardPaymentIntent carries the tokenized card fields from the page to
// the confirmation call.
type CardPaymentIntent struct {
	Token           string `json:"token"`
	PaymentMethodID string `json:"paymentMethodId"`
	IssuerID        string `json:"issuerId"`
	Installments    int    `json:"installments"`
}

// ConfirmCardRequest finalizes a card payment for a pending booking.
type ConfirmCardRequest struct {
	DraftID         string `json:"draftId" validate:"required"`
	Token           string `json:"token" validate:"required"`
	PaymentMethodID string `json:"paymentMethodId" validate:"required"`
	IssuerID        string `json:"issuerId" validate:"required"`
	Installments    int    `json:"installments" validate:"required,min=1"`
	DeviceID        string `json:"deviceId,omitempty"`
}

// PaymentResult is the student-facing outcome of a payment attempt.
type PaymentResult struct {
	Outcome   models.PaymentOutcome `json:"outcome"`
	PaymentID string                `json:"paymentId,omitempty"`
	Status    models.PaymentStatus  `json:"status,omitempty"`
}

// PixEmailRequest asks for the PIX code to be sent by email.
type PixEmailRequest struct {
	PaymentID string `json:"paymentId" validate:"required"`
}
