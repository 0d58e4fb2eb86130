package models

// MessageKind is the closed set of messages the embedded checkout page
// can post to the relay. Anything outside this set is rejected.
type MessageKind string

const (
	MessageDeviceID  MessageKind = "DEVICE_ID"
	MessageError     MessageKind = "ERROR"
	MessageCancel    MessageKind = "CANCEL"
	MessagePixCreate MessageKind = "PIX_CREATE"
	MessageToken     MessageKind = "TOKEN"
)

// KnownMessageKinds lists every kind the relay handles.
var KnownMessageKinds = []MessageKind{
	MessageDeviceID, MessageError, MessageCancel, MessagePixCreate, MessageToken,
}

// Valid reports whether k is one of the known message kinds.
func (k MessageKind) Valid() bool {
	for _, known := range KnownMessageKinds {
		if k == known {
			return true
		}
	}
	return false
}

// RelayAction tells the mobile shell what to do in response to a
// checkout message.
type RelayAction string

const (
	// ActionStoreDevice: persist the device fingerprint for the session.
	ActionStoreDevice RelayAction = "STORE_DEVICE"
	// ActionAlert: surface an error message and stay on the page.
	ActionAlert RelayAction = "ALERT"
	// ActionNavigateBack: leave checkout, returning to the wizard.
	ActionNavigateBack RelayAction = "NAVIGATE_BACK"
	// ActionInjectPix: inject the PIX payment JSON into the page.
	ActionInjectPix RelayAction = "INJECT_PIX"
	// ActionNavigateConfirm: move to the card confirmation screen.
	ActionNavigateConfirm RelayAction = "NAVIGATE_CONFIRM"
)

// PaymentStatus mirrors Mercado Pago's payment status strings, reduced
// to the values the confirmation screen distinguishes.
type PaymentStatus string

const (
	PaymentApproved  PaymentStatus = "approved"
	PaymentPending   PaymentStatus = "pending"
	PaymentInProcess PaymentStatus = "in_process"
	PaymentRejected  PaymentStatus = "rejected"
)

// PaymentOutcome is what the student ultimately sees after confirming
// a card payment.
type PaymentOutcome string

const (
	OutcomeSuccess PaymentOutcome = "success"
	OutcomePending PaymentOutcome = "pending"
	OutcomeFailure PaymentOutcome = "failure"
)

// OutcomeForStatus maps a gateway payment status to the screen shown
// to the student. Unknown statuses are failures, never pending.
func OutcomeForStatus(status PaymentStatus) PaymentOutcome {
	switch status {
	case PaymentApproved:
		return OutcomeSuccess
	case PaymentPending, PaymentInProcess:
		return OutcomePending
	default:
		return OutcomeFailure
	}
}

// PixPayment is the PIX charge returned by the payments API, passed
// through to the checkout page for rendering the QR code.
type PixPayment struct {
	PaymentID     string  `json:"paymentId"`
	Status        string  `json:"status"`
	QRCode        string  `json:"qrCode"`
	QRCodeBase64  string  `json:"qrCodeBase64"`
	TicketURL     string  `json:"ticketUrl,omitempty"`
	Amount        float64 `json:"amount"`
	ExpirationISO string  `json:"expirationDate,omitempty"`
}
