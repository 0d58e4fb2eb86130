package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lzamboni86/godrive-mobile-api/internal/dto"
	"github.com/lzamboni86/godrive-mobile-api/internal/models"
	"github.com/lzamboni86/godrive-mobile-api/internal/upstream"
	appErrors "github.com/lzamboni86/godrive-mobile-api/pkg/errors"
)

type fakeCheckoutUpstream struct {
	pix         *models.PixPayment
	pixErr      error
	lastPix     *upstream.PixCreateRequest
	emailErr    error
	lastEmail   string
	status      *upstream.PaymentStatusResponse
	statusErr   error
	confirm     *upstream.CardConfirmResponse
	confirmErr  error
	lastConfirm *upstream.CardConfirmRequest
}

func (f *fakeCheckoutUpstream) CreatePix(_ context.Context, _ string, req upstream.PixCreateRequest) (*models.PixPayment, error) {
	f.lastPix = &req
	return f.pix, f.pixErr
}

func (f *fakeCheckoutUpstream) SendPixEmail(_ context.Context, _ string, paymentID string) error {
	f.lastEmail = paymentID
	return f.emailErr
}

func (f *fakeCheckoutUpstream) PaymentStatus(context.Context, string, string) (*upstream.PaymentStatusResponse, error) {
	return f.status, f.statusErr
}

func (f *fakeCheckoutUpstream) ConfirmCard(_ context.Context, _ string, req upstream.CardConfirmRequest) (*upstream.CardConfirmResponse, error) {
	f.lastConfirm = &req
	return f.confirm, f.confirmErr
}

type fakeWatcher struct {
	watched []string
}

func (f *fakeWatcher) Watch(paymentID, _, _ string) {
	f.watched = append(f.watched, paymentID)
}

func pendingDraft() models.BookingDraft {
	draft := readyDraft()
	draft.PendingLessonIDs = []string{"l1", "l2"}
	draft.PendingAmount = 100
	return draft
}

func newTestCheckout(t *testing.T, api *fakeCheckoutUpstream, watcher pixWatchEnqueuer) (*CheckoutService, *DraftStore) {
	t.Helper()
	store, _ := newTestStore(2 * time.Hour)
	store.Put(pendingDraft())
	svc := NewCheckoutService(store, api, watcher, nil, zap.NewNop())
	return svc, store
}

func TestRelayRejectsUnknownKind(t *testing.T) {
	svc, _ := newTestCheckout(t, &fakeCheckoutUpstream{}, nil)

	_, err := svc.HandleMessage(context.Background(), "token", "d1", "student-1", dto.CheckoutMessage{Kind: "SURPRISE"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRelayDeviceIDStoredOnDraft(t *testing.T) {
	svc, store := newTestCheckout(t, &fakeCheckoutUpstream{}, nil)

	reply, err := svc.HandleMessage(context.Background(), "token", "d1", "student-1", dto.CheckoutMessage{
		Kind:     models.MessageDeviceID,
		DeviceID: "device-42",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ActionStoreDevice, reply.Action)

	draft, err := store.Get("d1", "student-1")
	require.NoError(t, err)
	assert.Equal(t, "device-42", draft.DeviceID)
}

func TestRelayErrorBecomesAlert(t *testing.T) {
	svc, store := newTestCheckout(t, &fakeCheckoutUpstream{}, nil)

	reply, err := svc.HandleMessage(context.Background(), "token", "d1", "student-1", dto.CheckoutMessage{
		Kind:    models.MessageError,
		Message: "card declined",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ActionAlert, reply.Action)
	assert.Equal(t, "card declined", reply.Alert)

	_, err = store.Get("d1", "student-1")
	assert.NoError(t, err, "errors keep the draft")
}

func TestRelayCancelNavigatesBackKeepingDraft(t *testing.T) {
	svc, store := newTestCheckout(t, &fakeCheckoutUpstream{}, nil)

	reply, err := svc.HandleMessage(context.Background(), "token", "d1", "student-1", dto.CheckoutMessage{Kind: models.MessageCancel})
	require.NoError(t, err)
	assert.Equal(t, models.ActionNavigateBack, reply.Action)

	_, err = store.Get("d1", "student-1")
	assert.NoError(t, err)
}

func TestRelayPixCreate(t *testing.T) {
	api := &fakeCheckoutUpstream{
		pix: &models.PixPayment{PaymentID: "p1", QRCode: "qr-data", Amount: 100},
	}
	watcher := &fakeWatcher{}
	svc, store := newTestCheckout(t, api, watcher)

	// Device fingerprint arrives first, as the page does.
	_, err := svc.HandleMessage(context.Background(), "token", "d1", "student-1", dto.CheckoutMessage{
		Kind:     models.MessageDeviceID,
		DeviceID: "device-42",
	})
	require.NoError(t, err)

	reply, err := svc.HandleMessage(context.Background(), "token", "d1", "student-1", dto.CheckoutMessage{Kind: models.MessagePixCreate})
	require.NoError(t, err)

	assert.Equal(t, models.ActionInjectPix, reply.Action)
	require.NotNil(t, reply.Pix)
	assert.Equal(t, "p1", reply.Pix.PaymentID)

	require.NotNil(t, api.lastPix)
	assert.Equal(t, 100.0, api.lastPix.Amount)
	assert.Equal(t, "l1,l2", api.lastPix.ExternalReference)
	assert.Equal(t, "device-42", api.lastPix.DeviceID)

	assert.Equal(t, []string{"p1"}, watcher.watched)

	_, err = store.Get("d1", "student-1")
	assert.NoError(t, err, "draft survives until the payment lands")
}

func TestRelayPixCreateNeedsSubmittedDraft(t *testing.T) {
	api := &fakeCheckoutUpstream{
		pix: &models.PixPayment{PaymentID: "p1", QRCode: "qr-data"},
	}
	svc, store := newTestCheckout(t, api, nil)
	// A draft that never went through submission has nothing to charge.
	store.Put(readyDraft())

	_, err := svc.HandleMessage(context.Background(), "token", "d1", "student-1", dto.CheckoutMessage{Kind: models.MessagePixCreate})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Nil(t, api.lastPix, "no charge goes out for an unsubmitted draft")
}

func TestRelayTokenRequiresCompleteCard(t *testing.T) {
	svc, _ := newTestCheckout(t, &fakeCheckoutUpstream{}, nil)

	incomplete := []dto.CheckoutMessage{
		{Kind: models.MessageToken, PaymentMethodID: "visa", IssuerID: "1", Installments: 1},
		{Kind: models.MessageToken, Token: "t", IssuerID: "1", Installments: 1},
		{Kind: models.MessageToken, Token: "t", PaymentMethodID: "visa", Installments: 1},
		{Kind: models.MessageToken, Token: "t", PaymentMethodID: "visa", IssuerID: "1"},
		{Kind: models.MessageToken, Token: "t", PaymentMethodID: "visa", IssuerID: "1", Installments: 0},
	}
	for _, msg := range incomplete {
		_, err := svc.HandleMessage(context.Background(), "token", "d1", "student-1", msg)
		assert.Error(t, err)
	}

	reply, err := svc.HandleMessage(context.Background(), "token", "d1", "student-1", dto.CheckoutMessage{
		Kind: models.MessageToken, Token: "t", PaymentMethodID: "visa", IssuerID: "1", Installments: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ActionNavigateConfirm, reply.Action)
	require.NotNil(t, reply.Card)
	assert.Equal(t, 3, reply.Card.Installments)
}

func confirmReq() dto.ConfirmCardRequest {
	return dto.ConfirmCardRequest{
		DraftID:         "d1",
		Token:           "t",
		PaymentMethodID: "visa",
		IssuerID:        "1",
		Installments:    1,
	}
}

func TestConfirmCardOutcomes(t *testing.T) {
	tests := []struct {
		name      string
		status    models.PaymentStatus
		want      models.PaymentOutcome
		draftKept bool
	}{
		{name: "approved", status: models.PaymentApproved, want: models.OutcomeSuccess},
		{name: "pending", status: models.PaymentPending, want: models.OutcomePending},
		{name: "in process", status: models.PaymentInProcess, want: models.OutcomePending},
		{name: "rejected", status: models.PaymentRejected, want: models.OutcomeFailure, draftKept: true},
		{name: "unknown status", status: "charged_back", want: models.OutcomeFailure, draftKept: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeCheckoutUpstream{
				confirm: &upstream.CardConfirmResponse{PaymentID: "p1", Status: tt.status},
			}
			svc, store := newTestCheckout(t, api, nil)

			result, err := svc.ConfirmCard(context.Background(), "token", "student-1", confirmReq())
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Outcome)

			_, err = store.Get("d1", "student-1")
			if tt.draftKept {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, appErrors.ErrDraftNotFound)
			}

			require.NotNil(t, api.lastConfirm)
			assert.Equal(t, 100.0, api.lastConfirm.Amount)
			assert.Equal(t, "l1,l2", api.lastConfirm.ExternalReference)
		})
	}
}

func TestConfirmCardNeedsSubmittedDraft(t *testing.T) {
	api := &fakeCheckoutUpstream{
		confirm: &upstream.CardConfirmResponse{PaymentID: "p1", Status: models.PaymentApproved},
	}
	svc, store := newTestCheckout(t, api, nil)
	store.Put(readyDraft())

	_, err := svc.ConfirmCard(context.Background(), "token", "student-1", confirmReq())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Nil(t, api.lastConfirm, "no charge goes out for an unsubmitted draft")
}

func TestConfirmCardTransportFailureIsFailureNotPending(t *testing.T) {
	api := &fakeCheckoutUpstream{confirmErr: appErrors.ErrUpstream}
	svc, store := newTestCheckout(t, api, nil)

	result, err := svc.ConfirmCard(context.Background(), "token", "student-1", confirmReq())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeFailure, result.Outcome)

	_, err = store.Get("d1", "student-1")
	assert.NoError(t, err, "draft kept for retry")
}

func TestPaymentStatusMapsOutcome(t *testing.T) {
	api := &fakeCheckoutUpstream{
		status: &upstream.PaymentStatusResponse{PaymentID: "p1", Status: models.PaymentApproved},
	}
	svc, _ := newTestCheckout(t, api, nil)

	result, err := svc.PaymentStatus(context.Background(), "token", "p1")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSuccess, result.Outcome)
}

func TestSendPixEmail(t *testing.T) {
	api := &fakeCheckoutUpstream{}
	svc, _ := newTestCheckout(t, api, nil)

	require.NoError(t, svc.SendPixEmail(context.Background(), "token", dto.PixEmailRequest{PaymentID: "p1"}))
	assert.Equal(t, "p1", api.lastEmail)

	err := svc.SendPixEmail(context.Background(), "token", dto.PixEmailRequest{})
	assert.Error(t, err, "paymentId is required")
}
