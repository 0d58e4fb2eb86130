package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lzamboni86/godrive-mobile-api/internal/dto"
	"github.com/lzamboni86/godrive-mobile-api/internal/models"
	"github.com/lzamboni86/godrive-mobile-api/internal/upstream"
	appErrors "github.com/lzamboni86/godrive-mobile-api/pkg/errors"
)

// checkoutUpstream is the slice of the core API the checkout uses.
type checkoutUpstream interface {
	CreatePix(ctx context.Context, token string, req upstream.PixCreateRequest) (*models.PixPayment, error)
	SendPixEmail(ctx context.Context, token, paymentID string) error
	PaymentStatus(ctx context.Context, token, paymentID string) (*upstream.PaymentStatusResponse, error)
	ConfirmCard(ctx context.Context, token string, req upstream.CardConfirmRequest) (*upstream.CardConfirmResponse, error)
}

// pixWatchEnqueuer lets the checkout hand a created PIX charge to the
// background watcher. Nil-safe through PixWatcher.
type pixWatchEnqueuer interface {
	Watch(paymentID, token, draftID string)
}

// CheckoutService handles the hosted checkout relay and payment
// confirmation. The relay speaks a closed message protocol with the
// embedded payment page; anything outside the known kinds is rejected.
type CheckoutService struct {
	store     *DraftStore
	api       checkoutUpstream
	watcher   pixWatchEnqueuer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCheckoutService constructs a CheckoutService.
func NewCheckoutService(store *DraftStore, api checkoutUpstream, watcher pixWatchEnqueuer, validate *validator.Validate, logger *zap.Logger) *CheckoutService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		store:     store,
		api:       api,
		watcher:   watcher,
		validator: validate,
		logger:    logger,
	}
}

// externalReference joins the pending lesson IDs with commas; the
// payment webhook uses it to find the lessons to confirm.
func externalReference(draft models.BookingDraft) string {
	return strings.Join(draft.PendingLessonIDs, ",")
}

// requirePendingPayment rejects drafts that never went through a
// gateway-path submission. Without it a charge would go out with a
// zero amount and an empty external reference.
func requirePendingPayment(draft models.BookingDraft) error {
	if len(draft.PendingLessonIDs) == 0 || draft.PendingAmount <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "draft has no pending payment")
	}
	return nil
}

// HandleMessage processes one message from the checkout page and
// returns the instruction for the app shell. Every known kind is
// handled; an unknown kind is a client error, never silently dropped.
func (s *CheckoutService) HandleMessage(ctx context.Context, token, draftID, studentID string, msg dto.CheckoutMessage) (*dto.RelayReply, error) {
	if err := s.validator.Struct(msg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid checkout message")
	}
	if !msg.Kind.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown checkout message kind %q", msg.Kind))
	}

	draft, err := s.store.Get(draftID, studentID)
	if err != nil {
		return nil, err
	}

	switch msg.Kind {
	case models.MessageDeviceID:
		if msg.DeviceID == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "device message without deviceId")
		}
		draft.DeviceID = msg.DeviceID
		s.store.Put(draft)
		return &dto.RelayReply{Action: models.ActionStoreDevice}, nil

	case models.MessageError:
		alert := msg.Message
		if alert == "" {
			alert = "payment failed, try again"
		}
		s.logger.Sugar().Warnw("checkout page reported error", "draft_id", draftID, "message", msg.Message)
		return &dto.RelayReply{Action: models.ActionAlert, Alert: alert}, nil

	case models.MessageCancel:
		// The draft survives: backing out of checkout is not
		// abandoning the booking.
		return &dto.RelayReply{Action: models.ActionNavigateBack}, nil

	case models.MessagePixCreate:
		if err := requirePendingPayment(draft); err != nil {
			return nil, err
		}
		pix, err := s.api.CreatePix(ctx, token, upstream.PixCreateRequest{
			Amount:            draft.PendingAmount,
			ExternalReference: externalReference(draft),
			DeviceID:          draft.DeviceID,
		})
		if err != nil {
			return nil, err
		}
		if s.watcher != nil {
			s.watcher.Watch(pix.PaymentID, token, draft.ID)
		}
		s.logger.Sugar().Infow("pix charge created",
			"draft_id", draftID, "payment_id", pix.PaymentID, "amount", draft.PendingAmount)
		return &dto.RelayReply{Action: models.ActionInjectPix, Pix: pix}, nil

	case models.MessageToken:
		if msg.Token == "" || msg.PaymentMethodID == "" || msg.IssuerID == "" || msg.Installments < 1 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "incomplete card token message")
		}
		return &dto.RelayReply{
			Action: models.ActionNavigateConfirm,
			Card: &dto.CardPaymentIntent{
				Token:           msg.Token,
				PaymentMethodID: msg.PaymentMethodID,
				IssuerID:        msg.IssuerID,
				Installments:    msg.Installments,
			},
		}, nil
	}

	// Unreachable: Valid() covers the enum.
	return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unhandled checkout message kind %q", msg.Kind))
}

// ConfirmCard submits the tokenized card payment. Approved and pending
// outcomes discard the draft; a declined or failed payment keeps it so
// the student can retry. A transport failure reads as a decline, never
// as pending.
func (s *CheckoutService) ConfirmCard(ctx context.Context, token, studentID string, req dto.ConfirmCardRequest) (*dto.PaymentResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid card payload")
	}

	draft, err := s.store.Get(req.DraftID, studentID)
	if err != nil {
		return nil, err
	}
	if err := requirePendingPayment(draft); err != nil {
		return nil, err
	}

	deviceID := req.DeviceID
	if deviceID == "" {
		deviceID = draft.DeviceID
	}

	resp, err := s.api.ConfirmCard(ctx, token, upstream.CardConfirmRequest{
		Token:             req.Token,
		PaymentMethodID:   req.PaymentMethodID,
		IssuerID:          req.IssuerID,
		Installments:      req.Installments,
		Amount:            draft.PendingAmount,
		ExternalReference: externalReference(draft),
		DeviceID:          deviceID,
	})
	if err != nil {
		s.logger.Sugar().Warnw("card confirmation failed", "draft_id", draft.ID, "error", err)
		return &dto.PaymentResult{Outcome: models.OutcomeFailure}, nil
	}

	outcome := models.OutcomeForStatus(resp.Status)
	if outcome == models.OutcomeSuccess || outcome == models.OutcomePending {
		s.store.Delete(draft.ID)
	}

	s.logger.Sugar().Infow("card payment confirmed",
		"draft_id", draft.ID, "payment_id", resp.PaymentID,
		"status", resp.Status, "outcome", outcome)

	return &dto.PaymentResult{
		Outcome:   outcome,
		PaymentID: resp.PaymentID,
		Status:    resp.Status,
	}, nil
}

// PaymentStatus polls a payment and maps it to a student-facing
// outcome.
func (s *CheckoutService) PaymentStatus(ctx context.Context, token, paymentID string) (*dto.PaymentResult, error) {
	resp, err := s.api.PaymentStatus(ctx, token, paymentID)
	if err != nil {
		return nil, err
	}
	return &dto.PaymentResult{
		Outcome:   models.OutcomeForStatus(resp.Status),
		PaymentID: resp.PaymentID,
		Status:    resp.Status,
	}, nil
}

// SendPixEmail mails the PIX copy-and-paste code to the student.
func (s *CheckoutService) SendPixEmail(ctx context.Context, token string, req dto.PixEmailRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	return s.api.SendPixEmail(ctx, token, req.PaymentID)
}
