package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lzamboni86/godrive-mobile-api/internal/models"
	"github.com/lzamboni86/godrive-mobile-api/internal/upstream"
	"github.com/lzamboni86/godrive-mobile-api/pkg/config"
	"github.com/lzamboni86/godrive-mobile-api/pkg/jobs"
)

type pixStatusPoller interface {
	PaymentStatus(ctx context.Context, token, paymentID string) (*upstream.PaymentStatusResponse, error)
}

// pixWatchPayload is the job payload for one watched PIX charge.
type pixWatchPayload struct {
	PaymentID string
	Token     string
	DraftID   string
}

// errPixPending drives the queue's retry loop: a still-pending payment
// is re-checked after the retry delay until the attempt budget runs
// out.
var errPixPending = fmt.Errorf("pix payment still pending")

// PixWatcher polls open PIX charges in the background so an approved
// payment releases its draft even when the student never returns to
// the confirmation screen. Polling is bounded; a charge that stays
// pending past the attempt budget is simply abandoned, the upstream
// webhook remains the source of truth.
type PixWatcher struct {
	queue   *jobs.Queue
	poller  pixStatusPoller
	store   *DraftStore
	metrics *MetricsService
	logger  *zap.Logger
}

// NewPixWatcher constructs a PixWatcher backed by an in-memory queue.
func NewPixWatcher(cfg config.PixWatchConfig, poller pixStatusPoller, store *DraftStore, metrics *MetricsService, logger *zap.Logger) *PixWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &PixWatcher{
		poller:  poller,
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
	w.queue = jobs.NewQueue("pix-watch", w.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxAttempts,
		RetryDelay: cfg.PollInterval,
		Logger:     logger,
	})
	return w
}

// Start begins background polling.
func (w *PixWatcher) Start(ctx context.Context) {
	w.queue.Start(ctx)
}

// Stop drains the workers.
func (w *PixWatcher) Stop() {
	w.queue.Stop()
}

// Watch enqueues a created PIX charge for polling.
func (w *PixWatcher) Watch(paymentID, token, draftID string) {
	err := w.queue.Enqueue(jobs.Job{
		ID:   uuid.NewString(),
		Type: "pix-status",
		Payload: pixWatchPayload{
			PaymentID: paymentID,
			Token:     token,
			DraftID:   draftID,
		},
	})
	if err != nil {
		w.logger.Sugar().Warnw("pix watch enqueue failed", "payment_id", paymentID, "error", err)
	}
}

func (w *PixWatcher) handle(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(pixWatchPayload)
	if !ok {
		w.logger.Sugar().Errorw("pix watch job with bad payload", "job_id", job.ID)
		return nil
	}

	status, err := w.poller.PaymentStatus(ctx, payload.Token, payload.PaymentID)
	if err != nil {
		// Transient upstream trouble counts against the same budget.
		return err
	}

	switch models.OutcomeForStatus(status.Status) {
	case models.OutcomeSuccess:
		w.store.Delete(payload.DraftID)
		w.metrics.RecordPixWatchOutcome("approved")
		w.logger.Sugar().Infow("pix payment approved",
			"payment_id", payload.PaymentID, "draft_id", payload.DraftID)
		return nil
	case models.OutcomePending:
		return errPixPending
	default:
		w.metrics.RecordPixWatchOutcome("failed")
		w.logger.Sugar().Infow("pix payment not completed",
			"payment_id", payload.PaymentID, "status", status.Status)
		return nil
	}
}
