package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lzamboni86/godrive-mobile-api/internal/models"
	"github.com/lzamboni86/godrive-mobile-api/internal/upstream"
	"github.com/lzamboni86/godrive-mobile-api/pkg/config"
	appErrors "github.com/lzamboni86/godrive-mobile-api/pkg/errors"
	"github.com/lzamboni86/godrive-mobile-api/pkg/jobs"
)

type fakePoller struct {
	status *upstream.PaymentStatusResponse
	err    error
}

func (f *fakePoller) PaymentStatus(context.Context, string, string) (*upstream.PaymentStatusResponse, error) {
	return f.status, f.err
}

func watchJob() jobs.Job {
	return jobs.Job{
		ID:      "j1",
		Type:    "pix-status",
		Payload: pixWatchPayload{PaymentID: "p1", Token: "token", DraftID: "d1"},
	}
}

func newTestWatcher(poller *fakePoller) (*PixWatcher, *DraftStore) {
	store, _ := newTestStore(2 * time.Hour)
	store.Put(models.BookingDraft{ID: "d1", StudentID: "student-1"})
	w := NewPixWatcher(config.PixWatchConfig{Workers: 1, MaxAttempts: 3, PollInterval: time.Millisecond}, poller, store, nil, zap.NewNop())
	return w, store
}

func TestPixWatcherApprovedReleasesDraft(t *testing.T) {
	w, store := newTestWatcher(&fakePoller{
		status: &upstream.PaymentStatusResponse{PaymentID: "p1", Status: models.PaymentApproved},
	})

	require.NoError(t, w.handle(context.Background(), watchJob()))

	_, err := store.Get("d1", "student-1")
	assert.ErrorIs(t, err, appErrors.ErrDraftNotFound)
}

func TestPixWatcherPendingRequestsRetry(t *testing.T) {
	w, store := newTestWatcher(&fakePoller{
		status: &upstream.PaymentStatusResponse{PaymentID: "p1", Status: models.PaymentPending},
	})

	err := w.handle(context.Background(), watchJob())
	assert.ErrorIs(t, err, errPixPending)

	_, getErr := store.Get("d1", "student-1")
	assert.NoError(t, getErr)
}

func TestPixWatcherRejectedStopsQuietly(t *testing.T) {
	w, store := newTestWatcher(&fakePoller{
		status: &upstream.PaymentStatusResponse{PaymentID: "p1", Status: models.PaymentRejected},
	})

	require.NoError(t, w.handle(context.Background(), watchJob()))

	// A failed payment keeps the draft so the student can retry.
	_, err := store.Get("d1", "student-1")
	assert.NoError(t, err)
}

func TestPixWatcherPollErrorRetries(t *testing.T) {
	w, _ := newTestWatcher(&fakePoller{err: appErrors.ErrUpstream})

	err := w.handle(context.Background(), watchJob())
	assert.Error(t, err)
}
