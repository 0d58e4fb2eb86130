package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lzamboni86/godrive-mobile-api/internal/models"
	appErrors "github.com/lzamboni86/godrive-mobile-api/pkg/errors"
)

// DraftStore holds booking drafts in memory. Drafts are scoped to a
// student; an expired or missing draft means the student starts the
// wizard over, there is no durable resume.
type DraftStore struct {
	mu      sync.RWMutex
	drafts  map[string]draftEntry
	ttl     time.Duration
	logger  *zap.Logger
	metrics *MetricsService
	now     func() time.Time

	stop chan struct{}
	once sync.Once
}

type draftEntry struct {
	draft     models.BookingDraft
	expiresAt time.Time
}

// cloneDraft deep-copies the draft's slice and map fields. Put and Get
// exchange copies so callers never mutate backing storage shared with
// the stored entry (or with another request's copy) outside the lock.
func cloneDraft(d models.BookingDraft) models.BookingDraft {
	d.SelectedDates = append([]string(nil), d.SelectedDates...)
	d.PendingLessonIDs = append([]string(nil), d.PendingLessonIDs...)
	if d.SelectedTimes != nil {
		times := make(map[string][]string, len(d.SelectedTimes))
		for date, slots := range d.SelectedTimes {
			times[date] = append([]string(nil), slots...)
		}
		d.SelectedTimes = times
	}
	return d
}

// NewDraftStore constructs a store with the given TTL.
func NewDraftStore(ttl time.Duration, metrics *MetricsService, logger *zap.Logger) *DraftStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftStore{
		drafts:  make(map[string]draftEntry),
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
}

// StartJanitor evicts expired drafts on the given interval until ctx
// is cancelled or Close is called.
func (s *DraftStore) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			case <-ticker.C:
				s.evictExpired()
			}
		}
	}()
}

// Close stops the janitor.
func (s *DraftStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *DraftStore) evictExpired() {
	now := s.now()
	s.mu.Lock()
	evicted := 0
	for id, entry := range s.drafts {
		if now.After(entry.expiresAt) {
			delete(s.drafts, id)
			evicted++
		}
	}
	remaining := len(s.drafts)
	s.mu.Unlock()

	if evicted > 0 {
		s.logger.Sugar().Infow("evicted expired drafts", "count", evicted, "remaining", remaining)
	}
	s.metrics.SetActiveDrafts(remaining)
}

// Put stores or replaces a draft, refreshing its expiry.
func (s *DraftStore) Put(draft models.BookingDraft) {
	now := s.now()
	draft.UpdatedAt = now
	s.mu.Lock()
	s.drafts[draft.ID] = draftEntry{draft: cloneDraft(draft), expiresAt: now.Add(s.ttl)}
	size := len(s.drafts)
	s.mu.Unlock()
	s.metrics.SetActiveDrafts(size)
}

// Get returns the draft when it exists, belongs to studentID and has
// not expired.
func (s *DraftStore) Get(id, studentID string) (models.BookingDraft, error) {
	s.mu.RLock()
	entry, ok := s.drafts[id]
	s.mu.RUnlock()

	if !ok || s.now().After(entry.expiresAt) {
		return models.BookingDraft{}, appErrors.ErrDraftNotFound
	}
	if entry.draft.StudentID != studentID {
		// Do not reveal that the draft exists for someone else.
		return models.BookingDraft{}, appErrors.ErrDraftNotFound
	}
	return cloneDraft(entry.draft), nil
}

// Delete discards a draft. Deleting a missing draft is a no-op.
func (s *DraftStore) Delete(id string) {
	s.mu.Lock()
	delete(s.drafts, id)
	size := len(s.drafts)
	s.mu.Unlock()
	s.metrics.SetActiveDrafts(size)
}

// Len reports how many drafts are held, expired ones included until
// the janitor runs.
func (s *DraftStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.drafts)
}
