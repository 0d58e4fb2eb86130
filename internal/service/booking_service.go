package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lzamboni86/godrive-mobile-api/internal/dto"
	"github.com/lzamboni86/godrive-mobile-api/internal/models"
	"github.com/lzamboni86/godrive-mobile-api/internal/upstream"
	appErrors "github.com/lzamboni86/godrive-mobile-api/pkg/errors"
	"github.com/lzamboni86/godrive-mobile-api/pkg/export"
)

// bookingUpstream is the slice of the core API the booking flow uses.
type bookingUpstream interface {
	Instructor(ctx context.Context, token, id string) (*models.Instructor, error)
	WalletBalance(ctx context.Context, token string) (*models.WalletBalance, error)
	Schedule(ctx context.Context, token string, req upstream.ScheduleRequest) (*upstream.ScheduleResponse, error)
}

// CheckoutCopy is the summary text shown inside the hosted checkout.
type CheckoutCopy struct {
	Title    string
	Subtitle string
}

// BookingService prices a finished draft and routes the submission:
// the wallet covers the whole total or the booking goes through the
// payment gateway.
type BookingService struct {
	store    *DraftStore
	api      bookingUpstream
	exporter *export.ReceiptExporter
	metrics  *MetricsService
	copy     CheckoutCopy
	logger   *zap.Logger
	now      func() time.Time
}

// NewBookingService constructs a BookingService.
func NewBookingService(store *DraftStore, api bookingUpstream, exporter *export.ReceiptExporter, metrics *MetricsService, copy CheckoutCopy, logger *zap.Logger) *BookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		store:    store,
		api:      api,
		exporter: exporter,
		metrics:  metrics,
		copy:     copy,
		logger:   logger,
		now:      time.Now,
	}
}

// pricedDraft is a draft joined with the wallet and instructor data
// needed to price it.
type pricedDraft struct {
	draft      models.BookingDraft
	instructor *models.Instructor
	wallet     *models.WalletBalance
	total      float64
	path       models.PaymentPath
}

// price loads the draft and fetches wallet and instructor in parallel.
// Either failure fails the whole review: pricing must never render
// from partial data.
func (s *BookingService) price(ctx context.Context, token, draftID, studentID string) (*pricedDraft, error) {
	draft, err := s.store.Get(draftID, studentID)
	if err != nil {
		return nil, err
	}
	if short := draft.TimeShortfall(); short > 0 {
		return nil, appErrors.Clone(appErrors.ErrSelectionShort, fmt.Sprintf("select %d more time slots", short))
	}

	var (
		instructor *models.Instructor
		wallet     *models.WalletBalance
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		instructor, err = s.api.Instructor(gctx, token, draft.InstructorID)
		return err
	})
	g.Go(func() error {
		var err error
		wallet, err = s.api.WalletBalance(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if instructor.HourlyRate == nil {
		return nil, appErrors.ErrPriceUnavailable
	}

	total := float64(draft.TotalSelectedTimes()) * (*instructor.HourlyRate)
	path := models.PaymentPathGateway
	if wallet.AvailableBalance >= total {
		path = models.PaymentPathWallet
	}

	return &pricedDraft{
		draft:      draft,
		instructor: instructor,
		wallet:     wallet,
		total:      total,
		path:       path,
	}, nil
}

// Review prices the draft for the confirmation screen.
func (s *BookingService) Review(ctx context.Context, token, draftID, studentID string) (*dto.ReviewView, error) {
	priced, err := s.price(ctx, token, draftID, studentID)
	if err != nil {
		return nil, err
	}
	return &dto.ReviewView{
		DraftID:     priced.draft.ID,
		Instructor:  priced.instructor,
		Slots:       priced.draft.Slots(),
		LessonCount: priced.draft.TotalSelectedTimes(),
		HourlyRate:  *priced.instructor.HourlyRate,
		TotalAmount: priced.total,
		Wallet:      *priced.wallet,
		PaymentPath: priced.path,
	}, nil
}

// Submit posts the booking upstream. On the wallet path the lessons
// are created awaiting instructor approval and the draft is discarded.
// On the gateway path the lessons are created pending payment and the
// draft survives so a failed or abandoned checkout can be retried.
func (s *BookingService) Submit(ctx context.Context, token, draftID, studentID string) (*dto.SubmitResult, error) {
	priced, err := s.price(ctx, token, draftID, studentID)
	if err != nil {
		return nil, err
	}
	draft := priced.draft

	slots := draft.Slots()
	rate := *priced.instructor.HourlyRate
	lessons := make([]upstream.ScheduleLessonInput, 0, len(slots))
	for _, slot := range slots {
		lessons = append(lessons, upstream.ScheduleLessonInput{
			Date:     slot.Date,
			Time:     slot.Time,
			Duration: models.LessonDurationMinutes,
			Price:    rate,
		})
	}

	req := upstream.ScheduleRequest{
		StudentID:    studentID,
		InstructorID: draft.InstructorID,
		Lessons:      lessons,
		TotalAmount:  priced.total,
	}
	if priced.path == models.PaymentPathWallet {
		req.Status = models.LessonWaitingApproval
		req.PaymentMethod = string(models.PaymentPathWallet)
	} else {
		req.Status = models.LessonPendingPayment
	}

	resp, err := s.api.Schedule(ctx, token, req)
	if err != nil {
		// Draft stays put: the student retries without re-entering
		// the selection.
		return nil, err
	}

	result := &dto.SubmitResult{
		Path:        priced.path,
		BookingID:   resp.BookingID,
		TotalAmount: priced.total,
	}
	for _, lesson := range resp.Lessons {
		result.LessonIDs = append(result.LessonIDs, lesson.ID)
	}

	s.metrics.RecordBooking(priced.path)

	if priced.path == models.PaymentPathWallet {
		s.store.Delete(draft.ID)
		s.logger.Sugar().Infow("booking paid from wallet",
			"draft_id", draft.ID, "student_id", studentID,
			"lessons", len(result.LessonIDs), "total", priced.total)
		return result, nil
	}

	draft.PendingLessonIDs = result.LessonIDs
	draft.PendingAmount = priced.total
	s.store.Put(draft)

	result.CheckoutURL = s.checkoutURL(priced.total, result.LessonIDs)
	s.logger.Sugar().Infow("booking sent to checkout",
		"draft_id", draft.ID, "student_id", studentID,
		"lessons", len(result.LessonIDs), "total", priced.total)
	return result, nil
}

// checkoutURL builds the hosted checkout handoff. The external
// reference is the created lesson IDs joined with commas, which is how
// the payment webhook finds the lessons to confirm.
func (s *BookingService) checkoutURL(total float64, lessonIDs []string) string {
	q := url.Values{}
	q.Set("amount", fmt.Sprintf("%.2f", total))
	q.Set("externalReference", strings.Join(lessonIDs, ","))
	q.Set("summaryTitle", s.copy.Title)
	q.Set("summarySubtitle", s.copy.Subtitle)
	return "/payments/mercado-pago/secure-fields?" + q.Encode()
}

// SummaryPDF renders the priced draft as a downloadable booking
// summary.
func (s *BookingService) SummaryPDF(ctx context.Context, token, draftID, studentID, studentName string) ([]byte, error) {
	priced, err := s.price(ctx, token, draftID, studentID)
	if err != nil {
		return nil, err
	}

	rate := *priced.instructor.HourlyRate
	lines := make([]export.ReceiptLine, 0, priced.draft.TotalSelectedTimes())
	for _, slot := range priced.draft.Slots() {
		lines = append(lines, export.ReceiptLine{
			Date:     slot.Date,
			Time:     slot.Time,
			Duration: models.LessonDurationMinutes,
			Price:    rate,
		})
	}

	return s.exporter.Render(export.Receipt{
		Title:          s.copy.Title,
		Reference:      priced.draft.ID,
		StudentName:    studentName,
		InstructorName: priced.instructor.Name,
		Lines:          lines,
		Total:          priced.total,
		IssuedAt:       s.now().UTC(),
	})
}
