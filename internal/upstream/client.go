package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lzamboni86/godrive-mobile-api/internal/models"
	"github.com/lzamboni86/godrive-mobile-api/pkg/config"
	appErrors "github.com/lzamboni86/godrive-mobile-api/pkg/errors"
)

// CallObserver records timing and failures for core API calls.
type CallObserver interface {
	ObserveUpstreamCall(endpoint string, duration time.Duration, err error)
}

// Client talks to the GoDrive core API on behalf of the mobile app,
// forwarding the caller's bearer token unchanged.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
	observer CallObserver
}

// NewClient constructs a Client with sane defaults.
func NewClient(cfg config.Upstream, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// SetObserver attaches a metrics observer. Safe to skip in tests.
func (c *Client) SetObserver(o CallObserver) {
	c.observer = o
}

type upstreamErrorBody struct {
	Message string `json:"message"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, op, method, path, token string, body, out interface{}) (err error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "encode upstream request")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "build upstream request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	defer func() {
		if c.observer != nil {
			c.observer.ObserveUpstreamCall(op, time.Since(start), err)
		}
	}()

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Sugar().Warnw("upstream request failed", "method", method, "path", path, "error", err)
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "read upstream response")
	}

	c.logger.Sugar().Debugw("upstream call",
		"method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		return c.errorFromResponse(resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode upstream response")
		}
	}
	return nil
}

// errorFromResponse surfaces the upstream message when one is present
// so the app can show it verbatim, keeping the upstream status code.
func (c *Client) errorFromResponse(status int, raw []byte) error {
	message := appErrors.ErrUpstream.Message
	var parsed upstreamErrorBody
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if parsed.Message != "" {
			message = parsed.Message
		} else if parsed.Error.Message != "" {
			message = parsed.Error.Message
		}
	}
	return appErrors.New(appErrors.ErrUpstream.Code, status, message)
}

// ApprovedInstructors lists bookable instructors, optionally filtered.
func (c *Client) ApprovedInstructors(ctx context.Context, token string, filter models.InstructorFilter) ([]models.Instructor, error) {
	q := url.Values{}
	if filter.State != "" {
		q.Set("state", filter.State)
	}
	if filter.City != "" {
		q.Set("city", filter.City)
	}
	if filter.NeighborhoodTeach != "" {
		q.Set("neighborhoodTeach", filter.NeighborhoodTeach)
	}
	if filter.Gender != "" {
		q.Set("gender", filter.Gender)
	}
	if filter.Transmission != "" {
		q.Set("transmission", filter.Transmission)
	}
	if filter.EngineType != "" {
		q.Set("engineType", filter.EngineType)
	}
	path := "/instructors/approved"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var instructors []models.Instructor
	if err := c.do(ctx, "instructors.approved", http.MethodGet, path, token, nil, &instructors); err != nil {
		return nil, err
	}
	return instructors, nil
}

// Instructor fetches a single instructor by ID.
func (c *Client) Instructor(ctx context.Context, token, id string) (*models.Instructor, error) {
	var instructor models.Instructor
	if err := c.do(ctx, "instructors.get", http.MethodGet, "/instructors/"+url.PathEscape(id), token, nil, &instructor); err != nil {
		return nil, err
	}
	return &instructor, nil
}

// PastLessons returns the student's past lessons, cancelled included.
func (c *Client) PastLessons(ctx context.Context, token string) ([]models.Lesson, error) {
	var lessons []models.Lesson
	if err := c.do(ctx, "lessons.past", http.MethodGet, "/student/lessons/past", token, nil, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

// UpcomingLessons returns the student's upcoming lessons.
func (c *Client) UpcomingLessons(ctx context.Context, token string) ([]models.Lesson, error) {
	var lessons []models.Lesson
	if err := c.do(ctx, "lessons.upcoming", http.MethodGet, "/student/lessons/upcoming", token, nil, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

// ScheduleLessonInput is one lesson slot in a schedule request, priced
// at the instructor's hourly rate.
type ScheduleLessonInput struct {
	Date     string  `json:"date"`
	Time     string  `json:"time"`
	Duration int     `json:"duration"`
	Price    float64 `json:"price"`
}

// ScheduleRequest creates lessons for the student with the instructor.
// PaymentMethod is only present on the wallet path.
type ScheduleRequest struct {
	StudentID     string                `json:"studentId"`
	InstructorID  string                `json:"instructorId"`
	Lessons       []ScheduleLessonInput `json:"lessons"`
	TotalAmount   float64               `json:"totalAmount"`
	Status        models.LessonStatus   `json:"status"`
	PaymentMethod string                `json:"paymentMethod,omitempty"`
}

// ScheduleResponse is the created booking, lesson IDs included.
type ScheduleResponse struct {
	BookingID string          `json:"bookingId,omitempty"`
	Lessons   []models.Lesson `json:"lessons"`
}

// Schedule posts a new booking to the core API.
func (c *Client) Schedule(ctx context.Context, token string, req ScheduleRequest) (*ScheduleResponse, error) {
	var resp ScheduleResponse
	if err := c.do(ctx, "schedule.create", http.MethodPost, "/student/schedule", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdjustRequest proposes a new slot for a confirmed lesson.
type AdjustRequest struct {
	LessonID string `json:"lessonId"`
	NewDate  string `json:"newDate"`
	NewTime  string `json:"newTime"`
	Reason   string `json:"reason,omitempty"`
}

// Adjust submits an adjustment proposal for a lesson.
func (c *Client) Adjust(ctx context.Context, token string, req AdjustRequest) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := c.do(ctx, "schedule.adjust", http.MethodPost, "/student/schedule/adjust", token, req, &lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// WalletBalance fetches the student's wallet.
func (c *Client) WalletBalance(ctx context.Context, token string) (*models.WalletBalance, error) {
	var balance models.WalletBalance
	if err := c.do(ctx, "wallet.balance", http.MethodGet, "/wallet/balance", token, nil, &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}

// WalletTransactions lists the student's wallet ledger.
func (c *Client) WalletTransactions(ctx context.Context, token string) ([]models.WalletTransaction, error) {
	var txs []models.WalletTransaction
	if err := c.do(ctx, "wallet.transactions", http.MethodGet, "/wallet/transactions", token, nil, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// PixCreateRequest opens a PIX charge with the payment gateway.
type PixCreateRequest struct {
	Amount            float64 `json:"amount"`
	ExternalReference string  `json:"externalReference"`
	DeviceID          string  `json:"deviceId,omitempty"`
	Description       string  `json:"description,omitempty"`
}

// CreatePix opens a PIX charge for the pending booking.
func (c *Client) CreatePix(ctx context.Context, token string, req PixCreateRequest) (*models.PixPayment, error) {
	var pix models.PixPayment
	if err := c.do(ctx, "payments.pix.create", http.MethodPost, "/payments/mercado-pago/pix/create", token, req, &pix); err != nil {
		return nil, err
	}
	return &pix, nil
}

// SendPixEmail asks the core API to mail the PIX copy-and-paste code.
func (c *Client) SendPixEmail(ctx context.Context, token, paymentID string) error {
	body := map[string]string{"paymentId": paymentID}
	return c.do(ctx, "payments.pix.email", http.MethodPost, "/payments/mercado-pago/pix/send-email", token, body, nil)
}

// PaymentStatusResponse is the gateway's view of a payment.
type PaymentStatusResponse struct {
	PaymentID string               `json:"paymentId"`
	Status    models.PaymentStatus `json:"status"`
}

// PaymentStatus polls the status of a gateway payment.
func (c *Client) PaymentStatus(ctx context.Context, token, paymentID string) (*PaymentStatusResponse, error) {
	var status PaymentStatusResponse
	if err := c.do(ctx, "payments.status", http.MethodGet, "/payments/mercado-pago/status/"+url.PathEscape(paymentID), token, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// CardConfirmRequest submits a tokenized card payment.
type CardConfirmRequest struct {
	Token             string  `json:"token"`
	PaymentMethodID   string  `json:"paymentMethodId"`
	IssuerID          string  `json:"issuerId"`
	Installments      int     `json:"installments"`
	Amount            float64 `json:"amount"`
	ExternalReference string  `json:"externalReference"`
	DeviceID          string  `json:"deviceId,omitempty"`
}

// CardConfirmResponse is the gateway's decision on a card payment.
type CardConfirmResponse struct {
	PaymentID string               `json:"paymentId"`
	Status    models.PaymentStatus `json:"status"`
	Detail    string               `json:"statusDetail,omitempty"`
}

// ConfirmCard submits a tokenized card payment for the pending booking.
func (c *Client) ConfirmCard(ctx context.Context, token string, req CardConfirmRequest) (*CardConfirmResponse, error) {
	var resp CardConfirmResponse
	if err := c.do(ctx, "payments.card.confirm", http.MethodPost, "/payments/mercado-pago/card/confirm", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health probes the core API health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("core api unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("core api unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
