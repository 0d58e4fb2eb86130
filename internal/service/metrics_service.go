package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lzamboni86/godrive-mobile-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for the ops endpoint.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	upstreamErrors   *prometheus.CounterVec
	draftsActive     prometheus.Gauge
	bookingsTotal    *prometheus.CounterVec
	pixWatchOutcomes *prometheus.CounterVec

	requestCount          uint64
	requestDurationTotal  uint64
	upstreamCount         uint64
	upstreamDurationTotal uint64
	bookingsWallet        uint64
	bookingsGateway       uint64
	activeDrafts          int64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of calls to the core API",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	upstreamErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_request_errors_total",
		Help: "Failed calls to the core API",
	}, []string{"endpoint"})

	draftsActive := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "booking_drafts_active",
		Help: "Booking drafts currently held in memory",
	})

	bookingsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bookings_submitted_total",
		Help: "Bookings submitted, labelled by payment path",
	}, []string{"path"})

	pixWatchOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pix_watch_outcomes_total",
		Help: "Terminal outcomes observed by the PIX payment watcher",
	}, []string{"outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, upstreamDuration, upstreamErrors, draftsActive, bookingsTotal, pixWatchOutcomes, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:         registry,
		handler:          handler,
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		upstreamDuration: upstreamDuration,
		upstreamErrors:   upstreamErrors,
		draftsActive:     draftsActive,
		bookingsTotal:    bookingsTotal,
		pixWatchOutcomes: pixWatchOutcomes,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveUpstreamCall records timing for a core API call.
func (m *MetricsService) ObserveUpstreamCall(endpoint string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
	if err != nil {
		m.upstreamErrors.WithLabelValues(endpoint).Inc()
	}
	atomic.AddUint64(&m.upstreamCount, 1)
	atomic.AddUint64(&m.upstreamDurationTotal, uint64(duration.Nanoseconds()))
}

// SetActiveDrafts updates the draft gauge.
func (m *MetricsService) SetActiveDrafts(n int) {
	if m == nil {
		return
	}
	m.draftsActive.Set(float64(n))
	atomic.StoreInt64(&m.activeDrafts, int64(n))
}

// RecordBooking counts a submitted booking by payment path.
func (m *MetricsService) RecordBooking(path models.PaymentPath) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(string(path)).Inc()
	switch path {
	case models.PaymentPathWallet:
		atomic.AddUint64(&m.bookingsWallet, 1)
	case models.PaymentPathGateway:
		atomic.AddUint64(&m.bookingsGateway, 1)
	}
}

// RecordPixWatchOutcome counts a terminal watcher outcome.
func (m *MetricsService) RecordPixWatchOutcome(outcome string) {
	if m == nil {
		return
	}
	m.pixWatchOutcomes.WithLabelValues(outcome).Inc()
}

// Snapshot returns aggregated metrics for the ops endpoint.
func (m *MetricsService) Snapshot() models.GatewayMetrics {
	if m == nil {
		return models.GatewayMetrics{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	upstream := atomic.LoadUint64(&m.upstreamCount)
	upDuration := atomic.LoadUint64(&m.upstreamDurationTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}
	var avgUpstreamMs float64
	if upstream > 0 {
		avgUpstreamMs = float64(upDuration) / float64(upstream) / float64(time.Millisecond)
	}

	return models.GatewayMetrics{
		RequestsTotal:             requests,
		AverageRequestDurationMs:  avgRequestMs,
		UpstreamCalls:             upstream,
		AverageUpstreamDurationMs: avgUpstreamMs,
		ActiveDrafts:              int(atomic.LoadInt64(&m.activeDrafts)),
		BookingsWallet:            atomic.LoadUint64(&m.bookingsWallet),
		BookingsGateway:           atomic.LoadUint64(&m.bookingsGateway),
		Goroutines:                runtime.NumGoroutine(),
		GeneratedAt:               time.Now().UTC(),
	}
}
