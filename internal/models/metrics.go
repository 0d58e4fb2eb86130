package models

import "time"

// GatewayMetrics is a lightweight aggregate snapshot for the ops
// endpoint, separate from the Prometheus scrape.
type GatewayMetrics struct {
	RequestsTotal             uint64    `json:"requestsTotal"`
	AverageRequestDurationMs  float64   `json:"averageRequestDurationMs"`
	UpstreamCalls             uint64    `json:"upstreamCalls"`
	AverageUpstreamDurationMs float64   `json:"averageUpstreamDurationMs"`
	ActiveDrafts              int       `json:"activeDrafts"`
	BookingsWallet            uint64    `json:"bookingsWallet"`
	BookingsGateway           uint64    `json:"bookingsGateway"`
	Goroutines                int       `json:"goroutines"`
	GeneratedAt               time.Time `json:"generatedAt"`
}
