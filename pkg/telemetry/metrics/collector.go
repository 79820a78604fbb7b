// Package metrics exposes Prometheus metrics for the gateway: request
// counts and latencies, rate-limit rejections, privacy filter
// activity, and upstream call outcomes.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"gaianet-hq/gateway/pkg/config"
)

// Collector owns the gateway's metric instruments and their registry.
// A disabled collector still serves an (empty) metrics page but every
// record call is a no-op.
type Collector struct {
	enabled  bool
	registry *prometheus.Registry

	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	rateLimitRejections *prometheus.CounterVec
	privacyViolations   prometheus.Counter
	redactions          *prometheus.CounterVec
	upstreamRequests    *prometheus.CounterVec
	streamChunks        prometheus.Counter
}

// NewCollector creates a Collector with its own registry.
func NewCollector(cfg config.MetricsConfig) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		enabled:  cfg.Enabled,
		registry: registry,

		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "requests_total",
			Help:      "HTTP requests served, by path, method, and status code.",
		}, []string{"path", "method", "status"}),

		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency, by path.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0},
		}, []string{"path"}),

		rateLimitRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "rate_limit_rejections_total",
			Help:      "Requests rejected by the rate limiter, by reason.",
		}, []string{"reason"}),

		privacyViolations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "privacy_violations_total",
			Help:      "Messages rejected because they contained PII.",
		}),

		redactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "redactions_total",
			Help:      "PII redactions applied to upstream responses, by kind.",
		}, []string{"kind"}),

		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "upstream_requests_total",
			Help:      "Calls to the GaiaNet node, by outcome.",
		}, []string{"outcome"}),

		streamChunks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "stream_chunks_total",
			Help:      "Content chunks forwarded on streaming responses.",
		}),
	}

	registry.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.rateLimitRejections,
		c.privacyViolations,
		c.redactions,
		c.upstreamRequests,
		c.streamChunks,
	)

	return c
}

// RecordRequest records a completed HTTP request.
func (c *Collector) RecordRequest(path, method string, status int, duration time.Duration) {
	if !c.enabled {
		return
	}
	c.requestsTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(path).Observe(duration.Seconds())
}

// RecordRateLimitRejection records a request rejected by the rate
// limiter. Reason is "blocked" or "over_limit".
func (c *Collector) RecordRateLimitRejection(reason string) {
	if !c.enabled {
		return
	}
	c.rateLimitRejections.WithLabelValues(reason).Inc()
}

// RecordPrivacyViolation records a request rejected for containing
// PII.
func (c *Collector) RecordPrivacyViolation() {
	if !c.enabled {
		return
	}
	c.privacyViolations.Inc()
}

// RecordRedaction records a redaction of the given kind applied to
// response content.
func (c *Collector) RecordRedaction(kind string) {
	if !c.enabled {
		return
	}
	c.redactions.WithLabelValues(kind).Inc()
}

// RecordUpstream records a call to the GaiaNet node. Outcome is
// "success" or "error".
func (c *Collector) RecordUpstream(outcome string) {
	if !c.enabled {
		return
	}
	c.upstreamRequests.WithLabelValues(outcome).Inc()
}

// RecordStreamChunk records one forwarded streaming chunk.
func (c *Collector) RecordStreamChunk() {
	if !c.enabled {
		return
	}
	c.streamChunks.Inc()
}
