// Package metrics provides Prometheus collectors for the recipe service
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics contains every collector exported by the service. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	modelRequestsTotal   *prometheus.CounterVec
	modelRequestDuration *prometheus.HistogramVec

	recipesGenerated *prometheus.CounterVec
	parseFailures    *prometheus.CounterVec
	webhookEvents    *prometheus.CounterVec
	photoCleanup     *prometheus.CounterVec
}

// New creates the collectors and registers them with registry
func New(registry prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "babychef_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "babychef_http_request_duration_seconds",
				Help:    "Time taken for HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		modelRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "babychef_model_requests_total",
				Help: "Total number of language model calls",
			},
			[]string{"kind", "outcome"}, // kind: text, vision
		),
		modelRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "babychef_model_request_duration_seconds",
				Help:    "Time taken for language model calls",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 9), // 250ms to ~64s
			},
			[]string{"kind"},
		),
		recipesGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "babychef_recipes_generated_total",
				Help: "Total number of persisted recipes by source",
			},
			[]string{"source"}, // source: model, fallback
		),
		parseFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "babychef_model_parse_failures_total",
				Help: "Total number of model responses that could not be parsed",
			},
			[]string{"kind"},
		),
		webhookEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "babychef_payment_webhook_events_total",
				Help: "Total number of payment webhook deliveries",
			},
			[]string{"event_type", "outcome"},
		),
		photoCleanup: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "babychef_photo_cleanup_total",
				Help: "Total number of photos processed by the retention janitor",
			},
			[]string{"outcome"},
		),
	}

	for _, c := range []prometheus.Collector{
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.modelRequestsTotal,
		m.modelRequestDuration,
		m.recipesGenerated,
		m.parseFailures,
		m.webhookEvents,
		m.photoCleanup,
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RecordHTTPRequest records a completed HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordModelRequest records a language model call
func (m *Metrics) RecordModelRequest(kind string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	m.modelRequestsTotal.WithLabelValues(kind, outcome(err)).Inc()
	m.modelRequestDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordRecipe records a persisted recipe
func (m *Metrics) RecordRecipe(source string) {
	if m == nil {
		return
	}
	m.recipesGenerated.WithLabelValues(source).Inc()
}

// RecordParseFailure records an unparseable model response
func (m *Metrics) RecordParseFailure(kind string) {
	if m == nil {
		return
	}
	m.parseFailures.WithLabelValues(kind).Inc()
}

// RecordWebhook records a payment webhook delivery
func (m *Metrics) RecordWebhook(eventType string, err error) {
	if m == nil {
		return
	}
	m.webhookEvents.WithLabelValues(eventType, outcome(err)).Inc()
}

// RecordPhotoCleanup records one janitor deletion attempt
func (m *Metrics) RecordPhotoCleanup(err error) {
	if m == nil {
		return
	}
	m.photoCleanup.WithLabelValues(outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
