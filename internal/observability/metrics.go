// Package observability exposes the service's Prometheus collectors.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Generation outcomes.
const (
	OutcomeSuccess       = "success"
	OutcomeInvalidOutput = "invalid_output"
	OutcomeError         = "error"
)

var (
	generationRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitsync",
		Subsystem: "generation",
		Name:      "requests_total",
		Help:      "LLM generation calls by operation and outcome.",
	}, []string{"operation", "outcome"})

	generationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fitsync",
		Subsystem: "generation",
		Name:      "duration_seconds",
		Help:      "Latency of LLM generation calls.",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
	}, []string{"operation"})

	entitlementDenials = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitsync",
		Name:      "entitlement_denials_total",
		Help:      "Premium feature requests rejected for non-premium users.",
	}, []string{"feature"})

	eventPublishFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitsync",
		Subsystem: "events",
		Name:      "publish_failures_total",
		Help:      "Domain events that could not be published.",
	}, []string{"type"})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitsync",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route and status code.",
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(generationRequests, generationDuration, entitlementDenials, eventPublishFailures, httpRequests)
}

// RecordGeneration counts one provider call and observes its latency.
func RecordGeneration(operation, outcome string, elapsed time.Duration) {
	generationRequests.WithLabelValues(operation, outcome).Inc()
	generationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// RecordEntitlementDenial counts a rejected premium request.
func RecordEntitlementDenial(feature string) {
	entitlementDenials.WithLabelValues(feature).Inc()
}

// RecordEventPublishFailure counts an event dropped after a failed publish.
func RecordEventPublishFailure(eventType string) {
	eventPublishFailures.WithLabelValues(eventType).Inc()
}

// RecordHTTPRequest counts a served request. route is the matched pattern, not the raw path.
func RecordHTTPRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
