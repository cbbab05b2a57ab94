package telemetry

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName = "github.com/wolfeidau/snicert"
)

// Metrics holds the OpenTelemetry metric instruments for the issuing engine.
type Metrics struct {
	CertificatesIssuedTotal metric.Int64Counter
	IssueErrorsTotal        metric.Int64Counter
	SignDuration            metric.Float64Histogram
	CacheHitsTotal          metric.Int64Counter
}

var (
	once    sync.Once
	metrics *Metrics
)

// GetMetrics returns the singleton Metrics instance, initializing it if necessary
func GetMetrics() *Metrics {
	once.Do(func() {
		metrics = initMetrics()
	})
	return metrics
}

// initMetrics creates and registers all metric instruments
func initMetrics() *Metrics {
	meter := otel.GetMeterProvider().Meter(meterName)

	m := &Metrics{}

	m.CertificatesIssuedTotal, _ = meter.Int64Counter(
		"snicert.certificates.issued.total",
		metric.WithDescription("Total number of certificates issued"),
		metric.WithUnit("{certificate}"),
	)

	m.IssueErrorsTotal, _ = meter.Int64Counter(
		"snicert.certificates.errors.total",
		metric.WithDescription("Total number of failed issuance attempts"),
		metric.WithUnit("{error}"),
	)

	m.SignDuration, _ = meter.Float64Histogram(
		"snicert.certificates.sign.duration",
		metric.WithDescription("Duration of certificate signing operations"),
		metric.WithUnit("ms"),
	)

	m.CacheHitsTotal, _ = meter.Int64Counter(
		"snicert.certificates.cache.hits.total",
		metric.WithDescription("Total number of credential cache hits"),
		metric.WithUnit("{hit}"),
	)

	return m
}
