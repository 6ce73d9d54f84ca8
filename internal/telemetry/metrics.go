package telemetry

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName = "github.com/wolfeidau/gatehouse"
)

// Metrics holds the OpenTelemetry instruments for account bootstrap and the HTTP surface.
type Metrics struct {
	// Account creation
	AccountsCreatedTotal     metric.Int64Counter
	AccountsSkippedTotal     metric.Int64Counter
	AccountCreateErrorsTotal metric.Int64Counter
	BatchImportDuration      metric.Float64Histogram

	// HTTP
	PingRequestsTotal metric.Int64Counter
	HostRejectedTotal metric.Int64Counter
}

var (
	once    sync.Once
	metrics *Metrics
)

// GetMetrics returns the singleton Metrics instance bound to the global meter
// provider, initializing it if necessary.
func GetMetrics() *Metrics {
	once.Do(func() {
		metrics = NewMetrics(otel.GetMeterProvider())
	})
	return metrics
}

// NewMetrics creates the instruments on the given provider.
func NewMetrics(provider metric.MeterProvider) *Metrics {
	meter := provider.Meter(meterName)

	m := &Metrics{}

	m.AccountsCreatedTotal, _ = meter.Int64Counter(
		"gatehouse.accounts.created.total",
		metric.WithDescription("Total number of accounts created"),
		metric.WithUnit("{account}"),
	)

	m.AccountsSkippedTotal, _ = meter.Int64Counter(
		"gatehouse.accounts.skipped.total",
		metric.WithDescription("Total number of account records skipped by validation"),
		metric.WithUnit("{account}"),
	)

	m.AccountCreateErrorsTotal, _ = meter.Int64Counter(
		"gatehouse.accounts.create.errors.total",
		metric.WithDescription("Total number of unexpected account persistence errors"),
		metric.WithUnit("{error}"),
	)

	m.BatchImportDuration, _ = meter.Float64Histogram(
		"gatehouse.accounts.import.duration",
		metric.WithDescription("Duration of batch account imports"),
		metric.WithUnit("ms"),
	)

	m.PingRequestsTotal, _ = meter.Int64Counter(
		"gatehouse.http.ping.total",
		metric.WithDescription("Total number of ping requests"),
		metric.WithUnit("{request}"),
	)

	m.HostRejectedTotal, _ = meter.Int64Counter(
		"gatehouse.http.host_rejected.total",
		metric.WithDescription("Total number of requests rejected by the allowed hosts check"),
		metric.WithUnit("{request}"),
	)

	return m
}
