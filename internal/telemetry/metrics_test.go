package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestNewMetrics(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m := NewMetrics(provider)
	m.AccountsCreatedTotal.Add(ctx, 2, metric.WithAttributes(attribute.Bool("superuser", false)))
	m.AccountsCreatedTotal.Add(ctx, 1, metric.WithAttributes(attribute.Bool("superuser", true)))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Equal(t, meterName, rm.ScopeMetrics[0].Scope.Name)

	var total int64
	for _, md := range rm.ScopeMetrics[0].Metrics {
		if md.Name != "gatehouse.accounts.created.total" {
			continue
		}
		sum, ok := md.Data.(metricdata.Sum[int64])
		require.True(t, ok)
		for _, dp := range sum.DataPoints {
			total += dp.Value
		}
	}
	require.Equal(t, int64(3), total)
}

func TestGetMetrics(t *testing.T) {
	require.Same(t, GetMetrics(), GetMetrics())
}
