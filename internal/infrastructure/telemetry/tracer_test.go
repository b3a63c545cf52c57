package telemetry

import (
	"context"
	"testing"

	"github.com/catering/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zaptest"
)

func restoreGlobalProvider(t *testing.T) {
	t.Helper()
	original := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(original) })
}

func TestNewTracerProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	tp, err := NewTracerProvider(ctx, config.TelemetryConfig{Enabled: false, ServiceName: "catering"}, "test", zaptest.NewLogger(t))

	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Provider())
	assert.NoError(t, tp.ForceFlush(ctx))
	assert.NoError(t, tp.Shutdown(ctx))
}

func TestNewTracerProviderWithExporter(t *testing.T) {
	restoreGlobalProvider(t)
	ctx := context.Background()
	exporter := tracetest.NewInMemoryExporter()
	cfg := config.TelemetryConfig{Enabled: true, ServiceName: "catering-api", SamplingRatio: 1}

	tp, err := NewTracerProviderWithExporter(cfg, exporter, "1.2.3", zaptest.NewLogger(t))
	require.NoError(t, err)
	require.True(t, tp.IsEnabled())

	_, span := otel.Tracer("orders").Start(ctx, "order.create")
	span.End()
	require.NoError(t, tp.ForceFlush(ctx))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "order.create", spans[0].Name)
	serviceName, ok := spans[0].Resource.Set().Value("service.name")
	require.True(t, ok)
	assert.Equal(t, "catering-api", serviceName.AsString())

	assert.NoError(t, tp.Shutdown(ctx))
}

func TestNewTracerProviderWithExporter_NeverSample(t *testing.T) {
	restoreGlobalProvider(t)
	ctx := context.Background()
	exporter := tracetest.NewInMemoryExporter()

	tp, err := NewTracerProviderWithExporter(config.TelemetryConfig{Enabled: true, ServiceName: "catering", SamplingRatio: 0}, exporter, "test", nil)
	require.NoError(t, err)

	_, span := tp.Provider().Tracer("orders").Start(ctx, "order.cancel")
	assert.False(t, span.IsRecording())
	span.End()
	require.NoError(t, tp.ForceFlush(ctx))
	assert.Empty(t, exporter.GetSpans())
	assert.NoError(t, tp.Shutdown(ctx))
}

func TestSampler(t *testing.T) {
	assert.Contains(t, sampler(1).Description(), "AlwaysOnSampler")
	assert.Contains(t, sampler(0).Description(), "AlwaysOffSampler")
	assert.Contains(t, sampler(0.25).Description(), "TraceIDRatioBased{0.25}")
}
