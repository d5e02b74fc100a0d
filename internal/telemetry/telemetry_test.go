package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/yildizm/LifeStrat/internal/config"
)

func TestEndpoint(t *testing.T) {
	tests := map[string]string{
		"localhost:4318":          "localhost:4318",
		"http://localhost:4318":   "localhost:4318",
		"https://collector:4318/": "collector:4318",
	}
	for in, want := range tests {
		assert.Equal(t, want, Endpoint(in), in)
	}
}

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TelemetryConfig{}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	assert.NoError(t, shutdown(context.Background()))
	assert.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")
}

func TestSetup_Enabled(t *testing.T) {
	cfg := config.TelemetryConfig{
		Enabled:     true,
		Endpoint:    "http://127.0.0.1:4318",
		ServiceName: "lifestrat-test",
		Insecure:    true,
	}

	shutdown, err := Setup(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	_, span := otel.Tracer("telemetry-test").Start(context.Background(), "probe")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}
