package telemetry_test

import (
	"testing"

	"github.com/nikolayk812/rocketcart/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitTracer_Disabled(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := telemetry.InitTracer(t.Context(), "", "rocketcart")
	require.NoError(t, err)
	require.NoError(t, shutdown(t.Context()))

	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestInitTracer_Enabled(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	shutdown, err := telemetry.InitTracer(t.Context(), "localhost:4318", "rocketcart-test")
	require.NoError(t, err)

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok)

	require.NoError(t, shutdown(t.Context()))
}
