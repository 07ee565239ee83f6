package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/chatforge/backend/internal/infrastructure/config"
)

// newRecordingProvider installs an in-memory tracer provider and returns
// the exporter collecting finished spans.
func newRecordingProvider(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	// StartSpan resolves the tracer through the global provider.
	restore := swapGlobalProvider(provider)
	t.Cleanup(restore)

	return exporter
}

func swapGlobalProvider(tp trace.TracerProvider) func() {
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	return func() { otel.SetTracerProvider(prev) }
}

func TestStartSpan(t *testing.T) {
	t.Run("records name and attributes", func(t *testing.T) {
		exporter := newRecordingProvider(t)

		ctx, span := StartSpan(context.Background(), "approval.Approve",
			WithAttribute(SpanAttrCompanyID, "c-123"),
			WithAttribute(SpanAttrAffectedCount, 1),
		)
		assert.NotEmpty(t, GetTraceID(ctx))
		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, "approval.Approve", spans[0].Name)
		assert.Equal(t, trace.SpanKindInternal, spans[0].SpanKind)
		assert.Contains(t, spans[0].Attributes, attribute.String(SpanAttrCompanyID, "c-123"))
		assert.Contains(t, spans[0].Attributes, attribute.Int(SpanAttrAffectedCount, 1))
	})

	t.Run("span kind override", func(t *testing.T) {
		exporter := newRecordingProvider(t)

		_, span := StartSpan(context.Background(), "http.request",
			WithSpanKind(trace.SpanKindServer),
		)
		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, trace.SpanKindServer, spans[0].SpanKind)
	})
}

func TestStartServiceSpan(t *testing.T) {
	exporter := newRecordingProvider(t)

	_, span := StartServiceSpan(context.Background(), "ReconciliationService", "FixAllOrphans")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "ReconciliationService.FixAllOrphans", spans[0].Name)
}

func TestRecordError(t *testing.T) {
	exporter := newRecordingProvider(t)

	_, span := StartSpan(context.Background(), "approval.Reject")
	RecordError(span, errors.New("company not found"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "company not found", spans[0].Status.Description)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "exception", spans[0].Events[0].Name)

	// nil span and nil error must not panic
	RecordError(nil, errors.New("ignored"))
	RecordError(span, nil)
}

func TestSetAttributes(t *testing.T) {
	exporter := newRecordingProvider(t)

	_, span := StartSpan(context.Background(), "intake.Submit")
	SetAttributes(span,
		SpanAttrActor, "ops@chatforge.test",
		42, "skipped non-string key",
		"priced", true,
	)
	SetOK(span)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Attributes, attribute.String(SpanAttrActor, "ops@chatforge.test"))
	assert.Contains(t, spans[0].Attributes, attribute.Bool("priced", true))
}

func TestNewTracerProvider(t *testing.T) {
	t.Run("disabled returns no-op provider", func(t *testing.T) {
		tp, err := NewTracerProvider(context.Background(), config.TelemetryConfig{Enabled: false}, zap.NewNop())
		require.NoError(t, err)
		assert.False(t, tp.Enabled())
		assert.NoError(t, tp.Shutdown(context.Background()))
	})
}

func TestGetTraceID(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
}
