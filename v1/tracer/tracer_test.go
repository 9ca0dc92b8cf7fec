package tracer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"

	"github.com/Aleph-Alpha/srclient/v1/logger"
)

func newRecordingTracer(t *testing.T) (*Tracer, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return newTracer(tp, logger.NewFromZap(zap.NewNop(), false)), recorder
}

func TestStartSpanRecordsAttributesAndErrors(t *testing.T) {
	tr, recorder := newRecordingTracer(t)

	_, span := tr.StartSpan(context.Background(), "register")
	tr.SetAttributes(span, map[string]interface{}{
		"subject": "orders-value",
		"version": 3,
		"latest":  true,
		"other":   []string{"a"},
	})
	tr.RecordErrorOnSpan(span, errors.New("boom"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	s := ended[0]
	assert.Equal(t, "register", s.Name())
	assert.Equal(t, codes.Error, s.Status().Code)
	assert.Equal(t, "boom", s.Status().Description)
	assert.Contains(t, s.Attributes(), attribute.String("subject", "orders-value"))
	assert.Contains(t, s.Attributes(), attribute.Int("version", 3))
	assert.Contains(t, s.Attributes(), attribute.Bool("latest", true))
	assert.Contains(t, s.Attributes(), attribute.String("other", "[a]"))
}

func TestCarrierRoundTrip(t *testing.T) {
	tr, _ := newRecordingTracer(t)

	ctx, span := tr.StartSpan(context.Background(), "parent")
	defer span.End()

	carrier := tr.GetCarrier(ctx)
	require.Contains(t, carrier, "traceparent")

	extracted := tr.SetCarrierOnContext(context.Background(), carrier)
	_, child := tr.StartSpan(extracted, "child")
	defer child.End()

	assert.Equal(t, span.SpanContext().TraceID(), child.SpanContext().TraceID())
}

func TestNewClientWithoutExport(t *testing.T) {
	tr := NewClient(Config{ServiceName: "svc", AppEnv: "test"}, logger.NewFromZap(zap.NewNop(), false))
	require.NotNil(t, tr)
	assert.NoError(t, tr.tracer.Shutdown(context.Background()))
}
