package otel_test

import (
	"context"
	"drivingschool/config"
	"drivingschool/infras/otel"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestScope(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("service").Start(context.Background(), "service.Book")
	scope := otel.NewScope(span)

	scope.SetAttributes(map[string]any{
		"lesson_id": "lesson-1",
		"seats":     2,
		"waited":    1500 * time.Millisecond,
	})
	scope.TraceIfError(nil)
	scope.TraceIfError(errors.New("lesson is fully booked"))
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	assert.Equal(t, "service.Book", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "lesson is fully booked", spans[0].Status().Description)

	attributes := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attributes[string(kv.Key)] = kv.Value.Emit()
	}

	assert.Equal(t, map[string]string{"lesson_id": "lesson-1", "seats": "2", "waited": "1.5s"}, attributes)
}

func TestNew_WithoutEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "drivingschool"

	tracer := otel.New(cfg)

	ctx, scope := tracer.NewScope(context.Background(), "handler", "handler.Book")
	assert.NotNil(t, ctx)
	scope.End()

	assert.NoError(t, tracer.Shutdown(context.Background()))
}
