package otel_test

import (
	"errors"
	"testing"
	"time"

	"kingdom/infras/otel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func record(t *testing.T, fn func(scope otel.Scope)) tracetest.SpanStub {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(t.Context(), "booking.Create")
	scope := otel.NewScope(span)
	fn(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return tracetest.SpanStubFromReadOnlySpan(spans[0])
}

func TestScope_SetAttributes(t *testing.T) {
	checkIn := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	stub := record(t, func(scope otel.Scope) {
		scope.SetAttribute("booking.room_id", "room-1")
		scope.SetAttributes(map[string]any{
			"booking.nights":   3,
			"booking.total":    decimal.RequireFromString("4500.50"),
			"booking.check_in": checkIn,
			"booking.rows":     int64(7),
		})
	})

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range stub.Attributes {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, "room-1", attrs["booking.room_id"].AsString())
	assert.Equal(t, int64(3), attrs["booking.nights"].AsInt64())
	assert.Equal(t, "4500.5", attrs["booking.total"].AsString())
	assert.Equal(t, "2025-03-01T00:00:00Z", attrs["booking.check_in"].AsString())
	assert.Equal(t, int64(7), attrs["booking.rows"].AsInt64())
}

func TestScope_TraceIfError(t *testing.T) {
	t.Run("nil error leaves status unset", func(t *testing.T) {
		stub := record(t, func(scope otel.Scope) { scope.TraceIfError(nil) })

		assert.Equal(t, codes.Unset, stub.Status.Code)
		assert.Empty(t, stub.Events)
	})

	t.Run("error marks the span", func(t *testing.T) {
		stub := record(t, func(scope otel.Scope) { scope.TraceIfError(errors.New("room is booked")) })

		assert.Equal(t, codes.Error, stub.Status.Code)
		assert.Equal(t, "room is booked", stub.Status.Description)
		assert.Len(t, stub.Events, 1)
	})
}
