package tracing

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTraceIDIsAddedToLogger(t *testing.T) {
	is := is.New(t)

	tp := sdktrace.NewTracerProvider()
	_, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	buf := &bytes.Buffer{}
	traceID, _, logger := AddTraceIDToLoggerAndStoreInContext(span, zerolog.New(buf), context.Background())

	logger.Info().Msg("hello")

	is.True(traceID != "")
	is.True(strings.Contains(buf.String(), traceID))
}

func TestErrorIsRecordedOnSpan(t *testing.T) {
	is := is.New(t)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	_, span := tp.Tracer("test").Start(context.Background(), "op")

	RecordAnyErrorAndEndSpan(errors.New("boom"), span)

	ended := recorder.Ended()
	is.Equal(len(ended), 1)
	is.Equal(ended[0].Status().Code, codes.Error)
}
