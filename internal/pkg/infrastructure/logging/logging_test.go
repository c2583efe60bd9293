package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestLoggerIsStoredInContext(t *testing.T) {
	is := is.New(t)
	buf := &bytes.Buffer{}

	ctx, _ := NewLoggerWithOutput(context.Background(), buf, "HubWatch", "v1")

	logger := GetLoggerFromContext(ctx)
	logger.Info().Msg("hello")

	out := buf.String()
	is.True(strings.Contains(out, `"service":"hubwatch"`))
	is.True(strings.Contains(out, `"version":"v1"`))
	is.True(strings.Contains(out, `"message":"hello"`))
}
