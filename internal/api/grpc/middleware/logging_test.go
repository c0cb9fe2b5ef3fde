package middleware

import (
	"bytes"
	"context"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/rahulthapa9024/basic-app/internal/logger"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestInterceptorLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level logging.Level
		want  string
	}{
		{name: "info", level: logging.LevelInfo, want: `"level":"INFO"`},
		{name: "warn", level: logging.LevelWarn, want: `"level":"WARN"`},
		{name: "error", level: logging.LevelError, want: `"level":"ERROR"`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			l := InterceptorLogger(logger.NewWithWriter(&buf, 0, true))
			l.Log(context.Background(), tt.level, "finished call", "grpc.method", "Check")

			out := buf.String()
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, `"msg":"gRPC finished call"`)
			assert.Contains(t, out, `"grpc.method":"Check"`)
		})
	}
}

func TestInterceptorLogger_RespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := InterceptorLogger(logger.NewWithWriter(&buf, 4, true))
	l.Log(context.Background(), logging.LevelInfo, "started call")

	assert.Empty(t, buf.String())
}

func TestRecoveryHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := RecoveryHandler(logger.NewWithWriter(&buf, 0, true))("boom")

	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Contains(t, buf.String(), `"panic":"boom"`)
}
