package middleware

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/rahulthapa9024/basic-app/internal/logger"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// InterceptorLogger adapts logger to the go-grpc-middleware logging interceptor.
func InterceptorLogger(l *logger.Logger) logging.Logger {
	return logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), "gRPC "+msg, fields...)
	})
}

// RecoveryHandler converts a handler panic into an Internal status and logs it.
func RecoveryHandler(l *logger.Logger) recovery.RecoveryHandlerFunc {
	return func(p any) error {
		l.Error("gRPC handler panicked", "panic", fmt.Sprint(p))
		return status.Error(codes.Internal, "internal error")
	}
}
