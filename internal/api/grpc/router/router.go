package router

import (
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/rahulthapa9024/basic-app/internal/api/grpc/middleware"
	"github.com/rahulthapa9024/basic-app/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Router builds the operational gRPC server.
type Router struct {
	health *health.Server
	logger *logger.Logger
}

// New creates new gRPC Router instance serving health from hs.
func New(hs *health.Server, logger *logger.Logger) *Router {
	return &Router{health: hs, logger: logger}
}

// Register creates a gRPC server with logging and recovery interceptors,
// and registers the health and reflection services.
func (r *Router) Register() *grpc.Server {
	logOpts := []logging.Option{
		logging.WithLogOnEvents(logging.FinishCall),
	}
	recoveryOpts := []recovery.Option{
		recovery.WithRecoveryHandler(middleware.RecoveryHandler(r.logger)),
	}
	l := middleware.InterceptorLogger(r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.UnaryServerInterceptor(l, logOpts...),
			recovery.UnaryServerInterceptor(recoveryOpts...),
		),
		grpc.ChainStreamInterceptor(
			logging.StreamServerInterceptor(l, logOpts...),
			recovery.StreamServerInterceptor(recoveryOpts...),
		),
	)

	healthpb.RegisterHealthServer(s, r.health)
	reflection.Register(s)

	return s
}
