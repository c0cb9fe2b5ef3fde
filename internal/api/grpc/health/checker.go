package health

import (
	"context"
	"sort"
	"time"

	"github.com/rahulthapa9024/basic-app/internal/logger"
	"github.com/rahulthapa9024/basic-app/internal/metrics"
	"github.com/rahulthapa9024/basic-app/internal/model"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const probeTimeout = 3 * time.Second

// Checker probes backing dependencies and publishes their state through
// the gRPC health service and the dependency_up gauge.
// The overall ("") service is SERVING only while every dependency answers.
type Checker struct {
	server   *grpchealth.Server
	deps     map[string]model.Pinger
	interval time.Duration
	logger   *logger.Logger
}

// NewChecker creates a Checker. Each key of deps is also registered as a health service name.
func NewChecker(server *grpchealth.Server, deps map[string]model.Pinger, interval time.Duration, logger *logger.Logger) *Checker {
	return &Checker{server: server, deps: deps, interval: interval, logger: logger}
}

// Run probes immediately and then on every tick until ctx ends.
// On return every service is marked NOT_SERVING.
func (c *Checker) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			c.server.Shutdown()
			return
		case <-ticker.C:
			c.Probe(ctx)
		}
	}
}

// Probe pings every dependency once and reports whether all of them answered.
func (c *Checker) Probe(ctx context.Context) bool {
	names := make([]string, 0, len(c.deps))
	for name := range c.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	healthy := true
	for _, name := range names {
		pctx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := c.deps[name].Ping(pctx)
		cancel()

		status := healthpb.HealthCheckResponse_SERVING
		up := 1.0
		if err != nil {
			healthy = false
			status = healthpb.HealthCheckResponse_NOT_SERVING
			up = 0
			c.logger.Warn("Health checker: dependency unreachable", "dependency", name, "error", err.Error())
		}
		c.server.SetServingStatus(name, status)
		metrics.DependencyUp.WithLabelValues(name).Set(up)
	}

	overall := healthpb.HealthCheckResponse_SERVING
	if !healthy {
		overall = healthpb.HealthCheckResponse_NOT_SERVING
	}
	c.server.SetServingStatus("", overall)

	return healthy
}
