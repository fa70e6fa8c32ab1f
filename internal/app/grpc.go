package app

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/avc-dev/link-resolver/internal/handler"
)

const healthCheckInterval = 10 * time.Second

// newGRPCServer создает gRPC сервер со стандартным сервисом здоровья
func newGRPCServer() (*grpc.Server, *health.Server) {
	server := grpc.NewServer()
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)

	return server, healthServer
}

// updateHealth переводит статус по результату проверки хранилища
func updateHealth(ctx context.Context, checker handler.HealthChecker, hs *health.Server, logger *zap.Logger) {
	status := healthpb.HealthCheckResponse_SERVING
	if err := checker.Ping(ctx); err != nil {
		logger.Warn("store health check failed", zap.Error(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	hs.SetServingStatus("", status)
}

// watchHealth периодически обновляет статус до отмены контекста
func watchHealth(ctx context.Context, checker handler.HealthChecker, hs *health.Server, interval time.Duration, logger *zap.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		updateHealth(ctx, checker, hs, logger)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
