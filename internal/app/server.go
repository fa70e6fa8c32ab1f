package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const shutdownTimeout = 10 * time.Second

// start запускает HTTP и gRPC серверы и фоновые обработчики
// Возвращает управление после отмены контекста и остановки всех компонентов
func (a *App) start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              a.config.ServerAddress.String(),
		Handler:           newRouter(a.deps.handler, a.deps.auth, a.logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer, healthServer := newGRPCServer()
	listener, err := net.Listen("tcp", a.config.GRPCAddress.String())
	if err != nil {
		return fmt.Errorf("failed to listen gRPC address: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("Starting server", zap.String("address", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		a.logger.Info("Starting gRPC health server", zap.String("address", listener.Addr().String()))
		if err := grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return watchHealth(gctx, a.deps.health, healthServer, healthCheckInterval, a.logger)
	})
	// Журнал обращений закрывается после остановки HTTP, а не по отмене контекста
	g.Go(func() error { return a.deps.usage.Run(context.WithoutCancel(gctx)) })
	g.Go(func() error { return a.deps.populator.Run(gctx) })
	g.Go(func() error { return a.deps.sweeper.Run(gctx) })

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		healthServer.Shutdown()
		grpcServer.GracefulStop()
		defer a.deps.usage.Close()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
