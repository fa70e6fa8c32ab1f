package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/avc-dev/link-resolver/internal/config"
)

// App представляет приложение сервиса коротких ссылок
type App struct {
	config *config.Config
	logger *zap.Logger
	deps   *dependencies
}

// New создает новый экземпляр приложения
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	deps, err := initDependencies(ctx, cfg, logger)
	if err != nil {
		logger.Sync()
		return nil, err
	}

	return &App{
		config: cfg,
		logger: logger,
		deps:   deps,
	}, nil
}

// Run запускает приложение и ждет SIGINT или SIGTERM
func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx)
	if err != nil {
		return err
	}
	defer app.logger.Sync()
	defer app.Close()

	return app.start(ctx)
}

// Close освобождает подключения приложения
func (a *App) Close() {
	if a.deps == nil {
		return
	}
	a.deps.close(a.logger)
}
