package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/avc-dev/link-resolver/internal/config"
	"github.com/avc-dev/link-resolver/internal/model"
	"go.uber.org/zap"
)

// UsageLogger буферизует события использования и отдает их получателю в фоне
// Record никогда не блокирует: при заполненном буфере событие отбрасывается
type UsageLogger struct {
	sink    UsageSink
	events  chan model.UsageEvent
	timeout time.Duration
	logger  *zap.Logger

	mu      sync.RWMutex
	closed  bool
	dropped atomic.Int64
}

// NewUsageLogger создает логгер с буфером cfg.BufferSize
func NewUsageLogger(sink UsageSink, cfg config.UsageConfig, logger *zap.Logger) *UsageLogger {
	return &UsageLogger{
		sink:    sink,
		events:  make(chan model.UsageEvent, cfg.BufferSize),
		timeout: cfg.WriteTimeout,
		logger:  logger,
	}
}

// Record ставит событие в буфер
func (l *UsageLogger) Record(event model.UsageEvent) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return
	}

	select {
	case l.events <- event:
	default:
		l.dropped.Add(1)
	}
}

// Dropped количество отброшенных событий
func (l *UsageLogger) Dropped() int64 {
	return l.dropped.Load()
}

// Run передает события получателю до Close или отмены контекста
// При отмене контекста оставшиеся в буфере события дописываются
func (l *UsageLogger) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.drain()
			return nil
		case event, ok := <-l.events:
			if !ok {
				return nil
			}
			l.write(ctx, event)
		}
	}
}

// Close прекращает прием событий, Run завершится после обработки буфера
func (l *UsageLogger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.closed = true
	close(l.events)
}

func (l *UsageLogger) drain() {
	for {
		select {
		case event, ok := <-l.events:
			if !ok {
				return
			}
			l.write(context.Background(), event)
		default:
			return
		}
	}
}

func (l *UsageLogger) write(ctx context.Context, event model.UsageEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
	defer cancel()

	if err := l.sink.WriteUsage(ctx, event); err != nil {
		l.logger.Debug("failed to write usage event", zap.Error(err))
	}
}

// DiscardUsage получатель, отбрасывающий все события
type DiscardUsage struct{}

func (DiscardUsage) WriteUsage(context.Context, model.UsageEvent) error {
	return nil
}
