// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания и обработки сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"notehub/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogShutdownStarted = "shutdown started"
	LogHookFailed      = "shutdown hook failed"
	LogShutdownTimeout = "shutdown timeout exceeded"
)

// Hook функция освобождения ресурса.
type Hook func(context.Context) error

// Wait блокирует выполнение до получения SIGINT/SIGTERM или отмены ctx,
// затем выполняет хуки по порядку в рамках заданного timeout.
// Порядок важен: сначала останавливается прием запросов, затем закрываются клиенты.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	Run(context.WithoutCancel(ctx), timeout, hooks...)
}

// Run выполняет хуки по порядку, пока не истечет timeout.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	log := logger.Log(ctx)
	log.Info(ctx, LogShutdownStarted, zap.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i, hook := range hooks {
			if err := hook(ctx); err != nil {
				log.Error(ctx, LogHookFailed, zap.Int("hook", i), zap.Error(err))
			}
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Warn(ctx, LogShutdownTimeout)
	}
}
