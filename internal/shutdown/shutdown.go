package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// GracefulShutdown runs registered cleanup handlers, in order, once a
// termination signal arrives.
type GracefulShutdown struct {
	logger   *zap.Logger
	timeout  time.Duration
	names    []string
	handlers []func(ctx context.Context) error
}

// NewGracefulShutdown creates a shutdown handler
func NewGracefulShutdown(logger *zap.Logger, timeout time.Duration) *GracefulShutdown {
	return &GracefulShutdown{
		logger:  logger,
		timeout: timeout,
	}
}

// Register adds a named cleanup handler. Handlers run in registration
// order.
func (gs *GracefulShutdown) Register(name string, handler func(ctx context.Context) error) {
	gs.names = append(gs.names, name)
	gs.handlers = append(gs.handlers, handler)
}

// Wait blocks until shutdown signal is received, then runs the cleanup
// handlers under a shared timeout.
func (gs *GracefulShutdown) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	sig := <-quit
	gs.logger.Info("Shutdown signal received", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), gs.timeout)
	defer cancel()

	for i, handler := range gs.handlers {
		if err := handler(ctx); err != nil {
			gs.logger.Error("Cleanup handler failed",
				zap.String("handler", gs.names[i]),
				zap.Error(err),
			)
			continue
		}
		gs.logger.Debug("Cleanup handler finished", zap.String("handler", gs.names[i]))
	}

	gs.logger.Info("Graceful shutdown completed")
}
