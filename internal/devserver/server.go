// Package devserver is an in-memory implementation of the ArchBoard backend
// API. It backs integration tests and lets the CLI run without a desktop.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/revati108/arch-board/internal/config"
)

// Serve runs the server on cfg.Port until ctx is cancelled, then drains
// in-flight requests for at most cfg.ShutdownTimeout.
func Serve(ctx context.Context, cfg config.DevServerConfig, state *State) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return ServeListener(ctx, ln, cfg, state)
}

// ServeListener is Serve on an existing listener.
func ServeListener(ctx context.Context, ln net.Listener, cfg config.DevServerConfig, state *State) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := &http.Server{
		Handler:      NewRouter(NewHandler(state)),
		ReadTimeout:  cfg.ReadTimeout.Std(),
		WriteTimeout: cfg.WriteTimeout.Std(),
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "address", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			serveErr <- err
			cancel()
		}
		close(serveErr)
	}()

	<-ctx.Done()
	slog.Info("shutdown initiated")

	grace := cfg.ShutdownTimeout.Std()
	if grace <= 0 {
		grace = shutdownGrace
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), grace)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if err := <-serveErr; err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	slog.Info("shutdown complete")
	return nil
}

// shutdownGrace is used when the config carries no shutdown timeout.
const shutdownGrace = 5 * time.Second
