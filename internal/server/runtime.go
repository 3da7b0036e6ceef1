package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yudhaa/portfolio/pkg/logger"
)

type runtimeConfig struct {
	handler         http.Handler
	logger          *slog.Logger
	listenerReady   func(net.Addr)
	address         string
	startupHooks    []func(context.Context) error
	shutdownHooks   []func(context.Context) error
	shutdownTimeout time.Duration
}

// runServer serves until ctx is done or SIGINT/SIGTERM, then shuts down.
func runServer(ctx context.Context, cfg runtimeConfig) error {
	if cfg.address == "" {
		cfg.address = ":8080"
	}
	if cfg.shutdownTimeout <= 0 {
		cfg.shutdownTimeout = defaultShutdownTimeout
	}
	log := cfg.logger
	if log == nil {
		log = logger.NewNope()
	}

	srv := &http.Server{
		Addr:              cfg.address,
		Handler:           cfg.handler,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	for _, hook := range cfg.startupHooks {
		if err := hook(ctx); err != nil {
			return fmt.Errorf("startup hook: %w", err)
		}
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}
	if cfg.listenerReady != nil {
		cfg.listenerReady(ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer shutdownCancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	for _, hook := range cfg.shutdownHooks {
		if err := hook(shutdownCtx); err != nil {
			errs = append(errs, err)
			log.Error("shutdown hook failed", slog.Any("error", err))
		}
	}

	if len(errs) > 0 {
		log.Error("shutdown completed with errors")
		return errors.Join(errs...)
	}

	log.Info("shutdown completed")
	return nil
}
