// Command fakeapi serves a product catalog and stock levels for local cart sessions.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/rocketcart/internal/config"
	"github.com/nikolayk812/rocketcart/internal/fakeapi"
	"github.com/nikolayk812/rocketcart/internal/logger"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	fs := config.Flags("fakeapi")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log, logCloser, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("logger.New: %w", err)
	}
	defer logCloser.Close()

	fixture, err := fakeapi.LoadFixture(cfg.FakeAPI.Fixture)
	if err != nil {
		return fmt.Errorf("fakeapi.LoadFixture: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)

	srv := &http.Server{
		Addr:              cfg.FakeAPI.Addr,
		Handler:           fakeapi.NewRouter(fixture, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("fake api listening",
			slog.String("addr", srv.Addr),
			slog.Int("products", len(fixture.Products)))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}
	return nil
}
