// Command cartctl runs a shopping cart session against the catalog and stock API.
//
//	cartctl [flags] [list | add <id> | remove <id> | update <id> <amount> | shell]
//
// Without a command it starts the interactive shell.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikolayk812/rocketcart/internal/cart"
	"github.com/nikolayk812/rocketcart/internal/cli"
	"github.com/nikolayk812/rocketcart/internal/client"
	"github.com/nikolayk812/rocketcart/internal/config"
	"github.com/nikolayk812/rocketcart/internal/logger"
	"github.com/nikolayk812/rocketcart/internal/metrics"
	"github.com/nikolayk812/rocketcart/internal/notify"
	"github.com/nikolayk812/rocketcart/internal/telemetry"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	fs := config.Flags("cartctl")
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
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Tracing.Endpoint, cfg.Tracing.ServiceName)
	if err != nil {
		return fmt.Errorf("telemetry.InitTracer: %w", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Warn("tracer shutdown", slog.Any("err", err))
		}
	}()

	storage, closeStorage, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("openStorage: %w", err)
	}
	defer closeStorage()

	api, err := client.New(client.Config{
		BaseURL:         cfg.API.BaseURL,
		Timeout:         cfg.API.Timeout,
		RetryCount:      cfg.API.RetryCount,
		BreakerFailures: cfg.API.BreakerFailures,
		BreakerTimeout:  cfg.API.BreakerTimeout,
	})
	if err != nil {
		return fmt.Errorf("client.New: %w", err)
	}

	publisher, closePublisher, err := openEvents(cfg.Events)
	if err != nil {
		return fmt.Errorf("openEvents: %w", err)
	}
	defer closePublisher()

	collector := metrics.New()
	stopMetrics, err := serveMetrics(cfg.Metrics.Addr, collector, log)
	if err != nil {
		return fmt.Errorf("serveMetrics: %w", err)
	}
	defer stopMetrics()

	svc, err := cart.NewService(ctx, storage, api, api,
		cart.WithStorageKey(cfg.Storage.Key),
		cart.WithLogger(log),
		cart.WithEventPublisher(publisher))
	if err != nil {
		return fmt.Errorf("cart.NewService: %w", err)
	}

	store := cart.NewStore(svc,
		notify.Multi(notify.NewConsole(os.Stderr), notify.NewLog(log)),
		cart.WithMessages(cfg.Messages.CartMessages()),
		cart.WithMetrics(collector),
		cart.WithStoreLogger(log))

	// validated by config.Load
	unit, _ := cfg.Display.Unit()
	tag, _ := cfg.Display.Tag()

	app := cli.New(store, os.Stdout, unit, tag)

	args := fs.Args()
	if len(args) == 0 || args[0] == "shell" {
		err = app.Shell(ctx, os.Stdin)
	} else {
		err = app.Run(ctx, args)
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
