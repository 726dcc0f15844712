package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/rocketcart/internal/config"
	"github.com/nikolayk812/rocketcart/internal/event"
	"github.com/nikolayk812/rocketcart/internal/metrics"
	"github.com/nikolayk812/rocketcart/internal/port"
	"github.com/nikolayk812/rocketcart/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func openStorage(ctx context.Context, cfg config.StorageConfig) (port.CartStorage, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return repository.NewMemory(), func() {}, nil
	case config.DriverFile:
		return repository.NewFile(cfg.FilePath), func() {}, nil
	case config.DriverPostgres:
		pool, err := repository.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.OpenPostgres: %w", err)
		}
		return repository.NewPostgres(pool), pool.Close, nil
	case config.DriverRedis:
		rdb, err := repository.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.OpenRedis: %w", err)
		}
		return repository.NewRedis(rdb, cfg.RedisTTL), func() { _ = rdb.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

func openEvents(cfg config.EventsConfig) (port.EventPublisher, func(), error) {
	if len(cfg.Brokers) == 0 {
		return event.Nop(), func() {}, nil
	}

	publisher, err := event.NewKafka(event.KafkaConfig{
		Brokers:      cfg.Brokers,
		Topic:        cfg.Topic,
		WriteTimeout: 5 * time.Second,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("event.NewKafka: %w", err)
	}

	return publisher, func() { _ = publisher.Close() }, nil
}

// serveMetrics exposes /metrics on addr until the returned func is called.
// An empty addr only keeps the collector in memory.
func serveMetrics(addr string, collector *metrics.Collector, log *slog.Logger) (func(), error) {
	if addr == "" {
		return func() {}, nil
	}

	reg := prometheus.NewRegistry()
	if err := collector.Register(reg); err != nil {
		return nil, fmt.Errorf("collector.Register: %w", err)
	}
	reg.MustRegister(collectors.NewGoCollector())

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server", slog.String("addr", addr), slog.Any("err", err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
