// Package config loads rocketcart settings from defaults, an optional config file,
// CART_* environment variables and command line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nikolayk812/rocketcart/internal/cart"
	"github.com/nikolayk812/rocketcart/internal/logger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

const envPrefix = "CART"

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	API      APIConfig      `mapstructure:"api"`
	Events   EventsConfig   `mapstructure:"events"`
	Logger   logger.Config  `mapstructure:"logger"`
	Display  DisplayConfig  `mapstructure:"display"`
	Messages MessagesConfig `mapstructure:"messages"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	FakeAPI  FakeAPIConfig  `mapstructure:"fakeapi"`
}

type StorageConfig struct {
	// memory, file, postgres, redis
	Driver      string        `mapstructure:"driver"`
	Key         string        `mapstructure:"key"`
	FilePath    string        `mapstructure:"file_path"`
	PostgresDSN string        `mapstructure:"postgres_dsn"`
	RedisURL    string        `mapstructure:"redis_url"`
	RedisTTL    time.Duration `mapstructure:"redis_ttl"`
}

type APIConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	RetryCount      int           `mapstructure:"retry_count"`
	BreakerFailures uint32        `mapstructure:"breaker_failures"`
	BreakerTimeout  time.Duration `mapstructure:"breaker_timeout"`
}

// EventsConfig enables cart events when Brokers is not empty.
type EventsConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type DisplayConfig struct {
	Currency string `mapstructure:"currency"`
	Locale   string `mapstructure:"locale"`
}

type MessagesConfig struct {
	AddFailed    string `mapstructure:"add_failed"`
	RemoveFailed string `mapstructure:"remove_failed"`
	UpdateFailed string `mapstructure:"update_failed"`
	OutOfStock   string `mapstructure:"out_of_stock"`
}

// MetricsConfig serves /metrics on Addr; empty Addr disables it.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// TracingConfig exports spans over OTLP/HTTP to Endpoint; empty Endpoint disables it.
type TracingConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

type FakeAPIConfig struct {
	Addr string `mapstructure:"addr"`
	// Fixture is a JSON file with products and stock; empty uses the built-in one.
	Fixture string `mapstructure:"fixture"`
}

// Flags returns the flag set understood by Load. Flag names are config keys.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)

	fs.StringP("config", "c", "", "config file (toml, yaml or json)")
	fs.String("storage.driver", "", "cart storage: memory, file, postgres or redis")
	fs.String("storage.key", "", "key the cart is stored under")
	fs.String("storage.file_path", "", "cart file for the file driver")
	fs.String("storage.postgres_dsn", "", "postgres connection string")
	fs.String("storage.redis_url", "", "redis url or address")
	fs.String("api.base_url", "", "catalog and stock API base url")
	fs.StringSlice("events.brokers", nil, "kafka brokers for cart events")
	fs.String("logger.level", "", "log level")
	fs.String("display.currency", "", "ISO 4217 currency of prices")
	fs.String("display.locale", "", "BCP 47 locale used to format prices")
	fs.String("metrics.addr", "", "address serving /metrics")
	fs.String("tracing.endpoint", "", "OTLP/HTTP endpoint")
	fs.String("fakeapi.addr", "", "listen address of the fake API")
	fs.String("fakeapi.fixture", "", "fixture file of the fake API")

	return fs
}

// Load reads configuration. fs may be nil; its "config" flag names the config file.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		var bindErr error
		fs.VisitAll(func(f *pflag.Flag) {
			if f.Name == "config" {
				return
			}
			bindErr = errors.Join(bindErr, v.BindPFlag(f.Name, f))
		})
		if bindErr != nil {
			return nil, fmt.Errorf("v.BindPFlag: %w", bindErr)
		}

		path, err := fs.GetString("config")
		if err != nil {
			return nil, fmt.Errorf("fs.GetString: %w", err)
		}
		if path != "" {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("v.ReadInConfig: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cfg.Validate: %w", err)
	}

	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverFile:
		if c.Storage.FilePath == "" {
			errs = append(errs, errors.New("storage.file_path is required for the file driver"))
		}
	case DriverPostgres:
		if c.Storage.PostgresDSN == "" {
			errs = append(errs, errors.New("storage.postgres_dsn is required for the postgres driver"))
		}
	case DriverRedis:
		if c.Storage.RedisURL == "" {
			errs = append(errs, errors.New("storage.redis_url is required for the redis driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage.driver %q", c.Storage.Driver))
	}

	if c.Storage.Key == "" {
		errs = append(errs, errors.New("storage.key is empty"))
	}
	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url is empty"))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout %s is not positive", c.API.Timeout))
	}
	if c.API.RetryCount < 0 {
		errs = append(errs, fmt.Errorf("api.retry_count %d is negative", c.API.RetryCount))
	}
	if len(c.Events.Brokers) > 0 && c.Events.Topic == "" {
		errs = append(errs, errors.New("events.topic is required when events.brokers are set"))
	}
	if _, err := logger.ParseLevel(c.Logger.Level); err != nil {
		errs = append(errs, fmt.Errorf("logger.level: %w", err))
	}
	if _, err := c.Display.Unit(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Display.Tag(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (d DisplayConfig) Unit() (currency.Unit, error) {
	unit, err := currency.ParseISO(d.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("display.currency %q: %w", d.Currency, err)
	}
	return unit, nil
}

func (d DisplayConfig) Tag() (language.Tag, error) {
	tag, err := language.Parse(d.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("display.locale %q: %w", d.Locale, err)
	}
	return tag, nil
}

func (m MessagesConfig) CartMessages() cart.Messages {
	return cart.Messages{
		AddFailed:    m.AddFailed,
		RemoveFailed: m.RemoveFailed,
		UpdateFailed: m.UpdateFailed,
		OutOfStock:   m.OutOfStock,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.key", cart.DefaultStorageKey)
	v.SetDefault("storage.file_path", "rocketcart.json")
	v.SetDefault("storage.postgres_dsn", "")
	v.SetDefault("storage.redis_url", "")
	v.SetDefault("storage.redis_ttl", 0)

	v.SetDefault("api.base_url", "http://localhost:3333")
	v.SetDefault("api.timeout", 5*time.Second)
	v.SetDefault("api.retry_count", 2)
	v.SetDefault("api.breaker_failures", 5)
	v.SetDefault("api.breaker_timeout", 30*time.Second)

	v.SetDefault("events.brokers", []string{})
	v.SetDefault("events.topic", "rocketcart.cart-events")

	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.output", logger.OutputStderr)
	v.SetDefault("logger.file_path", "logs/rocketcart.log")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 10)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.with_caller", false)

	v.SetDefault("display.currency", "BRL")
	v.SetDefault("display.locale", "pt-BR")

	defaults := cart.DefaultMessages()
	v.SetDefault("messages.add_failed", defaults.AddFailed)
	v.SetDefault("messages.remove_failed", defaults.RemoveFailed)
	v.SetDefault("messages.update_failed", defaults.UpdateFailed)
	v.SetDefault("messages.out_of_stock", defaults.OutOfStock)

	v.SetDefault("metrics.addr", "")

	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.service_name", "rocketcart")

	v.SetDefault("fakeapi.addr", ":3333")
	v.SetDefault("fakeapi.fixture", "")
}
