// Package client talks to the remote catalog and stock API.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/nikolayk812/rocketcart/internal/domain"
	"github.com/sony/gobreaker"
)

var (
	ErrNotFound = errors.New("resource not found")
	// ErrUnexpectedBody is returned for a successful status whose body is not JSON.
	ErrUnexpectedBody = errors.New("unexpected response body")
)

// StatusError is returned for non-2xx responses other than 404.
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.Path, e.Code)
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int

	// consecutive failures before the breaker opens
	BreakerFailures uint32
	// how long the breaker stays open
	BreakerTimeout time.Duration
}

// Client implements both port.CatalogService and port.StockService.
type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is empty")
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "rocketcart-api",
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		// a missing product is an answer, not an outage
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
	})

	return &Client{
		http:    httpClient,
		breaker: breaker,
	}, nil
}

func (c *Client) GetProduct(ctx context.Context, productID int64) (domain.Product, error) {
	var product domain.Product
	if err := c.get(ctx, "/products/{id}", productID, &product); err != nil {
		return domain.Product{}, err
	}

	if product.ID != productID {
		return domain.Product{}, fmt.Errorf("product[%d]: response has id %d", productID, product.ID)
	}

	return product, nil
}

func (c *Client) GetStock(ctx context.Context, productID int64) (domain.Stock, error) {
	var stock domain.Stock
	if err := c.get(ctx, "/stock/{id}", productID, &stock); err != nil {
		return domain.Stock{}, err
	}

	if stock.ID != 0 && stock.ID != productID {
		return domain.Stock{}, fmt.Errorf("stock[%d]: response has id %d", productID, stock.ID)
	}

	return stock, nil
}

func (c *Client) get(ctx context.Context, path string, id int64, result any) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.http.R().
			SetContext(ctx).
			SetPathParam("id", strconv.FormatInt(id, 10)).
			SetResult(result).
			Get(path)
		if err != nil {
			return nil, fmt.Errorf("http.Get: %w", err)
		}

		switch {
		case resp.StatusCode() == http.StatusNotFound:
			return nil, fmt.Errorf("GET %s: %w", resp.Request.URL, ErrNotFound)
		case resp.IsError():
			return nil, &StatusError{Path: resp.Request.URL, Code: resp.StatusCode()}
		}

		contentType := resp.Header().Get("Content-Type")
		if !strings.Contains(strings.ToLower(contentType), "json") {
			return nil, fmt.Errorf("GET %s: content type %q: %w", resp.Request.URL, contentType, ErrUnexpectedBody)
		}
		if len(resp.Body()) == 0 {
			return nil, fmt.Errorf("GET %s: empty body: %w", resp.Request.URL, ErrUnexpectedBody)
		}

		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("breaker.Execute: %w", err)
	}

	return nil
}
