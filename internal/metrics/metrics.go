// Package metrics exposes prometheus collectors for cart operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "rocketcart"

const (
	OutcomeOK         = "ok"
	OutcomeOutOfStock = "out_of_stock"
	OutcomeNotFound   = "not_found"
	OutcomeFailed     = "failed"
)

type Collector struct {
	operations *prometheus.CounterVec
	items      prometheus.Gauge
}

func New() *Collector {
	return &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "operations_total",
			Help:      "Cart operations by outcome",
		}, []string{"operation", "outcome"}),
		items: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "items",
			Help:      "Distinct products in the cart",
		}),
	}
}

func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, m := range []prometheus.Collector{c.operations, c.items} {
		if err := reg.Register(m); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) RecordOperation(operation, outcome string) {
	c.operations.WithLabelValues(operation, outcome).Inc()
}

func (c *Collector) SetItems(n int) {
	c.items.Set(float64(n))
}

// Operations is exposed for tests.
func (c *Collector) Operations() *prometheus.CounterVec {
	return c.operations
}

func (c *Collector) Items() prometheus.Gauge {
	return c.items
}
