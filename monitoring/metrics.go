package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ModeCommitted = "committed"
	ModeDryRun    = "dry_run"
)

type Metrics struct {
	reg                *prometheus.Registry
	OrdersAccepted     *prometheus.CounterVec
	OrdersRejected     *prometheus.CounterVec
	OrderStoreFailures prometheus.Counter
	OrderTotal         prometheus.Histogram
	Subscriptions      *prometheus.CounterVec
	NotifyFailures     prometheus.Counter
}

func NewMetrics() *Metrics {
	r := prometheus.NewRegistry()
	accepted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rivaleats_orders_accepted_total",
		Help: "Orders accepted by the checkout engine.",
	}, []string{"mode"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rivaleats_orders_rejected_total",
		Help: "Orders rejected, by reason.",
	}, []string{"reason"})
	storeFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rivaleats_order_store_failures_total",
	})
	total := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "rivaleats_order_total_amount",
		Help:    "Order totals in dollars.",
		Buckets: []float64{25, 50, 75, 100, 150, 200, 300, 500},
	})
	subs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rivaleats_subscriptions_total",
	}, []string{"outcome"})
	notify := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rivaleats_notify_failures_total",
	})

	r.MustRegister(accepted, rejected, storeFailures, total, subs, notify)
	return &Metrics{
		reg:                r,
		OrdersAccepted:     accepted,
		OrdersRejected:     rejected,
		OrderStoreFailures: storeFailures,
		OrderTotal:         total,
		Subscriptions:      subs,
		NotifyFailures:     notify,
	}
}

func (m *Metrics) Handler() http.Handler { return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}) }
