// Package metrics exposes Prometheus instrumentation for the workflow core
// and a standalone metrics HTTP server.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WorkflowMetrics counts workflow operations and their failures.
type WorkflowMetrics struct {
	Publishes prometheus.Counter
	Reveals   prometheus.Counter
	Refreshes prometheus.Counter

	// Errors is labeled by the error-taxonomy kind
	// (not_authenticated, encryption, rejected, tx_failed, unavailable).
	Errors *prometheus.CounterVec

	// CachedAssets tracks the size of the last applied asset-list refresh.
	CachedAssets prometheus.Gauge
}

// NewWorkflowMetrics registers the workflow metric set on reg under the given
// namespace and returns it. Pass prometheus.DefaultRegisterer outside tests.
func NewWorkflowMetrics(namespace string, reg prometheus.Registerer) *WorkflowMetrics {
	factory := promauto.With(reg)

	return &WorkflowMetrics{
		Publishes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publishes_total",
			Help:      "Completed publish-asset lifecycles.",
		}),
		Reveals: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reveals_total",
			Help:      "Completed reveal-asset lifecycles, including already-verified short circuits.",
		}),
		Refreshes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Asset-list refresh invocations.",
		}),
		Errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_errors_total",
			Help:      "Workflow failures by error kind.",
		}, []string{"kind"}),
		CachedAssets: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cached_assets",
			Help:      "Asset records held by the display cache.",
		}),
	}
}

// MetricsServer serves the Prometheus scrape endpoint on its own listener.
type MetricsServer struct {
	srv *http.Server
}

// New creates a metrics server for the given listen address.
func New(addr string) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &MetricsServer{
		srv: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}
}

// ListenAndServe blocks serving the scrape endpoint.
func (m *MetricsServer) ListenAndServe() error {
	return m.srv.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
