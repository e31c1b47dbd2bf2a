// Package metrics exposes switch outcomes to prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vidswitch/vidswitch/constant"
	"github.com/vidswitch/vidswitch/log"
	"github.com/vidswitch/vidswitch/switcher"
)

const metricsPath = "/metrics"

// SwitchMetrics implements switcher.Recorder.
type SwitchMetrics struct {
	registry *prometheus.Registry

	switchesTotal  *prometheus.CounterVec
	switchDuration prometheus.Histogram
	generation     prometheus.Gauge
}

// New creates the collectors and registers them on registry.
func New(registry *prometheus.Registry) (*SwitchMetrics, error) {
	m := &SwitchMetrics{
		registry: registry,
		switchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: constant.Vidswitch,
				Name:      "switches_total",
				Help:      "Total number of quality switches by outcome",
			},
			[]string{"result"}, // completed, stale, timeout, canceled, error
		),
		switchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: constant.Vidswitch,
				Name:      "switch_duration_seconds",
				Help:      "Time from a switch request until it ended",
				// 10ms up to ~40s
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
			},
		),
		generation: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: constant.Vidswitch,
				Name:      "switch_generation",
				Help:      "Generation of the latest switch",
			},
		),
	}

	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Describe implements the Collector interface
func (m *SwitchMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.switchesTotal.Describe(ch)
	m.switchDuration.Describe(ch)
	m.generation.Describe(ch)
}

// Collect implements the Collector interface
func (m *SwitchMetrics) Collect(ch chan<- prometheus.Metric) {
	m.switchesTotal.Collect(ch)
	m.switchDuration.Collect(ch)
	m.generation.Collect(ch)
}

// SwitchFinished records one switch outcome.
func (m *SwitchMetrics) SwitchFinished(result switcher.Result, elapsed time.Duration) {
	m.switchesTotal.WithLabelValues(string(result)).Inc()
	m.switchDuration.Observe(elapsed.Seconds())
}

// GenerationIssued tracks the latest generation.
func (m *SwitchMetrics) GenerationIssued(generation uint64) {
	m.generation.Set(float64(generation))
}

// Handler serves the registry in the prometheus text format.
func (m *SwitchMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.HTTPErrorOnError,
	})
}

// Serve listens on addr until ctx is done.
func (m *SwitchMetrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle(metricsPath, m.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Infof("serving metrics on %s%s", addr, metricsPath)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
