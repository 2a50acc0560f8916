package telemetry

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"scalebench/internal/benchmark"
	scerrors "scalebench/internal/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SweepMetrics exposes sweep progress as Prometheus metrics. It implements
// benchmark.Reporter so the driver feeds it directly.
type SweepMetrics struct {
	registry *prometheus.Registry

	Runs            *prometheus.CounterVec
	ReportedSeconds *prometheus.HistogramVec
	WallClock       *prometheus.HistogramVec
	LastSeconds     *prometheus.GaugeVec
	Progress        prometheus.Gauge
}

var _ benchmark.Reporter = (*SweepMetrics)(nil)

// NewSweepMetrics creates and registers all sweep metrics on a private registry.
func NewSweepMetrics() *SweepMetrics {
	m := &SweepMetrics{registry: prometheus.NewRegistry()}

	m.Runs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scalebench_runs_total",
			Help: "Total number of program runs by outcome",
		},
		[]string{"outcome"},
	)

	m.ReportedSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scalebench_reported_seconds",
			Help:    "Execution time reported by the program",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 16),
		},
		[]string{"steps"},
	)

	m.WallClock = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scalebench_wall_clock_seconds",
			Help:    "Wall clock time of a program run measured by the harness",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 16),
		},
		[]string{"steps"},
	)

	m.LastSeconds = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scalebench_last_seconds",
			Help: "Last reported execution time per workload size and thread count",
		},
		[]string{"steps", "threads"},
	)

	m.Progress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "scalebench_sweep_progress_ratio",
			Help: "Fraction of the current sweep's runs that have finished",
		},
	)

	m.registry.MustRegister(
		m.Runs,
		m.ReportedSeconds,
		m.WallClock,
		m.LastSeconds,
		m.Progress,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *SweepMetrics) SeriesStarted(steps int64, total int) {}

func (m *SweepMetrics) SampleRecorded(steps int64, sample benchmark.Sample, done, total int) {
	s := strconv.FormatInt(steps, 10)
	m.Runs.WithLabelValues("ok").Inc()
	m.ReportedSeconds.WithLabelValues(s).Observe(sample.Seconds)
	m.WallClock.WithLabelValues(s).Observe(sample.WallClock.Seconds())
	m.LastSeconds.WithLabelValues(s, strconv.Itoa(sample.Threads)).Set(sample.Seconds)
	m.setProgress(done, total)
}

func (m *SweepMetrics) SampleFailed(steps int64, threads int, err error, done, total int) {
	m.Runs.WithLabelValues(scerrors.Kind(err)).Inc()
	m.setProgress(done, total)
}

func (m *SweepMetrics) setProgress(done, total int) {
	if total > 0 {
		m.Progress.Set(float64(done) / float64(total))
	}
}

// Handler returns the HTTP handler serving this registry.
func (m *SweepMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// StartMetricsServer serves /metrics on addr until ctx is cancelled.
func StartMetricsServer(ctx context.Context, addr string, m *SweepMetrics) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	LogInfo("Starting metrics server", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
