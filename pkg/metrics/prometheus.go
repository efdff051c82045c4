// Package metrics exports stage measurements to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

// Config defines how the recorder names and registers its metrics.
type Config struct {
	Registry  *prometheus.Registry // Registry to register with; a new one is created when nil
	Namespace string               // Namespace for metrics
	Subsystem string               // Subsystem for metrics
	Buckets   []float64            // Hook duration buckets; prometheus.DefBuckets when empty
}

// PrometheusRecorder records stage hook latency, invocation outcomes and
// one-time runs. It satisfies stage.Recorder and is safe for concurrent use.
type PrometheusRecorder struct {
	registry     *prometheus.Registry
	hookDuration *prometheus.HistogramVec
	invocations  *prometheus.CounterVec
	firstRuns    *prometheus.CounterVec
}

// NewPrometheusRecorder creates the recorder and registers its collectors.
func NewPrometheusRecorder(config Config) (*PrometheusRecorder, error) {
	registry := config.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	buckets := config.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	r := &PrometheusRecorder{
		registry: registry,
		hookDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "stage_hook_duration_seconds",
			Help:      "Duration of stage hooks in seconds",
			Buckets:   buckets,
		}, []string{"stage", "status"}),
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "stage_invocations_total",
			Help:      "Stage invocations by outcome; status is hook_error when the continuation was skipped",
		}, []string{"stage", "status"}),
		firstRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "stage_first_runs_total",
			Help:      "Runs of one-time stage hooks",
		}, []string{"stage", "status"}),
	}

	for _, c := range []prometheus.Collector{r.hookDuration, r.invocations, r.firstRuns} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ObserveHook records the duration of a hook run.
func (r *PrometheusRecorder) ObserveHook(stage string, d time.Duration, err error) {
	r.hookDuration.WithLabelValues(stage, status(err)).Observe(d.Seconds())
	if err != nil {
		r.invocations.WithLabelValues(stage, "hook_error").Inc()
	}
}

// ObserveNext records the outcome of a continuation run.
func (r *PrometheusRecorder) ObserveNext(stage string, err error) {
	r.invocations.WithLabelValues(stage, status(err)).Inc()
}

// ObserveFirstRun records a run of a one-time hook.
func (r *PrometheusRecorder) ObserveFirstRun(stage string, err error) {
	r.firstRuns.WithLabelValues(stage, status(err)).Inc()
}

// Registry returns the registry the collectors are registered with.
func (r *PrometheusRecorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler returns an HTTP handler exposing the registry.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func status(err error) string {
	if err != nil {
		return statusError
	}
	return statusOK
}
