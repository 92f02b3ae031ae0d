package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder collects measurement metrics into its own registry so they can be
// written as a node-exporter textfile at the end of a run. A nil *Recorder
// is valid and records nothing.
type Recorder struct {
	registry      *prometheus.Registry
	artifactBytes *prometheus.GaugeVec
	stepDuration  *prometheus.HistogramVec
	benchmarks    *prometheus.CounterVec
}

// NewRecorder creates and registers the measurement metrics.
func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.artifactBytes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wasmweight_artifact_bytes",
			Help: "Size of a measured build artifact in bytes",
		},
		[]string{"benchmark", "output"},
	)

	r.stepDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wasmweight_step_duration_seconds",
			Help:    "Duration of benchmark procedure steps in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
		},
		[]string{"benchmark", "step"},
	)

	r.benchmarks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wasmweight_benchmarks_total",
			Help: "Benchmarks attempted, by result",
		},
		[]string{"result"},
	)

	r.registry.MustRegister(r.artifactBytes, r.stepDuration, r.benchmarks)
	return r
}

// SetArtifactBytes records the size of one benchmark output.
func (r *Recorder) SetArtifactBytes(benchmark, output string, bytes uint64) {
	if r == nil {
		return
	}
	r.artifactBytes.WithLabelValues(benchmark, output).Set(float64(bytes))
}

// ObserveStep records how long a procedure step took.
func (r *Recorder) ObserveStep(benchmark, step string, d time.Duration) {
	if r == nil {
		return
	}
	r.stepDuration.WithLabelValues(benchmark, step).Observe(d.Seconds())
}

// TrackBenchmark counts a finished benchmark.
func (r *Recorder) TrackBenchmark(ok bool) {
	if r == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	r.benchmarks.WithLabelValues(result).Inc()
}

// Gatherer exposes the underlying registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics in the Prometheus text format to path.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
