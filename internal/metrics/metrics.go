// Package metrics exposes pipeline counters via Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors published on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	// FramesProcessed counts frames pulled through the detection pipeline.
	FramesProcessed prometheus.Counter
	// HandsDetected counts landmark sets returned by the detector.
	HandsDetected prometheus.Counter
	// DetectErrors counts failed detector invocations.
	DetectErrors prometheus.Counter
	// Classifications counts classification results by label.
	Classifications *prometheus.CounterVec
	// HistoryRecorded counts results accepted into the history buffer.
	HistoryRecorded prometheus.Counter
}

// New creates a Metrics instance with its own registry, so tests can hold
// several instances without collector name collisions.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FramesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mudra_frames_processed_total",
			Help: "Total frames pulled through the detection pipeline",
		}),
		HandsDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mudra_hands_detected_total",
			Help: "Total hand poses returned by the landmark detector",
		}),
		DetectErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mudra_detect_errors_total",
			Help: "Total failed landmark detector invocations",
		}),
		Classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mudra_classifications_total",
			Help: "Total classification results by gesture label",
		}, []string{"label"}),
		HistoryRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mudra_history_recorded_total",
			Help: "Total results accepted into the history buffer",
		}),
	}

	m.registry.MustRegister(
		m.FramesProcessed,
		m.HandsDetected,
		m.DetectErrors,
		m.Classifications,
		m.HistoryRecorded,
	)

	return m
}

// Handler returns the Prometheus HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
