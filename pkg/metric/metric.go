package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns the service's Prometheus instruments behind a private
// registry, so request handlers receive it as an explicit dependency
// instead of touching ambient globals. All instruments are safe for
// unbounded concurrent writers.
type Recorder struct {
	registry *prometheus.Registry

	requestsTotal          *prometheus.CounterVec
	requestDuration        prometheus.Histogram
	predictionDistribution prometheus.Histogram
	modelVersionInfo       *prometheus.GaugeVec
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "inference_requests_total",
			Help: "Total inference requests",
		}, []string{"status", "endpoint"}),
		requestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "inference_request_duration_seconds",
			Help:    "Inference request latency",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0},
		}),
		predictionDistribution: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "prediction_value_distribution",
			Help:    "Distribution of prediction values",
			Buckets: []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		}),
		modelVersionInfo: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "model_version_info",
			Help: "Model version information",
		}, []string{"version"}),
	}
}

// RecordRequest is called exactly once per completed request, whatever
// the outcome.
func (r *Recorder) RecordRequest(endpoint, status string, durationSeconds float64) {
	r.requestsTotal.WithLabelValues(status, endpoint).Inc()
	r.requestDuration.Observe(durationSeconds)
}

// RecordPrediction observes the confidence of one completed prediction.
func (r *Recorder) RecordPrediction(confidence float64) {
	r.predictionDistribution.Observe(confidence)
}

// SetModelVersion publishes the loaded model version as a gauge pinned
// to 1.
func (r *Recorder) SetModelVersion(version string) {
	r.modelVersionInfo.WithLabelValues(version).Set(1)
}

// Handler renders the full metrics state in the text exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the private registry for test assertions.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
