// Package metrics exposes Prometheus metrics for the service.
//
// Example:
//
//	err := metrics.InitMetrics(config.Metrics)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	metrics.RequestCounter.WithLabelValues("POST", "/api/upload").Inc()
package metrics

import (
	"net/http"
	_ "net/http/pprof" // registers pprof handlers on the default mux

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Karin-Goldin/wedding-app/pkg/configs"
)

var (
	// RequestCounter counts HTTP requests by method and path.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint"},
	)

	// RequestDuration observes HTTP request latency.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// UploadsAdmitted counts uploads that passed the admission gate.
	UploadsAdmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "uploads_admitted_total",
			Help: "Total number of uploads admitted by the gate",
		},
	)

	// UploadsRejected counts gate rejections by reason.
	UploadsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uploads_rejected_total",
			Help: "Total number of uploads rejected by the gate",
		},
		[]string{"reason"},
	)

	registry = prometheus.NewRegistry()
)

// InitMetrics registers collectors on the service registry.
func InitMetrics(config configs.MetricsConfig) error {
	if !config.Enabled {
		return nil
	}

	if config.RuntimeMetrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	registry.MustRegister(RequestCounter, RequestDuration, UploadsAdmitted, UploadsRejected)

	return nil
}

// StartMetricsServer mounts /metrics (and optionally pprof) on the engine.
func StartMetricsServer(config configs.MetricsConfig, engine *gin.Engine) error {
	if !config.Enabled {
		return nil
	}

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	if config.Pprof {
		engine.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
	}

	return nil
}

// GetRegistry returns the Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return registry
}
