package prometheus

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/sm8ta/hospital_frontend/internal/core/domain"
)

type PrometheusAdapter struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	navigations     *prometheus.CounterVec
}

func NewPrometheusAdapter() *PrometheusAdapter {
	p := &PrometheusAdapter{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hospital_client_requests_total",
				Help: "Total number of API requests by operation and status code.",
			},
			[]string{"operation", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hospital_client_request_duration_seconds",
				Help:    "Duration of API requests in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		navigations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hospital_client_navigations_total",
				Help: "Total number of guarded navigations by target and decision reason.",
			},
			[]string{"to", "reason"},
		),
	}
	p.registry.MustRegister(
		p.requestsTotal,
		p.requestDuration,
		p.navigations,
		collectors.NewGoCollector(),
	)
	return p
}

// RecordRequest counts one API call. Status 0 means no response was received.
func (p *PrometheusAdapter) RecordRequest(operation string, status int, start time.Time) {
	p.requestsTotal.WithLabelValues(operation, strconv.Itoa(status)).Inc()
	p.requestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (p *PrometheusAdapter) RecordNavigation(to string, reason domain.DecisionReason) {
	p.navigations.WithLabelValues(to, string(reason)).Inc()
}

func (p *PrometheusAdapter) Registry() *prometheus.Registry {
	return p.registry
}

// WriteTextfile dumps the registry in the node-exporter textfile format.
func (p *PrometheusAdapter) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
