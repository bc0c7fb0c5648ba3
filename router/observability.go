// Copyright 2026 The Plank Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder receives one observation per dispatched request. The pattern is
// the literal route pattern (or mount prefix) that matched, never the raw
// request path, keeping label cardinality bounded.
type Recorder interface {
	ObserveRequest(method, pattern string, status int, elapsed time.Duration)
}

// PrometheusRecorder is a Recorder backed by a private Prometheus registry.
//
// Example:
//
//	rec := router.NewPrometheusRecorder()
//	r := router.MustNew(router.WithRecorder(rec))
//	mux := http.NewServeMux()
//	mux.Handle("/metrics", rec.Handler())
//	mux.Handle("/", r)
type PrometheusRecorder struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPrometheusRecorder creates a recorder with its own registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	rec := &PrometheusRecorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "plank_requests_total",
			Help: "Total dispatched requests by method, route pattern, and status.",
		}, []string{"method", "pattern", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "plank_request_duration_seconds",
			Help:    "Request dispatch duration by method and route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "pattern"}),
	}
	rec.registry.MustRegister(rec.requests, rec.duration)
	return rec
}

// ObserveRequest implements Recorder.
func (p *PrometheusRecorder) ObserveRequest(method, pattern string, status int, elapsed time.Duration) {
	p.requests.WithLabelValues(method, pattern, strconv.Itoa(status)).Inc()
	p.duration.WithLabelValues(method, pattern).Observe(elapsed.Seconds())
}

// Handler serves the recorder's registry in Prometheus text format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
