package router

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// ContextURL is the context key for the external base URL of the API.
const ContextURL = "baseURL"

// URLMiddleware stores the external base URL of the API in the request
// context for link generation.
func URLMiddleware(url *url.URL) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextURL, strings.TrimSuffix(url.String(), "/"))
		c.Next()
	}
}

// requestMetrics are the Prometheus metrics of one router.
type requestMetrics struct {
	registerer prometheus.Registerer
	registered []prometheus.Collector

	count    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

func newRequestMetrics(registerer prometheus.Registerer) *requestMetrics {
	return &requestMetrics{
		registerer: registerer,
		count: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "requests_total",
				Help: "How many HTTP requests processed, partitioned by status code, HTTP method and route.",
			},
			[]string{"code", "method", "route"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "request_duration_seconds",
				Help: "The HTTP request latencies in seconds.",
			},
			[]string{"code", "method", "route"},
		),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "requests_in_flight",
			Help: "How many HTTP requests are currently processed.",
		}),
	}
}

// register registers all metrics. On failure, the metrics registered
// so far stay registered until unregister is called.
func (m *requestMetrics) register() error {
	for _, c := range []prometheus.Collector{m.count, m.duration, m.inFlight} {
		if err := m.registerer.Register(c); err != nil {
			return fmt.Errorf("could not register %s with Prometheus: %w", c, err)
		}
		m.registered = append(m.registered, c)
	}

	return nil
}

// unregister unregisters the metrics registered by register.
//
// This is needed to cleanly exit and to configure another router.
func (m *requestMetrics) unregister() bool {
	ok := len(m.registered) > 0
	for _, c := range m.registered {
		if !m.registerer.Unregister(c) {
			ok = false
		}
	}
	m.registered = nil

	return ok
}

// middleware updates the metrics for every request.
func (m *requestMetrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		elapsed := time.Since(start).Seconds()

		// Use the route template to keep the cardinality low,
		// e.g. /api/envelopes/:id instead of /api/envelopes/1
		// https://prometheus.io/docs/practices/naming/#labels
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.duration.WithLabelValues(status, c.Request.Method, route).Observe(elapsed)
		m.count.WithLabelValues(status, c.Request.Method, route).Inc()
	}
}
