package observability

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Metrics exposes Prometheus collectors for the service.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec
	ticketsCreated  *prometheus.CounterVec
	breachesTotal   prometheus.Counter
	escalationTotal prometheus.Counter
}

// NewMetrics initializes and registers all collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Number of HTTP requests processed.",
		}, []string{"path", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Number of failed HTTP requests by error code.",
		}, []string{"path", "method", "code"}),
		ticketsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "complaints_created_total",
			Help: "Number of complaint tickets created.",
		}, []string{"priority"}),
		breachesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sla_breaches_detected_total",
			Help: "Number of tickets observed past their resolution deadline.",
		}),
		escalationTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tickets_escalated_total",
			Help: "Number of tickets escalated by the breach scanner.",
		}),
	}

	registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.errorsTotal,
		m.ticketsCreated,
		m.breachesTotal,
		m.escalationTotal,
	)
	return m
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(path, method, code).Inc()
}

// RecordTicketCreated counts created complaints per priority.
func (m *Metrics) RecordTicketCreated(priority string) {
	if m == nil {
		return
	}
	m.ticketsCreated.WithLabelValues(priority).Inc()
}

// RecordBreachDetected counts tickets found past their resolution deadline.
func (m *Metrics) RecordBreachDetected() {
	if m == nil {
		return
	}
	m.breachesTotal.Inc()
}

// RecordEscalation counts scanner-driven escalations.
func (m *Metrics) RecordEscalation() {
	if m == nil {
		return
	}
	m.escalationTotal.Inc()
}

// RequestLogger logs each request and records latency metrics.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		status := c.Response().StatusCode()
		metrics.RecordRequest(c.Path(), c.Method(), status, duration)

		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", duration),
		)
		return err
	}
}
