// Package metrics expone métricas Prometheus de la API: peticiones HTTP, latencia y resultados de login.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/techsolutions-api/internal/application/auth"
)

var _ auth.LoginObserver = (*Collector)(nil)

// Collector registra las métricas de la API en un Registerer.
type Collector struct {
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	loginAttempts *prometheus.CounterVec
}

// NewCollector crea el Collector y registra sus métricas en reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "techsolutions_http_requests_total",
			Help: "Peticiones HTTP atendidas por método, ruta y estado",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "techsolutions_http_request_duration_seconds",
			Help:    "Latencia de las peticiones HTTP (segundos)",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "techsolutions_login_attempts_total",
			Help: "Intentos de login por resultado",
		}, []string{"outcome"}),
	}

	reg.MustRegister(c.requests, c.latency, c.loginAttempts)
	return c
}

// ObserveLogin cuenta un intento de login.
func (c *Collector) ObserveLogin(outcome auth.Outcome) {
	c.loginAttempts.WithLabelValues(string(outcome)).Inc()
}

// RecordRequest registra una petición atendida.
func (c *Collector) RecordRequest(method, route string, status int, elapsed time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Middleware mide cada petición. La ruta es el patrón registrado (/api/services/:id), no la URL.
func (c *Collector) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		c.RecordRequest(ctx.Method(), ctx.Route().Path, status, time.Since(start))
		return err
	}
}

// Handler devuelve el handler de scraping de Prometheus.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
