package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const namespace = "accessibility_map"

// unmatchedPath - метка path для запросов без маршрута
const unmatchedPath = "unmatched"

// Результаты обращения к кешу вьюпорта
const (
	ResultHit        = "hit"
	ResultMiss       = "miss"
	ResultStale      = "stale_fallback"
	ResultCold       = "cold_fallback"
	ResultSuperseded = "superseded"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "path"})

	// ViewportCacheRequests - обращения к кешу вьюпорта по результату
	ViewportCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "viewport_cache",
		Name:      "requests_total",
		Help:      "Viewport cache lookups by outcome",
	}, []string{"result"})

	// OverpassRequestDuration - длительность запросов к Overpass API
	OverpassRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "overpass",
		Name:      "request_duration_seconds",
		Help:      "Duration of Overpass API requests",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"status"})

	// ActiveSessions - количество живых сессий карты
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "sessions",
		Name:      "active",
		Help:      "Current number of map sessions holding a viewport cache",
	})

	// NotificationsPublished - уведомления, отправленные в sink
	NotificationsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "notifications",
		Name:      "published_total",
		Help:      "Notifications delivered to sinks",
	}, []string{"sink", "status"})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		code := c.Response().StatusCode()
		path := c.Route().Path

		// ErrorHandler ещё не записал статус, берём его из ошибки
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			if fe.Code == fiber.StatusNotFound {
				path = unmatchedPath
			}
		}
		if path == "" {
			path = unmatchedPath
		}
		status := strconv.Itoa(code)
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	}
}
