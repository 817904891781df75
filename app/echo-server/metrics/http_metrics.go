package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	RequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
)

type HTTPMetrics struct {
	ServiceName string
}

// NewHTTPMetrics registers the request collectors on reg.
func NewHTTPMetrics(serviceName string, reg prometheus.Registerer) (*HTTPMetrics, error) {
	for _, c := range []prometheus.Collector{RequestCounter, RequestDurationHistogram} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				return nil, err
			}
		}
	}

	return &HTTPMetrics{ServiceName: serviceName}, nil
}

// Middleware records count and latency per route. Errors are rendered here so
// the recorded status is the one the client sees.
func (m *HTTPMetrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method
			status := strconv.Itoa(c.Response().Status)

			RequestCounter.WithLabelValues(m.ServiceName, method, path, status).Inc()
			RequestDurationHistogram.WithLabelValues(m.ServiceName, method, path).Observe(time.Since(start).Seconds())

			return nil
		}
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
