package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/YuvrajBundele11/OutboundAPI/internal/common"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Number of in-flight HTTP requests",
		},
	)

	accountOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_operations_total",
			Help: "Total number of account directory operations by result",
		},
		[]string{"operation", "result"},
	)
)

// Metrics ghi số request và thời gian xử lý theo route pattern (không theo path thật để tránh bùng nhãn)
func Metrics() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		activeRequests.Inc()
		defer activeRequests.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusOf(err)
		}

		path := c.Route().Path
		httpRequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}

// statusOf lấy HTTP status của lỗi trước khi ErrorHandler render nó
func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	var ce *common.Error
	if errors.As(err, &ce) {
		return ce.StatusCode
	}
	return fiber.StatusInternalServerError
}

// MetricsHandler phục vụ /metrics theo định dạng Prometheus
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// RecordAccountOperation đếm một thao tác trên danh bạ tài khoản.
// result là "success", "not_found" hoặc "error".
func RecordAccountOperation(operation, result string) {
	accountOperations.WithLabelValues(operation, result).Inc()
}
