package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/YuvrajBundele11/OutboundAPI/internal/common"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsByRoutePattern(t *testing.T) {
	app := fiber.New()
	app.Use(Metrics())
	app.Get("/items/:id", func(c fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", MetricsHandler())

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/items/:id", "200"))
	for _, id := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/items/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/items/:id", "200"))
	assert.Equal(t, before+2, after)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.Contains(string(body), "http_requests_total"))
}

func TestRecordAccountOperation(t *testing.T) {
	before := testutil.ToFloat64(accountOperations.WithLabelValues("create", "success"))
	RecordAccountOperation("create", "success")
	assert.Equal(t, before+1, testutil.ToFloat64(accountOperations.WithLabelValues("create", "success")))
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/custom", func(c fiber.Ctx) error { return common.ErrMissingIdentifier })
	app.Get("/fiber", func(c fiber.Ctx) error { return fiber.NewError(fiber.StatusBadRequest, "bad json") })
	app.Get("/panic-like", func(c fiber.Ctx) error { return io.ErrUnexpectedEOF })

	resp, err := app.Test(httptest.NewRequest("GET", "/custom", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/fiber", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "VAL_002")

	resp, err = app.Test(httptest.NewRequest("GET", "/panic-like", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/khong-co", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
