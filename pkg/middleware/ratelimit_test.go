package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"CareerGo/internal/config"
)

func newRateLimitedEcho(env string) *echo.Echo {
	e := echo.New()
	e.Use(RateLimit(&config.AppConfig{Env: env}))
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})
	return e
}

func TestRateLimitThrottlesInProduction(t *testing.T) {
	e := newRateLimitedEcho("production")

	denied := false
	for i := 0; i < 100; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Real-Ip", "10.0.0.1")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			denied = true
			break
		}
	}
	assert.True(t, denied, "expected a burst of requests from one address to be throttled")
}

func TestRateLimitSkippedInDevelopment(t *testing.T) {
	e := newRateLimitedEcho("development")

	for i := 0; i < 100; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Real-Ip", "10.0.0.1")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
