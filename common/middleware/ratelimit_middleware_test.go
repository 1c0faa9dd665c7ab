package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/droidbay/catalog/common/logger"
	"github.com/droidbay/catalog/common/ratelimit"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// An unreachable Redis must never block traffic
func TestRateLimitMiddleware_FailsOpenWhenRedisUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { client.Close() })

	limiter := ratelimit.NewRateLimiter(client, logger.New("error", "text"))

	e := echo.New()
	e.Use(GlobalRateLimit(limiter, 10))
	e.Use(ClientRateLimit(limiter, 5))
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}
