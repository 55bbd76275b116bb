package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	t.Run("allows burst then blocks", func(t *testing.T) {
		limiter := NewRateLimiter(1, 3)

		for i := 0; i < 3; i++ {
			allowed, _ := limiter.Allow("client1")
			assert.True(t, allowed, "request %d should be allowed", i+1)
		}
		allowed, remaining := limiter.Allow("client1")
		assert.False(t, allowed)
		assert.Equal(t, 0, remaining)
	})

	t.Run("separate buckets per client", func(t *testing.T) {
		limiter := NewRateLimiter(1, 1)

		allowed, _ := limiter.Allow("clientA")
		assert.True(t, allowed)
		allowed, _ = limiter.Allow("clientA")
		assert.False(t, allowed)
		allowed, _ = limiter.Allow("clientB")
		assert.True(t, allowed)
	})

	t.Run("refills over time", func(t *testing.T) {
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		limiter := NewRateLimiter(2, 1)
		limiter.now = func() time.Time { return now }

		allowed, _ := limiter.Allow("client")
		assert.True(t, allowed)
		allowed, _ = limiter.Allow("client")
		assert.False(t, allowed)

		now = now.Add(time.Second)
		allowed, _ = limiter.Allow("client")
		assert.True(t, allowed)
	})

	t.Run("cleanup removes idle clients", func(t *testing.T) {
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		limiter := NewRateLimiter(10, 10)
		limiter.now = func() time.Time { return now }

		limiter.Allow("idle")
		now = now.Add(time.Hour)
		limiter.Allow("active")

		assert.Equal(t, 1, limiter.Cleanup())
		assert.Len(t, limiter.clients, 1)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(NewRateLimiter(1, 2)))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_RATE_LIMITED")
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}
