package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRateLimiter_Redis(t *testing.T) {
	mr, client := newRedis(t)
	rl := NewRateLimiter(client, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow(ctx, "alice"), "request %d", i+1)
	}
	assert.False(t, rl.Allow(ctx, "alice"))
	assert.True(t, rl.Allow(ctx, "bob"), "keys are independent")

	ttl := mr.TTL(keyPrefix + "alice")
	assert.Equal(t, time.Minute, ttl)

	mr.FastForward(time.Minute + time.Second)
	assert.True(t, rl.Allow(ctx, "alice"), "window resets after expiry")
}

func TestRateLimiter_FallsBackToMemory(t *testing.T) {
	mr, client := newRedis(t)
	mr.Close()

	rl := NewRateLimiter(client, 2, time.Minute)
	ctx := context.Background()

	assert.True(t, rl.Allow(ctx, "alice"))
	assert.True(t, rl.Allow(ctx, "alice"))
	assert.False(t, rl.Allow(ctx, "alice"))
}

func TestRateLimiter_MemoryWindow(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(nil, 1, time.Minute)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow(context.Background(), "alice"))
	assert.False(t, rl.Allow(context.Background(), "alice"))

	now = now.Add(2 * time.Minute)
	rl.Cleanup()
	assert.Empty(t, rl.entries)
	assert.True(t, rl.Allow(context.Background(), "alice"))
}

func TestRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, client := newRedis(t)
	rl := NewRateLimiter(client, 1, time.Minute)

	userID := uuid.New()
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(string(UserIDKey), userID)
		c.Next()
	})
	router.Use(rl.Middleware())
	router.POST("/transactions", func(c *gin.Context) { c.Status(http.StatusCreated) })

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/transactions", nil))
	require.Equal(t, http.StatusCreated, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/transactions", nil))
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "AUTH-020003")
}
