package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), DisableIndentity: true})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

func limitedEngine(rdb *redis.Client, max int, allow AllowFunc) *gin.Engine {
	r := gin.New()
	r.POST("/login", RateLimit(rdb, max, time.Minute, KeyByIPAndPath(), allow), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func postLogin(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	return serve(r, req)
}

func TestRateLimit_BlocksAfterMax(t *testing.T) {
	rdb, mr := newTestRedis(t)
	r := limitedEngine(rdb, 3, nil)

	for i := 1; i <= 3; i++ {
		w := postLogin(r, "")
		require.Equal(t, http.StatusNoContent, w.Code, "request %d", i)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, strconv.Itoa(3-i), w.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, "60", w.Header().Get("X-RateLimit-Reset"))
	}

	w := postLogin(r, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many requests", gjson.Get(w.Body.String(), "error").String())
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	key := "rl:path:/login:ip:192.0.2.1"
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	// other clients keep their own window
	assert.Equal(t, http.StatusNoContent, postLogin(r, "198.51.100.7:4000").Code)

	mr.FastForward(time.Minute)
	assert.Equal(t, http.StatusNoContent, postLogin(r, "").Code)
}

func TestRateLimit_FailsOpenOnRedisError(t *testing.T) {
	rdb, _ := newTestRedis(t)
	r := limitedEngine(rdb, 1, nil)
	require.NoError(t, rdb.Close())

	for i := 0; i < 3; i++ {
		w := postLogin(r, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimit_FailsOpenWhenServerGone(t *testing.T) {
	rdb, mr := newTestRedis(t)
	r := limitedEngine(rdb, 1, nil)
	mr.Close()

	assert.Equal(t, http.StatusNoContent, postLogin(r, "").Code)
	assert.Equal(t, http.StatusNoContent, postLogin(r, "").Code)
}

func TestRateLimit_AllowFuncBypasses(t *testing.T) {
	rdb, mr := newTestRedis(t)
	r := limitedEngine(rdb, 1, AllowPrivateIP())

	for i := 0; i < 3; i++ {
		w := postLogin(r, "10.0.0.5:5000")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
	assert.False(t, mr.Exists("rl:path:/login:ip:10.0.0.5"))

	assert.Equal(t, http.StatusNoContent, postLogin(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, postLogin(r, "").Code)
}

func TestRateLimit_SkipsPreflight(t *testing.T) {
	rdb, _ := newTestRedis(t)
	r := gin.New()
	r.Use(RateLimit(rdb, 1, time.Minute, KeyByIP(), nil))
	r.OPTIONS("/login", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, serve(r, httptest.NewRequest(http.MethodOptions, "/login", nil)).Code)
	}
}
