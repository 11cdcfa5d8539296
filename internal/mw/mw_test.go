package mw

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(rate.Limit(0.001), 2))
	r.GET("/servers", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/servers").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/servers").Code)

	w := serve(r, http.MethodGet, "/servers")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"meta":{"message":"Too many requests."}}`, w.Body.String())
}

func TestIPRateLimiter_PerIP(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 1)

	assert.Same(t, l.GetLimiter("10.0.0.1"), l.GetLimiter("10.0.0.1"))
	assert.NotSame(t, l.GetLimiter("10.0.0.1"), l.GetLimiter("10.0.0.2"))
}

func TestCache_HitAndFlushOnWrite(t *testing.T) {
	hits := 0
	store := cache.New(time.Minute, time.Minute)

	r := gin.New()
	r.Use(Cache(store, time.Minute))
	r.GET("/servers", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})
	r.POST("/servers", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.DELETE("/servers/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	first := serve(r, http.MethodGet, "/servers")
	assert.Equal(t, "MISS", first.Header().Get(CacheHeader))
	assert.JSONEq(t, `{"hits":1}`, first.Body.String())

	second := serve(r, http.MethodGet, "/servers")
	assert.Equal(t, "HIT", second.Header().Get(CacheHeader))
	assert.JSONEq(t, `{"hits":1}`, second.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", second.Header().Get("Content-Type"))

	// A failed write leaves the cache alone.
	serve(r, http.MethodDelete, "/servers/9")
	assert.Equal(t, "HIT", serve(r, http.MethodGet, "/servers").Header().Get(CacheHeader))

	serve(r, http.MethodPost, "/servers")
	third := serve(r, http.MethodGet, "/servers")
	assert.Equal(t, "MISS", third.Header().Get(CacheHeader))
	assert.JSONEq(t, `{"hits":2}`, third.Body.String())
}

func TestCache_SkipsErrors(t *testing.T) {
	store := cache.New(time.Minute, time.Minute)

	r := gin.New()
	r.Use(Cache(store, time.Minute))
	r.GET("/servers", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(r, http.MethodGet, "/servers")
	assert.Equal(t, 0, store.ItemCount())
}

func TestRequestIDAndLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	r := gin.New()
	r.Use(RequestID(), RequestLogger(log))
	r.GET("/servers", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/servers?page=2")
	id := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, id)
	assert.Contains(t, buf.String(), id)
	assert.Contains(t, buf.String(), `"path":"/servers"`)
	assert.Contains(t, buf.String(), `"query":"page=2"`)

	req := httptest.NewRequest(http.MethodGet, "/servers", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCache_HitKeepsCurrentRequestID(t *testing.T) {
	store := cache.New(time.Minute, time.Minute)

	r := gin.New()
	r.Use(RequestID(), Cache(store, time.Minute))
	r.GET("/servers", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	get := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/servers", nil)
		req.Header.Set(RequestIDHeader, id)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := get("req-A")
	assert.Equal(t, "MISS", first.Header().Get(CacheHeader))
	assert.Equal(t, "req-A", first.Header().Get(RequestIDHeader))

	second := get("req-B")
	assert.Equal(t, "HIT", second.Header().Get(CacheHeader))
	assert.Equal(t, "req-B", second.Header().Get(RequestIDHeader))
	assert.Equal(t, []string{"req-B"}, second.Header().Values(RequestIDHeader))
	assert.Equal(t, "application/json; charset=utf-8", second.Header().Get("Content-Type"))
}
