package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rooted/backend/internal/domain"
	"github.com/rooted/backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		name           string
		origin         string
		allowedOrigins []string
		want           bool
	}{
		{
			name:           "exact match",
			origin:         "https://rooted.se",
			allowedOrigins: []string{"https://rooted.se"},
			want:           true,
		},
		{
			name:           "wildcard port match",
			origin:         "http://localhost:5173",
			allowedOrigins: []string{"http://localhost:*"},
			want:           true,
		},
		{
			name:           "multiple allowed origins - matches second",
			origin:         "https://rooted.se",
			allowedOrigins: []string{"http://localhost:*", "https://rooted.se"},
			want:           true,
		},
		{
			name:           "no match",
			origin:         "http://evil.com",
			allowedOrigins: []string{"http://localhost:*"},
			want:           false,
		},
		{
			name:           "exact entry does not match subdomain",
			origin:         "https://shop.rooted.se",
			allowedOrigins: []string{"https://rooted.se"},
			want:           false,
		},
		{
			name:           "empty origin",
			origin:         "",
			allowedOrigins: []string{"http://localhost:*"},
			want:           false,
		},
		{
			name:           "empty allowed list",
			origin:         "http://localhost:5173",
			allowedOrigins: []string{},
			want:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isAllowedOrigin(tt.origin, tt.allowedOrigins)
			if got != tt.want {
				t.Errorf("isAllowedOrigin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCORSMiddleware_PreflightRequest(t *testing.T) {
	router := gin.New()
	router.Use(CORSMiddleware([]string{"http://localhost:*"}))
	router.POST("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Preflight status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Errorf("Access-Control-Allow-Origin not set correctly")
	}
	if w.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Errorf("Access-Control-Allow-Methods not set")
	}
	if w.Header().Get("Access-Control-Max-Age") == "" {
		t.Errorf("Access-Control-Max-Age not set")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	newRouter := func(perMinute int) *gin.Engine {
		router := gin.New()
		router.Use(RateLimitMiddleware(perMinute))
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "OK")
		})
		return router
	}

	call := func(router *gin.Engine, remoteAddr string) int {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("rejects requests beyond the burst", func(t *testing.T) {
		router := newRouter(2)

		assert.Equal(t, http.StatusOK, call(router, "10.0.0.1:1000"))
		assert.Equal(t, http.StatusOK, call(router, "10.0.0.1:1001"))
		assert.Equal(t, http.StatusTooManyRequests, call(router, "10.0.0.1:1002"))
	})

	t.Run("limits each client IP separately", func(t *testing.T) {
		router := newRouter(1)

		assert.Equal(t, http.StatusOK, call(router, "10.0.0.1:1000"))
		assert.Equal(t, http.StatusTooManyRequests, call(router, "10.0.0.1:1000"))
		assert.Equal(t, http.StatusOK, call(router, "10.0.0.2:1000"))
	})

	t.Run("zero disables limiting", func(t *testing.T) {
		router := newRouter(0)

		for i := 0; i < 50; i++ {
			require.Equal(t, http.StatusOK, call(router, "10.0.0.1:1000"))
		}
	})
}

func TestIPRateLimiterEviction(t *testing.T) {
	clock := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	limiters := newIPRateLimiter(10)
	limiters.now = func() time.Time { return clock }
	limiters.lastSweep = clock

	limiters.get("10.0.0.1")
	limiters.get("10.0.0.2")
	require.Equal(t, 2, limiters.size())

	clock = clock.Add(2 * time.Minute)
	limiters.get("10.0.0.2")
	assert.Equal(t, 2, limiters.size(), "no sweep before the idle TTL elapses")

	clock = clock.Add(limiterIdleTTL)
	limiters.get("10.0.0.3")
	assert.Equal(t, 1, limiters.size(), "idle limiters are dropped")

	clock = clock.Add(time.Minute)
	limiters.get("10.0.0.3")
	clock = clock.Add(limiterIdleTTL - time.Minute)
	limiters.get("10.0.0.4")
	assert.Equal(t, 2, limiters.size(), "recently seen limiters survive the sweep")
}

func TestRecoveredPanicIsLogged(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := NewHandler(panickingAssistant{}, nil, nil)
	router := SetupRouter(testConfig(), handler, zap.New(core))

	w := postJSON(router, "/api/v1/assistant/chat", `{"message":"carrots"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	requests := logs.FilterMessage("http request").All()
	require.Len(t, requests, 1)
	assert.Equal(t, int64(http.StatusInternalServerError), requests[0].ContextMap()["status"])
	assert.Len(t, logs.FilterMessage("panic recovered").All(), 1)
}

// panickingAssistant fails every chat turn with a panic
type panickingAssistant struct{}

func (panickingAssistant) Respond(context.Context, *domain.ChatRequest) (*domain.AssistantReply, error) {
	panic("matcher exploded")
}

func (panickingAssistant) Parse(string) domain.ParsedRequest {
	return domain.ParsedRequest{}
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(zap.NewNop()))
	router.GET("/panic", func(c *gin.Context) {
		panic("catalog exploded")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, usecase.FallbackReply, response["text"])
	assert.NotContains(t, w.Body.String(), "catalog exploded")
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(requestIDKey))
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	id := w.Header().Get("X-Request-ID")
	assert.Len(t, id, 36)
	assert.Equal(t, id, w.Body.String())
}
