package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestProperty_RateLimitingBlocksExcessiveRequests(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("requests beyond the limit get 429", prop.ForAll(
		func(limit int, excess int) bool {
			_, client := newTestRedis(t)

			handler := RateLimitMiddleware(client, RateLimitConfig{
				RequestsPerWindow: limit,
				Window:            time.Minute,
				KeyPrefix:         "test_rate_limit",
			}, zap.NewNop())(okHandler())

			for i := 0; i < limit; i++ {
				req := httptest.NewRequest("POST", "/api/users/login", nil)
				req.RemoteAddr = "192.0.2.1:1234"
				w := httptest.NewRecorder()
				handler.ServeHTTP(w, req)
				if w.Code != http.StatusOK {
					return false
				}
				if w.Header().Get("X-RateLimit-Remaining") != strconv.Itoa(limit-i-1) {
					return false
				}
			}

			for i := 0; i < excess; i++ {
				req := httptest.NewRequest("POST", "/api/users/login", nil)
				req.RemoteAddr = "192.0.2.1:1234"
				w := httptest.NewRecorder()
				handler.ServeHTTP(w, req)
				if w.Code != http.StatusTooManyRequests || w.Header().Get("Retry-After") == "" {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 20),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRateLimitKeysAreIsolated(t *testing.T) {
	_, client := newTestRedis(t)
	handler := RateLimitMiddleware(client, RateLimitConfig{
		RequestsPerWindow: 1,
		Window:            time.Minute,
		KeyPrefix:         "auth",
	}, zap.NewNop())(okHandler())

	send := func(remote string, userID string) int {
		req := httptest.NewRequest("POST", "/api/users/login", nil)
		req.RemoteAddr = remote
		if userID != "" {
			req = req.WithContext(context.WithValue(req.Context(), UserIDKey, userID))
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	if code := send("192.0.2.1:1", ""); code != http.StatusOK {
		t.Fatalf("first request from ip got %d", code)
	}
	if code := send("192.0.2.1:2", ""); code != http.StatusTooManyRequests {
		t.Errorf("second request from same ip got %d", code)
	}
	if code := send("192.0.2.2:1", ""); code != http.StatusOK {
		t.Errorf("other ip got %d", code)
	}
	if code := send("192.0.2.1:3", "user-1"); code != http.StatusOK {
		t.Errorf("authenticated user got %d", code)
	}
}

func TestRateLimitWindowExpires(t *testing.T) {
	mr, client := newTestRedis(t)
	handler := RateLimitMiddleware(client, RateLimitConfig{
		RequestsPerWindow: 1,
		Window:            time.Second,
		KeyPrefix:         "auth",
	}, zap.NewNop())(okHandler())

	send := func() int {
		req := httptest.NewRequest("POST", "/api/users/login", nil)
		req.RemoteAddr = "192.0.2.9:80"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	send()
	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429 inside the window, got %d", code)
	}

	mr.FastForward(2 * time.Second)

	if code := send(); code != http.StatusOK {
		t.Errorf("Expected 200 after the window, got %d", code)
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	mr, client := newTestRedis(t)
	mr.Close()

	handler := RateLimitMiddleware(client, RateLimitConfig{
		RequestsPerWindow: 1,
		Window:            time.Minute,
		KeyPrefix:         "auth",
	}, zap.NewNop())(okHandler())

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", "/api/users/login", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200 with redis down, got %d", w.Code)
		}
	}
}
