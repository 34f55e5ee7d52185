package ratelimit_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chiemelie/bookhub/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMemoryLimiterWindow(t *testing.T) {
	l := ratelimit.NewMemoryLimiter(2, 50*time.Millisecond)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "a")

		if err != nil || !ok {
			t.Fatalf("request %d should pass, got (%v, %v)", i+1, ok, err)
		}
	}

	ok, _ := l.Allow(ctx, "a")
	if ok {
		t.Fatal("third request inside the window should be blocked")
	}

	// a different key has its own window
	ok, _ = l.Allow(ctx, "b")
	if !ok {
		t.Fatal("different key should not be throttled")
	}

	time.Sleep(60 * time.Millisecond)

	ok, _ = l.Allow(ctx, "a")
	if !ok {
		t.Fatal("request after window expiry should pass")
	}
}

func TestMiddlewareRejectsWith429(t *testing.T) {
	l := ratelimit.NewMemoryLimiter(1, time.Minute)

	r := gin.New()
	r.POST("/login", ratelimit.Middleware(l, nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := do(); code != http.StatusOK {
		t.Fatalf("first request: got %d, want 200", code)
	}

	if code := do(); code != http.StatusTooManyRequests {
		t.Fatalf("second request: got %d, want 429", code)
	}
}
