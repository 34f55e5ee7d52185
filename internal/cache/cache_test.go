package cache_test

import (
	"testing"
	"time"

	"github.com/chiemelie/bookhub/internal/cache"
)

func TestGetSetInvalidate(t *testing.T) {
	c := cache.New(time.Minute)

	if _, ok := c.Get("k"); ok {
		t.Fatal("empty cache returned a hit")
	}

	c.Set("k", 7)

	v, ok := c.Get("k")
	if !ok || v.(int) != 7 {
		t.Fatalf("got (%v, %v), want (7, true)", v, ok)
	}

	c.Invalidate("k")

	if _, ok := c.Get("k"); ok {
		t.Fatal("invalidated key returned a hit")
	}
}

func TestExpiry(t *testing.T) {
	c := cache.New(10 * time.Millisecond)

	c.Set("k", "v")

	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatal("expired entry returned a hit")
	}
}
