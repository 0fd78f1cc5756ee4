package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsUpToBurst(t *testing.T) {
	clock := time.Unix(0, 0)
	limiter := NewRateLimiter(1, 3, func() time.Time { return clock })

	for i := 0; i < 3; i++ {
		if ok, _ := limiter.Allow("user-1"); !ok {
			t.Fatalf("request %d within burst should pass", i+1)
		}
	}
	ok, retryAfter := limiter.Allow("user-1")
	if ok {
		t.Fatal("request beyond burst should be rejected")
	}
	if retryAfter <= 0 {
		t.Fatalf("expected positive retry-after, got %v", retryAfter)
	}
}

func TestRateLimiterRefillsOverTime(t *testing.T) {
	clock := time.Unix(0, 0)
	limiter := NewRateLimiter(2, 1, func() time.Time { return clock })

	if ok, _ := limiter.Allow("user-1"); !ok {
		t.Fatal("first request should pass")
	}
	if ok, _ := limiter.Allow("user-1"); ok {
		t.Fatal("bucket should be empty")
	}

	clock = clock.Add(time.Second)
	if ok, _ := limiter.Allow("user-1"); !ok {
		t.Fatal("bucket should have refilled after a second")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	clock := time.Unix(0, 0)
	limiter := NewRateLimiter(1, 1, func() time.Time { return clock })

	if ok, _ := limiter.Allow("user-1"); !ok {
		t.Fatal("user-1 should pass")
	}
	if ok, _ := limiter.Allow("user-2"); !ok {
		t.Fatal("user-2 has an independent bucket")
	}
}
