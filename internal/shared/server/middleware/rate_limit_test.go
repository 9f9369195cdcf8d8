package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterExhaustsBurst(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 3}

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("u1", rule)
		if !allowed {
			t.Fatalf("request %d within burst should be allowed", i)
		}
	}

	allowed, retryAfter := limiter.Allow("u1", rule)
	if allowed {
		t.Fatalf("request beyond burst should be rejected")
	}
	if retryAfter <= 0 || retryAfter > time.Second+50*time.Millisecond {
		t.Fatalf("unexpected retry-after %v", retryAfter)
	}
}

func TestRateLimiterRefillsOverTime(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if allowed, _ := limiter.Allow("u1", rule); !allowed {
		t.Fatalf("first request should be allowed")
	}
	if allowed, _ := limiter.Allow("u1", rule); allowed {
		t.Fatalf("second immediate request should be rejected")
	}

	now = now.Add(1100 * time.Millisecond)
	if allowed, _ := limiter.Allow("u1", rule); !allowed {
		t.Fatalf("request after refill should be allowed")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if allowed, _ := limiter.Allow("u1", rule); !allowed {
		t.Fatalf("first u1 request should be allowed")
	}
	if allowed, _ := limiter.Allow("u2", rule); !allowed {
		t.Fatalf("u2 must not share u1's bucket")
	}
	if allowed, _ := limiter.Allow("u1", rule); allowed {
		t.Fatalf("u1's bucket should be empty")
	}
}

func TestRateLimiterDisabledRule(t *testing.T) {
	limiter := NewRateLimiter(nil)

	for i := 0; i < 100; i++ {
		if allowed, _ := limiter.Allow("u1", RateLimitRule{}); !allowed {
			t.Fatalf("zero-valued rule must not throttle")
		}
	}
}
