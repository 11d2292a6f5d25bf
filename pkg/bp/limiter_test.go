package bp

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterStore_Basic(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	limiter := store.GetLimiter("192.0.2.1")
	if limiter == nil {
		t.Fatal("expected limiter, got nil")
	}
	if limiter.Limit() != 1 {
		t.Errorf("expected limit 1, got %v", limiter.Limit())
	}
	if limiter.Burst() != 2 {
		t.Errorf("expected burst 2, got %v", limiter.Burst())
	}
	if store.GetLimiter("192.0.2.1") != limiter {
		t.Error("expected the same limiter for the same client")
	}
}

func TestRateLimiterStore_Concurrency(t *testing.T) {
	store := NewRateLimiterStore(10, 5)

	var wg sync.WaitGroup

	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if store.GetLimiter("192.0.2.7") == nil {
				t.Error("expected limiter, got nil")
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, store.Len())
}

func TestRateLimiter_Enforcement(t *testing.T) {
	store := NewRateLimiterStore(2, 2) // 2 events/sec

	// Consume two tokens
	if !store.Allow("192.0.2.9") || !store.Allow("192.0.2.9") {
		t.Fatal("expected first two calls to be allowed")
	}

	if store.Allow("192.0.2.9") {
		t.Error("expected third call to be rate limited")
	}

	// other clients have their own bucket
	if !store.Allow("192.0.2.10") {
		t.Error("expected a different client to be allowed")
	}

	// Wait for refill
	time.Sleep(600 * time.Millisecond)
	if !store.Allow("192.0.2.9") {
		t.Error("expected one token to be available after refill")
	}
}

func TestRateLimiterStore_Prune(t *testing.T) {
	store := NewRateLimiterStore(1, 1)

	clock := time.Date(2024, 6, 15, 8, 30, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	store.GetLimiter("old")
	clock = clock.Add(10 * time.Minute)
	store.GetLimiter("fresh")

	assert.Equal(t, 1, store.Prune(5*time.Minute))
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 0, store.Prune(5*time.Minute))
}
