package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_Take(t *testing.T) {
	bucket := newTokenBucket(3, 1.0)
	now := time.Now()

	for i := 0; i < 3; i++ {
		allowed, remaining, _ := bucket.take(now)
		assert.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 2-i, remaining)
	}

	allowed, remaining, full := bucket.take(now)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.True(t, full.After(now))
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := newTokenBucket(2, 1.0)
	start := time.Now()

	bucket.take(start)
	bucket.take(start)
	allowed, _, _ := bucket.take(start)
	require.False(t, allowed)

	allowed, _, _ = bucket.take(start.Add(1100 * time.Millisecond))
	assert.True(t, allowed)

	allowed, _, _ = bucket.take(start.Add(1200 * time.Millisecond))
	assert.False(t, allowed)
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 5, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/score", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 5, info.Limit)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/score", "POST")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))

	allowed, _ = limiter.Allow("10.0.0.2", "/score", "POST")
	assert.True(t, allowed, "other clients have their own bucket")
}

func TestLimiter_DefaultBucketSharedAcrossPaths(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 2, DefaultWindow: time.Minute})
	defer limiter.Stop()

	limiter.Allow("c", "/jobs/a/candidates", "GET")
	limiter.Allow("c", "/jobs/b/candidates", "GET")
	allowed, _ := limiter.Allow("c", "/jobs/c/candidates", "GET")

	assert.False(t, allowed)
	assert.Equal(t, 1, limiter.Len())
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	limiter := NewLimiter(NewConfig(true, 40))
	defer limiter.Stop()

	// upload limit is 40/4 = 10 with a burst of 5
	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("c", "/parse-cv", "POST")
		require.True(t, allowed)
		assert.Equal(t, 10, info.Limit)
	}
	allowed, _ := limiter.Allow("c", "/parse-cv", "POST")
	assert.False(t, allowed)

	allowed, info := limiter.Allow("c", "/score", "POST")
	assert.True(t, allowed, "other endpoints use the default bucket")
	assert.Equal(t, 40, info.Limit)
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	limiter := NewLimiter(NewConfig(true, 1))
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, info := limiter.Allow("c", "/health", "GET")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
}

func TestLimiter_WhitelistBlacklist(t *testing.T) {
	cfg := NewConfig(true, 1)
	cfg.Whitelist = ParseIPList("10.0.0.1, 10.0.0.2")
	cfg.Blacklist = ParseIPList("192.168.1.1")
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("10.0.0.2", "/score", "POST")
		assert.True(t, allowed)
	}

	allowed, _ := limiter.Allow("192.168.1.1", "/score", "POST")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(NewConfig(false, 1))
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("c", "/parse-cv", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 50, DefaultWindow: time.Hour})
	defer limiter.Stop()

	var allowedCount atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow("c", "/score", "POST"); ok {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), allowedCount.Load())
}

func TestLimiter_Sweep(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 5, DefaultWindow: time.Minute, IdleTTL: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		limiter.Allow(fmt.Sprintf("client-%d", i), "/score", "POST")
	}
	require.Equal(t, 3, limiter.Len())

	limiter.Sweep(time.Now())
	assert.Equal(t, 3, limiter.Len(), "fresh buckets survive")

	limiter.Sweep(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 0, limiter.Len())
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("c", "/score", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 60, info.Limit)
	limiter.Stop()
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/jobs/", Method: "GET", Limit: 5},
		{Path: "/jobs/special", Method: "GET", Limit: 1},
		{Path: "/parse-cv", Method: "POST", Limit: 2},
	}

	tests := []struct {
		path, method string
		wantLimit    int
		wantNil      bool
	}{
		{path: "/parse-cv", method: "POST", wantLimit: 2},
		{path: "/parse-cv", method: "GET", wantNil: true},
		{path: "/jobs/special", method: "GET", wantLimit: 1},
		{path: "/jobs/123/candidates", method: "GET", wantLimit: 5},
		{path: "/score", method: "POST", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestParseIPList(t *testing.T) {
	assert.Empty(t, ParseIPList(""))
	assert.Equal(t, map[string]bool{"a": true, "b": true}, ParseIPList(" a ,,b "))
}
