package ratelimit

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"
)

func TestBucketTake(t *testing.T) {
	b := newBucket(5, 1.0) // 5 tokens, 1 token per second

	for i := 0; i < 5; i++ {
		allowed, _, _ := b.take()
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
	}

	allowed, remaining, reset := b.take()
	if allowed {
		t.Error("Expected 6th request to be denied")
	}
	if remaining != 0 {
		t.Errorf("Remaining = %d, want 0", remaining)
	}
	if !reset.After(time.Now()) {
		t.Error("Expected reset time in the future for an empty bucket")
	}
}

func TestBucketRefill(t *testing.T) {
	b := newBucket(2, 10.0) // refills fast enough to test without long sleeps

	b.take()
	b.take()
	if allowed, _, _ := b.take(); allowed {
		t.Fatal("Expected empty bucket to deny")
	}

	time.Sleep(150 * time.Millisecond)

	if allowed, _, _ := b.take(); !allowed {
		t.Error("Expected request to be allowed after refill")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		path   string
		method string
		want   string
	}{
		{"/health", http.MethodGet, TierHealth},
		{"/users/abc/actions/career_analysis", http.MethodPost, TierAction},
		{"/users/abc/actions/interview_prep", http.MethodPost, TierAction},
		{"/users/abc/journey/term-achieved", http.MethodPost, TierWrite},
		{"/users/abc/goal", http.MethodPut, TierWrite},
		{"/users/abc/jobs/xyz/saved", http.MethodPut, TierWrite},
		{"/users/abc/journey", http.MethodGet, TierRead},
		{"/users/abc/projects", http.MethodGet, TierRead},
	}
	for _, tc := range cases {
		if got := Classify(tc.path, tc.method); got != tc.want {
			t.Errorf("Classify(%s %s) = %s, want %s", tc.method, tc.path, got, tc.want)
		}
	}
}

func TestLimiterActionBudgetShared(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Rules: []Rule{
			{Tier: TierAction, Limit: 10, Window: time.Hour, Burst: 3},
		},
	})
	defer limiter.Stop()

	// Different action endpoints must drain the same per-client budget.
	paths := []string{
		"/users/u1/actions/career_analysis",
		"/users/u1/actions/skill_validation",
		"/users/u1/actions/learning_plan",
	}
	for i, p := range paths {
		allowed, info := limiter.Allow("client1", p, http.MethodPost)
		if !allowed {
			t.Fatalf("Expected request %d within burst to be allowed", i+1)
		}
		if info.Limit != 10 {
			t.Errorf("Limit = %d, want 10", info.Limit)
		}
	}

	allowed, info := limiter.Allow("client1", "/users/u1/actions/job_matching", http.MethodPost)
	if allowed {
		t.Error("Expected 4th action to exceed the shared burst")
	}
	if info.RetryAfter <= 0 {
		t.Error("Expected positive RetryAfter when denied")
	}

	// A different client has its own bucket.
	if allowed, _ := limiter.Allow("client2", paths[0], http.MethodPost); !allowed {
		t.Error("Expected other client to be unaffected")
	}
}

func TestLimiterReadsUseDefault(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Hour,
		Rules:         DefaultRules(),
	})
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		if allowed, _ := limiter.Allow("c", "/users/u1/journey", http.MethodGet); !allowed {
			t.Fatalf("Expected read %d to be allowed", i+1)
		}
	}
	if allowed, _ := limiter.Allow("c", "/users/u1/resumes", http.MethodGet); allowed {
		t.Error("Expected 3rd read to exceed the default limit")
	}
}

func TestLimiterHealthUnlimited(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
	})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		if allowed, _ := limiter.Allow("c", "/health", http.MethodGet); !allowed {
			t.Fatal("Expected health check to never be limited")
		}
	}
}

func TestLimiterExemptAndBlocked(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
		Exempt:        map[string]bool{"10.0.0.1": true},
		Blocked:       map[string]bool{"10.0.0.2": true},
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		if allowed, _ := limiter.Allow("10.0.0.1", "/users/u1/journey", http.MethodGet); !allowed {
			t.Fatal("Expected exempt client to always pass")
		}
	}
	if allowed, _ := limiter.Allow("10.0.0.2", "/users/u1/journey", http.MethodGet); allowed {
		t.Error("Expected blocked client to be denied")
	}
}

func TestLimiterDisabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		if allowed, _ := limiter.Allow("c", "/users/u1/actions/career_analysis", http.MethodPost); !allowed {
			t.Fatal("Expected everything allowed when disabled")
		}
	}
}

func TestLimiterConcurrent(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Rules: []Rule{
			{Tier: TierAction, Limit: 50, Window: time.Hour, Burst: 50},
		},
	})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			path := fmt.Sprintf("/users/u%d/actions/career_analysis", n%3)
			allowed, _ := limiter.Allow("shared-client", path, http.MethodPost)
			if allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if allowedCount != 50 {
		t.Errorf("Allowed %d requests, want exactly the burst of 50", allowedCount)
	}
}

func TestNewLimiterNilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("c", "/users/u1/journey", http.MethodGet); !allowed {
		t.Error("Expected nil-config limiter to allow within defaults")
	}
}

func TestLoadConfigDisabledByEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	cfg := LoadConfig()
	if cfg.Enabled {
		t.Error("Expected RATE_LIMIT_ENABLED=false to disable limiting")
	}
}
