// Package ratelimit bounds request rates per client. Requests are grouped
// into tiers by what they cost: generation actions spend LLM quota and get
// the tightest budget, other writes a moderate one, and reads ride the
// default limit. Each (client, tier) pair draws from its own token bucket,
// so a client hammering one action endpoint also exhausts its budget for
// the rest.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket. take refills from elapsed time and consumes one
// token when available, reporting the remainder and the instant the bucket
// is full again.
type bucket struct {
	mu       sync.Mutex
	capacity float64
	rate     float64 // tokens per second
	tokens   float64
	last     time.Time
}

func newBucket(capacity int, rate float64) *bucket {
	return &bucket{
		capacity: float64(capacity),
		rate:     rate,
		tokens:   float64(capacity),
		last:     time.Now(),
	}
}

func (b *bucket) take() (allowed bool, remaining int, reset time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens = min(b.capacity, b.tokens+now.Sub(b.last).Seconds()*b.rate)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		allowed = true
	}

	reset = now
	if b.tokens < b.capacity {
		reset = now.Add(time.Duration((b.capacity - b.tokens) / b.rate * float64(time.Second)))
	}
	return allowed, int(b.tokens), reset
}

// Info describes the outcome of a rate limit check; the server copies it
// into the X-RateLimit response headers.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter hands out tokens per (client, tier) pair and sweeps idle buckets
// so one-off clients do not accumulate forever.
type Limiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	lastSeen map[string]time.Time
	config   *Config
	sweeper  *time.Ticker
	done     chan struct{}
}

// NewLimiter creates a limiter from config. A nil config falls back to
// permissive defaults with limiting enabled.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:       true,
			DefaultLimit:  1000,
			DefaultWindow: time.Minute,
			SweepInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		buckets:  make(map[string]*bucket),
		lastSeen: make(map[string]time.Time),
		config:   config,
	}
	if config.Enabled && config.SweepInterval > 0 {
		l.sweeper = time.NewTicker(config.SweepInterval)
		l.done = make(chan struct{})
		go l.sweep()
	}
	return l
}

// Allow reports whether one request from clientID to path may proceed.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Exempt[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blocked[clientID] {
		return false, Info{}
	}

	rule := l.config.rule(Classify(path, method))
	if rule.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	allowed, remaining, reset := l.bucketFor(clientID+"|"+rule.Tier, rule).take()

	info := Info{
		Allowed:   allowed,
		Limit:     rule.Limit,
		Remaining: remaining,
		ResetTime: reset,
	}
	if !allowed {
		if retry := time.Until(reset); retry > 0 {
			info.RetryAfter = retry
		}
	}
	return allowed, info
}

func (l *Limiter) bucketFor(key string, rule Rule) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lastSeen[key] = time.Now()
	if b, ok := l.buckets[key]; ok {
		return b
	}

	burst := rule.Burst
	if burst <= 0 {
		burst = rule.Limit
	}
	b := newBucket(burst, float64(rule.Limit)/rule.Window.Seconds())
	l.buckets[key] = b
	return b
}

// sweep drops buckets idle for over an hour.
func (l *Limiter) sweep() {
	for {
		select {
		case <-l.sweeper.C:
			cutoff := time.Now().Add(-time.Hour)
			l.mu.Lock()
			for key, seen := range l.lastSeen {
				if seen.Before(cutoff) {
					delete(l.buckets, key)
					delete(l.lastSeen, key)
				}
			}
			l.mu.Unlock()
		case <-l.done:
			return
		}
	}
}

// Stop terminates the sweep goroutine.
func (l *Limiter) Stop() {
	if l.sweeper != nil {
		l.sweeper.Stop()
	}
	if l.done != nil {
		close(l.done)
	}
}
