package ratelimit

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Request tiers, ordered by cost.
const (
	TierHealth = "health"
	TierAction = "action"
	TierWrite  = "write"
	TierRead   = "read"
)

// Rule bounds one tier of requests. A Limit of zero or less means
// unlimited.
type Rule struct {
	Tier   string
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled       bool
	DefaultLimit  int
	DefaultWindow time.Duration
	SweepInterval time.Duration
	Exempt        map[string]bool
	Blocked       map[string]bool
	Rules         []Rule
}

// Classify assigns a request to a tier. Generation actions are the POSTs
// under an /actions/ segment; everything else that mutates is a write.
func Classify(path, method string) string {
	switch {
	case path == "/health":
		return TierHealth
	case method == http.MethodPost && strings.Contains(path, "/actions/"):
		return TierAction
	case method == http.MethodPost || method == http.MethodPut || method == http.MethodDelete:
		return TierWrite
	default:
		return TierRead
	}
}

// rule resolves a tier to its configured budget, falling back to the
// default limit. Health stays unlimited unless a rule says otherwise.
func (c *Config) rule(tier string) Rule {
	for _, r := range c.Rules {
		if r.Tier == tier {
			return r
		}
	}
	if tier == TierHealth {
		return Rule{Tier: tier}
	}
	return Rule{Tier: tier, Limit: c.DefaultLimit, Window: c.DefaultWindow}
}

// DefaultRules returns the standard per-tier budgets.
func DefaultRules() []Rule {
	return []Rule{
		// Every action run spends LLM quota, so the budget is small and
		// shared across all nine actions.
		{Tier: TierAction, Limit: 30, Window: time.Hour, Burst: 5},
		{Tier: TierWrite, Limit: 100, Window: time.Minute, Burst: 10},
	}
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:       true,
		DefaultLimit:  getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow: getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		SweepInterval: getEnvDuration("RATE_LIMIT_SWEEP_INTERVAL", 5*time.Minute),
		Exempt:        parseIPList(os.Getenv("RATE_LIMIT_EXEMPT")),
		Blocked:       parseIPList(os.Getenv("RATE_LIMIT_BLOCKED")),
		Rules:         DefaultRules(),
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
