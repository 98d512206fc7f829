package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{
			Enabled: false,
		}
	}

	defaultLimit := getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000)
	defaultWindow := getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute)
	cleanupInterval := getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute)

	whitelist := parseIPList(getEnvString("RATE_LIMIT_WHITELIST", ""))
	blacklist := parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", ""))

	return &Config{
		Enabled:         enabled,
		DefaultLimit:    defaultLimit,
		DefaultWindow:   defaultWindow,
		CleanupInterval: cleanupInterval,
		Whitelist:       whitelist,
		Blacklist:       blacklist,
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
// The generation limits can be tuned with RATE_LIMIT_GENERATE_LIMIT and
// RATE_LIMIT_GENERATE_WINDOW.
func DefaultEndpointConfigs() []EndpointConfig {
	generateLimit := getEnvInt("RATE_LIMIT_GENERATE_LIMIT", 30)
	generateWindow := getEnvDuration("RATE_LIMIT_GENERATE_WINDOW", time.Minute)
	generateBurst := max(1, generateLimit/6)

	return []EndpointConfig{
		// Tier 1: LLM calls and headless browser (strictest limits)
		{Path: "/api/generate-*", Method: "POST", Limit: generateLimit, Window: generateWindow, Burst: generateBurst},
		{Path: "/api/autofill/stream", Method: "POST", Limit: 5, Window: time.Minute, Burst: 1},
		{Path: "/export.pdf", Method: "GET", Limit: 10, Window: time.Minute, Burst: 2},

		// Tier 2: Writes (moderate limits)
		{Path: "/api/resume", Method: "PUT", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/api/resume/save", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/share", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},

		// Tier 3: Reads use the default limit
		// Tier 4: Health check and template catalogue are unlimited (see matcher)
	}
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	if list == "" {
		return result
	}

	ips := strings.Split(list, ",")
	for _, ip := range ips {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}

	return result
}

