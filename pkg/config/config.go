// Package config loads proxy configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Defaults used when the corresponding environment variable is unset.
const (
	DefaultUpstreamURL = "https://api.hyperliquid.xyz"
	DefaultPort        = 18731
)

// Config holds the proxy runtime configuration.
type Config struct {
	// UpstreamURL is the base URL of the real exchange API.
	UpstreamURL string

	// Port is the local listening port.
	Port int

	// Warmup enables pre-fetching heavy metadata at startup.
	Warmup bool

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string

	// LogPretty enables human-readable console logs instead of JSON.
	LogPretty bool
}

// FromEnv reads configuration from environment variables, falling back to
// defaults for anything unset or unparsable.
//
//	HL_UPSTREAM_URL  - Upstream API (default: https://api.hyperliquid.xyz)
//	HL_PROXY_PORT    - Proxy port (default: 18731)
//	HL_CACHE_WARMUP  - Pre-warm cache on startup (default: true)
//	LOG_LEVEL        - Minimum log level (default: info)
//	LOG_PRETTY       - Console log output (default: false)
func FromEnv() Config {
	return Config{
		UpstreamURL: getEnv("HL_UPSTREAM_URL", DefaultUpstreamURL),
		Port:        getEnvInt("HL_PROXY_PORT", DefaultPort),
		Warmup:      getEnvBool("HL_CACHE_WARMUP", true),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogPretty:   getEnvBool("LOG_PRETTY", false),
	}
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return strings.ToLower(value) == "true"
}
