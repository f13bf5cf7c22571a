package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable duration values.
// These values can be customized via environment variables.
type Timeouts struct {
	HTTPRequest           time.Duration // Per-request timeout for Google API calls
	PropagationWait       time.Duration // Fixed wait after project creation for IAM propagation
	VisibilityInterval    time.Duration // Interval of the project-visibility poll
	VisibilityMaxAttempts int           // Attempt cap of the project-visibility poll
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - ONBOARDER_TIMEOUT_HTTP (default: 30s)
//   - ONBOARDER_PROPAGATION_WAIT (default: 10s)
//   - ONBOARDER_VISIBILITY_INTERVAL (default: 2s)
//   - ONBOARDER_VISIBILITY_MAX_ATTEMPTS (default: 30)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		HTTPRequest:           parseDuration("ONBOARDER_TIMEOUT_HTTP", 30*time.Second),
		PropagationWait:       parseDuration("ONBOARDER_PROPAGATION_WAIT", 10*time.Second),
		VisibilityInterval:    parseDuration("ONBOARDER_VISIBILITY_INTERVAL", 2*time.Second),
		VisibilityMaxAttempts: parseInt("ONBOARDER_VISIBILITY_MAX_ATTEMPTS", 30),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
