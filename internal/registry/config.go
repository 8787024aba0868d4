package registry

import (
	"os"
	"strings"
)

// FallbackPolicy controls how the registry responds to fallback graph problems.
type FallbackPolicy string

const (
	// PolicyStrict fails fast on the first missing target or cycle.
	PolicyStrict FallbackPolicy = "strict"
	// PolicyGraceful disables affected interpreters and logs a warning.
	PolicyGraceful FallbackPolicy = "graceful"
)

// Config configures fallback validation.
type Config struct {
	FallbackPolicy FallbackPolicy
}

// DefaultConfig returns environment-aware defaults: strict under CI, graceful
// otherwise.
func DefaultConfig() *Config {
	if isCIEnvironment() {
		return &Config{FallbackPolicy: PolicyStrict}
	}
	return &Config{FallbackPolicy: PolicyGraceful}
}

func isCIEnvironment() bool {
	ciEnvVars := []string{
		"CI",
		"CONTINUOUS_INTEGRATION",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"JENKINS_HOME",
	}

	for _, key := range ciEnvVars {
		value := strings.TrimSpace(os.Getenv(key))
		if value != "" && strings.ToLower(value) != "false" && value != "0" {
			return true
		}
	}

	return false
}
