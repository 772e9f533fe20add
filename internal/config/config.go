// Package config loads the process-wide configuration of the DeepPath MCP adapter.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/deeppath/deeppath-mcp/internal"
	"github.com/joeshaw/envdecode"
)

const (
	APIKeyEnvVar  = "DEEPPATH_API_KEY"
	BaseURLEnvVar = "DEEPPATH_BASE_URL"

	// BaseURLDefault points at a local DeepPath development server.
	BaseURLDefault = "http://localhost:3000"
)

// ErrMissingAPIKey is returned when no API key can be found in the environment.
var ErrMissingAPIKey = fmt.Errorf("%s environment variable is required", APIKeyEnvVar)

// Config is read once at startup and never mutated afterwards.
type Config struct {
	APIKey  string `env:"DEEPPATH_API_KEY"`
	BaseURL string `env:"DEEPPATH_BASE_URL,default=http://localhost:3000"`

	// StrictArgs enables local validation of tool arguments against the registry schemas
	// before anything is forwarded to the DeepPath API.
	StrictArgs bool `env:"DEEPPATH_STRICT_ARGS,default=false"`

	LogLevel string `env:"LOG_LEVEL,default=info"`

	TelemetryEnabled bool   `env:"OTEL_ENABLED,default=false"`
	MetricsPort      string `env:"METRICS_PORT"`
}

// Load decodes the configuration from environment variables and validates it.
// A missing API key is reported as ErrMissingAPIKey.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to decode configuration from environment: %w", err)
	}
	if cfg.BaseURL == "" {
		// envdecode skips defaults when none of the fields were set
		cfg.BaseURL = BaseURLDefault
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.APIKey == "" {
		key, err := LookupAPIKey()
		if err != nil {
			return nil, err
		}
		cfg.APIKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and normalizes the base URL.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	// a short key is left for the DeepPath API to reject, see Warnings
	if err := internal.ValidateAPIKey(c.APIKey); err != nil && !errors.Is(err, internal.ErrAPIKeyTooShort) {
		return fmt.Errorf("invalid value for %s: %w", APIKeyEnvVar, err)
	}

	baseURL, err := NormalizeBaseURL(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", BaseURLEnvVar, err)
	}
	c.BaseURL = baseURL
	return nil
}

// Warnings returns problems with the configuration that do not prevent startup.
func (c *Config) Warnings() []string {
	var warnings []string
	if errors.Is(internal.ValidateAPIKey(c.APIKey), internal.ErrAPIKeyTooShort) {
		warnings = append(warnings, fmt.Sprintf(
			"%s is shorter than 8 characters, the DeepPath API will likely reject it", APIKeyEnvVar,
		))
	}
	return warnings
}

// LookupAPIKey returns the API key from DEEPPATH_API_KEY, falling back to the file named by
// DEEPPATH_API_KEY_FILE. An empty string means neither is set.
func LookupAPIKey() (string, error) {
	return getEnvOrFile(APIKeyEnvVar)
}

// NormalizeBaseURL trims whitespace and trailing slashes and checks that the URL is an absolute http(s) URL.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return "", errors.New("base URL must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("'%s' is not a valid URL: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("'%s' must use the http or https scheme", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("'%s' must contain a host", raw)
	}
	return raw, nil
}

// getEnvOrFile returns the value of the given environment variable.
// If the environment variable is not set, it checks for a corresponding
// _FILE environment variable and reads the value from the file if it exists.
// If neither is set, it returns an empty string.
// If both are set, the value of the original environment variable takes precedence.
func getEnvOrFile(envVar string) (string, error) {
	val := os.Getenv(envVar)
	if val != "" {
		return val, nil
	}

	fileEnvVar := envVar + "_FILE"
	filePath := os.Getenv(fileEnvVar)
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", fileEnvVar, err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	return "", nil
}
