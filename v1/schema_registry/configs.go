package schema_registry

import (
	"fmt"
	"os"
	"time"
)

// Default values for configuration
const (
	// DefaultTimeout is applied to the *http.Client built by NewClient when
	// Config.Timeout is zero.
	DefaultTimeout = 10 * time.Second

	// MediaType is sent as both Content-Type and Accept on every request.
	MediaType = "application/vnd.schemaregistry.v1+json"
)

// Environment variables read by NewConfigFromEnv.
const (
	EnvURL      = "SCHEMA_REGISTRY_URL"
	EnvUsername = "SCHEMA_REGISTRY_USERNAME"
	EnvPassword = "SCHEMA_REGISTRY_PASSWORD"
	EnvTimeout  = "SCHEMA_REGISTRY_TIMEOUT"
)

// Config holds configuration for the schema registry client.
type Config struct {
	// URL is the schema registry base URL (e.g. "http://localhost:8081").
	// Trailing slashes are ignored.
	URL string `yaml:"url" envconfig:"SCHEMA_REGISTRY_URL" required:"true"`

	// Username for basic auth. Basic auth is only sent when both Username
	// and Password are set.
	Username string `yaml:"username" envconfig:"SCHEMA_REGISTRY_USERNAME"`

	// Password for basic auth.
	Password string `yaml:"password" envconfig:"SCHEMA_REGISTRY_PASSWORD"`

	// Timeout for the default HTTP transport built by NewClient.
	// It has no effect when a custom HTTPDoer is injected.
	// Default: 10 seconds
	Timeout time.Duration `yaml:"timeout" envconfig:"SCHEMA_REGISTRY_TIMEOUT"`

	// Logger is an optional logger from the v1/logger package.
	// If provided, it will be used for debug and error logging.
	Logger Logger `yaml:"-"`
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("%w: schema registry URL is required", ErrInvalidArgument)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidArgument)
	}
	return nil
}

// hasCredentials reports whether basic auth should be sent.
func (c Config) hasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// NewConfigFromEnv builds a Config from the SCHEMA_REGISTRY_* environment
// variables. The timeout is parsed as a Go duration ("30s").
func NewConfigFromEnv() (Config, error) {
	cfg := Config{
		URL:      os.Getenv(EnvURL),
		Username: os.Getenv(EnvUsername),
		Password: os.Getenv(EnvPassword),
	}

	if raw := os.Getenv(EnvTimeout); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%w: invalid %s %q: %v", ErrInvalidArgument, EnvTimeout, raw, err)
		}
		cfg.Timeout = timeout
	}

	return cfg, cfg.Validate()
}
