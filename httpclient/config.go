package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/diarscribe/resilience"
)

const defaultTimeout = 120 * time.Second

// Config configures a sidecar client.
type Config struct {
	// BaseURL is prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`
	// Timeout bounds a single attempt. Defaults to 120s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// Headers are applied to every request.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
	// Retry configures retries of transient failures.
	Retry resilience.RetryConfig `yaml:"retry" mapstructure:"retry"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	c.Retry.ApplyDefaults()
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("httpclient: base_url is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	return nil
}
