package webhook

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds the remote submission log settings.
type Config struct {
	// URL is the endpoint that receives one JSON object per attempt,
	// typically a Google Apps Script web app. Empty disables the webhook.
	URL string

	// Timeout bounds a single POST. Default: 8s.
	Timeout time.Duration

	Retry RetryConfig
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults and no URL.
func DefaultConfig() Config {
	return Config{
		Timeout: 8 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// Enabled reports whether a URL is configured.
func (c Config) Enabled() bool { return c.URL != "" }

// Validate checks the URL (when set) and the retry settings.
func (c Config) Validate() error {
	if c.URL != "" {
		u, err := url.Parse(c.URL)
		if err != nil {
			return fmt.Errorf("webhook url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("webhook url must be http or https, got %q", c.URL)
		}
		if u.Host == "" {
			return fmt.Errorf("webhook url has no host: %q", c.URL)
		}
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("webhook timeout must be > 0, got %s", c.Timeout)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("webhook retry attempts must be >= 1, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.Multiplier < 1 {
		return fmt.Errorf("webhook retry multiplier must be >= 1, got %v", c.Retry.Multiplier)
	}
	return nil
}
