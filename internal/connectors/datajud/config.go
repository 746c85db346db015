package datajud

import "time"

// Default configuration values.
const (
	// DefaultBaseURL is the public query API endpoint.
	DefaultBaseURL = "https://api-publica.datajud.cnj.jus.br"

	// DefaultTimeout is the per-request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultPageSize is the page size used when the caller does not
	// pick one.
	DefaultPageSize = 100

	// ProactiveRate is the proactive throttle (~2 req/sec). The API
	// publishes no hard limit; pacing below scrutiny thresholds keeps
	// the key out of trouble.
	ProactiveRate = 2.0
)

// Config holds configuration for the official API connector.
type Config struct {
	// BaseURL is the API base URL (default: the public endpoint).
	BaseURL string

	// APIKey is the issued access key, sent as an Authorization header.
	APIKey string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond caps outgoing requests (default: 2/s).
	RequestsPerSecond float64
}

// withDefaults fills the zero fields.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = ProactiveRate
	}
	return c
}
