package sdk

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultEndpoint is the provider's public REST endpoint.
const DefaultEndpoint = "https://api.softlayer.com/rest/v3.1"

// RequestObserver is called once per completed HTTP attempt. status is zero
// when the attempt failed before a response arrived.
type RequestObserver func(method, operation string, status int, duration time.Duration)

// ClientConfig contains the configuration for creating a new SDK client.
type ClientConfig struct {
	// Endpoint is the REST API base URL (e.g., "https://api.softlayer.com/rest/v3.1").
	// Default: DefaultEndpoint
	Endpoint string

	// Username is the API user name.
	Username string

	// APIKey is the API key paired with Username.
	APIKey string

	// HTTPClient is the HTTP client to use for requests.
	// Optional: if nil, a default client with Timeout will be created.
	HTTPClient *http.Client

	// Timeout is the HTTP request timeout.
	// Default: 60 seconds
	Timeout time.Duration

	// RetryAttempts is the number of times a failed read is retried.
	// Mutations are never retried.
	// Default: 0 (no retries)
	RetryAttempts int

	// RetryWaitMin is the minimum wait time between retries.
	// Default: 1 second
	RetryWaitMin time.Duration

	// RetryWaitMax is the maximum wait time between retries.
	// Default: 30 seconds
	RetryWaitMax time.Duration

	// RequestsPerSecond caps the request rate. Zero disables the limiter.
	RequestsPerSecond float64

	// Burst is the limiter burst size.
	// Default: 1 when RequestsPerSecond is set
	Burst int

	// Logger receives one debug entry per request.
	// Optional: defaults to a no-op logger.
	Logger *zap.Logger

	// Observer is notified of every request attempt. Optional.
	Observer RequestObserver
}

// Validate checks if the client configuration is valid and sets defaults.
func (c *ClientConfig) Validate() error {
	c.Endpoint = strings.TrimSuffix(strings.TrimSpace(c.Endpoint), "/")
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}

	if !strings.HasPrefix(c.Endpoint, "http://") && !strings.HasPrefix(c.Endpoint, "https://") {
		return fmt.Errorf("%w: endpoint must start with http:// or https://", ErrInvalidConfig)
	}

	if strings.TrimSpace(c.Username) == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidConfig)
	}

	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: api key is required", ErrInvalidConfig)
	}

	if c.RetryAttempts < 0 {
		return fmt.Errorf("%w: retry attempts cannot be negative", ErrInvalidConfig)
	}

	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: requests per second cannot be negative", ErrInvalidConfig)
	}

	if c.RetryWaitMin == 0 {
		c.RetryWaitMin = 1 * time.Second
	}
	if c.RetryWaitMax == 0 {
		c.RetryWaitMax = 30 * time.Second
	}
	if c.RetryWaitMax < c.RetryWaitMin {
		return fmt.Errorf("%w: retry wait max must not be less than retry wait min", ErrInvalidConfig)
	}

	if c.Timeout == 0 {
		c.Timeout = 60 * time.Second
	}

	if c.RequestsPerSecond > 0 && c.Burst <= 0 {
		c.Burst = 1
	}

	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{
			Timeout: c.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}

	return nil
}
