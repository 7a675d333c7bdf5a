// Package config loads vlantrunk credentials and client settings.
//
// Values come from, in increasing precedence, a YAML or TOML config file,
// the environment, and command-line flags (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/yaroslav/vlantrunk/sdk"
)

// Defaults applied by Validate.
const (
	DefaultTimeout           = 60 * time.Second
	DefaultRequestsPerSecond = 10
)

// Environment variables read by ApplyEnv.
const (
	EnvUsername = "SL_USERNAME"
	EnvAPIKey   = "SL_API_KEY"
	EnvEndpoint = "SL_ENDPOINT"
	EnvTimeout  = "VLANTRUNK_TIMEOUT"
)

var (
	// ErrInvalidConfig indicates a missing or malformed setting.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedFormat indicates a config file whose extension is not YAML or TOML.
	ErrUnsupportedFormat = errors.New("unsupported config file format")
)

// Duration is a time.Duration written as a Go duration string ("30s", "2m").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for YAML and TOML.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config holds everything needed to build an API client.
type Config struct {
	// Username is the API user name.
	Username string `yaml:"username" toml:"username"`

	// APIKey is the API key paired with Username.
	APIKey string `yaml:"api_key" toml:"api_key"`

	// Endpoint is the REST API base URL.
	Endpoint string `yaml:"endpoint" toml:"endpoint"`

	// Timeout bounds every command, including all of its API calls.
	Timeout Duration `yaml:"timeout" toml:"timeout"`

	// RetryAttempts is the number of retries for failed reads.
	RetryAttempts int `yaml:"retry_attempts" toml:"retry_attempts"`

	// RequestsPerSecond caps the client request rate. Nil means
	// DefaultRequestsPerSecond; an explicit 0 disables the limiter.
	RequestsPerSecond *float64 `yaml:"requests_per_second" toml:"requests_per_second"`

	// Path is the file the config was read from, empty when none was found.
	Path string `yaml:"-" toml:"-"`
}

// SearchPaths returns the default config file locations in lookup order.
func SearchPaths() []string {
	paths := []string{"vlantrunk.yaml"}

	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "vlantrunk", "config.yaml"))
	}

	return append(paths, filepath.Join("/etc", "vlantrunk", "config.yaml"))
}

// Load reads the config file at path, or the first existing default location
// when path is empty, then applies environment overrides. A missing default
// file is not an error; a missing explicit file is.
//
// The result is not validated so flags can still be applied.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	} else {
		for _, candidate := range SearchPaths() {
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if err := cfg.LoadFile(candidate); err != nil {
				return nil, err
			}
			break
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile decodes a YAML (.yaml, .yml) or TOML (.toml) file into c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".toml":
		_, err = toml.Decode(string(data), c)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.Path = path
	return nil
}

// ApplyEnv overrides fields from the environment. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvUsername); ok && v != "" {
		c.Username = v
	}
	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		c.APIKey = v
	}
	if v, ok := lookup(EnvEndpoint); ok && v != "" {
		c.Endpoint = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		if err := c.Timeout.UnmarshalText([]byte(v)); err != nil {
			// Bare integers are read as seconds.
			secs, convErr := strconv.Atoi(v)
			if convErr != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvTimeout, err)
			}
			c.Timeout.Duration = time.Duration(secs) * time.Second
		}
	}
	return nil
}

// Validate applies defaults and checks the result.
func (c *Config) Validate() error {
	c.Username = strings.TrimSpace(c.Username)
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.Endpoint = strings.TrimSpace(c.Endpoint)

	if c.Endpoint == "" {
		c.Endpoint = sdk.DefaultEndpoint
	}
	if c.Timeout.Duration == 0 {
		c.Timeout.Duration = DefaultTimeout
	}
	if c.RequestsPerSecond == nil {
		rps := float64(DefaultRequestsPerSecond)
		c.RequestsPerSecond = &rps
	}

	if c.Username == "" {
		return fmt.Errorf("%w: username is required (set %s, --username or username in the config file)", ErrInvalidConfig, EnvUsername)
	}
	if c.APIKey == "" {
		return fmt.Errorf("%w: api key is required (set %s, --api-key or api_key in the config file)", ErrInvalidConfig, EnvAPIKey)
	}
	if !strings.HasPrefix(c.Endpoint, "http://") && !strings.HasPrefix(c.Endpoint, "https://") {
		return fmt.Errorf("%w: endpoint %q must start with http:// or https://", ErrInvalidConfig, c.Endpoint)
	}
	if c.Timeout.Duration < 0 {
		return fmt.Errorf("%w: timeout cannot be negative", ErrInvalidConfig)
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("%w: retry_attempts cannot be negative", ErrInvalidConfig)
	}
	if *c.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: requests_per_second cannot be negative", ErrInvalidConfig)
	}

	return nil
}

// ToClientConfig builds the SDK configuration. Call Validate first; it
// guarantees RequestsPerSecond is set.
func (c *Config) ToClientConfig(logger *zap.Logger, observer sdk.RequestObserver) sdk.ClientConfig {
	return sdk.ClientConfig{
		Endpoint:          c.Endpoint,
		Username:          c.Username,
		APIKey:            c.APIKey,
		Timeout:           c.Timeout.Duration,
		RetryAttempts:     c.RetryAttempts,
		RequestsPerSecond: *c.RequestsPerSecond,
		Logger:            logger,
		Observer:          observer,
	}
}
