// Package config loads client settings from the environment and an
// optional config file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tanaos/synthex-go"
)

// EnvPrefix prefixes every environment variable read by [Load].
const EnvPrefix = "SYNTHEX"

// Config holds the values needed to build a [synthex.Client].
type Config struct {
	// API key sent with every request (SYNTHEX_API_KEY). Required.
	APIKey string

	// API base URL (SYNTHEX_BASE_URL).
	BaseURL string

	// "bearer" or "api-key" (SYNTHEX_AUTH_SCHEME).
	AuthScheme string

	// Timeout of buffered requests (SYNTHEX_TIMEOUT).
	Timeout time.Duration

	// Deadline of job streams, 0 for none (SYNTHEX_STREAM_TIMEOUT).
	StreamTimeout time.Duration
}

// Load reads configuration from environment variables and, when path is
// not empty, from the file at path. YAML, JSON, TOML and dotenv files are
// accepted. Overrides win over environment variables, which win over
// file values. Override keys are api_key, base_url, auth_scheme, timeout
// and stream_timeout.
func Load(path string, overrides map[string]any) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", synthex.DefaultBaseURL)
	v.SetDefault("auth_scheme", "bearer")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("stream_timeout", time.Duration(0))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, configError(fmt.Sprintf("failed to read config file %s", path), err)
		}
	}

	for k, val := range overrides {
		v.Set(k, val)
	}

	cfg := &Config{
		APIKey:        v.GetString("api_key"),
		BaseURL:       v.GetString("base_url"),
		AuthScheme:    strings.ToLower(v.GetString("auth_scheme")),
		Timeout:       v.GetDuration("timeout"),
		StreamTimeout: v.GetDuration("stream_timeout"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required settings are present and well formed.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return configError(EnvPrefix+"_API_KEY is required", nil)
	}
	if _, err := c.scheme(); err != nil {
		return err
	}
	if c.Timeout < 0 || c.StreamTimeout < 0 {
		return configError("timeouts must not be negative", nil)
	}
	return nil
}

func (c *Config) scheme() (synthex.AuthScheme, error) {
	switch c.AuthScheme {
	case "", "bearer":
		return synthex.AuthBearer, nil
	case "api-key", "apikey", "x-api-key":
		return synthex.AuthAPIKey, nil
	}
	return 0, configError(fmt.Sprintf("unknown auth scheme %q", c.AuthScheme), nil)
}

// Options converts c into client options.
func (c *Config) Options() []synthex.Option {
	scheme, _ := c.scheme()
	opts := []synthex.Option{
		synthex.WithAuthScheme(scheme),
		synthex.WithTimeout(c.Timeout),
		synthex.WithStreamTimeout(c.StreamTimeout),
	}
	if c.BaseURL != "" {
		opts = append(opts, synthex.WithBaseURL(c.BaseURL))
	}
	return opts
}

// NewClient builds a client from c. Extra options are applied last.
func (c *Config) NewClient(extra ...synthex.Option) (*synthex.Client, error) {
	return synthex.NewClient(c.APIKey, append(c.Options(), extra...)...)
}

func configError(msg string, cause error) error {
	return &synthex.Error{Kind: synthex.KindConfiguration, Message: msg, Cause: cause}
}
