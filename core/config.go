package core

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const DefaultTokenHeader = "set-auth-token"

const defaultRequestTimeout = 30 * time.Second

type EndpointConfig struct {
	Session      string `koanf:"session" mapstructure:"session"`
	SignInSocial string `koanf:"sign_in_social" mapstructure:"sign_in_social"`
	SignOut      string `koanf:"sign_out" mapstructure:"sign_out"`
	Refresh      string `koanf:"refresh" mapstructure:"refresh"`
	RefreshToken string `koanf:"refresh_token" mapstructure:"refresh_token"`
}

type Config struct {
	BaseURL        string         `koanf:"base_url" mapstructure:"base_url"`
	TokenHeader    string         `koanf:"token_header" mapstructure:"token_header"`
	StorageKey     string         `koanf:"storage_key" mapstructure:"storage_key"`
	RequestTimeout time.Duration  `koanf:"request_timeout" mapstructure:"request_timeout"`
	Endpoints      EndpointConfig `koanf:"endpoints" mapstructure:"endpoints"`
}

func DefaultConfig() Config {
	return Config{
		TokenHeader:    DefaultTokenHeader,
		StorageKey:     "auth_client.session_token",
		RequestTimeout: defaultRequestTimeout,
		Endpoints: EndpointConfig{
			Session:      "/session",
			SignInSocial: "/sign-in/social",
			SignOut:      "/sign-out",
			Refresh:      "/refresh",
			RefreshToken: "/refresh-token",
		},
	}
}

func (c Config) Validate() error {
	base := strings.TrimSpace(c.BaseURL)
	if base == "" {
		return fmt.Errorf("core: base_url is required")
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("core: base_url is malformed: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("core: base_url scheme %q is not supported", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("core: base_url host is required")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("core: request_timeout must not be negative")
	}
	return nil
}

// EndpointURL joins the configured base with one endpoint path. Exact path
// prefixes are backend configuration, not part of the client contract.
func (c Config) EndpointURL(path string) string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

func (c Config) resolvedTokenHeader() string {
	header := strings.TrimSpace(c.TokenHeader)
	if header == "" {
		return DefaultTokenHeader
	}
	return header
}

func (c Config) resolvedTimeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return defaultRequestTimeout
	}
	return c.RequestTimeout
}
