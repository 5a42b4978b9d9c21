// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that call upstream APIs.
type HTTPConfig struct {
	// Timeout bounds each upstream call. A provider that exceeds it is
	// treated as failed; there is no retry.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with upstream requests
	// (e.g. "courses-api/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the course search layer. It is built once
// at startup and shared read-only across concurrent provider calls.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// DefaultItems is the per-provider result count when the caller does
	// not pass num_items (default 6).
	DefaultItems int `json:"default_items" yaml:"default_items"`

	// MaxItems caps num_items at the API surface (default 50). Individual
	// providers additionally clamp to their own platform maxima.
	MaxItems int `json:"max_items" yaml:"max_items"`

	// YouTubeAPIKey is the YouTube Data API v3 credential. When empty the
	// YouTube provider degrades to redirect-only results; it is never a
	// startup error.
	YouTubeAPIKey string `json:"youtube_api_key,omitempty" yaml:"youtube_api_key,omitempty"`
}

// ServerConfig holds settings for the HTTP server.
type ServerConfig struct {
	// Host is the bind address (default "0.0.0.0").
	Host string `json:"host" yaml:"host"`

	// Port is the listen port (default 8000).
	Port int `json:"port" yaml:"port"`

	// ReadTimeout and WriteTimeout apply to the whole request/response
	// cycle. WriteTimeout must exceed the search timeout or slow providers
	// would truncate otherwise valid degraded responses.
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
}
