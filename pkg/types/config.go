// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Default registry endpoints.
const (
	DefaultCrossrefBaseURL = "https://api.crossref.org"
	DefaultPubMedBaseURL   = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
)

// HTTPConfig holds shared HTTP settings used by components that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the transport's own
	// behaviour in place.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paperclip/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// CrossrefConfig configures the DOI resolver.
type CrossrefConfig struct {
	// BaseURL is the Crossref REST API root (default "https://api.crossref.org").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Mailto is appended to the User-Agent for Crossref's polite pool.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty" mapstructure:"mailto"`
}

// PubMedConfig configures the PMID resolver.
type PubMedConfig struct {
	// BaseURL is the E-utilities root
	// (default "https://eutils.ncbi.nlm.nih.gov/entrez/eutils").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// APIKey is an optional NCBI API key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// RateLimit is the maximum requests per second (default 3).
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit"`

	// Burst is the limiter burst size (default 3).
	Burst int `json:"burst" yaml:"burst" mapstructure:"burst"`
}

// LibraryConfig configures the submission target.
type LibraryConfig struct {
	// Endpoint is the article creation URL.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// FrontendURL is the library web UI root used to build article links.
	FrontendURL string `json:"frontend_url" yaml:"frontend_url" mapstructure:"frontend_url"`

	// Token is the bearer token. Usually loaded from .secrets/library-token.
	Token string `json:"-" yaml:"-" mapstructure:"token"`

	// SubmissionType is the default submission type.
	SubmissionType string `json:"submission_type" yaml:"submission_type" mapstructure:"submission_type"`

	// CommunityName is the default community the article is filed under.
	CommunityName string `json:"community_name,omitempty" yaml:"community_name,omitempty" mapstructure:"community_name"`
}

// BrowserConfig configures the live-page accessor.
type BrowserConfig struct {
	// RemoteURL is the DevTools WebSocket URL of a running Chrome. Empty
	// launches a local browser.
	RemoteURL string `json:"remote_url,omitempty" yaml:"remote_url,omitempty" mapstructure:"remote_url"`

	// Headless controls whether a launched browser runs headless.
	Headless bool `json:"headless" yaml:"headless" mapstructure:"headless"`

	// Stealth applies go-rod/stealth evasions to new tabs.
	Stealth bool `json:"stealth" yaml:"stealth" mapstructure:"stealth"`

	// NavigateTimeout bounds navigation and load waiting (default 30s).
	NavigateTimeout time.Duration `json:"navigate_timeout" yaml:"navigate_timeout" mapstructure:"navigate_timeout"`
}

// LogConfig configures the zerolog logger.
type LogConfig struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "console" or "json".
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// ServerConfig configures the local HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default "127.0.0.1:8765").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// Config groups all component configurations.
type Config struct {
	HTTP     HTTPConfig     `json:"http" yaml:"http" mapstructure:"http"`
	Crossref CrossrefConfig `json:"crossref" yaml:"crossref" mapstructure:"crossref"`
	PubMed   PubMedConfig   `json:"pubmed" yaml:"pubmed" mapstructure:"pubmed"`
	Library  LibraryConfig  `json:"library" yaml:"library" mapstructure:"library"`
	Browser  BrowserConfig  `json:"browser" yaml:"browser" mapstructure:"browser"`
	Log      LogConfig      `json:"log" yaml:"log" mapstructure:"log"`
	Server   ServerConfig   `json:"server" yaml:"server" mapstructure:"server"`
}

// DefaultConfig returns the configuration used when no file, flag, or
// environment variable overrides a value.
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			UserAgent: "paperclip/0.1",
		},
		Crossref: CrossrefConfig{
			BaseURL: DefaultCrossrefBaseURL,
		},
		PubMed: PubMedConfig{
			BaseURL:   DefaultPubMedBaseURL,
			RateLimit: 3,
			Burst:     3,
		},
		Library: LibraryConfig{
			Endpoint:       "http://127.0.0.1:8000/api/articles/articles/",
			FrontendURL:    "http://localhost:3000",
			SubmissionType: "article",
		},
		Browser: BrowserConfig{
			Headless:        true,
			Stealth:         true,
			NavigateTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:8765",
			ShutdownTimeout: 10 * time.Second,
		},
	}
}
