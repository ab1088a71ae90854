package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "prospect-engine/0.1"). Per prd002-websearch R5.4.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the web search gateway.
// Per prd002-websearch R1.3, R2.1-R2.4, R5.1-R5.4.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Provider selects the search provider. Only "tavily" is supported.
	Provider string `json:"provider" yaml:"provider" mapstructure:"provider"`

	// APIKey is the authentication key for the search provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// MaxResults is the default number of results per query (default 5).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// MaxRetries is the number of attempts for a failed provider call (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// CacheCapacity is the maximum number of cached query results (default 100).
	CacheCapacity int `json:"cache_capacity" yaml:"cache_capacity" mapstructure:"cache_capacity"`

	// CacheTTL is how long a cached query result stays valid (default 1h).
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// AIConfig holds settings for components that call a text-generation API.
type AIConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Provider selects the generation API: "openrouter" (default) or "gemini".
	Provider string `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Model is the model identifier (e.g. "meta-llama/llama-3.3-8b-instruct:free").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key for the generation API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// MaxRetries is the number of attempts for a failed API call (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// ReportConfig holds settings for the report store.
// Per prd004-report-store R1.2, R2.1.
type ReportConfig struct {
	// DataDir is the directory holding the report database (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`

	// Freshness is how long a stored report short-circuits a new research
	// run for the same company and industry (default 24h).
	Freshness time.Duration `json:"freshness" yaml:"freshness" mapstructure:"freshness"`
}

// Config groups all component configurations for the research pipeline.
type Config struct {
	// SecretsDir is the directory of API key files (default ".secrets").
	SecretsDir string `json:"secrets_dir" yaml:"secrets_dir" mapstructure:"secrets_dir"`

	Search SearchConfig `json:"search" yaml:"search" mapstructure:"search"`
	AI     AIConfig     `json:"ai" yaml:"ai" mapstructure:"ai"`
	Report ReportConfig `json:"report" yaml:"report" mapstructure:"report"`
}
