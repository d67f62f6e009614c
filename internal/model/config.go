package model

import "time"

// Config is the process-wide configuration. It is constructed once at
// startup and passed explicitly into the scorer, router and orchestrator;
// nothing reads it from ambient global state and nothing mutates it after
// initialization.
type Config struct {
	Scoring     ScoringConfig     `yaml:"scoring" mapstructure:"scoring"`
	Structuring StructuringConfig `yaml:"structuring" mapstructure:"structuring"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// ScoringConfig holds the quality scorer thresholds
type ScoringConfig struct {
	// MinAbsoluteLength is the minimum normalized rune count; shorter
	// text is rejected before any further computation
	MinAbsoluteLength int `yaml:"min_absolute_length" mapstructure:"min_absolute_length"`

	// MinTokenDensity is the minimum token-per-character ratio; the
	// primary defense against repeated-punctuation noise
	MinTokenDensity float64 `yaml:"min_token_density" mapstructure:"min_token_density"`

	// MinEntropy is the character-distribution entropy floor (bits);
	// below it the repetition penalty applies
	MinEntropy float64 `yaml:"min_entropy" mapstructure:"min_entropy"`

	// MinTokenCount is the token floor below which the sparseness
	// penalty applies
	MinTokenCount int `yaml:"min_token_count" mapstructure:"min_token_count"`

	// ConfidenceThreshold: text is valid iff confidence is strictly
	// greater than this value
	ConfidenceThreshold float64 `yaml:"confidence_threshold" mapstructure:"confidence_threshold"`
}

// StructuringConfig holds orchestrator settings
type StructuringConfig struct {
	// TierTimeout bounds each tier attempt
	TierTimeout time.Duration `yaml:"tier_timeout" mapstructure:"tier_timeout"`

	// MaxInputBytes rejects oversized raw text before any tier runs
	MaxInputBytes int `yaml:"max_input_bytes" mapstructure:"max_input_bytes"`

	// RequestsPerSecond and Burst bound outbound structuring calls
	// per provider
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// LLMConfig holds external structuring service settings
type LLMConfig struct {
	// Provider name: "openai" or "" (external tiers disabled)
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model" mapstructure:"model"`

	// APIKey for the provider; required when Provider is set
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// BaseURL for OpenAI-compatible endpoints
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// MaxTokens for response generation
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`

	// Proxy settings
	HTTPProxy  string `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// ConcurrencyConfig bounds parallel work
type ConcurrencyConfig struct {
	// RouterWorkers caps concurrent page classifications
	RouterWorkers int `yaml:"router_workers" mapstructure:"router_workers"`
}

// CacheConfig controls the structuring result cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			MinAbsoluteLength:   10,
			MinTokenDensity:     0.05,
			MinEntropy:          2.5,
			MinTokenCount:       3,
			ConfidenceThreshold: 0.5,
		},
		Structuring: StructuringConfig{
			TierTimeout:       60 * time.Second,
			MaxInputBytes:     2_000_000,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		LLM: LLMConfig{
			Provider:  "", // External tiers disabled by default
			MaxTokens: 4096,
		},
		Concurrency: ConcurrencyConfig{
			RouterWorkers: 8,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Output: OutputConfig{},
	}
}
