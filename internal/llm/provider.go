package llm

import (
	"context"
	"errors"

	"github.com/ppiankov/relcheck/internal/model"
)

var (
	// ErrUnknownProvider is returned by NewGenerator for unsupported provider names
	ErrUnknownProvider = errors.New("unknown LLM provider")

	// ErrMissingAPIKey is returned when a hosted provider has no API key configured
	ErrMissingAPIKey = errors.New("API key is required")
)

// Generator turns a prompt into a text continuation.
// Implementations make exactly one upstream call per Generate: no retries, no caching.
type Generator interface {
	// Name returns the provider name
	Name() string

	// Generate returns the model's continuation of prompt
	Generate(ctx context.Context, prompt string) (string, error)

	// Ping checks that the backend is reachable and the model can be used
	Ping(ctx context.Context) error
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "ollama", "openai", "anthropic", "replay"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, OpenAI-compatible servers)
	BaseURL string

	// Timeout for a single API request
	Timeout int // seconds

	// MaxTokens bounds the continuation length
	MaxTokens int

	// Temperature is the fixed sampling temperature
	Temperature float32

	// Stop lists end-of-sequence markers that terminate generation
	Stop []string

	// ResponseFile is the canned output served by the replay provider
	ResponseFile string

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns the decoding defaults used for relation extraction
func DefaultConfig() Config {
	return Config{
		Provider:    "ollama",
		Timeout:     60,
		MaxTokens:   256,
		Temperature: 0.3,
		Stop:        []string{"</s>"},
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(c model.LLMConfig) Config {
	return Config{
		Provider:     c.Provider,
		Model:        c.Model,
		APIKey:       c.APIKey,
		BaseURL:      c.BaseURL,
		Timeout:      c.Timeout,
		MaxTokens:    c.MaxTokens,
		Temperature:  c.Temperature,
		Stop:         c.Stop,
		ResponseFile: c.ResponseFile,
		HTTPProxy:    c.HTTPProxy,
		HTTPSProxy:   c.HTTPSProxy,
		NoProxy:      c.NoProxy,
	}
}

func (c Config) maxTokens() int {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return 256
}
