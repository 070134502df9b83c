package llm

import (
	"context"
	"fmt"
	"strings"
)

// NewGenerator creates a generator based on configuration
func NewGenerator(config Config) (Generator, error) {
	switch strings.ToLower(config.Provider) {
	case "ollama", "":
		return NewOllamaProvider(config)

	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "replay":
		return NewReplayProvider(config)

	default:
		return nil, fmt.Errorf("%w: %s (supported: ollama, openai, anthropic, replay)", ErrUnknownProvider, config.Provider)
	}
}

// Open creates a generator and checks it is usable before any request is made.
// Every failure here is meant to abort the run at startup.
func Open(ctx context.Context, config Config) (Generator, error) {
	gen, err := NewGenerator(config)
	if err != nil {
		return nil, err
	}

	if err := gen.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%s generator unavailable: %w", gen.Name(), err)
	}

	return gen, nil
}
