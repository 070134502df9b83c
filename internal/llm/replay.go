package llm

import (
	"context"
	"fmt"
	"os"
)

// Static is a Generator that answers every prompt with the same text.
// It stands in for a model in tests and offline runs.
type Static struct {
	Response string
	Err      error

	// Prompts records every prompt passed to Generate
	Prompts []string
}

// Name returns the provider name
func (s *Static) Name() string {
	return "static"
}

// Ping always succeeds
func (s *Static) Ping(ctx context.Context) error {
	return nil
}

// Generate returns Response, or Err when set
func (s *Static) Generate(ctx context.Context, prompt string) (string, error) {
	s.Prompts = append(s.Prompts, prompt)
	if s.Err != nil {
		return "", s.Err
	}
	return s.Response, nil
}

// ReplayProvider serves a recorded model output from a file
type ReplayProvider struct {
	Static
}

// NewReplayProvider reads config.ResponseFile once. A missing file is an error,
// the same way missing model weights would be.
func NewReplayProvider(config Config) (*ReplayProvider, error) {
	if config.ResponseFile == "" {
		return nil, fmt.Errorf("replay provider requires a response file")
	}

	data, err := os.ReadFile(config.ResponseFile)
	if err != nil {
		return nil, fmt.Errorf("read response file: %w", err)
	}

	return &ReplayProvider{
		Static: Static{Response: string(data)},
	}, nil
}

// Name returns the provider name
func (p *ReplayProvider) Name() string {
	return "replay"
}
