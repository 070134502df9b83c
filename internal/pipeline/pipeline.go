package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ppiankov/relcheck/internal/knowledge"
	"github.com/ppiankov/relcheck/internal/llm"
	"github.com/ppiankov/relcheck/internal/model"
	"github.com/ppiankov/relcheck/internal/prompt"
	"github.com/ppiankov/relcheck/internal/verify"
)

// Pipeline runs one sentence through prompt, generation and verification
type Pipeline struct {
	generator llm.Generator
	builder   *prompt.Builder
	knowledge *knowledge.Table
	logger    *zap.Logger
}

// New creates a pipeline. A nil builder uses the default prompt and a nil
// logger discards log output.
func New(generator llm.Generator, builder *prompt.Builder, kb *knowledge.Table, logger *zap.Logger) *Pipeline {
	if builder == nil {
		builder = prompt.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pipeline{
		generator: generator,
		builder:   builder,
		knowledge: kb,
		logger:    logger,
	}
}

// RunResult contains everything one run produced
type RunResult struct {
	RunID   string
	Prompt  string
	Verdict verify.Result
	Record  *model.RunRecord
}

// Run processes a single input sentence. A generation failure aborts the run
// and no record is produced.
func (p *Pipeline) Run(ctx context.Context, input string) (*RunResult, error) {
	runID := uuid.NewString()
	log := p.logger.With(zap.String("run_id", runID))

	// 1. Build prompt
	promptText, err := p.builder.Build(input)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}
	log.Debug("prompt rendered", zap.Int("chars", len(promptText)))

	// 2. Generate
	start := time.Now()
	output, err := p.generator.Generate(ctx, promptText)
	if err != nil {
		log.Error("generation failed", zap.String("provider", p.generator.Name()), zap.Error(err))
		return nil, fmt.Errorf("generate: %w", err)
	}
	log.Info("generation complete",
		zap.String("provider", p.generator.Name()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("output_chars", len(output)),
	)

	// 3. Verify and 4. assemble the record
	result := p.Evaluate(input, output)
	result.RunID = runID
	result.Prompt = promptText

	log.Info("verification complete", zap.Stringer("status", result.Verdict.Status))
	return result, nil
}

// Evaluate verifies an already generated output against the knowledge table
func (p *Pipeline) Evaluate(input, rawOutput string) *RunResult {
	var rows []model.KnowledgeRow
	if p.knowledge != nil {
		rows = p.knowledge.Rows()
	}

	verdict := verify.Verify(rawOutput, rows)

	return &RunResult{
		Verdict: verdict,
		Record: &model.RunRecord{
			Input:        input,
			ModelOutput:  rawOutput,
			Verification: verify.Render(verdict),
		},
	}
}
