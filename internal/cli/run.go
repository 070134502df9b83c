package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/relcheck/internal/knowledge"
	"github.com/ppiankov/relcheck/internal/llm"
	"github.com/ppiankov/relcheck/internal/model"
	"github.com/ppiankov/relcheck/internal/pipeline"
	"github.com/ppiankov/relcheck/internal/prompt"
)

var (
	knowledgePath string
	outPath       string
	runTimeout    time.Duration
	llmProvider   string
	llmModel      string
	responseFile  string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [sentence]",
	Short: "Extract a relation from a sentence and verify it against the knowledge table",
	Long: `Run renders the extraction prompt for one sentence, asks the configured
model for a single continuation, parses the JSON object in the output and
looks the triple up in the knowledge table.

The model and the knowledge table are checked before anything is generated;
if either is unavailable the run aborts without writing a record.
The check is free for ollama (model list) and openai (model list). For
anthropic it sends a minimal 10-token completion, which is billed.

Example:
  relcheck run
  relcheck run "Metformin activates AMPK in hepatocytes."
  relcheck run --provider openai --model gpt-4o-mini --out results/metformin.json
  relcheck run --provider replay --response-file testdata/output.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Input/output flags
	runCmd.Flags().StringVarP(&knowledgePath, "knowledge", "k", "", "knowledge table (.csv, .tsv, .db) (default from config: data/biokg.csv)")
	runCmd.Flags().StringVarP(&outPath, "out", "o", "", "output JSON record path (default from config: results/demo_output.json)")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 5*time.Minute, "overall run timeout")

	// LLM flags
	runCmd.Flags().StringVar(&llmProvider, "provider", "", "LLM provider (ollama, openai, anthropic, replay)")
	runCmd.Flags().StringVar(&llmModel, "model", "", "LLM model name")
	runCmd.Flags().StringVar(&responseFile, "response-file", "", "recorded model output served by the replay provider")
}

func runRun(cmd *cobra.Command, args []string) error {
	input := model.DefaultInput
	if len(args) == 1 {
		input = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyRunFlags(cmd, cfg)

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	p, err := setup(ctx, cfg, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Input: %s\n\n", input)

	result, err := p.Run(ctx, input)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if verbose {
		_, _ = fmt.Fprintf(out, "Prompt:\n%s\n", result.Prompt)
	}
	printVerdict(out, result)

	if err := pipeline.WriteRecord(result.Record, cfg.Output.Path); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	_, _ = fmt.Fprintf(out, "\n✓ Saved result to %s\n", cfg.Output.Path)

	return nil
}

// applyRunFlags lets explicit flags override the merged configuration
func applyRunFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("knowledge") {
		cfg.Knowledge.Path = knowledgePath
	}
	if flags.Changed("out") {
		cfg.Output.Path = outPath
	}
	if flags.Changed("provider") {
		cfg.LLM.Provider = llmProvider
		applyProviderEnv(&cfg.LLM)
	}
	if flags.Changed("model") {
		cfg.LLM.Model = llmModel
	}
	if flags.Changed("response-file") {
		cfg.LLM.ResponseFile = responseFile
	}
}

// setup performs every fatal startup check before any generation happens
func setup(ctx context.Context, cfg *model.Config, log *zap.Logger) (*pipeline.Pipeline, error) {
	// 1. Knowledge table
	table, err := knowledge.Load(cfg.Knowledge.Path, cfg.Knowledge.Table)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "✓ Loaded knowledge base from %s (%d entries)\n", table.Source(), table.Len())
	log.Debug("knowledge base loaded", zap.String("path", table.Source()), zap.Int("entries", table.Len()))

	// 2. Prompt template
	builder, err := prompt.FromFile(cfg.Prompt.TemplateFile)
	if err != nil {
		return nil, err
	}

	// 3. Generator
	gen, err := llm.Open(ctx, llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "✓ Model ready: %s/%s\n", gen.Name(), displayModel(cfg.LLM))
	log.Debug("generator ready", zap.String("provider", gen.Name()), zap.String("model", cfg.LLM.Model))

	return pipeline.New(gen, builder, table, log), nil
}

func printVerdict(out io.Writer, result *pipeline.RunResult) {
	_, _ = fmt.Fprintf(out, "Model output:\n%s\n\n", result.Record.ModelOutput)
	_, _ = fmt.Fprintf(out, "Verification:\n%s\n", result.Record.Verification)
}

func displayModel(c model.LLMConfig) string {
	if c.Model == "" {
		return "default"
	}
	return c.Model
}
