package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/relcheck/internal/llm"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [text]",
	Short: "Generate a raw continuation (model smoke test)",
	Long: `Send text to the configured model without any template and print the
continuation. Nothing is verified or written. As with run, the anthropic
startup check sends a minimal billed completion.

Example:
  relcheck generate "Aspirin is used to treat"
  relcheck generate --provider ollama --model meditron "Metformin is"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := "Aspirin is used to treat"
		if len(args) == 1 {
			text = args[0]
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyRunFlags(cmd, cfg)

		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		gen, err := llm.Open(ctx, llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Model ready: %s/%s\n", gen.Name(), displayModel(cfg.LLM))

		output, err := gen.Generate(ctx, text)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", text, output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().DurationVar(&runTimeout, "timeout", 5*time.Minute, "generation timeout")
	generateCmd.Flags().StringVar(&llmProvider, "provider", "", "LLM provider (ollama, openai, anthropic, replay)")
	generateCmd.Flags().StringVar(&llmModel, "model", "", "LLM model name")
	generateCmd.Flags().StringVar(&responseFile, "response-file", "", "recorded model output served by the replay provider")
}
