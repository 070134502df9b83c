package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/relcheck/internal/knowledge"
	"github.com/ppiankov/relcheck/internal/model"
	"github.com/ppiankov/relcheck/internal/pipeline"
)

var (
	verifyKnowledge string
	verifyInput     string
	verifyOut       string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [file|-]",
	Short: "Verify an existing model output against the knowledge table",
	Long: `Verify runs only the verification step over a raw model output read
from a file, or from stdin when the argument is "-" or omitted.
No model is loaded.

Example:
  relcheck verify output.txt
  echo '{"head":"ASPIRIN","relation":"inhibits","tail":"COX-2","evidence":"..."}' | relcheck verify -
  relcheck verify output.txt --out results/check.json --input "Aspirin inhibits COX-2."`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVarP(&verifyKnowledge, "knowledge", "k", "", "knowledge table (.csv, .tsv, .db) (default from config: data/biokg.csv)")
	verifyCmd.Flags().StringVar(&verifyInput, "input", model.DefaultInput, "input sentence stored in the record")
	verifyCmd.Flags().StringVarP(&verifyOut, "out", "o", "", "write a JSON record to this path (optional)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("knowledge") {
		cfg.Knowledge.Path = verifyKnowledge
	}

	raw, err := readOutput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	table, err := knowledge.Load(cfg.Knowledge.Path, cfg.Knowledge.Table)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Loaded knowledge base from %s (%d entries)\n", table.Source(), table.Len())
	}

	result := pipeline.New(nil, nil, table, nil).Evaluate(verifyInput, raw)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Record.Verification)

	if verifyOut != "" {
		if err := pipeline.WriteRecord(result.Record, verifyOut); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Saved result to %s\n", verifyOut)
	}

	return nil
}

// readOutput reads the raw model output from the named file or from stdin
func readOutput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read model output: %w", err)
	}
	return string(data), nil
}
