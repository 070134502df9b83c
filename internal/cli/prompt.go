package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/relcheck/internal/model"
	"github.com/ppiankov/relcheck/internal/prompt"
)

// promptCmd represents the prompt command
var promptCmd = &cobra.Command{
	Use:   "prompt [sentence]",
	Short: "Print the extraction prompt for a sentence",
	Long: `Render the extraction prompt exactly as it would be sent to the model.
Uses prompt.template_file from the configuration when set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := model.DefaultInput
		if len(args) == 1 {
			input = args[0]
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		builder, err := prompt.FromFile(cfg.Prompt.TemplateFile)
		if err != nil {
			return err
		}

		text, err := builder.Build(input)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)
}
