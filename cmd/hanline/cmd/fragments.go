package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hanline/hanline/internal/reconstruct"
	"github.com/spf13/cobra"
)

// fragmentInput is the JSON document accepted by the fragments command. It
// matches the /v1/reconstruct request body.
type fragmentInput struct {
	Fragments []reconstruct.TextFragment `json:"fragments"`
	FullText  string                     `json:"full_text,omitempty"`
}

// fragmentsCmd represents the fragments command.
var fragmentsCmd = &cobra.Command{
	Use:   "fragments [file]",
	Short: "Reconstruct reading order from positioned OCR fragments",
	Long: `Reconstruct reading-order text from a JSON document of OCR fragments.
Each fragment carries its recognized content and top-left anchor in page
pixels. Pinyin and noise fragments are dropped; the rest are grouped into
visual lines and ordered top to bottom, left to right. When every fragment
is dropped, the optional full_text field is cleaned as flat text instead.

Reads from stdin when no file is given.

Examples:
  hanline fragments page.json
  hanline fragments page.json --output clean.txt`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			raw []byte
			err error
		)
		if len(args) == 1 {
			raw, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
		} else {
			raw, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
		}

		var input fragmentInput
		if err := json.Unmarshal(raw, &input); err != nil {
			return fmt.Errorf("parse fragments: %w", err)
		}

		result := reconstruct.Reconstruct(input.Fragments, input.FullText)

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			if err := os.WriteFile(outputFile, []byte(result+"\n"), 0o600); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fragmentsCmd)
	fragmentsCmd.Flags().StringP("output", "o", "", "write result to file instead of stdout")
}
