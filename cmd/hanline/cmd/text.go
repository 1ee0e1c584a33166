package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/hanline/hanline/internal/reconstruct"
	"github.com/spf13/cobra"
)

// textCmd represents the text command.
var textCmd = &cobra.Command{
	Use:   "text [file]",
	Short: "Clean flat OCR text without position data",
	Long: `Clean a block of OCR text that carries no position information.
Each line is classified; pinyin annotation lines and noise are dropped,
and stray pinyin words inside surviving lines are removed.

Reads from stdin when no file is given.

Examples:
  hanline text page.txt
  cat page.txt | hanline text
  hanline text page.txt --output clean.txt`,
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

		result := reconstruct.ProcessFlatText(string(raw))

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
	rootCmd.AddCommand(textCmd)
	textCmd.Flags().StringP("output", "o", "", "write result to file instead of stdout")
}
