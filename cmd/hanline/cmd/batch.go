package cmd

import (
	"github.com/hanline/hanline/internal/batch"
	"github.com/hanline/hanline/internal/config"
	"github.com/spf13/cobra"
)

// batchCmd represents the batch command for parallel page processing.
var batchCmd = &cobra.Command{
	Use:   "batch [files...]",
	Short: "Process many page images in parallel",
	Long: `Process multiple page images in parallel: each page is OCR'd and its
fragments reconstructed into reading-order text. Directories are expanded
to the image files they contain.

Supported formats: JPEG, PNG, BMP

Examples:
  hanline batch *.jpg *.png
  hanline batch pages/ --recursive --workers 8
  hanline batch pages/ --format json --output results.json`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runBatchCommand,
}

// configToBatchConfig maps centralized configuration to batch.Config.
// CLI flags override config file values.
func configToBatchConfig(cfg *config.Config, cmd *cobra.Command) *batch.Config {
	batchConfig := &batch.Config{
		Workers:         cfg.Batch.Workers,
		Format:          cfg.Batch.Format,
		Recursive:       cfg.Batch.Recursive,
		ContinueOnError: cfg.Batch.ContinueOnError,
	}

	if cmd.Flags().Changed("workers") {
		batchConfig.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("format") {
		batchConfig.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("recursive") {
		batchConfig.Recursive, _ = cmd.Flags().GetBool("recursive")
	}
	if cmd.Flags().Changed("continue-on-error") {
		batchConfig.ContinueOnError, _ = cmd.Flags().GetBool("continue-on-error")
	}

	batchConfig.OutputFile, _ = cmd.Flags().GetString("output")
	batchConfig.Quiet, _ = cmd.Flags().GetBool("quiet")
	batchConfig.IncludePatterns, _ = cmd.Flags().GetStringSlice("include")
	batchConfig.ExcludePatterns, _ = cmd.Flags().GetStringSlice("exclude")

	return batchConfig
}

func runBatchCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	provider, err := newOCRProvider(cfg)
	if err != nil {
		return err
	}

	batchConfig := configToBatchConfig(cfg, cmd)

	result, err := batch.Process(cmd.Context(), provider, args, batchConfig)
	if err != nil {
		return err
	}

	if err := result.SaveResults(batchConfig.Format, batchConfig.OutputFile, batchConfig.Quiet); err != nil {
		return err
	}
	result.PrintStats(batchConfig.Quiet)
	return nil
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntP("workers", "w", 0, "number of parallel workers (default from config)")
	batchCmd.Flags().StringP("format", "f", "", "output format (text, json, yaml)")
	batchCmd.Flags().StringP("output", "o", "", "write results to file instead of stdout")
	batchCmd.Flags().BoolP("recursive", "r", false, "recurse into directories")
	batchCmd.Flags().Bool("continue-on-error", false, "keep processing after a page fails")
	batchCmd.Flags().BoolP("quiet", "q", false, "suppress progress and statistics output")
	batchCmd.Flags().StringSlice("include", nil, "glob patterns of files to include")
	batchCmd.Flags().StringSlice("exclude", nil, "glob patterns of files to exclude")
}
