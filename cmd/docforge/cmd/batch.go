package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ebookpress/docforge/internal/batch"
	"github.com/ebookpress/docforge/internal/config"
)

// batchCmd normalizes many documents in parallel.
var batchCmd = &cobra.Command{
	Use:   "batch [paths...]",
	Short: "Normalize multiple DOCX documents in parallel",
	Long: `Normalize many Word documents with a worker pool. Paths may mix
files and directories; directories are filtered by the include and
exclude patterns. A failing document is reported and does not stop the
rest of the batch.

Examples:
  docforge batch books/
  docforge batch books/ --recursive --workers 8 --output-dir normalized/
  docforge batch a.docx b.docx --format json --output report.json`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runBatchCommand,
}

// configToBatchConfig maps centralized configuration to batch.Config.
// CLI flags override config file values when explicitly set.
func configToBatchConfig(cfg *config.Config, cmd *cobra.Command) *batch.Config {
	batchConfig := cfg.ToBatchConfig()
	batchConfig.Pipeline = pipelineConfigFromFlags(cfg, cmd)

	if cmd.Flags().Changed("output-dir") {
		batchConfig.OutputDir, _ = cmd.Flags().GetString("output-dir")
	}
	if cmd.Flags().Changed("suffix") {
		batchConfig.Suffix, _ = cmd.Flags().GetString("suffix")
	}
	if cmd.Flags().Changed("format") {
		batchConfig.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("output") {
		batchConfig.OutputFile, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("workers") {
		batchConfig.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("recursive") {
		batchConfig.Recursive, _ = cmd.Flags().GetBool("recursive")
	}
	if cmd.Flags().Changed("include") {
		batchConfig.IncludePatterns, _ = cmd.Flags().GetStringSlice("include")
	}
	if cmd.Flags().Changed("exclude") {
		batchConfig.ExcludePatterns, _ = cmd.Flags().GetStringSlice("exclude")
	}
	if cmd.Flags().Changed("progress") {
		batchConfig.ShowProgress, _ = cmd.Flags().GetBool("progress")
	}
	if cmd.Flags().Changed("quiet") {
		batchConfig.Quiet, _ = cmd.Flags().GetBool("quiet")
	}
	if cmd.Flags().Changed("progress-interval") {
		batchConfig.ProgressInterval, _ = cmd.Flags().GetDuration("progress-interval")
	}

	return batchConfig
}

func runBatchCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	batchConfig := configToBatchConfig(cfg, cmd)

	result, err := batch.ProcessBatch(args, batchConfig)
	if err != nil {
		return fmt.Errorf("batch processing failed: %w", err)
	}

	if err := result.SaveResults(batchConfig.Format, batchConfig.OutputFile, batchConfig.Quiet); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	if stats, _ := cmd.Flags().GetBool("stats"); stats {
		result.PrintStats(batchConfig.Quiet)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("output-dir", "", "directory for processed documents (default: alongside inputs)")
	batchCmd.Flags().String("suffix", batch.DefaultSuffix, "suffix for output names when no output-dir is set")
	batchCmd.Flags().String("format", "text", "report format (text, json, yaml)")
	batchCmd.Flags().StringP("output", "", "", "write report to file instead of stdout")
	batchCmd.Flags().Int("workers", 0, "number of parallel workers (default: number of CPUs)")
	batchCmd.Flags().BoolP("recursive", "r", false, "recurse into subdirectories")
	batchCmd.Flags().StringSlice("include", []string{"*.docx"}, "glob patterns for files to include")
	batchCmd.Flags().StringSlice("exclude", []string{"~$*"}, "glob patterns for files to exclude")
	batchCmd.Flags().Bool("progress", true, "show a progress bar")
	batchCmd.Flags().BoolP("quiet", "q", false, "suppress progress and informational output")
	batchCmd.Flags().Bool("stats", false, "print processing statistics")
	batchCmd.Flags().Duration("progress-interval", 0, "minimum time between progress updates")
	addStageFlags(batchCmd)
}
