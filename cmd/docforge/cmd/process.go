package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ebookpress/docforge/internal/config"
	"github.com/ebookpress/docforge/internal/pipeline"
)

// processCmd normalizes a single document.
var processCmd = &cobra.Command{
	Use:   "process [file]",
	Short: "Normalize a single DOCX document",
	Long: `Normalize one Word document and write the result to a new file.
The input is never modified.

Examples:
  docforge process book.docx
  docforge process book.docx -o clean.docx
  docforge process book.docx --no-scrub --format json`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runProcessCommand,
}

// pipelineConfigFromFlags starts from the centralized config and applies
// the per-command stage disable flags.
func pipelineConfigFromFlags(cfg *config.Config, cmd *cobra.Command) pipeline.Config {
	pc := cfg.ToPipelineConfig()
	if v, _ := cmd.Flags().GetBool("no-fonts"); v {
		pc.Fonts = false
	}
	if v, _ := cmd.Flags().GetBool("no-scrub"); v {
		pc.Scrub = false
	}
	if v, _ := cmd.Flags().GetBool("no-geometry"); v {
		pc.Geometry = false
	}
	if v, _ := cmd.Flags().GetBool("no-furniture"); v {
		pc.Furniture = false
	}
	if v, _ := cmd.Flags().GetBool("no-spacing"); v {
		pc.Spacing = false
	}
	if v, _ := cmd.Flags().GetBool("no-images"); v {
		pc.Images = false
	}
	return pc
}

// addStageFlags registers the stage disable flags shared by process and batch.
func addStageFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-fonts", false, "skip font substitution")
	cmd.Flags().Bool("no-scrub", false, "skip contact and price scrubbing")
	cmd.Flags().Bool("no-geometry", false, "skip page geometry normalization")
	cmd.Flags().Bool("no-furniture", false, "skip header, footer, and watermark removal")
	cmd.Flags().Bool("no-spacing", false, "skip line spacing enforcement")
	cmd.Flags().Bool("no-images", false, "skip image repositioning")
}

func runProcessCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	input := args[0]

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		suffix := cfg.Output.Suffix
		if suffix == "" {
			suffix = "_normalized"
		}
		ext := filepath.Ext(input)
		output = strings.TrimSuffix(input, ext) + suffix + ext
	}

	pl, err := pipeline.NewBuilder().WithConfig(pipelineConfigFromFlags(cfg, cmd)).Build()
	if err != nil {
		return err
	}

	res, err := pl.ProcessFile(input, output)
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		out, err := pipeline.ToJSON(res)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
	case "none":
	default:
		_, _ = fmt.Fprint(cmd.OutOrStdout(), res.Summary())
	}
	return nil
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringP("output", "o", "", "output file path (default: input name with suffix)")
	processCmd.Flags().String("format", "text", "result output format (text, json, none)")
	addStageFlags(processCmd)
}
