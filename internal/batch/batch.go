package batch

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ebookpress/docforge/internal/pipeline"
)

// ProcessBatch discovers documents under the given paths and runs the
// pipeline over them with the configured worker pool.
func ProcessBatch(paths []string, config *Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	files, err := discoverDocuments(paths, config.Recursive, config.IncludePatterns, config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to discover documents: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no documents found")
	}

	var progress pipeline.ProgressCallback = pipeline.NoOpProgressCallback{}
	if config.ShowProgress && !config.Quiet {
		progress = pipeline.NewConsoleProgressCallback(os.Stderr, "Processing: ").
			WithUpdateInterval(config.ProgressInterval)
	}

	pl, err := pipeline.NewBuilder().WithConfig(config.Pipeline).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}

	startTime := time.Now()
	documents := processParallel(pl, files, config, progress)
	duration := time.Since(startTime)

	result := &Result{
		Documents:   documents,
		Duration:    duration,
		WorkerCount: config.Workers,
	}
	for _, d := range documents {
		if d.Error != "" {
			result.Failed++
		} else {
			result.Succeeded++
		}
	}
	return result, nil
}

// FormatResults renders the batch report in the specified format.
func (r *Result) FormatResults(format string) (string, error) {
	return formatBatchResults(r, format)
}

// SaveResults writes the formatted report to a file or stdout.
func (r *Result) SaveResults(format, outputFile string, quiet bool) error {
	output, err := r.FormatResults(format)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !quiet {
			_, _ = fmt.Fprintf(os.Stdout, "Report written to %s\n", outputFile)
		}
	} else {
		_, _ = fmt.Fprint(os.Stdout, output)
	}

	return nil
}

// PrintStats prints processing statistics to stdout.
func (r *Result) PrintStats(quiet bool) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(os.Stdout, "\nProcessing statistics:\n")
	_, _ = fmt.Fprintf(os.Stdout, "  Total documents: %d\n", len(r.Documents))
	_, _ = fmt.Fprintf(os.Stdout, "  Succeeded: %d\n", r.Succeeded)
	_, _ = fmt.Fprintf(os.Stdout, "  Failed: %d\n", r.Failed)
	_, _ = fmt.Fprintf(os.Stdout, "  Workers: %d\n", r.WorkerCount)
	_, _ = fmt.Fprintf(os.Stdout, "  Duration: %v\n", r.Duration.Round(time.Millisecond))
	if len(r.Documents) > 0 {
		avg := r.Duration / time.Duration(len(r.Documents))
		_, _ = fmt.Fprintf(os.Stdout, "  Avg per document: %v\n", avg.Round(time.Millisecond))
	}
}
