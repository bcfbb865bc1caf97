// Package batch runs the normalization pipeline over many documents with
// a worker pool, collecting per-document outcomes into a single report.
package batch

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/ebookpress/docforge/internal/pipeline"
)

// DefaultSuffix is appended to the base name of each output document when
// no output directory is configured.
const DefaultSuffix = "_normalized"

// Config holds all configuration for batch processing.
type Config struct {
	// Pipeline stage toggles, passed through to every worker.
	Pipeline pipeline.Config

	// Output placement. When OutputDir is set, outputs keep their base
	// name inside it. Otherwise Suffix is inserted before the extension
	// next to the input. Inputs are never overwritten.
	OutputDir string
	Suffix    string

	// Report settings.
	Format     string // text, json, or yaml
	OutputFile string

	// File discovery settings.
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// Parallelism.
	Workers int

	// Progress settings.
	ShowProgress     bool
	Quiet            bool
	ProgressInterval time.Duration
}

// DefaultConfig returns the batch defaults: every stage on, *.docx
// discovery that skips Word lock files, one worker per CPU.
func DefaultConfig() *Config {
	return &Config{
		Pipeline:         pipeline.DefaultConfig(),
		Suffix:           DefaultSuffix,
		Format:           "text",
		Recursive:        false,
		IncludePatterns:  []string{"*.docx"},
		ExcludePatterns:  []string{"~$*"},
		Workers:          runtime.NumCPU(),
		ShowProgress:     true,
		ProgressInterval: 100 * time.Millisecond,
	}
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	switch c.Format {
	case "", "text", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format: %s", c.Format)
	}
	if c.OutputDir == "" && c.Suffix == "" {
		return errors.New("either an output directory or a filename suffix is required")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}

// DocumentResult records the outcome for one document. Exactly one of
// Result and Error is meaningful.
type DocumentResult struct {
	Input  string           `json:"input"            yaml:"input"`
	Output string           `json:"output,omitempty" yaml:"output,omitempty"`
	Result *pipeline.Result `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string           `json:"error,omitempty"  yaml:"error,omitempty"`
}

// Result holds the outcome of a whole batch run.
type Result struct {
	Documents   []*DocumentResult `json:"documents"    yaml:"documents"`
	Succeeded   int               `json:"succeeded"    yaml:"succeeded"`
	Failed      int               `json:"failed"       yaml:"failed"`
	Duration    time.Duration     `json:"duration_ns"  yaml:"duration_ns"`
	WorkerCount int               `json:"worker_count" yaml:"worker_count"`
}
