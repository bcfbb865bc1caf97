// Package config defines the application configuration and loads it from
// files, environment variables, and flags.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/ebookpress/docforge/internal/batch"
	"github.com/ebookpress/docforge/internal/pipeline"
)

// Config represents the complete configuration for the docforge
// application. It covers the process, batch, and inspect commands and
// supports loading from configuration files, environment variables, and
// command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Pipeline stage toggles
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline" json:"pipeline"`

	// Output placement and report formatting
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Batch processing settings
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// PipelineConfig toggles individual normalization stages.
type PipelineConfig struct {
	Fonts     bool `mapstructure:"fonts" yaml:"fonts" json:"fonts"`
	Scrub     bool `mapstructure:"scrub" yaml:"scrub" json:"scrub"`
	Geometry  bool `mapstructure:"geometry" yaml:"geometry" json:"geometry"`
	Furniture bool `mapstructure:"furniture" yaml:"furniture" json:"furniture"`
	Spacing   bool `mapstructure:"spacing" yaml:"spacing" json:"spacing"`
	Images    bool `mapstructure:"images" yaml:"images" json:"images"`
}

// OutputConfig controls where processed documents and reports go.
type OutputConfig struct {
	// Dir receives processed documents under their original base name.
	// When empty, Suffix is inserted before the extension instead.
	Dir    string `mapstructure:"dir" yaml:"dir" json:"dir"`
	Suffix string `mapstructure:"suffix" yaml:"suffix" json:"suffix"`

	// Format and File control the batch report.
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	Workers         int      `mapstructure:"workers" yaml:"workers" json:"workers"`
	Recursive       bool     `mapstructure:"recursive" yaml:"recursive" json:"recursive"`
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns" json:"include_patterns"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns" json:"exclude_patterns"`
	ShowProgress    bool     `mapstructure:"show_progress" yaml:"show_progress" json:"show_progress"`
	Quiet           bool     `mapstructure:"quiet" yaml:"quiet" json:"quiet"`
	ShowStats       bool     `mapstructure:"show_stats" yaml:"show_stats" json:"show_stats"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Pipeline: PipelineConfig{
			Fonts:     true,
			Scrub:     true,
			Geometry:  true,
			Furniture: true,
			Spacing:   true,
			Images:    true,
		},
		Output: OutputConfig{
			Suffix: batch.DefaultSuffix,
			Format: "text",
		},
		Batch: BatchConfig{
			Workers:         runtime.NumCPU(),
			Recursive:       false,
			IncludePatterns: []string{"*.docx"},
			ExcludePatterns: []string{"~$*"},
			ShowProgress:    true,
		},
	}
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)",
			c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	validFormats := []string{"text", "json", "yaml"}
	if c.Output.Format != "" && !contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)",
			c.Output.Format, strings.Join(validFormats, ", "))
	}

	if c.Output.Dir == "" && c.Output.Suffix == "" {
		return fmt.Errorf("either output.dir or output.suffix must be set")
	}

	if c.Batch.Workers <= 0 {
		return fmt.Errorf("invalid batch workers: %d (must be positive)", c.Batch.Workers)
	}

	return nil
}

// ToPipelineConfig converts the stage toggles to the pipeline package format.
func (c *Config) ToPipelineConfig() pipeline.Config {
	return pipeline.Config{
		Fonts:     c.Pipeline.Fonts,
		Scrub:     c.Pipeline.Scrub,
		Geometry:  c.Pipeline.Geometry,
		Furniture: c.Pipeline.Furniture,
		Spacing:   c.Pipeline.Spacing,
		Images:    c.Pipeline.Images,
	}
}

// ToBatchConfig converts the configuration to the batch package format.
func (c *Config) ToBatchConfig() *batch.Config {
	cfg := batch.DefaultConfig()
	cfg.Pipeline = c.ToPipelineConfig()
	cfg.OutputDir = c.Output.Dir
	cfg.Suffix = c.Output.Suffix
	cfg.Format = c.Output.Format
	cfg.OutputFile = c.Output.File
	cfg.Recursive = c.Batch.Recursive
	if len(c.Batch.IncludePatterns) > 0 {
		cfg.IncludePatterns = c.Batch.IncludePatterns
	}
	cfg.ExcludePatterns = c.Batch.ExcludePatterns
	cfg.Workers = c.Batch.Workers
	cfg.ShowProgress = c.Batch.ShowProgress
	cfg.Quiet = c.Batch.Quiet
	return cfg
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
