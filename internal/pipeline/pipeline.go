// Package pipeline chains the normalization passes into a single document
// transformation and handles the file staging around it.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebookpress/docforge/internal/docx"
	"github.com/ebookpress/docforge/internal/fonts"
	"github.com/ebookpress/docforge/internal/images"
	"github.com/ebookpress/docforge/internal/layout"
	"github.com/ebookpress/docforge/internal/scrub"
	"github.com/ebookpress/docforge/internal/spacing"
)

// Config holds the per-stage toggles for a pipeline. Stages always run in
// a fixed order regardless of which are enabled: fonts, scrub, geometry,
// furniture, spacing, images. Scrub must precede spacing so that removed
// paragraphs are not counted by the spacing pass, and furniture must
// precede images so body pictures are repositioned only after section
// artifacts are gone.
type Config struct {
	Fonts     bool
	Scrub     bool
	Geometry  bool
	Furniture bool
	Spacing   bool
	Images    bool
}

// DefaultConfig returns a config with every stage enabled.
func DefaultConfig() Config {
	return Config{
		Fonts:     true,
		Scrub:     true,
		Geometry:  true,
		Furniture: true,
		Spacing:   true,
		Images:    true,
	}
}

// enabled reports whether at least one stage would run.
func (c Config) enabled() bool {
	return c.Fonts || c.Scrub || c.Geometry || c.Furniture || c.Spacing || c.Images
}

// Builder constructs a Pipeline with fluent configuration.
type Builder struct {
	cfg Config
}

// NewBuilder creates a new pipeline builder with defaults.
func NewBuilder() *Builder { return &Builder{cfg: DefaultConfig()} }

// WithFonts toggles the script-classified font substitution stage.
func (b *Builder) WithFonts(enabled bool) *Builder {
	b.cfg.Fonts = enabled
	return b
}

// WithScrub toggles the contact and price scrubbing stage.
func (b *Builder) WithScrub(enabled bool) *Builder {
	b.cfg.Scrub = enabled
	return b
}

// WithGeometry toggles page geometry normalization.
func (b *Builder) WithGeometry(enabled bool) *Builder {
	b.cfg.Geometry = enabled
	return b
}

// WithFurniture toggles header, footer, and watermark stripping.
func (b *Builder) WithFurniture(enabled bool) *Builder {
	b.cfg.Furniture = enabled
	return b
}

// WithSpacing toggles line spacing enforcement.
func (b *Builder) WithSpacing(enabled bool) *Builder {
	b.cfg.Spacing = enabled
	return b
}

// WithImages toggles image repositioning.
func (b *Builder) WithImages(enabled bool) *Builder {
	b.cfg.Images = enabled
	return b
}

// WithConfig replaces the whole config at once.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.cfg = cfg
	return b
}

// Config returns a copy of the current config.
func (b *Builder) Config() Config { return b.cfg }

// Validate checks that the configuration describes a useful pipeline.
func (b *Builder) Validate() error {
	if !b.cfg.enabled() {
		return errors.New("no pipeline stages enabled")
	}
	return nil
}

// Build initializes the pipeline.
func (b *Builder) Build() (*Pipeline, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{cfg: b.cfg}, nil
}

// Pipeline applies the enabled normalization stages to documents. The
// stages are stateless, so one Pipeline may be shared by concurrent
// workers as long as each works on its own Document.
type Pipeline struct {
	cfg Config
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// Process runs the enabled stages over an in-memory document and returns
// the per-stage results. The legacy UI probe runs once, before any stage
// rewrites fonts, and its verdict is fixed for the whole document.
func (p *Pipeline) Process(doc *docx.Document) *Result {
	started := time.Now()
	res := &Result{}

	legacyUI := fonts.DetectLegacyUI(doc)
	res.LegacyUIMode = legacyUI
	if legacyUI {
		slog.Info("legacy UI font detected, document treated as legacy-encoded")
	}

	if p.cfg.Fonts {
		r := fonts.Apply(doc, legacyUI)
		res.Fonts = &r
	}
	if p.cfg.Scrub {
		r := scrub.Apply(doc)
		res.Scrub = &r
	}
	if p.cfg.Geometry {
		r := layout.NormalizeGeometry(doc)
		res.Geometry = &r
	}
	if p.cfg.Furniture {
		r := layout.StripFurniture(doc)
		res.Furniture = &r
	}
	if p.cfg.Spacing {
		r := spacing.Enforce(doc)
		res.Spacing = &r
	}
	if p.cfg.Images {
		r := images.Reposition(doc)
		res.Images = &r
	}

	res.Duration = time.Since(started)
	return res
}

// ProcessFile opens input, runs the pipeline, and writes the result to
// output. The input file is never modified. The output is staged through
// a temporary file in its target directory and renamed into place only
// after a complete write, so a failure mid-save cannot leave a truncated
// document behind.
func (p *Pipeline) ProcessFile(input, output string) (*Result, error) {
	if !strings.EqualFold(filepath.Ext(input), ".docx") {
		return nil, fmt.Errorf("unsupported input file type: %s", input)
	}

	doc, err := docx.Open(input)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", input, err)
	}

	res := p.Process(doc)
	res.Input = input
	res.Output = output

	outDir := filepath.Dir(output)
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(outDir, ".docforge-*.docx")
	if err != nil {
		return nil, fmt.Errorf("stage working copy: %w", err)
	}
	tmpName := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return nil, fmt.Errorf("stage working copy: %w", err)
	}

	if err := doc.Save(tmpName); err != nil {
		_ = os.Remove(tmpName)
		return nil, fmt.Errorf("save %s: %w", output, err)
	}
	if err := os.Rename(tmpName, output); err != nil {
		_ = os.Remove(tmpName)
		return nil, fmt.Errorf("finalize %s: %w", output, err)
	}

	slog.Info("document processed",
		"input", input,
		"output", output,
		"legacy_ui", res.LegacyUIMode,
		"duration", res.Duration.Round(time.Millisecond))
	return res, nil
}
