// Package pipeline provides the load → draw → export pipeline for minid3.
//
// The CLI and the preview server both run charts through this package so
// that dataset loading, caching and artifact export behave the same
// everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read the dataset rows from a file or http(s) URL
//  2. Draw: Build a page and run the chart template against the rows
//  3. Export: Serialize the page in the requested formats (HTML, SVG, PNG, PDF, DOT)
//
// Export formats are produced concurrently. Artifacts are cached under a
// hash of the chart config and the dataset, so an unchanged chart is served
// without drawing it again.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Config:  cfg,
//	    Formats: []string{"svg", "html"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/minid3/pkg/cache"
	"github.com/matzehuels/minid3/pkg/chart"
	"github.com/matzehuels/minid3/pkg/dom"
	"github.com/matzehuels/minid3/pkg/errors"
)

// DefaultScale is the PNG pixel density multiplier.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatHTML = "html"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatHTML: "text/html; charset=utf-8",
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

// Options contains all configuration for one pipeline run.
type Options struct {
	// Config is the chart to draw.
	Config chart.Config `json:"config"`
	// Data overrides Config.Data as the dataset source.
	Data string `json:"data,omitempty"`
	// BaseDir resolves relative local dataset paths, usually the config file's directory.
	BaseDir string `json:"-"`
	// Rows skips loading and draws these rows instead.
	Rows []any `json:"-"`

	Formats []string `json:"formats,omitempty"`
	// Scale is the PNG pixel density multiplier.
	Scale float64 `json:"scale,omitempty"`
	// Detailed adds attributes and bound data to DOT output.
	Detailed bool `json:"detailed,omitempty"`
	// Refresh ignores cached artifacts.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the drawn page. It is nil when every artifact came from cache.
	Document *dom.Document

	// Rows are the dataset rows the chart was drawn from.
	Rows []any

	// InputHash is the content hash of the config and dataset.
	InputHash string

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RowCount   int
	LoadTime   time.Duration
	DrawTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: html, svg, png, pdf, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and duplicates.
func ParseFormats(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// ValidateAndSetDefaults checks the chart config and formats and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.Config.SetDefaults()
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Source returns the dataset source: Data, else Config.Data, with relative
// local paths resolved against BaseDir.
func (o *Options) Source() string {
	src := o.Data
	if src == "" {
		src = o.Config.Data
	}
	if src == "" || errors.IsRemote(src) || filepath.IsAbs(src) || o.BaseDir == "" {
		return src
	}
	return filepath.Join(o.BaseDir, src)
}

// ArtifactKeyOpts returns cache key options for one exported format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Template: o.Config.Template,
		Format:   format,
		Width:    int(o.Config.Width),
		Height:   int(o.Config.Height),
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	if format == FormatDOT && o.Detailed {
		opts.Format = "dot-detailed"
	}
	return opts
}
