package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/minid3/pkg/cache"
	"github.com/matzehuels/minid3/pkg/chart"
	"github.com/matzehuels/minid3/pkg/dataset"
	"github.com/matzehuels/minid3/pkg/dom"
	"github.com/matzehuels/minid3/pkg/errors"
	"github.com/matzehuels/minid3/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// Loader reads datasets. It shares the runner's cache and keyer.
	Loader *dataset.Loader
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Loader: &dataset.Loader{Cache: c, Keyer: keyer},
	}
}

// Execute runs the complete load → draw → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	rows, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Rows = rows
	result.Stats.RowCount = len(rows)
	result.Stats.LoadTime = time.Since(loadStart)
	if rows != nil {
		r.Logger.Info("loaded dataset",
			"rows", len(rows),
			"duration", result.Stats.LoadTime)
	}

	result.InputHash, err = InputHash(opts.Config, rows)
	if err != nil {
		return nil, err
	}

	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, result.InputHash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			r.Logger.Info("artifacts served from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 2: Draw
	drawStart := time.Now()
	doc, err := r.Draw(ctx, opts, rows)
	if err != nil {
		return nil, fmt.Errorf("draw: %w", err)
	}
	result.Document = doc
	result.Stats.DrawTime = time.Since(drawStart)

	r.Logger.Info("drew chart",
		"template", opts.Config.Template,
		"duration", result.Stats.DrawTime)

	// Stage 3: Export
	renderStart := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, err := Export(ctx, doc, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(result.InputHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache artifact", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load returns opts.Rows, or reads the dataset named by opts.Source.
// Templates that need no data get nil rows when no source is configured.
func (r *Runner) Load(ctx context.Context, opts Options) ([]any, error) {
	if opts.Rows != nil {
		return opts.Rows, nil
	}
	src := opts.Source()
	if src == "" {
		t, err := chart.Lookup(opts.Config.Template)
		if err != nil {
			return nil, err
		}
		if t.NeedsData() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "template %q needs a dataset (set data in the config or pass one)", t.Name())
		}
		return nil, nil
	}
	return r.loader().Load(ctx, src)
}

// Draw runs the configured template against rows.
func (r *Runner) Draw(ctx context.Context, opts Options, rows []any) (*dom.Document, error) {
	hooks := observability.Pipeline()
	hooks.OnDrawStart(ctx, opts.Config.Template, len(rows))
	start := time.Now()
	doc, err := chart.Draw(opts.Config, rows)
	hooks.OnDrawComplete(ctx, opts.Config.Template, time.Since(start), err)
	return doc, err
}

// cachedArtifacts returns every requested format from cache, or false if any is missing.
func (r *Runner) cachedArtifacts(ctx context.Context, inputHash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return artifacts, true
}

// InputHash is the content hash of a chart config and its dataset rows.
func InputHash(cfg chart.Config, rows []any) (string, error) {
	var buf bytes.Buffer
	cfgData, err := cfg.Encode()
	if err != nil {
		return "", err
	}
	buf.Write(cfgData)
	buf.WriteByte(0)
	if rows != nil {
		if err := dataset.WriteJSON(rows, &buf); err != nil {
			return "", err
		}
	}
	return cache.Hash(buf.Bytes()), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) loader() *dataset.Loader {
	if r.Loader == nil {
		return &dataset.Loader{Cache: r.Cache, Keyer: r.Keyer}
	}
	return r.Loader
}
