package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/minid3/pkg/chart"
	"github.com/matzehuels/minid3/pkg/errors"
	"github.com/matzehuels/minid3/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render and demo commands.
type renderOpts struct {
	output   string  // output file (single format) or base path (multiple)
	data     string  // dataset path or URL, overrides the config
	formats  string  // comma-separated output formats
	template string  // template override
	scale    float64 // PNG pixel density
	detailed bool    // attributes and data in DOT output
	noCache  bool    // disable the artifact cache
	refresh  bool    // ignore cached artifacts
}

func (o *renderOpts) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", `output file (single format, "-" for stdout) or base path (multiple)`)
	cmd.Flags().StringVarP(&o.formats, "format", "f", o.formats, "output format(s): html, svg, png, pdf, dot (comma-separated)")
	cmd.Flags().Float64Var(&o.scale, "scale", pipeline.DefaultScale, "PNG pixel density multiplier")
	cmd.Flags().BoolVar(&o.detailed, "detailed", false, "include attributes and bound data in DOT output")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "redraw even when artifacts are cached")
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{formats: pipeline.FormatSVG}

	cmd := &cobra.Command{
		Use:   "render [config.toml]",
		Short: "Draw a chart config to HTML, SVG, PNG, PDF or DOT",
		Long: `Draw a chart described by a TOML config file.

Without a config file the default bar chart config is used, so --data is required.
Relative dataset paths in the config are resolved against the config's directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			cfg, err := loadChartConfig(input)
			if err != nil {
				return err
			}
			if opts.template != "" {
				cfg.Template = opts.template
			}
			popts := opts.pipelineOptions(cfg)
			if input != "" {
				popts.BaseDir = filepath.Dir(input)
			}
			return c.runRender(cmd.Context(), popts, basePath(opts.output, input, cfg.Template), &opts)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "dataset file or URL (overrides the config)")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "chart template (overrides the config)")
	_ = cmd.RegisterFlagCompletionFunc("template", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return chart.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func loadChartConfig(path string) (chart.Config, error) {
	if path == "" {
		return chart.DefaultConfig(), nil
	}
	return chart.LoadConfig(path)
}

func (o *renderOpts) pipelineOptions(cfg chart.Config) pipeline.Options {
	return pipeline.Options{
		Config:   cfg,
		Data:     o.data,
		Formats:  pipeline.ParseFormats(o.formats),
		Scale:    o.scale,
		Detailed: o.detailed,
		Refresh:  o.refresh,
	}
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, popts pipeline.Options, base string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	popts.Logger = logger

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Drawing %s chart...", popts.Config.Template))
	spinner.Start()
	defer spinner.Stop()
	prog := newProgress(logger)
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.Stop()
		if spinner.Cancelled() {
			return context.Canceled
		}
		return err
	}
	prog.done("Pipeline finished")
	spinner.SetMessage(fmt.Sprintf("Writing %d artifacts...", len(result.Artifacts)))

	formats := make([]string, 0, len(result.Artifacts))
	for f := range result.Artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	var written []string
	for _, format := range formats {
		path := outputPath(opts.output, base, format, len(formats))
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
		logger.Debug("wrote artifact", "format", format, "bytes", len(result.Artifacts[format]))
		if path != "-" {
			written = append(written, path)
		}
	}

	spinner.Stop()
	if len(written) > 0 {
		printSuccess("Rendered %s", popts.Config.Template)
		for _, p := range written {
			printFile(p)
		}
		printStats(result.Stats.RowCount, popts.Config.Template, formats, result.CacheInfo.RenderHit)
	}
	return nil
}

// basePath derives the base output path. An explicit output with a format
// extension loses that extension; otherwise the input name or template name is used.
func basePath(output, input, template string) string {
	if output == "" {
		if input == "" {
			return template
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns where one format is written. A single format goes to
// output verbatim when it is set.
func outputPath(output, base, format string, count int) string {
	if count == 1 && output != "" {
		return output
	}
	return base + "." + format
}

func writeArtifact(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return out.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput opens path for writing; "-" is stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	return f, nil
}
