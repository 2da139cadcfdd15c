package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/minid3/pkg/errors"
	"github.com/matzehuels/minid3/pkg/pipeline"
	"github.com/matzehuels/minid3/pkg/render/doctree"
)

// treeCommand creates the tree command, which draws a chart and shows the
// resulting document tree as a Graphviz diagram.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		output, data, format string
		detailed             bool
	)

	cmd := &cobra.Command{
		Use:   "tree [config.toml]",
		Short: "Show the document tree a chart config builds",
		Long: `Draw a chart and print its document tree as Graphviz DOT.
With --format svg, png or pdf the tree is laid out with Graphviz instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			cfg, err := loadChartConfig(input)
			if err != nil {
				return err
			}
			popts := pipeline.Options{
				Config:   cfg,
				Data:     data,
				Formats:  []string{pipeline.FormatDOT},
				Detailed: detailed,
				Refresh:  true,
				Logger:   loggerFromContext(ctx),
			}
			if input != "" {
				popts.BaseDir = filepath.Dir(input)
			}

			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()
			result, err := runner.Execute(ctx, popts)
			if err != nil {
				return err
			}
			dot := string(result.Artifacts[pipeline.FormatDOT])

			var out []byte
			switch format {
			case pipeline.FormatDOT:
				out = []byte(dot)
			case pipeline.FormatSVG:
				out, err = doctree.RenderSVG(ctx, dot)
			case pipeline.FormatPNG:
				out, err = doctree.RenderPNG(ctx, dot, pipeline.DefaultScale)
			case pipeline.FormatPDF:
				out, err = doctree.RenderPDF(ctx, dot)
			default:
				err = errors.New(errors.ErrCodeInvalidFormat, "invalid tree format %q (must be one of: dot, svg, png, pdf)", format)
			}
			if err != nil {
				return err
			}

			if output == "" {
				output = "-"
			}
			if err := writeArtifact(output, out); err != nil {
				return err
			}
			if output != "-" {
				printSuccess("Wrote document tree")
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&data, "data", "d", "", "dataset file or URL (overrides the config)")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatDOT, "output format: dot, svg, png, pdf")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include attributes and bound data")
	return cmd
}
