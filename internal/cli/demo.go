package cli

import (
	_ "embed"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/minid3/pkg/chart"
	"github.com/matzehuels/minid3/pkg/dataset"
	"github.com/matzehuels/minid3/pkg/pipeline"
)

// letterFrequency holds the relative frequency of the 14 most common
// letters in English text.
//
//go:embed demodata/letters.json
var letterFrequency []byte

// demoConfig returns the config used by "minid3 demo" for template name.
func demoConfig(name string) chart.Config {
	cfg := chart.DefaultConfig()
	cfg.Template = name
	if name == "bar" {
		cfg.Title = "Relative frequency of English letters"
		cfg.YTickStep = 0.02
	}
	return cfg
}

// demoCommand creates the demo command.
func (c *CLI) demoCommand() *cobra.Command {
	opts := renderOpts{formats: pipeline.FormatHTML}

	cmd := &cobra.Command{
		Use:       "demo [template]",
		Short:     "Draw a built-in template with bundled sample data",
		Long:      `Draw one of the built-in templates. Without an argument an interactive picker is shown.`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: chart.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			} else {
				picked, err := pickTemplate()
				if err != nil {
					return err
				}
				if picked == "" {
					return nil
				}
				name = picked
			}

			rows, err := dataset.ParseJSON(letterFrequency)
			if err != nil {
				return err
			}
			popts := opts.pipelineOptions(demoConfig(name))
			if t, err := chart.Lookup(name); err == nil && t.NeedsData() {
				popts.Rows = rows
			}
			if err := c.runRender(cmd.Context(), popts, basePath(opts.output, "", name), &opts); err != nil {
				return err
			}
			printNextStep("Draw your own chart", "minid3 render chart.toml --data data.json")
			return nil
		},
	}

	opts.addFlags(cmd)
	return cmd
}

// pickTemplate runs the interactive template picker. It returns "" when
// the user quits without choosing.
func pickTemplate() (string, error) {
	final, err := tea.NewProgram(NewTemplateListModel(chart.All())).Run()
	if err != nil {
		return "", fmt.Errorf("template picker: %w", err)
	}
	m, ok := final.(TemplateListModel)
	if !ok || m.Selected == nil {
		return "", nil
	}
	return m.Selected.Name(), nil
}
