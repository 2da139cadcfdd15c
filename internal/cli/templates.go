package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/minid3/pkg/chart"
)

// templatesCommand lists the registered chart templates.
func (c *CLI) templatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the chart templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			templates := chart.All()
			rows := make([][]string, len(templates))
			for i, t := range templates {
				rows[i] = []string{"", t.Name(), t.Description(), dataColumn(t)}
			}
			fmt.Fprintln(cmd.OutOrStdout(), templateTable(rows, nil).Render())
			return nil
		},
	}
}
