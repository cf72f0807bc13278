package main

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/miosa/storefront/style"
	"github.com/miosa/storefront/ui/common"
	"github.com/miosa/storefront/virt"
)

func newLayoutCmd(c *cli) *cobra.Command {
	var (
		count int
		width float64
		cols  int
	)
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the grid metrics for an item count and container width",
		Long: `Computes the grid layout the browser uses for one category, with the
breakpoint, item height and gap from the config.

Width is in logical units; --cols gives it in terminal columns instead.

Example:
  storefront layout --count 5 --width 800`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := c.cfg.Virtualization
			scale := common.Scale{CellWidth: v.CellWidth, CellHeight: v.CellHeight}
			if cmd.Flags().Changed("cols") {
				width = scale.Width(cols)
			}
			lc := virt.LayoutConfig{Breakpoint: v.Breakpoint, ItemHeight: v.ItemHeight, Gap: v.Gap}
			m := lc.Compute(count, width)

			t := metricsTable().Rows(
				[]string{"items", strconv.Itoa(count)},
				[]string{"width", fmt.Sprintf("%g", width)},
				[]string{"columns", strconv.Itoa(m.Columns)},
				[]string{"rows", strconv.Itoa(m.Rows)},
				[]string{"item height", fmt.Sprintf("%g", m.ItemHeight)},
				[]string{"gap", fmt.Sprintf("%g", m.Gap)},
				[]string{"total height", fmt.Sprintf("%g", m.TotalHeight)},
				[]string{"terminal rows", strconv.Itoa(scale.Rows(m.TotalHeight))},
			)
			_, err := lipgloss.Fprintln(cmd.OutOrStdout(), t.String())
			return err
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of items")
	cmd.Flags().Float64Var(&width, "width", 800, "Container width in logical units")
	cmd.Flags().IntVar(&cols, "cols", 0, "Container width in terminal columns")
	return cmd
}

func metricsTable() *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(style.Border)).
		Headers("metric", "value").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return style.StatusKey.Padding(0, 1)
			case col == 0:
				return style.HelpDesc.Padding(0, 1)
			default:
				return style.StatusValue.Padding(0, 1)
			}
		})
}
