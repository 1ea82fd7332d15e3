package cmd

import (
	"fmt"
	"strconv"

	"nastconv/cli"
	"nastconv/grid"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <input>",
	Short: "Prints a summary of a NaSt2D dump. Use - to read stdin.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conv, done, err := newConverter(cmd, false)
		if err != nil {
			return err
		}
		defer done()

		rc, source, err := openInput(args[0])
		if err != nil {
			return err
		}
		defer rc.Close()

		g, err := conv.Reconstruct(rc)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		size := g.Size()
		fmt.Fprintf(out, "%s: %s grid (imax=%d, jmax=%d), %d boundary cells\n", source, size, size[0]-2, size[1]-2, len(g.Boundaries()))

		fields := tablewriter.NewWriter(out)
		fields.SetHeader([]string{"Field", "Min", "Max", "Mean"})
		for _, f := range []struct {
			name string
			arr  *grid.Array[float64]
		}{
			{"u", g.U()},
			{"v", g.V()},
			{"pressure", g.Pressure()},
			{"temperature", g.Temperature()},
		} {
			stats := grid.Summarize(f.arr)
			fields.Append([]string{
				f.name,
				formatFloat(stats.Min),
				formatFloat(stats.Max),
				formatFloat(stats.Mean),
			})
		}
		fields.Render()

		cells := tablewriter.NewWriter(out)
		cells.SetHeader([]string{"Cell Type", "Count"})
		counts := grid.CountCells(g.CellTypes())
		for _, kind := range []grid.CellKind{grid.CellFluid, grid.CellInflow, grid.CellOutflow, grid.CellNoSlip} {
			cells.Append([]string{kind.String(), strconv.Itoa(counts[kind])})
		}
		cells.Render()
		return nil
	},
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}

func init() {
	cli.AddConvertFlags(inspectCmd)
	rootCmd.AddCommand(inspectCmd)
}
