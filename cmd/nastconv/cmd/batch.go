package cmd

import (
	"context"
	"fmt"
	"os"

	"nastconv/cli"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch <out-dir> <input>...",
	Short: "Converts many NaSt2D dumps into <out-dir>/<name>.json.",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		workers := cfg.Batch.Workers
		if cmd.Flags().Changed(cli.FlagWorkers) {
			workers, _ = cmd.Flags().GetInt(cli.FlagWorkers)
		}
		if workers < 1 {
			return errors.New("workers must be at least 1")
		}

		conv, done, err := newConverter(cmd, true)
		if err != nil {
			return err
		}
		defer done()

		outDir := args[0]
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return errors.Wrap(err, "error creating output directory")
		}
		results, err := conv.Batch(context.Background(), outDir, args[1:], workers)
		if err != nil {
			return err
		}

		var cached int
		for _, res := range results {
			if res.Cached {
				cached++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Converted %d files into %s (%d from cache).\n", len(results), outDir, cached)
		return nil
	},
}

func init() {
	batchCmd.Flags().Int(cli.FlagWorkers, 0, "Concurrent conversions. Defaults to batch.workers.")
	cli.AddConvertFlags(batchCmd)
	rootCmd.AddCommand(batchCmd)
}
