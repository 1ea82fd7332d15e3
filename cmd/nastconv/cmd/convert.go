package cmd

import (
	"nastconv/cli"
	"nastconv/convert"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input>",
	Short: "Converts one NaSt2D dump into a JSON fixture. Use - to read stdin.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conv, done, err := newConverter(cmd, true)
		if err != nil {
			return err
		}
		defer done()

		rc, source, err := openInput(args[0])
		if err != nil {
			return err
		}
		defer rc.Close()

		res, err := conv.Convert(source, rc)
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString(cli.FlagOutput)
		return convert.WriteOutput(out, cmd.OutOrStdout(), res.Document)
	},
}

func init() {
	convertCmd.Flags().StringP(cli.FlagOutput, "o", "", "Output file. Writes to stdout if empty.")
	cli.AddConvertFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)
}
