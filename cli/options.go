package cli

import (
	"nastconv/config"

	"github.com/spf13/cobra"
)

// AddConvertFlags registers the flags that override the [decoder], [grid]
// and [output] config sections.
func AddConvertFlags(cmd *cobra.Command) {
	cmd.Flags().Int(FlagIntWidth, 0, "Integer width of the dump in bytes (2, 4 or 8). Defaults to decoder.int_width.")
	cmd.Flags().String(FlagByteOrder, "", "Byte order of the dump (native, little or big). Defaults to decoder.byte_order.")
	cmd.Flags().Bool(FlagLenientFlags, false, "Fold unknown flag codes by their fluid bit instead of failing.")
	cmd.Flags().String(FlagPreset, "", "Boundary classification preset. Defaults to grid.preset.")
	cmd.Flags().Int(FlagIndent, -1, "Spaces of JSON indentation, 0 for compact output. Defaults to output.indent.")
	cmd.Flags().Bool(FlagNoCache, false, "Bypass the fixture cache.")
}

// ApplyConvertFlags copies the flags the user set onto cfg and validates
// the result.
func ApplyConvertFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed(FlagIntWidth) {
		cfg.Decoder.IntWidth, _ = flags.GetInt(FlagIntWidth)
	}
	if flags.Changed(FlagByteOrder) {
		cfg.Decoder.ByteOrder, _ = flags.GetString(FlagByteOrder)
	}
	if flags.Changed(FlagLenientFlags) {
		cfg.Decoder.LenientFlags, _ = flags.GetBool(FlagLenientFlags)
	}
	if flags.Changed(FlagPreset) {
		cfg.Grid.Preset, _ = flags.GetString(FlagPreset)
	}
	if flags.Changed(FlagIndent) {
		cfg.Output.Indent, _ = flags.GetInt(FlagIndent)
	}
	if noCache, _ := flags.GetBool(FlagNoCache); noCache {
		cfg.Cache.Enabled = false
	}
	return cfg.Validate()
}
