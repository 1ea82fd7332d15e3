package cli

const (
	FlagHome         = "home"
	FlagLogLevel     = "log-level"
	FlagOutput       = "output"
	FlagIntWidth     = "int-width"
	FlagByteOrder    = "byte-order"
	FlagLenientFlags = "lenient-flags"
	FlagPreset       = "preset"
	FlagIndent       = "indent"
	FlagNoCache      = "no-cache"
	FlagWorkers      = "workers"
)
