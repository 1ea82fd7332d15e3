package config

import (
	"bytes"
	"io"
	"os"
	"path"
	"text/template"

	"nastconv/grid"
	"nastconv/log"
	"nastconv/outfile"

	"github.com/pkg/errors"
)

var DefaultConfig = Config{
	LogLevel: log.LevelInfo.String(),
	Decoder: DecoderConfig{
		IntWidth:     outfile.DefaultIntWidth,
		ByteOrder:    "native",
		LenientFlags: false,
		MaxCells:     outfile.DefaultMaxCells,
	},
	Grid: GridConfig{
		Preset: grid.DefaultPreset,
	},
	Output: OutputConfig{
		Indent: 2,
	},
	Cache: CacheConfig{
		Enabled: true,
	},
	Batch: BatchConfig{
		Workers: 4,
	},
}

const defaultConfigTemplateText = `# nastconv Config File

# Sets the log level. Can be one of the following values:
# - error
# - warn
# - info
# - debug
# - trace
log_level = "{{.LogLevel}}"

# Configures how cached conversions are stored in the home
# directory. Cache entries are keyed by the input bytes and
# every option below that changes the output.
[cache]
  # Reuses the stored JSON when the same dump is converted again.
  enabled = {{.Cache.Enabled}}

# Configures how NaSt2D dumps are read.
[decoder]
  # Sets the byte order the dump was written in. Can be one of
  # "native", "little" or "big".
  byte_order = "{{.Decoder.ByteOrder}}"
  # Sets sizeof(int) on the machine that ran NaSt2D. Can be 2, 4 or 8.
  int_width = {{.Decoder.IntWidth}}
  # Folds unrecognized flag codes into fluid or boundary cells by their
  # fluid bit instead of rejecting the dump.
  lenient_flags = {{.Decoder.LenientFlags}}
  # Sets the largest grid, halo cells included, that will be decoded.
  max_cells = {{.Decoder.MaxCells}}

# Configures how boundary cells are classified.
[grid]
  # Sets the wall layout the dumps were generated with. Can be one of
  # the following values:
  # - channel: inflow on the left wall, outflow on the right wall,
  #   no-slip everywhere else
  # - closed: no-slip everywhere
  preset = "{{.Grid.Preset}}"

# Configures the generated JSON.
[output]
  # Sets the number of spaces to indent by. 0 writes compact JSON.
  indent = {{.Output.Indent}}

# Configures batch conversion.
[batch]
  # Sets how many dumps are converted concurrently.
  workers = {{.Batch.Workers}}
`

var defaultConfigTemplate *template.Template

func GenerateDefaultConfigFile() []byte {
	buf := new(bytes.Buffer)
	if err := defaultConfigTemplate.Execute(buf, DefaultConfig); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func WriteDefaultConfigFile(homeDir string) error {
	f, err := os.OpenFile(path.Join(homeDir, ConfigFile), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrap(err, "error opening config file for writing")
	}
	defer f.Close()
	rd := bytes.NewReader(GenerateDefaultConfigFile())
	if _, err := io.Copy(f, rd); err != nil {
		return errors.Wrap(err, "error writing config file")
	}
	return nil
}

func init() {
	tmpl := template.New("defaultConfig")
	t, err := tmpl.Parse(defaultConfigTemplateText)
	if err != nil {
		panic(err)
	}
	defaultConfigTemplate = t
}
