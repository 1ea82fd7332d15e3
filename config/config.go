package config

import (
	"io"
	"os"
	"path"

	"nastconv/grid"
	"nastconv/log"
	"nastconv/outfile"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

const ConfigFile = "config.toml"

type Config struct {
	LogLevel string        `mapstructure:"log_level"`
	Decoder  DecoderConfig `mapstructure:"decoder"`
	Grid     GridConfig    `mapstructure:"grid"`
	Output   OutputConfig  `mapstructure:"output"`
	Cache    CacheConfig   `mapstructure:"cache"`
	Batch    BatchConfig   `mapstructure:"batch"`
}

type DecoderConfig struct {
	IntWidth     int    `mapstructure:"int_width"`
	ByteOrder    string `mapstructure:"byte_order"`
	LenientFlags bool   `mapstructure:"lenient_flags"`
	MaxCells     int    `mapstructure:"max_cells"`
}

type GridConfig struct {
	Preset string `mapstructure:"preset"`
}

type OutputConfig struct {
	Indent int `mapstructure:"indent"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type BatchConfig struct {
	Workers int `mapstructure:"workers"`
}

func ReadConfig(r io.Reader) (*Config, error) {
	decoder := toml.NewDecoder(r)
	decoder.SetTagName("mapstructure")
	config := &Config{}
	if err := decoder.Decode(config); err != nil {
		return nil, errors.Wrap(err, "error decoding config file")
	}
	config.fillDefaults()
	return config, nil
}

// fillDefaults replaces settings left out of a config file. Booleans and
// the indent are taken as written, since their zero values are valid.
func (c *Config) fillDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultConfig.LogLevel
	}
	if c.Decoder.IntWidth == 0 {
		c.Decoder.IntWidth = DefaultConfig.Decoder.IntWidth
	}
	if c.Decoder.ByteOrder == "" {
		c.Decoder.ByteOrder = DefaultConfig.Decoder.ByteOrder
	}
	if c.Decoder.MaxCells == 0 {
		c.Decoder.MaxCells = DefaultConfig.Decoder.MaxCells
	}
	if c.Grid.Preset == "" {
		c.Grid.Preset = DefaultConfig.Grid.Preset
	}
	if c.Batch.Workers == 0 {
		c.Batch.Workers = DefaultConfig.Batch.Workers
	}
}

// ReadConfigFile reads the config file in homeDir. A missing file yields
// the defaults.
func ReadConfigFile(homeDir string) (*Config, error) {
	f, err := os.OpenFile(path.Join(homeDir, ConfigFile), os.O_RDONLY, 0755)
	if os.IsNotExist(err) {
		cfg := DefaultConfig
		return &cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error opening config file for reading")
	}
	defer f.Close()
	cfg, err := ReadConfig(f)
	if err != nil {
		return nil, errors.Wrap(err, "error reading config file")
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := log.NewLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "invalid log_level")
	}
	if err := outfile.ValidateIntWidth(c.Decoder.IntWidth); err != nil {
		return errors.Wrap(err, "invalid decoder.int_width")
	}
	if _, err := outfile.ParseByteOrder(c.Decoder.ByteOrder); err != nil {
		return errors.Wrap(err, "invalid decoder.byte_order")
	}
	if c.Decoder.MaxCells <= 0 {
		return errors.New("decoder.max_cells must be positive")
	}
	if _, err := grid.LookupPreset(c.Grid.Preset); err != nil {
		return errors.Wrap(err, "invalid grid.preset")
	}
	if c.Output.Indent < 0 {
		return errors.New("output.indent cannot be negative")
	}
	if c.Batch.Workers < 1 {
		return errors.New("batch.workers must be at least 1")
	}
	return nil
}

// NewDecoder builds a decoder from the [decoder] section.
func (c *Config) NewDecoder() (*outfile.ConfiguredDecoder, error) {
	order, err := outfile.ParseByteOrder(c.Decoder.ByteOrder)
	if err != nil {
		return nil, err
	}
	dec := outfile.NewDecoder()
	dec.IntWidth = c.Decoder.IntWidth
	dec.ByteOrder = order
	dec.LenientFlags = c.Decoder.LenientFlags
	dec.MaxCells = c.Decoder.MaxCells
	return dec, nil
}
