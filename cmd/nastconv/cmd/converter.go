package cmd

import (
	"io"
	"io/ioutil"
	"os"

	"nastconv/cli"
	"nastconv/config"
	"nastconv/convert"
	"nastconv/log"
	"nastconv/store"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/syndtr/goleveldb/leveldb"
)

const stdinName = "-"

var stdin = os.Stdin

var lgr = log.WithModule("cli")

// newConverter builds a converter from the loaded config and the command's
// flags. The returned func closes the fixture cache, if one was opened.
func newConverter(cmd *cobra.Command, useCache bool) (*convert.Converter, func(), error) {
	c := *cfg
	if err := cli.ApplyConvertFlags(cmd, &c); err != nil {
		return nil, nil, err
	}
	dec, err := c.NewDecoder()
	if err != nil {
		return nil, nil, err
	}

	var db *leveldb.DB
	closer := func() {}
	if useCache && c.Cache.Enabled {
		db, err = openCache(configuredHomeDir)
		if err != nil {
			// another process may hold the cache lock
			lgr.Warn("fixture cache unavailable, converting without it", "err", err)
			db = nil
		}
		if db != nil {
			closer = func() {
				if err := db.Close(); err != nil {
					lgr.Error("error closing fixture cache", "err", err)
				}
			}
		}
	}

	conv, err := convert.NewConverter(&convert.ConverterOpts{
		Decoder: dec,
		Preset:  c.Grid.Preset,
		Indent:  c.Output.Indent,
		Cache:   db,
	})
	if err != nil {
		closer()
		return nil, nil, err
	}
	return conv, closer, nil
}

// openCache opens the fixture cache in homeDir. It returns nil if the home
// directory was never initialized.
func openCache(homeDir string) (*leveldb.DB, error) {
	exists, err := config.HomeDirExists(homeDir)
	if err != nil {
		return nil, err
	}
	if !exists {
		lgr.Debug("home directory not initialized, skipping fixture cache", "home", homeDir)
		return nil, nil
	}
	db, err := store.Open(config.ExpandCachePath(homeDir))
	if err != nil {
		return nil, errors.Wrap(err, "error opening fixture cache")
	}
	return db, nil
}

// openInput opens a dump file, or stdin for "-".
func openInput(name string) (io.ReadCloser, string, error) {
	if name != stdinName {
		f, err := os.Open(name)
		if err != nil {
			return nil, "", errors.Wrap(err, "error opening input")
		}
		return f, name, nil
	}
	if isatty.IsTerminal(stdin.Fd()) {
		return nil, "", errors.New("refusing to read a binary dump from a terminal")
	}
	return ioutil.NopCloser(stdin), "stdin", nil
}
