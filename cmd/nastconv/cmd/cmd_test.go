package cmd

import (
	"bytes"
	"encoding/binary"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"nastconv/config"
	"nastconv/grid"
	"nastconv/store"
	"nastconv/testutil/testfs"
	"nastconv/testutil/testout"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// run executes the command tree with args and returns what it wrote to
// stdout. Flag values are reset first since the tree is shared.
func run(t *testing.T, args ...string) (string, error) {
	resetFlags(rootCmd)
	var buf bytes.Buffer
	rootCmd.SetOutput(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func setupHome(t *testing.T) (string, func()) {
	dir, done := testfs.NewTempDir(t)
	home := filepath.Join(dir, "home")
	out, err := run(t, "init", "--home", home)
	require.NoError(t, err)
	require.Contains(t, out, "Successfully initialized nastconv in "+home)
	return home, done
}

func TestInit(t *testing.T) {
	home, done := setupHome(t)
	defer done()

	_, err := os.Stat(filepath.Join(home, config.ConfigFile))
	require.NoError(t, err)
	_, err = os.Stat(config.ExpandCachePath(home))
	require.NoError(t, err)

	_, err = run(t, "init", "--home", home)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already initialized")
}

func TestConvert_Stdout(t *testing.T) {
	home, done := setupHome(t)
	defer done()
	in := testfs.WriteFile(t, home, "small.out", testout.Small().NativeBytes())

	out, err := run(t, "convert", "--home", home, in)
	require.NoError(t, err)
	g, err := grid.ReadGrid(bytes.NewReader([]byte(out)))
	require.NoError(t, err)
	require.Equal(t, grid.InflowCell(grid.Velocity{2, 0}), g.CellTypes().At(0, 1))
	require.Equal(t, grid.OutflowCell(), g.CellTypes().At(2, 1))
	require.Equal(t, grid.FluidCell(), g.CellTypes().At(1, 1))
	require.Equal(t, []grid.Index{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}, g.Boundaries())
}

func TestConvert_OutputFileAndCache(t *testing.T) {
	home, done := setupHome(t)
	defer done()
	dump := testout.Channel(3, 4)
	in := testfs.WriteFile(t, home, "channel.out", dump.Bytes(8, binary.BigEndian))
	outPath := filepath.Join(home, "channel.json")

	out, err := run(t, "convert", "--home", home, "--int-width", "8", "--byte-order", "big", "-o", outPath, in)
	require.NoError(t, err)
	require.Empty(t, out)
	data, err := ioutil.ReadFile(outPath)
	require.NoError(t, err)
	g, err := grid.ReadGrid(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, dump.P, g.Pressure().Data())

	// a wrong int width reads garbage dimensions
	_, err = run(t, "convert", "--home", home, in)
	require.Error(t, err)

	db, err := store.Open(config.ExpandCachePath(home))
	require.NoError(t, err)
	count, err := store.CountFixtures(db)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.NoError(t, db.Close())

	out, err = run(t, "cache", "clear", "--home", home)
	require.NoError(t, err)
	require.Contains(t, out, "Removed 1 cached fixtures")

	db, err = store.Open(config.ExpandCachePath(home))
	require.NoError(t, err)
	count, err = store.CountFixtures(db)
	require.NoError(t, err)
	require.Equal(t, 0, count)
	require.NoError(t, db.Close())
}

func TestConvert_CacheLocked(t *testing.T) {
	home, done := setupHome(t)
	defer done()
	in := testfs.WriteFile(t, home, "small.out", testout.Small().NativeBytes())
	outPath := filepath.Join(home, "small.json")

	// another process converting at the same time holds the lock
	db, err := store.Open(config.ExpandCachePath(home))
	require.NoError(t, err)
	defer db.Close()

	_, err = run(t, "convert", "--home", home, "-o", outPath, in)
	require.NoError(t, err)
	data, err := ioutil.ReadFile(outPath)
	require.NoError(t, err)
	_, err = grid.ReadGrid(bytes.NewReader(data))
	require.NoError(t, err)

	count, err := store.CountFixtures(db)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestConvert_Errors(t *testing.T) {
	home, done := setupHome(t)
	defer done()

	_, err := run(t, "convert", "--home", home, filepath.Join(home, "missing.out"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "error opening input")

	dump := testout.Small()
	dump.Flags[4] = 0x0013
	in := testfs.WriteFile(t, home, "bad.out", dump.NativeBytes())
	outPath := filepath.Join(home, "bad.json")
	_, err = run(t, "convert", "--home", home, "-o", outPath, in)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid flag code 0x13")
	_, statErr := os.Stat(outPath)
	require.True(t, os.IsNotExist(statErr))

	_, err = run(t, "convert", "--home", home, "--lenient-flags", "-o", outPath, in)
	require.NoError(t, err)

	_, err = run(t, "convert", "--home", home, "--preset", "nope", in)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid grid.preset")
}

func TestConvert_Stdin(t *testing.T) {
	home, done := setupHome(t)
	defer done()
	in := testfs.WriteFile(t, home, "small.out", testout.Small().NativeBytes())

	f, err := os.Open(in)
	require.NoError(t, err)
	defer f.Close()
	prev := stdin
	stdin = f
	defer func() { stdin = prev }()

	out, err := run(t, "convert", "--home", home, "--no-cache", "-")
	require.NoError(t, err)
	_, err = grid.ReadGrid(bytes.NewReader([]byte(out)))
	require.NoError(t, err)
}

func TestConvert_WithoutHome(t *testing.T) {
	dir, done := testfs.NewTempDir(t)
	defer done()
	home := filepath.Join(dir, "never-initialized")
	in := testfs.WriteFile(t, dir, "small.out", testout.Small().NativeBytes())

	out, err := run(t, "convert", "--home", home, in)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	_, err = os.Stat(home)
	require.True(t, os.IsNotExist(err))

	_, err = run(t, "cache", "clear", "--home", home)
	require.Error(t, err)
}

func TestBatch(t *testing.T) {
	home, done := setupHome(t)
	defer done()
	a := testfs.WriteFile(t, home, "a.out", testout.Channel(2, 2).NativeBytes())
	b := testfs.WriteFile(t, home, "b.out", testout.Small().NativeBytes())
	outDir := filepath.Join(home, "fixtures")

	out, err := run(t, "batch", "--home", home, "--workers", "2", outDir, a, b)
	require.NoError(t, err)
	require.Contains(t, out, "Converted 2 files")
	require.Equal(t, []string{"a.json", "b.json"}, testfs.ListDir(t, outDir))

	out, err = run(t, "batch", "--home", home, outDir, a, b)
	require.NoError(t, err)
	require.Contains(t, out, "(2 from cache)")

	_, err = run(t, "batch", "--home", home, "--workers", "0", outDir, a)
	require.Error(t, err)
}

func TestInspect(t *testing.T) {
	home, done := setupHome(t)
	defer done()
	in := testfs.WriteFile(t, home, "small.out", testout.Small().NativeBytes())

	out, err := run(t, "inspect", "--home", home, in)
	require.NoError(t, err)
	require.Contains(t, out, "3x3 grid (imax=1, jmax=1), 8 boundary cells")
	require.Contains(t, out, "CELL TYPE")
	require.Contains(t, out, "temperature")
	require.Regexp(t, `NoSlip\s+\|\s+6`, out)
	require.Regexp(t, `Inflow\s+\|\s+1`, out)
	require.Regexp(t, `u\s+\|\s+0\s+\|\s+2\s+\|\s+0\.222222`, out)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "nastconv ")
}
