package convert

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"strconv"
	"strings"
	"time"

	"nastconv/grid"
	"nastconv/log"
	"nastconv/outfile"
	"nastconv/store"
	"nastconv/version"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
)

type ConverterOpts struct {
	Decoder *outfile.ConfiguredDecoder
	Preset  string
	Indent  int
	// Cache is optional. When set, converted documents are stored and
	// reused for identical input and options.
	Cache *leveldb.DB
}

// Result is one converted document.
type Result struct {
	Source   string
	IMax     int
	JMax     int
	Document []byte
	Cached   bool
}

type Converter struct {
	dec      *outfile.ConfiguredDecoder
	preset   string
	classify grid.Classifier
	indent   string
	cache    *leveldb.DB
	lgr      log.Logger
}

func NewConverter(opts *ConverterOpts) (*Converter, error) {
	dec := opts.Decoder
	if dec == nil {
		dec = outfile.NewDecoder()
	}
	preset := opts.Preset
	if preset == "" {
		preset = grid.DefaultPreset
	}
	classify, err := grid.LookupPreset(preset)
	if err != nil {
		return nil, err
	}
	if opts.Indent < 0 {
		return nil, errors.New("indent cannot be negative")
	}
	return &Converter{
		dec:      dec,
		preset:   preset,
		classify: classify,
		indent:   strings.Repeat(" ", opts.Indent),
		cache:    opts.Cache,
		lgr:      log.WithModule("convert"),
	}, nil
}

// Convert reads one dump from r and renders its JSON document. source only
// labels the result.
func (c *Converter) Convert(source string, r io.Reader) (*Result, error) {
	if c.cache == nil {
		res, err := c.render(source, r)
		if err != nil {
			return nil, errors.Wrapf(err, "error converting %s", source)
		}
		return res, nil
	}

	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading %s", source)
	}
	key := store.DeriveKey(data, c.cacheParams()...)
	fixture, err := store.GetFixture(c.cache, key)
	if err != nil {
		c.lgr.Warn("error reading fixture cache", "source", source, "err", err)
	} else if fixture != nil {
		c.lgr.Debug("fixture cache hit", "source", source, "key", key.String())
		return &Result{
			Source:   source,
			IMax:     fixture.IMax,
			JMax:     fixture.JMax,
			Document: fixture.Document,
			Cached:   true,
		}, nil
	}

	res, err := c.render(source, bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "error converting %s", source)
	}
	err = store.WithTx(c.cache, func(tx *leveldb.Transaction) error {
		return store.SetFixtureTx(tx, key, &store.Fixture{
			Source:      source,
			IMax:        res.IMax,
			JMax:        res.JMax,
			ConvertedAt: time.Now(),
			Document:    res.Document,
		})
	})
	if err != nil {
		// the document is still good
		c.lgr.Warn("error caching fixture", "source", source, "err", err)
	}
	return res, nil
}

// ConvertFile converts the dump at path.
func (c *Converter) ConvertFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "error opening input")
	}
	defer f.Close()
	return c.Convert(path, f)
}

// Reconstruct decodes one dump and classifies its cells without rendering.
func (c *Converter) Reconstruct(r io.Reader) (*grid.SimulationGrid, error) {
	raw, err := c.dec.Decode(r)
	if err != nil {
		return nil, err
	}
	return grid.Reconstruct(raw, c.classify)
}

func (c *Converter) render(source string, r io.Reader) (*Result, error) {
	start := time.Now()
	g, err := c.Reconstruct(r)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := g.WriteJSON(&buf, c.indent); err != nil {
		return nil, err
	}
	size := g.Size()
	c.lgr.Info(
		"converted grid",
		"source", source,
		"size", size.String(),
		"boundaries", len(g.Boundaries()),
		"bytes", buf.Len(),
		"elapsed", time.Since(start),
	)
	return &Result{
		Source:   source,
		IMax:     size[0] - 2,
		JMax:     size[1] - 2,
		Document: buf.Bytes(),
	}, nil
}

// cacheParams lists every option that changes the rendered document.
func (c *Converter) cacheParams() []string {
	return []string{
		"converter=" + version.UserAgent,
		"int_width=" + strconv.Itoa(c.dec.IntWidth),
		"byte_order=" + outfile.ByteOrderName(c.dec.ByteOrder),
		"lenient_flags=" + strconv.FormatBool(c.dec.LenientFlags),
		"max_cells=" + strconv.Itoa(c.dec.MaxCells),
		"preset=" + c.preset,
		"indent=" + strconv.Itoa(len(c.indent)),
	}
}
