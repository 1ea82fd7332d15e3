package outfile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"nastconv/grid"
	"nastconv/log"

	"github.com/pkg/errors"
)

const (
	DefaultIntWidth = 4

	// DefaultMaxCells caps (imax+2)*(jmax+2) so that a corrupt header cannot
	// make the decoder allocate unbounded memory.
	DefaultMaxCells = 1 << 24
)

var logger = log.WithModule("outfile")

type ConfiguredDecoder struct {
	// IntWidth is sizeof(int) on the machine that wrote the dump.
	IntWidth int

	// ByteOrder is the byte order of the machine that wrote the dump.
	ByteOrder binary.ByteOrder

	// LenientFlags folds unrecognized flag codes into fluid or boundary by
	// their fluid bit instead of failing.
	LenientFlags bool

	// MaxCells is the largest grid, halo included, the decoder will accept.
	MaxCells int
}

var defaultDecoder = NewDecoder()

func NewDecoder() *ConfiguredDecoder {
	return &ConfiguredDecoder{
		IntWidth:  DefaultIntWidth,
		ByteOrder: binary.NativeEndian,
		MaxCells:  DefaultMaxCells,
	}
}

// Decode decodes a dump from r using the default decoder.
func Decode(r io.Reader) (*grid.Raw, error) {
	return defaultDecoder.Decode(r)
}

// Decode reads one dump from r. Bytes after the flag block are ignored.
func (c *ConfiguredDecoder) Decode(r io.Reader) (*grid.Raw, error) {
	ints, floats, err := NewCursors(bufio.NewReader(r), c.IntWidth, c.ByteOrder)
	if err != nil {
		return nil, err
	}

	imax, err := readScalar(ints, "imax")
	if err != nil {
		return nil, err
	}
	jmax, err := readScalar(ints, "jmax")
	if err != nil {
		return nil, err
	}
	if err := c.checkDimensions(imax, jmax); err != nil {
		return nil, err
	}

	size := grid.SizeFor(int(imax), int(jmax))
	logger.Debug("decoding grid", "imax", imax, "jmax", jmax, "size", size.String())

	raw := &grid.Raw{
		IMax: int(imax),
		JMax: int(jmax),
	}
	fields := []struct {
		name string
		dst  **grid.Array[float64]
	}{
		{"u", &raw.U},
		{"v", &raw.V},
		{"pressure", &raw.P},
		{"temperature", &raw.T},
	}
	for _, f := range fields {
		arr, err := readFloats(floats, f.name, size)
		if err != nil {
			return nil, err
		}
		*f.dst = arr
		logger.Trace("decoded field", "field", f.name, "offset", floats.Offset())
	}

	raw.Flags, err = c.readFlags(ints, size)
	if err != nil {
		return nil, err
	}
	logger.Trace("decoded field", "field", "flags", "offset", ints.Offset())
	return raw, nil
}

func (c *ConfiguredDecoder) checkDimensions(imax, jmax int64) error {
	if err := grid.ValidateDimensions(imax, jmax); err != nil {
		return err
	}
	maxCells := int64(c.MaxCells)
	if maxCells <= 0 {
		maxCells = DefaultMaxCells
	}
	if imax > maxCells-2 || jmax > maxCells-2 || (imax+2)*(jmax+2) > maxCells {
		return &grid.InvalidDimensionsError{
			IMax:   imax,
			JMax:   jmax,
			Reason: fmt.Sprintf("grid exceeds the limit of %d cells", maxCells),
		}
	}
	return nil
}

func readScalar(cur *IntCursor, field string) (int64, error) {
	off := cur.Offset()
	v, err := cur.Next()
	if err != nil {
		return 0, truncated(err, field, 0, 1, off)
	}
	return v, nil
}

func readFloats(cur *FloatCursor, field string, size grid.Size) (*grid.Array[float64], error) {
	data := make([]float64, size.Cells())
	for i := range data {
		off := cur.Offset()
		v, err := cur.Next()
		if err != nil {
			return nil, truncated(err, field, i, len(data), off)
		}
		data[i] = v
	}
	return grid.ArrayFromData(size, data)
}

func (c *ConfiguredDecoder) readFlags(cur *IntCursor, size grid.Size) (*grid.Array[grid.Flag], error) {
	data := make([]grid.Flag, size.Cells())
	for i := range data {
		off := cur.Offset()
		code, err := cur.Next()
		if err != nil {
			return nil, truncated(err, "flags", i, len(data), off)
		}
		flag, ok := grid.ParseFlag(code)
		if !ok {
			if !c.LenientFlags {
				return nil, &InvalidFlagCodeError{
					Code:   code,
					X:      i / size[1],
					Y:      i % size[1],
					Offset: off,
				}
			}
			flag = grid.FoldFlag(code)
		}
		data[i] = flag
	}
	return grid.ArrayFromData(size, data)
}

func truncated(err error, field string, index, count int, offset int64) error {
	if err != io.EOF {
		return errors.Wrapf(err, "error decoding %s", field)
	}
	return &TruncatedStreamError{
		Field:  field,
		Index:  index,
		Count:  count,
		Offset: offset,
	}
}
