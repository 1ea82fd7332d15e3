package outfile

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// FloatWidth is the size of a C double.
const FloatWidth = 8

// source is the byte stream both cursors draw from. Reads are served in the
// order they are issued, so the cursors never overlap.
type source struct {
	r      io.Reader
	offset int64
}

func (s *source) read(buf []byte) error {
	n, err := io.ReadFull(s.r, buf)
	s.offset += int64(n)
	return err
}

type cursor struct {
	src  *source
	buf  []byte
	pos  int
	done bool
}

// next returns the next element-sized chunk, or io.EOF once fewer bytes
// remain than one element. A cursor that hit the end stays there.
func (c *cursor) next() ([]byte, error) {
	if c.done {
		return nil, io.EOF
	}
	err := c.src.read(c.buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		c.done = true
		return nil, io.EOF
	}
	if err != nil {
		return nil, errors.Wrap(err, "error reading stream")
	}
	c.pos++
	return c.buf, nil
}

// Pos returns how many elements this cursor has produced.
func (c *cursor) Pos() int {
	return c.pos
}

// Offset returns the byte offset of the shared stream, which is where the
// next element of either cursor starts.
func (c *cursor) Offset() int64 {
	return c.src.offset
}

type IntCursor struct {
	cursor
	width int
	order binary.ByteOrder
}

// Next decodes the next signed integer.
func (c *IntCursor) Next() (int64, error) {
	b, err := c.next()
	if err != nil {
		return 0, err
	}
	switch c.width {
	case 2:
		return int64(int16(c.order.Uint16(b))), nil
	case 4:
		return int64(int32(c.order.Uint32(b))), nil
	default:
		return int64(c.order.Uint64(b)), nil
	}
}

type FloatCursor struct {
	cursor
	order binary.ByteOrder
}

// Next decodes the next double.
func (c *FloatCursor) Next() (float64, error) {
	b, err := c.next()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(c.order.Uint64(b)), nil
}

// NewCursors returns an integer and a float cursor reading from r.
func NewCursors(r io.Reader, intWidth int, order binary.ByteOrder) (*IntCursor, *FloatCursor, error) {
	if err := ValidateIntWidth(intWidth); err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, errors.New("byte order must be set")
	}

	src := &source{r: r}
	ints := &IntCursor{
		cursor: cursor{
			src: src,
			buf: make([]byte, intWidth),
		},
		width: intWidth,
		order: order,
	}
	floats := &FloatCursor{
		cursor: cursor{
			src: src,
			buf: make([]byte, FloatWidth),
		},
		order: order,
	}
	return ints, floats, nil
}

func ValidateIntWidth(width int) error {
	switch width {
	case 2, 4, 8:
		return nil
	default:
		return errors.Errorf("unsupported integer width %d, must be 2, 4 or 8", width)
	}
}

// ByteOrderName returns "little" or "big" for order, resolving the native
// order to the host's.
func ByteOrderName(order binary.ByteOrder) string {
	b := make([]byte, 2)
	order.PutUint16(b, 1)
	if b[0] == 1 {
		return "little"
	}
	return "big"
}

// ParseByteOrder maps "native", "little" or "big" to a binary.ByteOrder.
func ParseByteOrder(name string) (binary.ByteOrder, error) {
	switch name {
	case "", "native":
		return binary.NativeEndian, nil
	case "little":
		return binary.LittleEndian, nil
	case "big":
		return binary.BigEndian, nil
	default:
		return nil, errors.Errorf("invalid byte order %q", name)
	}
}
