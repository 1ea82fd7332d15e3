package outfile

import "fmt"

// TruncatedStreamError is returned when the stream ends before a field has
// all of its elements.
type TruncatedStreamError struct {
	Field  string
	Index  int
	Count  int
	Offset int64
}

func (e *TruncatedStreamError) Error() string {
	return fmt.Sprintf("stream truncated at byte offset %d: %s needs %d elements, got %d", e.Offset, e.Field, e.Count, e.Index)
}

// InvalidFlagCodeError is returned for a flag integer that is neither the
// fluid nor the boundary code.
type InvalidFlagCodeError struct {
	Code   int64
	X, Y   int
	Offset int64
}

func (e *InvalidFlagCodeError) Error() string {
	return fmt.Sprintf("invalid flag code %#x at cell [%d][%d] (byte offset %d)", e.Code, e.X, e.Y, e.Offset)
}
