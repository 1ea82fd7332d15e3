package grid

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// ArrayVersion is the version tag written with every serialized array.
const ArrayVersion = 1

// Size is the extent of a stored array, halo included: [imax+2, jmax+2].
type Size [2]int

// SizeFor returns the stored extent for an inner extent of imax by jmax.
func SizeFor(imax, jmax int) Size {
	return Size{imax + 2, jmax + 2}
}

func (s Size) Cells() int {
	return s[0] * s[1]
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s[0], s[1])
}

// Index addresses a single cell as [x, y].
type Index [2]int

// Array is a dense two-dimensional array stored row-major, so that the
// element at [x][y] lives at data[x*cols+y].
type Array[T any] struct {
	size Size
	data []T
}

func NewArray[T any](size Size) *Array[T] {
	return &Array[T]{
		size: size,
		data: make([]T, size.Cells()),
	}
}

// NewFilledArray returns an array with every element set to val.
func NewFilledArray[T any](size Size, val T) *Array[T] {
	a := NewArray[T](size)
	for i := range a.data {
		a.data[i] = val
	}
	return a
}

// ArrayFromData wraps data, which must already be laid out row-major.
func ArrayFromData[T any](size Size, data []T) (*Array[T], error) {
	if size[0] < 0 || size[1] < 0 {
		return nil, errors.Errorf("invalid array size %s", size)
	}
	if len(data) != size.Cells() {
		return nil, errors.Errorf("array of size %s needs %d elements, got %d", size, size.Cells(), len(data))
	}
	return &Array[T]{
		size: size,
		data: data,
	}, nil
}

func (a *Array[T]) Size() Size {
	return a.size
}

func (a *Array[T]) At(x, y int) T {
	return a.data[a.offset(x, y)]
}

func (a *Array[T]) Set(x, y int, val T) {
	a.data[a.offset(x, y)] = val
}

// Data returns the backing slice in row-major order.
func (a *Array[T]) Data() []T {
	return a.data
}

// Row returns row x, which shares storage with the array.
func (a *Array[T]) Row(x int) []T {
	if x < 0 || x >= a.size[0] {
		panic(fmt.Sprintf("invalid x-index: %d", x))
	}
	cols := a.size[1]
	return a.data[x*cols : (x+1)*cols]
}

func (a *Array[T]) offset(x, y int) int {
	if x < 0 || x >= a.size[0] {
		panic(fmt.Sprintf("invalid x-index: %d", x))
	}
	if y < 0 || y >= a.size[1] {
		panic(fmt.Sprintf("invalid y-index: %d", y))
	}
	return x*a.size[1] + y
}

// arrayJSON fields are declared in key order, so records come out with
// sorted keys like the rest of the document.
type arrayJSON[T any] struct {
	Data []T  `json:"data"`
	Dim  Size `json:"dim"`
	V    int  `json:"v"`
}

func (a *Array[T]) MarshalJSON() ([]byte, error) {
	data := a.data
	if data == nil {
		data = []T{}
	}
	return json.Marshal(arrayJSON[T]{
		V:    ArrayVersion,
		Dim:  a.size,
		Data: data,
	})
}

func (a *Array[T]) UnmarshalJSON(b []byte) error {
	var in arrayJSON[T]
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	if in.V != ArrayVersion {
		return errors.Errorf("unsupported array version %d", in.V)
	}
	parsed, err := ArrayFromData(in.Dim, in.Data)
	if err != nil {
		return err
	}
	*a = *parsed
	return nil
}
