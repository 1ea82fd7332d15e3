package grid

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Raw holds the arrays of one NaSt2D dump exactly as they were decoded.
type Raw struct {
	IMax, JMax int
	U          *Array[float64]
	V          *Array[float64]
	P          *Array[float64]
	T          *Array[float64]
	Flags      *Array[Flag]
}

func (r *Raw) Size() Size {
	return SizeFor(r.IMax, r.JMax)
}

// Validate checks that every array matches (imax+2, jmax+2).
func (r *Raw) Validate() error {
	if err := ValidateDimensions(int64(r.IMax), int64(r.JMax)); err != nil {
		return err
	}
	return checkShapes(r.Size(),
		shapeOf("u", r.U),
		shapeOf("v", r.V),
		shapeOf("pressure", r.P),
		shapeOf("temperature", r.T),
		shapeOf("flags", r.Flags),
	)
}

type fieldShape struct {
	name string
	size *Size
}

func shapeOf[T any](name string, a *Array[T]) fieldShape {
	if a == nil {
		return fieldShape{name: name}
	}
	s := a.Size()
	return fieldShape{name: name, size: &s}
}

func checkShapes(want Size, fields ...fieldShape) error {
	for _, f := range fields {
		if f.size == nil {
			return errors.Errorf("field %s is missing", f.name)
		}
		if *f.size != want {
			return &DimensionMismatchError{Field: f.name, Want: want, Got: *f.size}
		}
	}
	return nil
}

// SimulationGrid is a fully classified grid. It is not modified after
// construction.
type SimulationGrid struct {
	size        Size
	u           *Array[float64]
	v           *Array[float64]
	pressure    *Array[float64]
	temperature *Array[float64]
	cellType    *Array[Cell]
	boundaries  []Index
}

// Reconstruct classifies every cell of raw with classify. The scalar fields
// are shared with raw, not copied.
func Reconstruct(raw *Raw, classify Classifier) (*SimulationGrid, error) {
	if err := raw.Validate(); err != nil {
		return nil, err
	}
	if classify == nil {
		classify = ChannelPreset
	}

	size := raw.Size()
	cells := NewArray[Cell](size)
	for x := 0; x < size[0]; x++ {
		for y := 0; y < size[1]; y++ {
			cells.Set(x, y, classify(CellContext{
				X:        x,
				Y:        y,
				IMax:     raw.IMax,
				JMax:     raw.JMax,
				Flag:     raw.Flags.At(x, y),
				Velocity: Velocity{raw.U.At(x, y), raw.V.At(x, y)},
			}))
		}
	}

	g := &SimulationGrid{
		size:        size,
		u:           raw.U,
		v:           raw.V,
		pressure:    raw.P,
		temperature: raw.T,
		cellType:    cells,
	}
	g.rebuildBoundaryList()
	return g, nil
}

// Empty returns an all-fluid grid of the given stored size with zeroed
// fields.
func Empty(size Size) *SimulationGrid {
	g := &SimulationGrid{
		size:        size,
		u:           NewArray[float64](size),
		v:           NewArray[float64](size),
		pressure:    NewArray[float64](size),
		temperature: NewArray[float64](size),
		cellType:    NewFilledArray(size, FluidCell()),
	}
	g.rebuildBoundaryList()
	return g
}

func (g *SimulationGrid) Size() Size {
	return g.size
}

func (g *SimulationGrid) U() *Array[float64] {
	return g.u
}

func (g *SimulationGrid) V() *Array[float64] {
	return g.v
}

func (g *SimulationGrid) Pressure() *Array[float64] {
	return g.pressure
}

// Temperature is nil for grids read back from JSON, since the document
// does not carry it.
func (g *SimulationGrid) Temperature() *Array[float64] {
	return g.temperature
}

func (g *SimulationGrid) CellTypes() *Array[Cell] {
	return g.cellType
}

// Boundaries returns the index of every boundary cell, ordered by x and
// then y.
func (g *SimulationGrid) Boundaries() []Index {
	return g.boundaries
}

func (g *SimulationGrid) rebuildBoundaryList() {
	g.boundaries = g.boundaries[:0]
	// row-major iteration already yields (x, y) order
	for x := 0; x < g.size[0]; x++ {
		for y := 0; y < g.size[1]; y++ {
			if g.cellType.At(x, y).IsBoundary() {
				g.boundaries = append(g.boundaries, Index{x, y})
			}
		}
	}
}

func (g *SimulationGrid) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Simulation grid %dx%d\n", g.size[0], g.size[1])
	fmt.Fprintf(&sb, "Boundary cells: %d\n", len(g.boundaries))
	for x := 0; x < g.size[0]; x++ {
		row := g.cellType.Row(x)
		names := make([]string, len(row))
		for i, c := range row {
			names[i] = c.Kind.String()
		}
		fmt.Fprintf(&sb, "  [%s]\n", strings.Join(names, ", "))
	}
	return sb.String()
}

// document is the serialized form. Fields are declared in key order so the
// output is sorted.
type document struct {
	CellType *Array[Cell]    `json:"cell_type"`
	Pressure *Array[float64] `json:"pressure"`
	Size     Size            `json:"size"`
	U        *Array[float64] `json:"u"`
	V        *Array[float64] `json:"v"`
}

func (g *SimulationGrid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.document())
}

func (g *SimulationGrid) document() document {
	return document{
		CellType: g.cellType,
		Pressure: g.pressure,
		Size:     g.size,
		U:        g.u,
		V:        g.v,
	}
}

// WriteJSON writes the grid document to w. An empty indent produces
// compact output.
func (g *SimulationGrid) WriteJSON(w io.Writer, indent string) error {
	enc := json.NewEncoder(w)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(g.document()); err != nil {
		return errors.Wrap(err, "error encoding grid")
	}
	return nil
}

// ReadGrid parses a grid document and checks that every field matches the
// declared size.
func ReadGrid(r io.Reader) (*SimulationGrid, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "error decoding grid")
	}

	err := checkShapes(doc.Size,
		shapeOf("u", doc.U),
		shapeOf("v", doc.V),
		shapeOf("pressure", doc.Pressure),
		shapeOf("cell_type", doc.CellType),
	)
	if err != nil {
		return nil, err
	}

	g := &SimulationGrid{
		size:     doc.Size,
		u:        doc.U,
		v:        doc.V,
		pressure: doc.Pressure,
		cellType: doc.CellType,
	}
	g.rebuildBoundaryList()
	return g, nil
}
