package grid

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func filled(size Size, val float64) *Array[float64] {
	return NewFilledArray(size, val)
}

// smallRaw is a 3x3 grid with a single fluid cell in the middle and an
// inflow velocity of 2.0 at (0, 1).
func smallRaw() *Raw {
	size := SizeFor(1, 1)
	u := filled(size, 0)
	u.Set(0, 1, 2.0)
	flags := NewFilledArray(size, FlagBoundary)
	flags.Set(1, 1, FlagFluid)
	return &Raw{
		IMax:  1,
		JMax:  1,
		U:     u,
		V:     filled(size, 0),
		P:     filled(size, 1),
		T:     filled(size, 0),
		Flags: flags,
	}
}

func TestReconstruct_SmallChannel(t *testing.T) {
	g, err := Reconstruct(smallRaw(), ChannelPreset)
	require.NoError(t, err)
	require.Equal(t, Size{3, 3}, g.Size())

	cells := g.CellTypes()
	require.Equal(t, InflowCell(Velocity{2.0, 0.0}), cells.At(0, 1))
	require.Equal(t, OutflowCell(), cells.At(2, 1))
	require.Equal(t, FluidCell(), cells.At(1, 1))
	for _, idx := range []Index{{0, 0}, {0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 2}} {
		require.Equal(t, NoSlipCell(), cells.At(idx[0], idx[1]), "cell %v", idx)
	}

	require.Equal(t, []Index{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 2},
		{2, 0}, {2, 1}, {2, 2},
	}, g.Boundaries())

	// scalar fields pass through untouched
	require.Equal(t, 2.0, g.U().At(0, 1))
	require.Equal(t, 1.0, g.Pressure().At(2, 2))
	require.NotNil(t, g.Temperature())
}

func TestReconstruct_NilClassifierUsesChannel(t *testing.T) {
	g, err := Reconstruct(smallRaw(), nil)
	require.NoError(t, err)
	require.Equal(t, OutflowCell(), g.CellTypes().At(2, 1))
}

func TestReconstruct_ClosedPreset(t *testing.T) {
	g, err := Reconstruct(smallRaw(), ClosedPreset)
	require.NoError(t, err)
	counts := CountCells(g.CellTypes())
	require.Equal(t, 1, counts[CellFluid])
	require.Equal(t, 8, counts[CellNoSlip])
	require.Equal(t, 0, counts[CellInflow])
}

func TestReconstruct_DimensionMismatch(t *testing.T) {
	raw := smallRaw()
	raw.P = filled(Size{3, 4}, 0)
	_, err := Reconstruct(raw, ChannelPreset)
	require.Error(t, err)
	var mismatch *DimensionMismatchError
	require.True(t, errors.As(err, &mismatch))
	require.Equal(t, "pressure", mismatch.Field)
	require.Equal(t, Size{3, 3}, mismatch.Want)
	require.Equal(t, Size{3, 4}, mismatch.Got)

	raw = smallRaw()
	raw.Flags = nil
	_, err = Reconstruct(raw, ChannelPreset)
	require.Error(t, err)
	require.Contains(t, err.Error(), "field flags is missing")
}

func TestReconstruct_InvalidDimensions(t *testing.T) {
	raw := smallRaw()
	raw.JMax = 0
	_, err := Reconstruct(raw, ChannelPreset)
	var invalid *InvalidDimensionsError
	require.True(t, errors.As(err, &invalid))
}

func TestGrid_RoundTrip(t *testing.T) {
	size := SizeFor(3, 2)
	raw := &Raw{
		IMax:  3,
		JMax:  2,
		U:     NewArray[float64](size),
		V:     NewArray[float64](size),
		P:     NewArray[float64](size),
		T:     NewArray[float64](size),
		Flags: NewFilledArray(size, FlagFluid),
	}
	for i := range raw.U.Data() {
		raw.U.Data()[i] = math.Pi * float64(i)
		raw.V.Data()[i] = -1 / float64(i+3)
		raw.P.Data()[i] = math.Nextafter(1, 2) * float64(i)
	}
	for x := 0; x < size[0]; x++ {
		raw.Flags.Set(x, 0, FlagBoundary)
		raw.Flags.Set(x, size[1]-1, FlagBoundary)
	}
	for y := 0; y < size[1]; y++ {
		raw.Flags.Set(0, y, FlagBoundary)
		raw.Flags.Set(size[0]-1, y, FlagBoundary)
	}

	g, err := Reconstruct(raw, ChannelPreset)
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	require.NoError(t, g.WriteJSON(buf, "  "))
	require.True(t, strings.HasPrefix(buf.String(), "{\n  \"cell_type\": {"))

	parsed, err := ReadGrid(buf)
	require.NoError(t, err)
	require.Equal(t, g.Size(), parsed.Size())
	require.Equal(t, g.U().Data(), parsed.U().Data())
	require.Equal(t, g.V().Data(), parsed.V().Data())
	require.Equal(t, g.Pressure().Data(), parsed.Pressure().Data())
	require.Equal(t, g.CellTypes().Data(), parsed.CellTypes().Data())
	require.Equal(t, g.Boundaries(), parsed.Boundaries())
	require.Nil(t, parsed.Temperature())
}

func TestGrid_WriteJSONKeys(t *testing.T) {
	g, err := Reconstruct(smallRaw(), ChannelPreset)
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	require.NoError(t, g.WriteJSON(buf, ""))
	require.JSONEq(t, `{
		"size": [3, 3],
		"u": {"v": 1, "dim": [3, 3], "data": [0, 2, 0, 0, 0, 0, 0, 0, 0]},
		"v": {"v": 1, "dim": [3, 3], "data": [0, 0, 0, 0, 0, 0, 0, 0, 0]},
		"pressure": {"v": 1, "dim": [3, 3], "data": [1, 1, 1, 1, 1, 1, 1, 1, 1]},
		"cell_type": {"v": 1, "dim": [3, 3], "data": [
			{"Boundary": "NoSlip"},
			{"Boundary": {"Inflow": {"velocity": [2.0, 0.0]}}},
			{"Boundary": "NoSlip"},
			{"Boundary": "NoSlip"},
			"Fluid",
			{"Boundary": "NoSlip"},
			{"Boundary": "NoSlip"},
			{"Boundary": "Outflow"},
			{"Boundary": "NoSlip"}
		]}
	}`, buf.String())

	// keys are sorted inside every record, not only at the top level
	doc := buf.String()
	require.True(t, strings.HasPrefix(doc, `{"cell_type":{"data":[{"Boundary":"NoSlip"},`), doc)
	require.Contains(t, doc, `"pressure":{"data":[1,1,1,1,1,1,1,1,1],"dim":[3,3],"v":1},"size":[3,3],`)
	require.Contains(t, doc, `"u":{"data":[0,2,0,0,0,0,0,0,0],"dim":[3,3],"v":1},"v":{"data":`)
}

func TestGrid_WriteJSONNonFinite(t *testing.T) {
	for _, val := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		raw := smallRaw()
		raw.P.Set(1, 1, val)
		g, err := Reconstruct(raw, ChannelPreset)
		require.NoError(t, err)

		buf := new(bytes.Buffer)
		err = g.WriteJSON(buf, "  ")
		require.Error(t, err)
		require.Contains(t, err.Error(), "error encoding grid")
	}
}

func TestReadGrid_Errors(t *testing.T) {
	_, err := ReadGrid(strings.NewReader(`{"size": [1, 1]}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "field u is missing")

	doc := `{
		"size": [1, 2],
		"u": {"v": 1, "dim": [1, 2], "data": [0, 0]},
		"v": {"v": 1, "dim": [1, 2], "data": [0, 0]},
		"pressure": {"v": 1, "dim": [2, 1], "data": [0, 0]},
		"cell_type": {"v": 1, "dim": [1, 2], "data": ["Fluid", "Fluid"]}
	}`
	_, err = ReadGrid(strings.NewReader(doc))
	var mismatch *DimensionMismatchError
	require.True(t, errors.As(err, &mismatch))
	require.Equal(t, "pressure", mismatch.Field)

	_, err = ReadGrid(strings.NewReader(`not json`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "error decoding grid")
}

func TestEmpty(t *testing.T) {
	size := Size{5, 7}
	g := Empty(size)
	require.Equal(t, size, g.Size())
	require.Equal(t, size, g.Pressure().Size())
	require.Equal(t, size, g.U().Size())
	require.Equal(t, size, g.V().Size())
	require.Equal(t, size, g.CellTypes().Size())
	require.Empty(t, g.Boundaries())
	require.Contains(t, g.String(), "Simulation grid 5x7")
}
