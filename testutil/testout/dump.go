package testout

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Dump is the content of a NaSt2D dump before encoding.
type Dump struct {
	IMax, JMax int64
	U, V, P, T []float64
	Flags      []int64
}

const (
	FlagBoundary int64 = 0
	FlagFluid    int64 = 16
)

// Small is a 3x3 grid with one fluid cell at [1][1] and an inflow velocity
// of 2.0 at [0][1].
func Small() *Dump {
	u := Fill(9, 0)
	u[1] = 2.0
	flags := make([]int64, 9)
	flags[4] = FlagFluid
	return &Dump{
		IMax:  1,
		JMax:  1,
		U:     u,
		V:     Fill(9, 0),
		P:     Fill(9, 1),
		T:     Fill(9, 0),
		Flags: flags,
	}
}

// Channel is an imax by jmax channel with a fluid interior and walls all
// around. Field values encode their position so misordered reads show up.
func Channel(imax, jmax int64) *Dump {
	rows, cols := imax+2, jmax+2
	n := int(rows * cols)
	d := &Dump{
		IMax:  imax,
		JMax:  jmax,
		U:     make([]float64, n),
		V:     make([]float64, n),
		P:     make([]float64, n),
		T:     make([]float64, n),
		Flags: make([]int64, n),
	}
	for x := int64(0); x < rows; x++ {
		for y := int64(0); y < cols; y++ {
			i := x*cols + y
			d.U[i] = float64(x) + float64(y)/100
			d.V[i] = -float64(x) - float64(y)/100
			d.P[i] = 1000 + float64(i)
			d.T[i] = 273.15 + float64(i)/7
			if x > 0 && x < rows-1 && y > 0 && y < cols-1 {
				d.Flags[i] = FlagFluid
			}
		}
	}
	return d
}

func Fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Bytes encodes the dump the way NaSt2D writes it.
func (d *Dump) Bytes(intWidth int, order binary.ByteOrder) []byte {
	buf := new(bytes.Buffer)
	putInt := func(v int64) {
		b := make([]byte, intWidth)
		switch intWidth {
		case 2:
			order.PutUint16(b, uint16(v))
		case 4:
			order.PutUint32(b, uint32(v))
		default:
			order.PutUint64(b, uint64(v))
		}
		buf.Write(b)
	}
	putFloats := func(vs []float64) {
		b := make([]byte, 8)
		for _, v := range vs {
			order.PutUint64(b, math.Float64bits(v))
			buf.Write(b)
		}
	}

	putInt(d.IMax)
	putInt(d.JMax)
	putFloats(d.U)
	putFloats(d.V)
	putFloats(d.P)
	putFloats(d.T)
	for _, f := range d.Flags {
		putInt(f)
	}
	return buf.Bytes()
}

// NativeBytes encodes the dump with 4-byte ints in native byte order.
func (d *Dump) NativeBytes() []byte {
	return d.Bytes(4, binary.NativeEndian)
}

// HeaderLen is the byte length of the two dimension integers.
func HeaderLen(intWidth int) int {
	return 2 * intWidth
}

// FloatBlockLen is the byte length of one float field.
func (d *Dump) FloatBlockLen() int {
	return int((d.IMax+2)*(d.JMax+2)) * 8
}
