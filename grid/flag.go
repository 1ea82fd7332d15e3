package grid

import "fmt"

// Flag is the per-cell code NaSt2D writes into its FLAG array. Only the
// fluid bit carries meaning here; every boundary cell shares the zero code.
type Flag int64

const (
	FlagBoundary Flag = 0
	FlagFluid    Flag = 0x0010
)

// ParseFlag accepts exactly the recognized codes.
func ParseFlag(code int64) (Flag, bool) {
	switch Flag(code) {
	case FlagBoundary, FlagFluid:
		return Flag(code), true
	default:
		return FlagBoundary, false
	}
}

// FoldFlag keeps the fluid bit and drops everything else, so the neighbour
// bits NaSt2D sets on obstacle cells collapse into FlagBoundary.
func FoldFlag(code int64) Flag {
	return Flag(code) & FlagFluid
}

func (f Flag) IsFluid() bool {
	return f == FlagFluid
}

func (f Flag) String() string {
	switch f {
	case FlagBoundary:
		return "BOUNDARY"
	case FlagFluid:
		return "FLUID"
	default:
		return fmt.Sprintf("Flag(%#x)", int64(f))
	}
}
