package grid

import (
	"gonum.org/v1/gonum/floats"
)

type FieldStats struct {
	Min  float64
	Max  float64
	Mean float64
}

// Summarize computes the range and mean of a scalar field, halo included.
func Summarize(a *Array[float64]) FieldStats {
	data := a.Data()
	if len(data) == 0 {
		return FieldStats{}
	}
	return FieldStats{
		Min:  floats.Min(data),
		Max:  floats.Max(data),
		Mean: floats.Sum(data) / float64(len(data)),
	}
}

// CountCells tallies classified cells by kind.
func CountCells(cells *Array[Cell]) map[CellKind]int {
	counts := map[CellKind]int{
		CellFluid:   0,
		CellInflow:  0,
		CellOutflow: 0,
		CellNoSlip:  0,
	}
	for _, c := range cells.Data() {
		counts[c.Kind]++
	}
	return counts
}
