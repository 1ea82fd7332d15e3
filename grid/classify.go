package grid

import (
	"sort"

	"github.com/pkg/errors"
)

// CellContext is everything a Classifier may look at for one cell.
type CellContext struct {
	X, Y       int
	IMax, JMax int
	Flag       Flag
	Velocity   Velocity
}

// Classifier maps one decoded cell to its classified type. NaSt2D does not
// record which kind of boundary a cell is, so the answer has to come from
// knowing how the scenario was generated.
type Classifier func(c CellContext) Cell

// ChannelPreset classifies cells for the channel layout used to generate
// the fixtures: the left wall is inflow and carries the decoded velocity,
// the right wall is outflow, and the top and bottom walls as well as every
// interior obstacle are no-slip. Corners belong to the top and bottom walls.
func ChannelPreset(c CellContext) Cell {
	if c.Flag.IsFluid() {
		return FluidCell()
	}
	if c.Y >= 1 && c.Y <= c.JMax {
		switch c.X {
		case 0:
			return InflowCell(c.Velocity)
		case c.IMax + 1:
			return OutflowCell()
		}
	}
	return NoSlipCell()
}

// ClosedPreset treats every boundary cell as a no-slip wall.
func ClosedPreset(c CellContext) Cell {
	if c.Flag.IsFluid() {
		return FluidCell()
	}
	return NoSlipCell()
}

const DefaultPreset = "channel"

var presets = map[string]Classifier{
	"channel": ChannelPreset,
	"closed":  ClosedPreset,
}

// LookupPreset returns the classifier registered under name.
func LookupPreset(name string) (Classifier, error) {
	c, ok := presets[name]
	if !ok {
		return nil, errors.Errorf("unknown preset %q (known presets: %v)", name, PresetNames())
	}
	return c, nil
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
