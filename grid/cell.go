package grid

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// Velocity is a (u, v) pair.
type Velocity [2]float64

type CellKind uint8

const (
	CellFluid CellKind = iota
	CellInflow
	CellOutflow
	CellNoSlip
)

func (k CellKind) String() string {
	switch k {
	case CellFluid:
		return "Fluid"
	case CellInflow:
		return "Inflow"
	case CellOutflow:
		return "Outflow"
	case CellNoSlip:
		return "NoSlip"
	default:
		return fmt.Sprintf("CellKind(%d)", uint8(k))
	}
}

// Cell is the classified type of one grid cell. Velocity is only
// meaningful for inflow cells.
type Cell struct {
	Kind     CellKind
	Velocity Velocity
}

func FluidCell() Cell {
	return Cell{Kind: CellFluid}
}

func InflowCell(velocity Velocity) Cell {
	return Cell{Kind: CellInflow, Velocity: velocity}
}

func OutflowCell() Cell {
	return Cell{Kind: CellOutflow}
}

func NoSlipCell() Cell {
	return Cell{Kind: CellNoSlip}
}

func (c Cell) IsBoundary() bool {
	return c.Kind != CellFluid
}

func (c Cell) String() string {
	if c.Kind == CellInflow {
		return fmt.Sprintf("Boundary(Inflow { velocity: [%v, %v] })", c.Velocity[0], c.Velocity[1])
	}
	if c.IsBoundary() {
		return fmt.Sprintf("Boundary(%s)", c.Kind)
	}
	return c.Kind.String()
}

type inflowJSON struct {
	Velocity Velocity `json:"velocity"`
}

type boundaryJSON struct {
	Boundary json.RawMessage `json:"Boundary"`
}

// MarshalJSON writes the externally tagged layout the fixture consumer
// expects: "Fluid", {"Boundary": "NoSlip"}, {"Boundary": "Outflow"} or
// {"Boundary": {"Inflow": {"velocity": [u, v]}}}.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellFluid:
		return json.Marshal(c.Kind.String())
	case CellInflow:
		return json.Marshal(map[string]map[string]inflowJSON{
			"Boundary": {
				"Inflow": {Velocity: c.Velocity},
			},
		})
	case CellOutflow, CellNoSlip:
		return json.Marshal(map[string]string{
			"Boundary": c.Kind.String(),
		})
	default:
		return nil, errors.Errorf("cannot encode cell kind %s", c.Kind)
	}
}

func (c *Cell) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var tag string
		if err := json.Unmarshal(b, &tag); err != nil {
			return err
		}
		if tag != CellFluid.String() {
			return errors.Errorf("unknown cell type %q", tag)
		}
		*c = FluidCell()
		return nil
	}

	var outer boundaryJSON
	if err := json.Unmarshal(b, &outer); err != nil {
		return errors.Wrap(err, "error decoding cell type")
	}
	if outer.Boundary == nil {
		return errors.New("cell type object has no Boundary variant")
	}

	inner := bytes.TrimSpace(outer.Boundary)
	if len(inner) > 0 && inner[0] == '"' {
		var tag string
		if err := json.Unmarshal(inner, &tag); err != nil {
			return err
		}
		switch tag {
		case CellOutflow.String():
			*c = OutflowCell()
		case CellNoSlip.String():
			*c = NoSlipCell()
		default:
			return errors.Errorf("unknown boundary type %q", tag)
		}
		return nil
	}

	var inflow struct {
		Inflow *inflowJSON `json:"Inflow"`
	}
	if err := json.Unmarshal(inner, &inflow); err != nil {
		return errors.Wrap(err, "error decoding boundary type")
	}
	if inflow.Inflow == nil {
		return errors.Errorf("unknown boundary type %s", string(inner))
	}
	*c = InflowCell(inflow.Inflow.Velocity)
	return nil
}
