package circuit

import (
	"fmt"

	"github.com/pimlab/bscompile/pkg/bserr"
	"github.com/pimlab/bscompile/pkg/blif"
	"github.com/pimlab/bscompile/pkg/gate"
)

// FromBLIF builds a DAG from a parsed BLIF module (spec §4.2's translation
// step): one in_port gate per declared input, one out_port gate per declared
// output, one gate node per `.gate` record, and wires connecting each gate
// input to the node that currently drives that wire name. A wire driven by
// nothing yet (an as-yet-unseen forward reference) is an error — BLIF gate
// order is expected to be a valid topological order on entry, matching
// blif_dag.py's single-pass construction.
func FromBLIF(m *blif.Module, mode Mode) (*DAG, error) {
	d := New(m.Name, mode)

	driver := map[string]string{} // wire name -> id of the gate producing it

	for _, in := range m.InPorts {
		if err := d.AddGate(in, gate.InPort, nil, []string{in}); err != nil {
			return nil, err
		}
		driver[in] = in
	}

	for _, gi := range m.Gates {
		if err := d.AddGate(gi.GateID, gi.Func, gi.Inputs, []string{gi.Output}); err != nil {
			return nil, err
		}
		if prev, exists := driver[gi.Output]; exists {
			return nil, &bserr.InvariantError{Gate: gi.GateID, Wire: gi.Output,
				Message: fmt.Sprintf("output already driven by %q", prev)}
		}
		driver[gi.Output] = gi.GateID

		for _, in := range gi.Inputs {
			drv, ok := driver[in]
			if !ok {
				return nil, &bserr.ParseError{Source: "blif", Line: gi.Line, Token: in,
					Reason: "input wire has no driver (forward reference or undeclared input)"}
			}
			if err := d.AddWire(in, drv, gi.GateID); err != nil {
				return nil, err
			}
		}
	}

	for _, out := range m.OutPorts {
		if err := d.AddGate(out, gate.OutPort, []string{out}, nil); err != nil {
			return nil, err
		}
		drv, ok := driver[out]
		if !ok {
			return nil, &bserr.ParseError{Source: "blif", Token: out,
				Reason: "output port has no driver"}
		}
		if err := d.AddWire(out, drv, out); err != nil {
			return nil, err
		}
	}

	if err := d.StructuralCheck(); err != nil {
		return nil, err
	}
	return d, nil
}
