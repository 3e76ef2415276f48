package circuit

import (
	"github.com/pimlab/bscompile/pkg/bserr"
	"github.com/pimlab/bscompile/pkg/gate"
)

// SanityCheck enforces spec §3's full invariant set: the structural checks
// (see StructuralCheck) plus, under ModeAnalog, the final property that an
// un-segmented input wire of an input-destroying gate has no other
// consumer (see checkAnalogInoutProperty). That analog property only holds after
// WireCopyInserter has run to fixed point, so callers building or editing a
// DAG mid-pipeline should use StructuralCheck and reserve SanityCheck for
// the end of the ModeAnalog transformation pipeline.
func (d *DAG) SanityCheck() error {
	if err := d.StructuralCheck(); err != nil {
		return err
	}
	if d.Mode == ModeAnalog {
		return d.checkAnalogInoutProperty()
	}
	return nil
}

// maxGateOutputs bounds the multi-destination packing MultiDestOptimizer
// performs on maj3 gates (spec §4.3): up to three parallel output wires
// instead of the usual single output.
const maxGateOutputs = 3

// StructuralCheck enforces the invariants that must hold at every point in
// the DAG's life regardless of substrate: gate arity, a bounded output
// count, one producer edge per declared input, no inversion on a non-input
// wire, and the port-shape invariant (spec §3/§8) that holds from
// construction onward: an in_port has no predecessors; an out_port has
// exactly one predecessor wire named after the port and no successors. (An
// in_port's successor count is left unconstrained here — a freshly built
// DAG legitimately fans an input out to several consumers before
// PortIsolation gives each its own copy; spec §3's "at most one successor
// wire whose name equals the gate id" is that pass's postcondition, not an
// always-true structural invariant.)
func (d *DAG) StructuralCheck() error {
	for _, id := range d.order {
		g := d.gates[id]

		if g.Func.IsPort() {
			if len(g.Inverted) != 0 {
				return &bserr.InvariantError{Gate: id, Message: "port gate must not invert any input"}
			}
			if g.Func == gate.InPort {
				if len(d.inEdges[id]) != 0 {
					return &bserr.InvariantError{Gate: id, Message: "input port must have no predecessors"}
				}
			} else {
				if len(d.outEdges[id]) != 0 {
					return &bserr.InvariantError{Gate: id, Message: "output port must have no successors"}
				}
				preds := d.inEdges[id]
				if len(preds) != 1 {
					return &bserr.InvariantError{Gate: id, Message: "output port must have exactly one predecessor"}
				}
				if d.edges[edgeKey{preds[0], id}] != id {
					return &bserr.InvariantError{Gate: id, Message: "output port's predecessor wire is not named after the port"}
				}
			}
			continue
		}

		if arity := g.Func.Arity(); arity >= 0 && len(g.Inputs) != arity {
			return &bserr.InvariantError{Gate: id, Message: "input count does not match gate function arity"}
		}
		if len(g.Outputs) < 1 || len(g.Outputs) > maxGateOutputs {
			return &bserr.InvariantError{Gate: id, Message: "gate declares an invalid number of output wires"}
		}

		seenInputs := map[string]bool{}
		for i, w := range g.Inputs {
			if seenInputs[w] {
				return &bserr.InvariantError{Gate: id, Wire: w, Message: "duplicate input wire on gate"}
			}
			seenInputs[w] = true

			preds := d.inEdges[id]
			if i >= len(preds) {
				return &bserr.InvariantError{Gate: id, Wire: w, Message: "missing producer edge for declared input"}
			}
		}
		if len(d.inEdges[id]) != len(g.Inputs) {
			return &bserr.InvariantError{Gate: id, Message: "producer edge count does not match declared input count"}
		}
		for w := range g.Inverted {
			if !g.HasInput(w) {
				return &bserr.InvariantError{Gate: id, Wire: w, Message: "inverted wire is not a declared input"}
			}
		}
	}

	for key := range d.edges {
		if _, ok := d.gates[key.From]; !ok {
			return &bserr.InvariantError{Message: "wire references a fanin gate that no longer exists"}
		}
		if _, ok := d.gates[key.To]; !ok {
			return &bserr.InvariantError{Message: "wire references a fanout gate that no longer exists"}
		}
	}
	return nil
}

// checkAnalogInoutProperty enforces the analog-substrate property that an
// input-destroying gate's un-segmented input wires are consumed by at most
// one downstream gate — if more than one consumer needs the original value,
// WireCopyInserter must have split it into segments first.
func (d *DAG) checkAnalogInoutProperty() error {
	for _, id := range d.order {
		g := d.gates[id]
		if !g.Func.IsInputDestroying() {
			continue
		}
		for _, w := range g.Inputs {
			producer := d.findProducer(id, w)
			if producer == "" {
				continue
			}
			consumers := 0
			for _, e := range d.OutEdgeWires(producer) {
				if d.IsSameWire(e.WireName, w) {
					consumers++
				}
			}
			if consumers > 1 && !d.IsWireSegment(w) {
				return &bserr.InvariantError{Gate: id, Wire: w,
					Message: "input-destroying gate shares an un-segmented wire with another consumer"}
			}
		}
	}
	return nil
}

func (d *DAG) findProducer(consumerID, wireName string) string {
	for _, from := range d.inEdges[consumerID] {
		if d.edges[edgeKey{from, consumerID}] == wireName {
			return from
		}
	}
	return ""
}

// AllGateFuncs is used by tests and the DOT/JSON writers to iterate the
// closed function set without importing pkg/gate directly for the
// constant list.
var AllGateFuncs = []gate.Func{
	gate.InPort, gate.OutPort, gate.Copy, gate.CopyInout, gate.Inv1,
	gate.And2, gate.Or2, gate.Nand2, gate.Nor2, gate.Xor2, gate.Xnor2,
	gate.Mux2, gate.Maj3, gate.Zero, gate.One,
}
