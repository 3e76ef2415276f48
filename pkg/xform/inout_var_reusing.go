package xform

import (
	"github.com/pimlab/bscompile/pkg/circuit"
)

// InoutVarReusing walks the DAG in topological order; for every
// input-destroying gate's output, it redirects any input-destroying
// fan-out onto a fresh segment of one of the gate's reusable inout wires
// instead of allocating a brand-new storage location — the analog
// substrate overwrites an input-destroying gate's operand rows in place,
// so the next stage can be told to read its result out of that same row
// (spec §4.3, analog-only). Each destroying fan-out consumes a distinct
// reusable wire (popped off the front of the candidate list) so two
// fan-outs never double-book the same row, and the gate's own inversion of
// the reused wire is carried onto the fan-out's new segment.
type InoutVarReusing struct{}

func (InoutVarReusing) Name() string { return "InoutVarReusing" }

func (InoutVarReusing) Apply(d *circuit.DAG) error {
	order := d.RegisterPressureOrder()
	for _, id := range order {
		g, ok := d.Gate(id)
		if !ok || !g.Func.IsInputDestroying() {
			continue
		}
		reusable := d.GetReusableInoutWires(id)
		if len(reusable) == 0 {
			continue
		}

		for _, succ := range append([]string(nil), d.Successors(id)...) {
			if len(reusable) == 0 {
				break
			}
			sg, ok := d.Gate(succ)
			if !ok || !sg.Func.IsInputDestroying() {
				continue
			}
			inoutWire := reusable[0]
			reusable = reusable[1:]

			wireIntoSucc, _ := d.WireName(id, succ)
			inverted := g.Inverted[inoutWire]
			segment := d.GenerateUniqueWireSegmentName(inoutWire)

			if err := d.RemoveWire(id, succ); err != nil {
				return err
			}
			if err := d.AddWire(segment, id, succ); err != nil {
				return err
			}
			if err := d.ReplaceInputWire(succ, wireIntoSucc, segment); err != nil {
				return err
			}
			if inverted {
				if err := d.InvertInputWire(succ, segment); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
