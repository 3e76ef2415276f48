package xform

import (
	"github.com/pimlab/bscompile/pkg/circuit"
	"github.com/pimlab/bscompile/pkg/gate"
)

// MultiDestOptimizer packs up to three destinations of one maj3 gate into
// parallel output wires when the analog substrate's register budget
// allows it — a triple-row-activation majority operation can be told to
// broadcast its result into several rows in one pass, saving the copies
// InoutVarReusing/WireCopyInserter would otherwise need to insert (spec
// §4.3, analog-only, optional). Per the pipeline ordering decided in
// SPEC_FULL.md's Open Questions, this pass always runs before
// InoutVarReusing so packed destinations are visible as candidates to
// that later pass.
type MultiDestOptimizer struct {
	NumRegs int
}

// maxPackedDestinations mirrors circuit's maxGateOutputs bound.
const maxPackedDestinations = 3

func (MultiDestOptimizer) Name() string { return "MultiDestOptimizer" }

func (m MultiDestOptimizer) Apply(d *circuit.DAG) error {
	budget := m.NumRegs
	if budget <= 0 {
		budget = maxPackedDestinations
	}

	for _, id := range d.Gates() {
		g, ok := d.Gate(id)
		if !ok || g.Func != gate.Maj3 {
			continue
		}
		succs := d.Successors(id)
		if len(succs) < 2 {
			continue
		}
		limit := maxPackedDestinations
		if budget < limit {
			limit = budget
		}
		if len(succs) > limit {
			succs = succs[:limit]
		}

		outWire := g.Outputs[0]
		extra := make([]string, 0, len(succs)-1)
		for i := 1; i < len(succs); i++ {
			extra = append(extra, d.UniqufyWireName(outWire+"_dest"))
		}
		g.Outputs = append([]string{outWire}, extra...)

		for i := 1; i < len(succs); i++ {
			succ := succs[i]
			existingWire, _ := d.WireName(id, succ)
			if err := d.RemoveWire(id, succ); err != nil {
				return err
			}
			destWire := extra[i-1]
			if err := d.AddWire(destWire, id, succ); err != nil {
				return err
			}
			if err := d.ReplaceInputWire(succ, existingWire, destWire); err != nil {
				return err
			}
		}
	}
	return nil
}
