package xform

import (
	"github.com/pimlab/bscompile/pkg/circuit"
)

// InvEliminator removes inv1 gates that do not touch a port, toggling
// Inverted on every fan-out instead — the analog substrate's dual-contact
// cells read a complemented operand for free, so a standalone inverter
// gate is pure overhead once a cell can consume it inline (spec §4.3,
// analog-only, optional). When a fan-out already reads the inverter's
// input wire on another pin (so toggling in place would change that pin
// too), the driving gate is duplicated so each reader gets its own
// independently invertible copy.
type InvEliminator struct{}

func (InvEliminator) Name() string { return "InvEliminator" }

func (InvEliminator) Apply(d *circuit.DAG) error {
	for _, id := range d.Gates() {
		g, ok := d.Gate(id)
		if !ok || g.Func.String() != "inv1" {
			continue
		}
		if d.IsInPort(id) || d.IsOutPort(id) {
			continue
		}
		preds := d.Predecessors(id)
		if len(preds) == 0 {
			continue
		}
		driver := preds[0]
		if d.IsInPort(driver) || d.IsOutPort(driver) {
			continue
		}
		inWire, _ := d.WireName(driver, id)

		consumers := d.Successors(id)
		drivesPort := false
		for _, cons := range consumers {
			if d.IsOutPort(cons) {
				drivesPort = true
			}
		}
		if drivesPort {
			continue
		}
		for _, cons := range consumers {
			wireIntoConsumer, _ := d.WireName(id, cons)

			dup, err := duplicateDriverIfNeeded(d, driver, inWire, cons)
			if err != nil {
				return err
			}
			source := driver
			if dup != "" {
				source = dup
			}

			if err := d.RemoveWire(id, cons); err != nil {
				return err
			}
			if err := d.AddWire(wireIntoConsumer, source, cons); err != nil {
				return err
			}
			if err := d.InvertInputWire(cons, wireIntoConsumer); err != nil {
				return err
			}
		}
		if err := d.RemoveWire(driver, id); err != nil {
			return err
		}
		if err := d.RemoveGate(id); err != nil {
			return err
		}
	}
	return nil
}

// duplicateDriverIfNeeded clones driver when cons already reads inWire
// on a different pin than the one the inverter feeds, so
// inverting in place would corrupt that other pin. Returns the duplicate's
// id, or "" when no duplication was necessary.
func duplicateDriverIfNeeded(d *circuit.DAG, driver, inWire, cons string) (string, error) {
	g, ok := d.Gate(cons)
	if !ok {
		return "", nil
	}
	if !g.HasInput(inWire) {
		return "", nil
	}
	dupID := d.UniqufyGateID(driver + "_dup")
	driverGate, _ := d.Gate(driver)
	dup := driverGate.Clone(dupID)
	if err := d.AddGate(dup.ID, dup.Func, dup.Inputs, dup.Outputs); err != nil {
		return "", err
	}
	for _, in := range d.Predecessors(driver) {
		w, _ := d.WireName(in, driver)
		if err := d.AddWire(d.GenerateUniqueWireSegmentName(w), in, dupID); err != nil {
			return "", err
		}
	}
	return dupID, nil
}
