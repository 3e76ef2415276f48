package xform

import (
	"github.com/pimlab/bscompile/pkg/circuit"
	"github.com/pimlab/bscompile/pkg/gate"
)

// PortIsolation splices a copy gate between every input port and each of
// its fan-outs, and — for an output port whose wire is also read
// internally — renames the producer's output and redirects the internal
// consumers before inserting a final copy into the port (spec §4.3, the
// resolved Open Question: rename-the-producer's-output is the invariant-
// respecting choice over renaming every internal reader individually).
type PortIsolation struct{}

func (PortIsolation) Name() string { return "PortIsolation" }

func (PortIsolation) Apply(d *circuit.DAG) error {
	for _, id := range d.Gates() {
		if !d.IsInPort(id) {
			continue
		}
		for _, succID := range d.Successors(id) {
			wireName, _ := d.WireName(id, succID)
			copyID := d.UniqufyGateID(id + "_copy")
			segWire := d.GenerateUniqueWireSegmentName(wireName)

			if err := d.RemoveWire(id, succID); err != nil {
				return err
			}
			if err := d.AddGate(copyID, gate.Copy, []string{wireName}, []string{segWire}); err != nil {
				return err
			}
			if err := d.AddWire(wireName, id, copyID); err != nil {
				return err
			}
			if err := d.AddWire(segWire, copyID, succID); err != nil {
				return err
			}
			if err := d.ReplaceInputWire(succID, wireName, segWire); err != nil {
				return err
			}
		}
	}

	for _, id := range d.Gates() {
		if !d.IsOutPort(id) {
			continue
		}
		preds := d.Predecessors(id)
		if len(preds) == 0 {
			continue
		}
		producer := preds[0]
		wireName, _ := d.WireName(producer, id)

		var internalConsumers []string
		for _, succID := range d.Successors(producer) {
			if succID != id && d.IsSameWire(mustWire(d, producer, succID), wireName) {
				internalConsumers = append(internalConsumers, succID)
			}
		}
		if len(internalConsumers) == 0 {
			continue
		}

		// Rename the producer's own output to a fresh wire and move every
		// internal reader onto it, so the port's wire stays named after the
		// port; a single copy gate then bridges the fresh wire back to it.
		newWire := d.GenerateUniqueWireSegmentName(wireName)
		producerGate, _ := d.Gate(producer)
		for i, w := range producerGate.Outputs {
			if w == wireName {
				producerGate.Outputs[i] = newWire
			}
		}
		for _, cons := range internalConsumers {
			if err := rerouteConsumer(d, producer, cons, producer, newWire); err != nil {
				return err
			}
		}

		if err := d.RemoveWire(producer, id); err != nil {
			return err
		}
		copyID := d.UniqufyGateID(id + "_copy")
		if err := d.AddGate(copyID, gate.Copy, []string{newWire}, []string{wireName}); err != nil {
			return err
		}
		if err := d.AddWire(newWire, producer, copyID); err != nil {
			return err
		}
		if err := d.AddWire(wireName, copyID, id); err != nil {
			return err
		}
	}
	return nil
}

func mustWire(d *circuit.DAG, from, to string) string {
	w, _ := d.WireName(from, to)
	return w
}
