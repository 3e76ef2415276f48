package xform

import (
	"github.com/pimlab/bscompile/pkg/circuit"
	"github.com/pimlab/bscompile/pkg/gate"
)

// WireCopyInserter is the final analog-only pass (spec §4.3's last
// paragraph). For every wire driving more than one input-destroying
// consumer — or one input-destroying consumer plus any other — it inserts
// a copy_inout gate that is the wire's sole remaining consumer: one TRA
// preserves a copy for the anchor (and every other consumer still sharing
// the wire) on one segment, while emitting a fresh copy for a single
// peeled-off consumer on a second segment. The preserved segment is
// re-queued, so a wire with more than two original consumers converges to
// the final property over further rounds of the work-queue.
type WireCopyInserter struct{}

func (WireCopyInserter) Name() string { return "WireCopyInserter" }

type producedWire struct {
	producer string
	wire     string
}

func (WireCopyInserter) Apply(d *circuit.DAG) error {
	queue := initialWireQueue(d)

	for len(queue) > 0 {
		pw := queue[0]
		queue = queue[1:]

		consumers := destroyingConsumers(d, pw.producer, pw.wire)
		if len(consumers) <= 1 {
			continue
		}
		// Input-destroying consumers sort last, so the wire has one iff the
		// last consumer is one.
		if g, ok := d.Gate(consumers[len(consumers)-1]); !ok || !g.Func.IsInputDestroying() {
			continue
		}
		// Peel one consumer (target) off into its own fresh segment; the
		// anchor and every other still-sharing consumer move onto a second,
		// preserved segment together — that is the single TRA copy_inout
		// performs. The preserved segment is re-queued so a wire with more
		// than two original consumers converges over further rounds.
		anchor, target := consumers[0], consumers[1]
		rest := append([]string(nil), anchor)
		rest = append(rest, consumers[2:]...)

		copyID := d.UniqufyGateID(pw.wire + "_copy")
		if err := d.AddGate(copyID, gate.CopyInout, []string{pw.wire}, nil); err != nil {
			return err
		}
		if err := d.AddWire(pw.wire, pw.producer, copyID); err != nil {
			return err
		}
		// Segment names are unique only against existing edges, so the
		// fresh segment is named after the preserved one is wired in.
		preservedSeg := d.GenerateUniqueWireSegmentName(pw.wire)
		for _, cons := range rest {
			if err := rerouteConsumer(d, pw.producer, cons, copyID, preservedSeg); err != nil {
				return err
			}
		}
		freshSeg := d.GenerateUniqueWireSegmentName(pw.wire)
		if err := rerouteConsumer(d, pw.producer, target, copyID, freshSeg); err != nil {
			return err
		}
		if cg, ok := d.Gate(copyID); ok {
			cg.Outputs = []string{preservedSeg, freshSeg}
		}

		queue = append(queue, producedWire{producer: copyID, wire: preservedSeg})
	}
	return nil
}

// rerouteConsumer moves cons from reading wireName off producer to reading
// newWire off newProducer instead, renaming the edge and carrying the
// change into cons's own declared input (and any of its downstream
// segments, via ReplaceInputWire).
func rerouteConsumer(d *circuit.DAG, producer, cons, newProducer, newWire string) error {
	oldWire, _ := d.WireName(producer, cons)
	if err := d.RemoveWire(producer, cons); err != nil {
		return err
	}
	if err := d.AddWire(newWire, newProducer, cons); err != nil {
		return err
	}
	return d.ReplaceInputWire(cons, oldWire, newWire)
}

// initialWireQueue seeds the work-queue with every (producer, wire) pair
// that currently labels an outgoing edge; Apply skips pairs with a single
// consumer or with no input-destroying consumer when it dequeues them.
func initialWireQueue(d *circuit.DAG) []producedWire {
	var queue []producedWire
	seen := map[string]bool{}
	for _, id := range d.Gates() {
		for _, e := range d.OutEdgeWires(id) {
			key := id + "|" + e.WireName
			if seen[key] {
				continue
			}
			seen[key] = true
			queue = append(queue, producedWire{producer: id, wire: e.WireName})
		}
	}
	return queue
}

// destroyingConsumers returns, among the current consumers of producer's
// wire, the list with every input-destroying consumer moved to the back
// (so the anchor consumer — the first one picked below — is preferably a
// non-destroying one when any exists).
func destroyingConsumers(d *circuit.DAG, producer, wire string) []string {
	var destroying, other []string
	for _, e := range d.OutEdgeWires(producer) {
		if e.WireName != wire {
			continue
		}
		g, ok := d.Gate(e.To)
		if ok && g.Func.IsInputDestroying() {
			destroying = append(destroying, e.To)
		} else {
			other = append(other, e.To)
		}
	}
	if len(other) > 0 {
		return append(other, destroying...)
	}
	return destroying
}
