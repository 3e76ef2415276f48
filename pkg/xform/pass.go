// Package xform implements the DAG-to-DAG transformation passes of spec
// §4.3: normalizing gate functions, isolating ports, eliminating inverters,
// reusing input-destroying storage, packing multi-destination majority
// gates, and inserting copies to restore the analog substrate's single-
// consumer property. Grounded on original_source's
// src/blif-translator/transformations.py, re-expressed with each pass as a
// small struct implementing a common interface — the same "mutator struct
// with an Apply/Mutate method" shape pkg/stoke's Mutator uses for
// instruction-sequence rewrites.
package xform

import (
	"github.com/pimlab/bscompile/pkg/circuit"
	"github.com/pimlab/bscompile/pkg/diag"
)

// Pass is one DAG-to-DAG rewrite.
type Pass interface {
	Name() string
	Apply(d *circuit.DAG) error
}

// Run applies passes in order, summarizing each at debug level 1. After
// every pass it runs the structural invariant check (spec §5); after the
// last pass it runs the full SanityCheck, whose analog-only property holds
// only once the whole pipeline has run.
func Run(d *circuit.DAG, passes []Pass) error {
	for i, p := range passes {
		before := d.Len()
		beforeWires := countWires(d)
		if err := p.Apply(d); err != nil {
			return err
		}
		diag.TransformSummary(p.Name(), d.Len()-before, countWires(d)-beforeWires)
		check := d.StructuralCheck
		if i == len(passes)-1 {
			check = d.SanityCheck
		}
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func countWires(d *circuit.DAG) int {
	n := 0
	for _, id := range d.Gates() {
		n += len(d.Successors(id))
	}
	return n
}

// AnalogOptions configures the optional passes in the analog pipeline
// (spec §4.3, §9's resolved Open Question on MultiDestOptimizer ordering).
type AnalogOptions struct {
	WithInvEliminator   bool
	WithMultiDest       bool
	MajSharedConstants  bool
	MultiDestNumRegs    int
}

// Digital returns the digital-substrate pipeline: a no-op gateway, or
// MajNormalizer alone when impl-type selects MAJ-normalized digital gates.
func Digital(majNormalize bool) []Pass {
	if !majNormalize {
		return nil
	}
	return []Pass{&MajNormalizer{}}
}

// Analog returns the prescribed analog pipeline: PortIsolation,
// MajNormalizer, optionally MultiDestOptimizer, InoutVarReusing, then
// WireCopyInserter — with InvEliminator spliced in right after
// MajNormalizer when requested, matching the Python original's ordering
// decision recorded in SPEC_FULL.md's Open Questions.
func Analog(opts AnalogOptions) []Pass {
	passes := []Pass{
		&PortIsolation{},
		&MajNormalizer{SharedConstants: opts.MajSharedConstants},
	}
	if opts.WithInvEliminator {
		passes = append(passes, &InvEliminator{})
	}
	if opts.WithMultiDest {
		passes = append(passes, &MultiDestOptimizer{NumRegs: opts.MultiDestNumRegs})
	}
	passes = append(passes, &InoutVarReusing{}, &WireCopyInserter{})
	return passes
}
