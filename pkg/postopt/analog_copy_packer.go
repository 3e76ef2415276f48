package postopt

import "github.com/pimlab/bscompile/pkg/stmt"

// AnalogCopyPacker greedily packs up to three matching copy/mv/zero/one
// statements within a bounded lookahead window into one statement with
// multiple destination operands, the micro-program-level analogue of
// xform.MultiDestOptimizer's DAG-level packing (analog substrate only). A
// candidate only packs with an anchor when no statement strictly between
// the anchor and the candidate redefines one of the candidate's operands or
// reads the candidate's destination — moving it earlier could then change
// that intervening statement's result. Intervening reads of the shared
// source do not block packing.
type AnalogCopyPacker struct {
	Window int // lookahead bound; 0 uses the default of 8
}

const defaultPackWindow = 8
const maxPackedStatements = 3

func (AnalogCopyPacker) Name() string { return "AnalogCopyPacker" }

func (a AnalogCopyPacker) Apply(stmts []*stmt.Linked) []*stmt.Linked {
	window := a.Window
	if window <= 0 {
		window = defaultPackWindow
	}

	packable := func(op stmt.Opcode) bool {
		switch op {
		case stmt.Copy, stmt.Mv, stmt.ZeroOp, stmt.OneOp:
			return true
		default:
			return false
		}
	}

	consumed := make([]bool, len(stmts))
	var out []*stmt.Linked

	for i, anchor := range stmts {
		if consumed[i] {
			continue
		}
		if !packable(anchor.Op) {
			out = append(out, anchor)
			continue
		}

		group := []*stmt.Linked{anchor}
		limit := i + window
		if limit > len(stmts) {
			limit = len(stmts)
		}
		for j := i + 1; j < limit && len(group) < maxPackedStatements; j++ {
			if consumed[j] || stmts[j].Op != anchor.Op {
				continue
			}
			if !sameSources(anchor, stmts[j]) {
				continue
			}
			if operandsClobberedBetween(stmts, i, j, stmts[j]) {
				continue
			}
			group = append(group, stmts[j])
			consumed[j] = true
		}

		if len(group) == 1 {
			out = append(out, anchor)
			continue
		}

		dests := make([]string, len(group))
		for k, g := range group {
			dests[k] = g.Dest()
		}
		packed := &stmt.Linked{
			Statement: stmt.Statement{
				Op:         anchor.Op,
				Operands:   append(append([]string(nil), anchor.Sources()...), dests...),
				SourceLine: anchor.SourceLine,
			},
			SourceInstructions: anchor.SourceInstructions,
		}
		out = append(out, packed)
	}
	return out
}

func sameSources(a, b *stmt.Linked) bool {
	as, bs := a.Sources(), b.Sources()
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// operandsClobberedBetween reports whether any statement strictly between
// index lo and index hi (exclusive of both ends) redefines one of
// candidate's operands or reads candidate's destination, which would make
// reordering the candidate next to the anchor unsafe. An intervening
// statement merely reading the same shared source (as every other match in
// a packable group necessarily does) is not a clobber.
func operandsClobberedBetween(stmts []*stmt.Linked, lo, hi int, candidate *stmt.Linked) bool {
	names := map[string]bool{}
	for _, op := range candidate.Operands {
		names[op] = true
	}
	for k := lo + 1; k < hi; k++ {
		if dest := stmts[k].Dest(); dest != "" && names[dest] {
			return true
		}
		for _, src := range stmts[k].Sources() {
			if src == candidate.Dest() {
				return true
			}
		}
	}
	return false
}
