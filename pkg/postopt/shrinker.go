// Package postopt implements spec §4.6's post-translation optimiser: four
// composable passes cleaning up the reverse translator's raw Linked
// statement sequence before it is handed to a PIM-API emitter. Ported from
// original_source/src/asm-translator/asm_translator.py's
// TempVariablesShrinker/RedundantCopyRemover/PortSpillSimplifier and the
// analog-only AnalogCopyPacker.
package postopt

import (
	"fmt"

	"github.com/pimlab/bscompile/pkg/diag"
	"github.com/pimlab/bscompile/pkg/stmt"
)

// Pass transforms a Linked statement sequence.
type Pass interface {
	Name() string
	Apply(stmts []*stmt.Linked) []*stmt.Linked
}

// TempVariablesShrinker drops Suspended instructions and densely
// renumbers every remaining "tempN" operand starting at 0, so gaps left
// by dropped instructions don't waste register names downstream. It warns
// when a dropped instruction names a concrete PIM register operand — that
// can indicate a resolution gap the reverse translator never closed.
type TempVariablesShrinker struct{}

func (TempVariablesShrinker) Name() string { return "TempVariablesShrinker" }

func (TempVariablesShrinker) Apply(stmts []*stmt.Linked) []*stmt.Linked {
	kept := make([]*stmt.Linked, 0, len(stmts))
	for _, s := range stmts {
		if s.Suspended {
			if namesConcreteRegister(s) {
				diag.Warn("dropping suspended instruction at line %d naming a concrete register: %s", s.SourceLine, s.Statement)
			}
			continue
		}
		kept = append(kept, s)
	}

	rename := map[string]string{}
	next := 0
	freshName := func(old string) string {
		if !isTempOperand(old) {
			return old
		}
		if n, ok := rename[old]; ok {
			return n
		}
		n := fmt.Sprintf("temp%d", next)
		next++
		rename[old] = n
		return n
	}

	for _, s := range kept {
		for i, op := range s.Operands {
			s.Operands[i] = freshName(op)
		}
	}
	return kept
}

func isTempOperand(s string) bool {
	return len(s) > 4 && s[:4] == "temp"
}

// namesConcreteRegister reports whether s's operands include a RISC-V
// register name (t0-t6, s0-s11) rather than only temps/literals.
func namesConcreteRegister(s *stmt.Linked) bool {
	concrete := map[string]bool{
		"t0": true, "t1": true, "t2": true, "t3": true, "t4": true, "t5": true, "t6": true,
		"s0": true, "s1": true, "s2": true, "s3": true, "s4": true, "s5": true, "s6": true,
		"s7": true, "s8": true, "s9": true, "s10": true, "s11": true,
	}
	for _, op := range s.Operands {
		if concrete[op] {
			return true
		}
	}
	return false
}
