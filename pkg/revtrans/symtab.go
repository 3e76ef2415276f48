// Package revtrans reverse-translates the RISC-V assembly bscompile's
// GeneratorAsm emitted (spec §4.5) back into a micro-program, recovering
// the PIM operations the inline-assembly blocks encode and threading data
// flow through the register allocator's spill/fill decisions. Ported from
// original_source/src/asm-translator/asm_translator.py's AsmTranslator,
// SymbolTable, and TempManager.
package revtrans

import "github.com/pimlab/bscompile/pkg/stmt"

// symbolEntry is a SymbolTable value: either a stable alias (another
// symbol name to chase, e.g. a register bound to a temp) or the Linked
// instruction that last defined the symbol.
type symbolEntry struct {
	alias  string
	linked *stmt.Linked
}

// SymbolTable tracks, for every live register/temp/alias name, what
// currently defines its value. Kept as the direct recursive-chain
// structure the Python original uses (see SPEC_FULL.md §8's design note)
// rather than a union-find forest — this scope never holds more than a
// few hundred live entries per module.
type SymbolTable struct {
	entries map[string]symbolEntry
}

// NewSymbolTable creates an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{entries: map[string]symbolEntry{}}
}

// BindAlias records that name currently resolves by following alias.
func (t *SymbolTable) BindAlias(name, alias string) {
	t.entries[name] = symbolEntry{alias: alias}
}

// BindLinked records that name currently resolves to linked.
func (t *SymbolTable) BindLinked(name string, linked *stmt.Linked) {
	t.entries[name] = symbolEntry{linked: linked}
}

// Unbind removes name from the table (used when a register is reused for
// an unrelated value).
func (t *SymbolTable) Unbind(name string) { delete(t.entries, name) }

// resolveOperand walks the alias chain starting at name, returning the
// Linked instruction it eventually resolves to, or nil if name bottoms out
// at a concrete register/literal with no prior definition (asm_translator.py's
// resolveOperand/resolveLinkedInstruction).
func (t *SymbolTable) resolveOperand(name string) (*stmt.Linked, []string) {
	var path []string
	seen := map[string]bool{}
	cur := name
	for {
		if seen[cur] {
			return nil, path // alias cycle guard; should not occur in well-formed input
		}
		seen[cur] = true
		e, ok := t.entries[cur]
		if !ok {
			return nil, path
		}
		path = append(path, cur)
		if e.linked != nil {
			return e.linked, path
		}
		cur = e.alias
	}
}

// unsuspendPath clears Suspended on every Linked instruction the resolved
// alias chain passes through, isolated from resolveOperand as its own
// explicit step per SPEC_FULL.md §8's design note — resolution stays a
// pure read of the table's current state, and unsuspension is a distinct,
// separately testable side effect.
func (t *SymbolTable) unsuspendPath(path []string) {
	for _, name := range path {
		if e, ok := t.entries[name]; ok && e.linked != nil {
			e.linked.Unsuspend()
		}
	}
}
