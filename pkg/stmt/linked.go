package stmt

// Linked extends Statement with provenance: references to the
// LinkedInstruction that last defined each of this statement's source
// operands at the time it was emitted, and a Suspended flag marking
// instructions the reverse translator could not yet place (spec §3's
// LinkedInstruction). Ported from asm_translator.py's LinkedInstruction.
type Linked struct {
	Statement
	// SourceInstructions holds, in source-operand order, the Linked
	// statements that defined this statement's source operands. An operand
	// that resolved to a literal symbol rather than a prior instruction has
	// no entry, so the slice can be shorter than the source operand list.
	SourceInstructions []*Linked
	Suspended          bool
}

// Unsuspend clears the Suspended flag (asm_translator.py's unsuspend()).
func (l *Linked) Unsuspend() {
	l.Suspended = false
}
