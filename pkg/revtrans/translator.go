package revtrans

import (
	"strings"

	"github.com/pimlab/bscompile/pkg/riscv"
	"github.com/pimlab/bscompile/pkg/stmt"
)

// AsmTranslator reverse-translates a parsed RISC-V line stream into a
// sequence of Linked micro-program statements (asm_translator.py's
// AsmTranslator).
type AsmTranslator struct {
	symtab *SymbolTable
	temps  *TempAllocator
	output []string // declared output port names
	written map[string]bool
	inApp   bool

	result []*stmt.Linked
}

// NewAsmTranslator creates a translator for the given output port set.
func NewAsmTranslator(outputPorts []string) *AsmTranslator {
	return &AsmTranslator{
		symtab:  NewSymbolTable(),
		temps:   NewTempAllocator(),
		output:  outputPorts,
		written: map[string]bool{},
	}
}

// Translate walks lines, producing the Linked statement sequence.
// Translation stops once every declared output port has been written
// (asm_translator.py's AsmTranslator.translate implicit early-exit, made
// explicit here).
func (t *AsmTranslator) Translate(lines []riscv.Line) ([]*stmt.Linked, error) {
	for _, ln := range lines {
		if len(t.output) > 0 && len(t.written) == len(t.output) {
			break
		}
		switch ln.Kind {
		case riscv.KindApp:
			t.inApp = true
		case riscv.KindNoApp:
			t.inApp = false
		case riscv.KindPimOpBegin:
			t.translatePimOp(ln)
		case riscv.KindInstruction:
			t.translateInstruction(ln)
		}
	}
	return t.result, nil
}

func (t *AsmTranslator) emit(op stmt.Opcode, operands []string, line int, sources []*stmt.Linked, suspended bool) *stmt.Linked {
	l := &stmt.Linked{
		Statement: stmt.Statement{
			Op:         op,
			Operands:   operands,
			SourceLine: line,
		},
		SourceInstructions: sources,
		Suspended:          suspended,
	}
	t.result = append(t.result, l)
	return l
}

// translateInstruction handles load/store/move instructions outside an
// inline-assembly block (asm_translator.py's translateLoadInstruction /
// translateStoreInstruction / mv handling).
func (t *AsmTranslator) translateInstruction(ln riscv.Line) {
	switch ln.Mnemonic {
	case "lw", "ld":
		t.translateLoad(ln)
	case "sw", "sd":
		t.translateStore(ln)
	case "mv":
		t.translateMove(ln)
	}
}

// translateLoad handles resolveDestinationOperand's three-way branch: a
// debug-value directive naming a port emits `read`; resolving to a
// spilled temp emits `read <dest>, temp<k>`; otherwise the instruction is
// deferred (Suspended).
func (t *AsmTranslator) translateLoad(ln riscv.Line) {
	if len(ln.Operands) == 0 {
		return
	}
	dest := ln.Operands[0]

	if ln.DebugSymbol != "" && isOutputlike(ln.DebugSymbol) {
		linked := t.emit(stmt.Read, []string{dest, ln.DebugSymbol}, ln.LineNo, nil, false)
		t.symtab.BindLinked(dest, linked)
		return
	}

	if resolved, path := t.symtab.resolveOperand(memOperandSymbol(ln)); resolved != nil {
		t.symtab.unsuspendPath(path)
		linked := t.emit(stmt.Read, []string{dest, resolved.Dest()}, ln.LineNo, []*stmt.Linked{resolved}, false)
		t.symtab.BindLinked(dest, linked)
		return
	}

	linked := t.emit(stmt.Read, []string{dest, memOperandSymbol(ln)}, ln.LineNo, nil, true)
	t.symtab.BindLinked(dest, linked)
}

// translateStore handles translateStoreInstruction/
// resolveSourceOperandForStore/mapToTemporaryVariable: it allocates a
// fresh temp, binds the store's symbol to it, and emits a suspended write
// that is later resolved (or dropped) by the post-translation passes.
func (t *AsmTranslator) translateStore(ln riscv.Line) {
	if len(ln.Operands) == 0 {
		return
	}
	src := ln.Operands[0]
	symbol := memOperandSymbol(ln)

	temp := t.temps.Alloc()
	t.symtab.BindAlias(symbol, temp)

	var sources []*stmt.Linked
	if resolved, path := t.symtab.resolveOperand(src); resolved != nil {
		t.symtab.unsuspendPath(path)
		sources = []*stmt.Linked{resolved}
	}
	linked := t.emit(stmt.Write, []string{src, temp}, ln.LineNo, sources, true)
	t.symtab.BindLinked(temp, linked)

	if ln.DebugSymbol != "" && isOutputlike(ln.DebugSymbol) {
		t.written[ln.DebugSymbol] = true
	}
}

func (t *AsmTranslator) translateMove(ln riscv.Line) {
	if len(ln.Operands) < 2 {
		return
	}
	dst, src := ln.Operands[0], ln.Operands[1]
	var sources []*stmt.Linked
	if resolved, path := t.symtab.resolveOperand(src); resolved != nil {
		t.symtab.unsuspendPath(path)
		sources = []*stmt.Linked{resolved}
	}
	linked := t.emit(stmt.Mv, []string{dst, src}, ln.LineNo, sources, false)
	t.symtab.BindLinked(dst, linked)
}

// translatePimOp handles one #PIM_OP BEGIN/<gate_id> <opcode>
// <operands...> ... #PIM_OP END block: the opcode/operands are taken
// verbatim from the marker line (getInlineInstructionSequence /
// handleBitSerialInstruction), and a trailing write is appended if the
// block's result feeds a declared output port.
func (t *AsmTranslator) translatePimOp(ln riscv.Line) {
	op, ok := stmt.ParseOpcode(ln.Opcode)
	if !ok {
		return
	}
	var sources []*stmt.Linked
	for _, operand := range ln.PimArgs[1:] {
		if resolved, path := t.symtab.resolveOperand(operand); resolved != nil {
			t.symtab.unsuspendPath(path)
			sources = append(sources, resolved)
		}
	}
	linked := t.emit(op, append([]string(nil), ln.PimArgs...), ln.LineNo, sources, false)
	if len(ln.PimArgs) > 0 {
		t.symtab.BindLinked(ln.PimArgs[0], linked)
	}

	if ln.DebugSymbol != "" && isOutputlike(ln.DebugSymbol) {
		t.emit(stmt.Write, []string{ln.PimArgs[0], ln.DebugSymbol}, ln.LineNo, []*stmt.Linked{linked}, false)
		t.written[ln.DebugSymbol] = true
	}
}

func memOperandSymbol(ln riscv.Line) string {
	if len(ln.Operands) < 2 {
		return ""
	}
	mem := ln.Operands[1]
	if i := strings.IndexByte(mem, '('); i >= 0 {
		return mem[:i]
	}
	return mem
}

// isOutputlike is a conservative filter letting translatePimOp/
// translateStore recognize a debug symbol that looks like a declared
// port name rather than an internal compiler temporary.
func isOutputlike(name string) bool {
	return name != "" && !strings.HasPrefix(name, "temp") && !strings.Contains(name, "$")
}
