package postopt

import (
	"testing"

	"github.com/pimlab/bscompile/pkg/stmt"
)

func mkLinked(op stmt.Opcode, operands ...string) *stmt.Linked {
	return &stmt.Linked{Statement: stmt.Statement{Op: op, Operands: operands}}
}

func TestTempVariablesShrinkerDropsSuspendedAndRenumbers(t *testing.T) {
	kept := mkLinked(stmt.Mv, "temp5", "a0")
	suspended := mkLinked(stmt.Mv, "temp9", "a1")
	suspended.Suspended = true
	tail := mkLinked(stmt.Mv, "temp2", "temp5")

	out := TempVariablesShrinker{}.Apply([]*stmt.Linked{kept, suspended, tail})
	if len(out) != 2 {
		t.Fatalf("Apply() kept %d statements, want 2 (suspended one dropped)", len(out))
	}
	if out[0].Operands[0] != "temp0" {
		t.Errorf("first surviving temp dest = %q, want temp0", out[0].Operands[0])
	}
	if out[1].Operands[1] != "temp0" {
		t.Errorf("second statement's reference to the first temp should be renamed consistently, got %q", out[1].Operands[1])
	}
	if out[1].Operands[0] != "temp1" {
		t.Errorf("second surviving temp dest = %q, want temp1", out[1].Operands[0])
	}
}

func TestRedundantCopyRemoverDropsSelfCopy(t *testing.T) {
	real := mkLinked(stmt.Mv, "a0", "a1")
	selfCopy := mkLinked(stmt.Mv, "a0", "a0")
	selfCopy.SourceInstructions = []*stmt.Linked{real}
	downstream := mkLinked(stmt.Mv, "b0", "a0")
	downstream.SourceInstructions = []*stmt.Linked{selfCopy}

	out := RedundantCopyRemover{}.Apply([]*stmt.Linked{real, selfCopy, downstream})
	if len(out) != 2 {
		t.Fatalf("Apply() kept %d statements, want 2 (self-copy removed)", len(out))
	}
	if out[1].SourceInstructions[0] != real {
		t.Error("downstream statement's provenance should be spliced to the self-copy's own source")
	}
}

func TestPortSpillSimplifierKeepsOnlyWritesFeedingDeclaredOutputs(t *testing.T) {
	defTemp := mkLinked(stmt.Mv, "temp0", "a0")
	realWrite := mkLinked(stmt.Write, "temp0", "temp1")
	realWrite.SourceInstructions = []*stmt.Linked{defTemp}
	outputWrite := mkLinked(stmt.Write, "temp1", "sum_out")
	outputWrite.SourceInstructions = []*stmt.Linked{realWrite}

	deadTemp := mkLinked(stmt.Mv, "temp2", "a1")
	deadWrite := mkLinked(stmt.Write, "temp2", "temp3")
	deadWrite.SourceInstructions = []*stmt.Linked{deadTemp}

	stmts := []*stmt.Linked{defTemp, realWrite, outputWrite, deadTemp, deadWrite}
	out := PortSpillSimplifier{OutputPorts: []string{"sum_out"}}.Apply(stmts)

	for _, s := range out {
		if s == deadWrite {
			t.Error("write that never feeds a declared output port should be purged")
		}
	}
	foundOutputWrite := false
	for _, s := range out {
		if s == outputWrite {
			foundOutputWrite = true
		}
	}
	if !foundOutputWrite {
		t.Error("write to a declared output port must survive")
	}
}

func TestAnalogCopyPackerPacksMatchingMoves(t *testing.T) {
	a := mkLinked(stmt.Mv, "d0", "src")
	b := mkLinked(stmt.Mv, "d1", "src")
	c := mkLinked(stmt.Mv, "d2", "src")
	unrelated := mkLinked(stmt.Mv, "d3", "other")

	out := AnalogCopyPacker{}.Apply([]*stmt.Linked{a, b, c, unrelated})
	if len(out) != 2 {
		t.Fatalf("Apply() produced %d statements, want 2 (one packed triple, one unrelated move)", len(out))
	}
	packed := out[0]
	if len(packed.Operands) != 4 {
		t.Fatalf("packed statement operands = %v, want 1 source + 3 dests", packed.Operands)
	}
	if packed.Operands[0] != "src" {
		t.Errorf("packed source = %q, want src", packed.Operands[0])
	}
}

func TestAnalogCopyPackerRespectsClobberBetween(t *testing.T) {
	a := mkLinked(stmt.Mv, "d0", "src")
	clobber := mkLinked(stmt.Mv, "src", "other") // redefines src between a and b
	b := mkLinked(stmt.Mv, "d1", "src")

	out := AnalogCopyPacker{}.Apply([]*stmt.Linked{a, clobber, b})
	if len(out) != 3 {
		t.Fatalf("Apply() produced %d statements, want 3 (packing blocked by intervening redefinition of src)", len(out))
	}
}
