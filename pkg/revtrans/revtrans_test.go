package revtrans

import (
	"strings"
	"testing"

	"github.com/pimlab/bscompile/pkg/riscv"
	"github.com/pimlab/bscompile/pkg/stmt"
)

func TestTempAllocatorReusesFreedSlots(t *testing.T) {
	a := NewTempAllocator()
	t0 := a.Alloc()
	t1 := a.Alloc()
	if t0 != "temp0" || t1 != "temp1" {
		t.Fatalf("got %q, %q, want temp0, temp1", t0, t1)
	}
	a.Free(t0)
	t2 := a.Alloc()
	if t2 != "temp0" {
		t.Errorf("Alloc() after freeing temp0 = %q, want temp0 reused", t2)
	}
	t3 := a.Alloc()
	if t3 != "temp2" {
		t.Errorf("Alloc() = %q, want temp2 (monotonic continues past reused slot)", t3)
	}
}

func TestSymbolTableResolveAliasChain(t *testing.T) {
	st := NewSymbolTable()
	def := &stmt.Linked{Statement: stmt.Statement{Op: stmt.Mv, Operands: []string{"temp0", "a0"}}, Suspended: true}
	st.BindLinked("temp0", def)
	st.BindAlias("a1", "temp0")
	st.BindAlias("a2", "a1")

	resolved, path := st.resolveOperand("a2")
	if resolved != def {
		t.Fatalf("resolveOperand(a2) = %v, want the statement bound to temp0", resolved)
	}
	if len(path) != 3 {
		t.Fatalf("resolveOperand path = %v, want 3 hops (a2, a1, temp0)", path)
	}

	st.unsuspendPath(path)
	if def.Suspended {
		t.Error("unsuspendPath should have cleared Suspended on the resolved statement")
	}
}

func TestSymbolTableResolveUnknownReturnsNil(t *testing.T) {
	st := NewSymbolTable()
	resolved, path := st.resolveOperand("never-bound")
	if resolved != nil || len(path) != 0 {
		t.Errorf("resolveOperand(unbound) = (%v, %v), want (nil, empty)", resolved, path)
	}
}

func TestAsmTranslatorLoadAndStore(t *testing.T) {
	src := `
  lw a0, 0(sp)
# DEBUG_VALUE: sum_out
  sw a0, 8(sp)
`
	lines, err := riscv.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tr := NewAsmTranslator([]string{"sum_out"})
	out, err := tr.Translate(lines)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("Translate produced no statements")
	}
	var sawWrite bool
	for _, s := range out {
		if s.Op == stmt.Write {
			sawWrite = true
		}
	}
	if !sawWrite {
		t.Error("expected at least one write statement from the store instruction")
	}
}

func TestAsmTranslatorPimOp(t *testing.T) {
	src := "#PIM_OP BEGIN/g1 and2 temp0 a0 a1\n#PIM_OP END\n"
	lines, err := riscv.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tr := NewAsmTranslator(nil)
	out, err := tr.Translate(lines)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("Translate produced %d statements, want 1", len(out))
	}
	if out[0].Op != stmt.And2 {
		t.Errorf("statement op = %v, want And2", out[0].Op)
	}
	if out[0].Operands[0] != "temp0" {
		t.Errorf("statement dest = %q, want temp0", out[0].Operands[0])
	}
}
