package riscv

import (
	"strings"
	"testing"
)

func TestParseInstructionsAndMarkers(t *testing.T) {
	src := `
loop_start:
#APP
  lw a0, 0(sp)
#NO_APP
# DEBUG_VALUE: sum_out
  sw a0, 8(sp)
  mv t0, a0
#PIM_OP BEGIN/g1 and2 temp0 a0 a1
  # ignored comment line
#PIM_OP END
`
	lines, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var kinds []Kind
	for _, l := range lines {
		kinds = append(kinds, l.Kind)
	}
	want := []Kind{
		KindLabel, KindApp, KindInstruction, KindNoApp,
		KindInstruction, KindInstruction, KindPimOpBegin, KindComment, KindPimOpEnd,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %d lines (%v), want %d", len(kinds), kinds, len(want))
	}
	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("line %d kind = %v, want %v", i, kinds[i], k)
		}
	}

	sw := lines[4]
	if sw.Mnemonic != "sw" || sw.DebugSymbol != "sum_out" {
		t.Errorf("sw line = %+v, want mnemonic sw with DebugSymbol sum_out", sw)
	}

	mv := lines[5]
	if mv.Mnemonic != "mv" || mv.DebugSymbol != "" {
		t.Errorf("mv line = %+v, want mnemonic mv with no DebugSymbol (consumed by the prior instruction)", mv)
	}

	begin := lines[6]
	if begin.GateID != "g1" || begin.Opcode != "and2" {
		t.Errorf("pim-op-begin = %+v, want GateID g1, Opcode and2", begin)
	}
	if len(begin.PimArgs) != 3 || begin.PimArgs[0] != "temp0" {
		t.Errorf("pim-op-begin args = %v, want [temp0 a0 a1]", begin.PimArgs)
	}
}

func TestParseMalformedPimOpBegin(t *testing.T) {
	_, err := Parse(strings.NewReader("#PIM_OP BEGIN/g1\n"))
	if err == nil {
		t.Fatal("expected an error for a #PIM_OP BEGIN marker missing its opcode")
	}
}

func TestClobberList(t *testing.T) {
	clobber := ClobberList([]string{"t0", "t1"})
	for _, live := range []string{"t0", "t1"} {
		for _, c := range clobber {
			if c == live {
				t.Errorf("clobber list %v should not include live register %q", clobber, live)
			}
		}
	}
	found := false
	foundA0 := false
	for _, c := range clobber {
		if c == "memory" {
			found = true
		}
		if c == "a0" {
			// a0 is not live, must be clobbered
			foundA0 = true
		}
	}
	if !found {
		t.Error("clobber list must always include \"memory\"")
	}
	if !foundA0 {
		t.Errorf("clobber list %v should include non-live register a0", clobber)
	}
}
