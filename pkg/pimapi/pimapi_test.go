package pimapi

import (
	"strings"
	"testing"

	"github.com/pimlab/bscompile/pkg/stmt"
)

func mk(op stmt.Opcode, operands ...string) *stmt.Linked {
	return &stmt.Linked{Statement: stmt.Statement{Op: op, Operands: operands}}
}

func TestDigitalEmitCoversReadWriteAndGate(t *testing.T) {
	stmts := []*stmt.Linked{
		mk(stmt.Read, "temp0", "a"),
		mk(stmt.And2, "temp1", "temp0", "temp0"),
		mk(stmt.Write, "temp1", "y"),
	}
	out, err := (Digital{FuncName: "m", InPorts: []string{"a"}, OutPorts: []string{"y"}}).Emit(stmts)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	for _, want := range []string{"pimOpReadRowToSa", "pimOpAnd", "pimOpWriteSaToRow", "PimObjId a", "PimObjId y"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestDigitalEmitUnknownOpcodeErrors(t *testing.T) {
	stmts := []*stmt.Linked{mk(stmt.Opcode(250), "temp0")}
	if _, err := (Digital{}).Emit(stmts); err == nil {
		t.Error("expected an error for an opcode with no digital mapping")
	}
}

func TestAnalogEmitUsesRegFileAndMaj3(t *testing.T) {
	s := mk(stmt.Maj3, "temp1", "temp0", "a", "b")
	s.Inverted[1] = true
	stmts := []*stmt.Linked{s}
	out, err := (Analog{FuncName: "m", InPorts: []string{"a", "b"}}).Emit(stmts)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(out, "pimOpAAP3") {
		t.Errorf("expected pimOpAAP3 call, got:\n%s", out)
	}
	if !strings.Contains(out, "regFileNot") {
		t.Errorf("expected an inverted operand to reference regFileNot, got:\n%s", out)
	}
}

func TestOperandRefMapsTempsToSlots(t *testing.T) {
	if got := operandRef("temp3"); got != "temps[3]" {
		t.Errorf("operandRef(temp3) = %q, want temps[3]", got)
	}
	if got := operandRef("sum_out"); got != "sum_out" {
		t.Errorf("operandRef(sum_out) = %q, want sum_out", got)
	}
}

func TestRoundUpPow2(t *testing.T) {
	cases := map[int]int{0: 8, 1: 8, 8: 8, 9: 16, 17: 32}
	for n, want := range cases {
		if got := roundUpPow2(n, 8); got != want {
			t.Errorf("roundUpPow2(%d, 8) = %d, want %d", n, got, want)
		}
	}
}
