package blif

import (
	"strings"
	"testing"

	"github.com/pimlab/bscompile/pkg/gate"
)

const sampleBLIF = `.model full_adder
.inputs a b cin
.outputs sum cout
.gate xor2 a=a b=b O=ab_xor
.gate xor2 a=ab_xor b=cin O=sum
.gate and2 a=a b=b O=ab_and
.gate and2 a=ab_xor b=cin O=cin_and
.gate or2 a=ab_and b=cin_and O=cout
.end
`

func TestParseFullAdder(t *testing.T) {
	m, err := Parse(strings.NewReader(sampleBLIF))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.Name != "full_adder" {
		t.Errorf("Name = %q, want full_adder", m.Name)
	}
	if len(m.InPorts) != 3 || len(m.OutPorts) != 2 {
		t.Fatalf("got %d inputs, %d outputs", len(m.InPorts), len(m.OutPorts))
	}
	if len(m.Gates) != 5 {
		t.Fatalf("got %d gates, want 5", len(m.Gates))
	}
	if m.Gates[0].Func != gate.Xor2 || m.Gates[0].Output != "ab_xor" {
		t.Errorf("first gate = %+v", m.Gates[0])
	}
	if m.Gates[0].GateID != "g1_ab_xor" {
		t.Errorf("GateID = %q, want g1_ab_xor", m.Gates[0].GateID)
	}
}

func TestParseLineContinuation(t *testing.T) {
	src := ".model m\n.inputs a \\\n b\n.outputs y\n.gate and2 a=a b=b O=y\n.end\n"
	m, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(m.InPorts) != 2 {
		t.Fatalf("InPorts = %v, want [a b]", m.InPorts)
	}
}

func TestParseMissingEnd(t *testing.T) {
	src := ".model m\n.inputs a\n.outputs a\n"
	if _, err := Parse(strings.NewReader(src)); err == nil {
		t.Fatal("expected an error for a module missing .end")
	}
}

func TestParseMissingPin(t *testing.T) {
	src := ".model m\n.inputs a\n.outputs y\n.gate and2 a=a O=y\n.end\n"
	if _, err := Parse(strings.NewReader(src)); err == nil {
		t.Fatal("expected an error for and2 missing its b= pin")
	}
}

func TestParseUnknownDirective(t *testing.T) {
	src := ".model m\n.bogus x\n.end\n"
	if _, err := Parse(strings.NewReader(src)); err == nil {
		t.Fatal("expected an error for an unknown directive")
	}
}
