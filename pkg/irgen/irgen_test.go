package irgen

import (
	"strings"
	"testing"

	"github.com/pimlab/bscompile/pkg/blif"
	"github.com/pimlab/bscompile/pkg/circuit"
)

const sampleBLIF = `.model m
.inputs a b
.outputs y
.gate and2 a=a b=b O=y
.end
`

func buildDAG(t *testing.T) *circuit.DAG {
	t.Helper()
	m, err := blif.Parse(strings.NewReader(sampleBLIF))
	if err != nil {
		t.Fatalf("blif.Parse: %v", err)
	}
	d, err := circuit.FromBLIF(m, circuit.ModeDigital)
	if err != nil {
		t.Fatalf("FromBLIF: %v", err)
	}
	return d
}

func TestGeneratorBitwiseEmitsExpressionPerGate(t *testing.T) {
	d := buildDAG(t)
	var sb strings.Builder
	if err := (GeneratorBitwise{FuncName: "m"}).Emit(&sb, d); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "void m(unsigned a, unsigned b, unsigned *y)") {
		t.Errorf("missing expected function signature, got:\n%s", out)
	}
	if !strings.Contains(out, "a & b") {
		t.Errorf("expected an and2 expression (a & b) in output, got:\n%s", out)
	}
	if !strings.Contains(out, "*y = ") {
		t.Errorf("expected the out_port assignment, got:\n%s", out)
	}
}

func TestGeneratorAsmEmitsPimOpMarkers(t *testing.T) {
	d := buildDAG(t)
	var sb strings.Builder
	if err := (GeneratorAsm{FuncName: "m", NumRegs: 4}).Emit(&sb, d); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "#PIM_OP BEGIN/") {
		t.Errorf("missing #PIM_OP BEGIN marker, got:\n%s", out)
	}
	if !strings.Contains(out, "#PIM_OP END") {
		t.Errorf("missing #PIM_OP END marker, got:\n%s", out)
	}
	if !strings.Contains(out, "and2") {
		t.Errorf("missing and2 opcode, got:\n%s", out)
	}
}

func TestSanitizeReplacesBusIndexBrackets(t *testing.T) {
	if got := sanitize("bus[3]"); got != "bus_3_" {
		t.Errorf("sanitize(bus[3]) = %q, want bus_3_", got)
	}
}
