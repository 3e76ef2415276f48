package xform

import (
	"strings"
	"testing"

	"github.com/pimlab/bscompile/pkg/blif"
	"github.com/pimlab/bscompile/pkg/circuit"
)

const sampleBLIF = `.model m
.inputs a b cin
.outputs sum cout
.gate xor2 a=a b=b O=ab_xor
.gate xor2 a=ab_xor b=cin O=sum
.gate and2 a=a b=b O=ab_and
.gate and2 a=ab_xor b=cin O=cin_and
.gate or2 a=ab_and b=cin_and O=cout
.end
`

func build(t *testing.T, mode circuit.Mode) *circuit.DAG {
	t.Helper()
	m, err := blif.Parse(strings.NewReader(sampleBLIF))
	if err != nil {
		t.Fatalf("blif.Parse: %v", err)
	}
	d, err := circuit.FromBLIF(m, mode)
	if err != nil {
		t.Fatalf("FromBLIF: %v", err)
	}
	return d
}

func TestMajNormalizerPreservesBehavior(t *testing.T) {
	before := build(t, circuit.ModeDigital)
	after := build(t, circuit.ModeDigital)

	if err := Run(after, []Pass{&MajNormalizer{}}); err != nil {
		t.Fatalf("Run(MajNormalizer): %v", err)
	}
	if err := circuit.CompareBefore(before, after, 2); err != nil {
		t.Fatalf("CompareBefore: %v", err)
	}
}

func TestPortIsolationPreservesBehavior(t *testing.T) {
	before := build(t, circuit.ModeDigital)
	after := build(t, circuit.ModeDigital)

	if err := Run(after, []Pass{&PortIsolation{}}); err != nil {
		t.Fatalf("Run(PortIsolation): %v", err)
	}
	if err := circuit.CompareBefore(before, after, 2); err != nil {
		t.Fatalf("CompareBefore: %v", err)
	}
}

func TestAnalogPipelinePreservesBehavior(t *testing.T) {
	before := build(t, circuit.ModeDigital)
	after := build(t, circuit.ModeAnalog)

	if err := Run(after, Analog(AnalogOptions{})); err != nil {
		t.Fatalf("Run(Analog pipeline): %v", err)
	}
	if err := circuit.CompareBefore(before, after, 2); err != nil {
		t.Fatalf("CompareBefore: %v", err)
	}
}

func TestDigitalPipelineIsNoOpGatewayByDefault(t *testing.T) {
	if passes := Digital(false); passes != nil {
		t.Errorf("Digital(false) = %v, want nil", passes)
	}
	if passes := Digital(true); len(passes) != 1 {
		t.Errorf("Digital(true) = %v, want one MajNormalizer pass", passes)
	}
}
