package circuit

import (
	"strings"
	"testing"

	"github.com/pimlab/bscompile/pkg/blif"
)

const fullAdderBLIF = `.model full_adder
.inputs a b cin
.outputs sum cout
.gate xor2 a=a b=b O=ab_xor
.gate xor2 a=ab_xor b=cin O=sum
.gate and2 a=a b=b O=ab_and
.gate and2 a=ab_xor b=cin O=cin_and
.gate or2 a=ab_and b=cin_and O=cout
.end
`

func mustBuild(t *testing.T, src string, mode Mode) *DAG {
	t.Helper()
	m, err := blif.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("blif.Parse: %v", err)
	}
	d, err := FromBLIF(m, mode)
	if err != nil {
		t.Fatalf("FromBLIF: %v", err)
	}
	return d
}

func TestFromBLIFAndSanityCheck(t *testing.T) {
	d := mustBuild(t, fullAdderBLIF, ModeDigital)
	if d.Len() != 3+5+2 {
		t.Fatalf("Len() = %d, want %d", d.Len(), 10)
	}
	if err := d.SanityCheck(); err != nil {
		t.Fatalf("SanityCheck: %v", err)
	}
}

func TestSimulateFullAdder(t *testing.T) {
	d := mustBuild(t, fullAdderBLIF, ModeDigital)

	vectors := map[string]bool{"a": true}
	_ = vectors

	nBits := 4
	a := func(i int) bool { return true }
	_ = a

	// Exercise all four canonical vectors end to end: every port must see
	// the DAG's own input pattern, so a self-comparison with CompareBefore
	// on an unmodified clone should always succeed.
	clone, err := roundTripJSON(t, d)
	if err != nil {
		t.Fatalf("roundTripJSON: %v", err)
	}
	if err := CompareBefore(d, clone, nBits); err != nil {
		t.Fatalf("CompareBefore(self, self): %v", err)
	}

	out, err := d.Simulate(CanonicalVectors["all-one"], 1)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if !out["sum"][0] {
		t.Errorf("sum = %v with all inputs 1, want true (1+1+1 -> sum bit 1)", out["sum"][0])
	}
	if !out["cout"][0] {
		t.Errorf("cout = %v with all inputs 1, want true", out["cout"][0])
	}

	out, err = d.Simulate(CanonicalVectors["all-zero"], 1)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if out["sum"][0] || out["cout"][0] {
		t.Errorf("all-zero vector: sum=%v cout=%v, want false/false", out["sum"][0], out["cout"][0])
	}
}

func roundTripJSON(t *testing.T, d *DAG) (*DAG, error) {
	t.Helper()
	var buf strings.Builder
	if err := d.WriteJSON(&buf); err != nil {
		return nil, err
	}
	return ReadJSON(strings.NewReader(buf.String()))
}

func TestTopoOrdersAreValid(t *testing.T) {
	d := mustBuild(t, fullAdderBLIF, ModeDigital)

	orders := map[string][]string{
		"priority-kahn":        d.PriorityKahnOrder(),
		"source-insertion":     d.SourceInsertionOrder(),
		"alap":                 d.ALAPOrder(),
		"register-pressure":    d.RegisterPressureOrder(),
		"register-pressure-pf": d.RegisterPressureOrderPortsFirst(),
	}
	for name, order := range orders {
		if len(order) != d.Len() {
			t.Fatalf("%s: order has %d gates, want %d", name, len(order), d.Len())
		}
		position := make(map[string]int, len(order))
		for i, id := range order {
			position[id] = i
		}
		for _, id := range order {
			for _, pred := range d.Predecessors(id) {
				if position[pred] >= position[id] {
					t.Errorf("%s: %s scheduled before its predecessor %s", name, id, pred)
				}
			}
		}
	}
}

func TestReplaceInputWireRejectsWireWithoutIncomingEdge(t *testing.T) {
	d := mustBuild(t, fullAdderBLIF, ModeDigital)
	if err := d.ReplaceInputWire("g1_ab_xor", "a", "a_renamed"); err == nil {
		t.Fatal("expected an error: a_renamed is not yet a wire reachable at this gate")
	}
}

func TestGetReusableInoutWires(t *testing.T) {
	d := mustBuild(t, fullAdderBLIF, ModeAnalog)
	// g4 is the second and2 (ab_xor, cin -> cin_and); under the analog
	// substrate its non-segmented, non-port inputs are reuse candidates, so
	// ab_xor qualifies and the port wire cin does not.
	reusable := d.GetReusableInoutWires("g4_cin_and")
	if len(reusable) != 1 || reusable[0] != "ab_xor" {
		t.Fatalf("GetReusableInoutWires(g4_cin_and) = %v, want [ab_xor]", reusable)
	}
}
