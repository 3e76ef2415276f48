package gate

import "testing"

func TestEval(t *testing.T) {
	tests := []struct {
		name string
		fn   Func
		ins  []bool
		want bool
	}{
		{"and2 both set", And2, []bool{true, true}, true},
		{"and2 one clear", And2, []bool{true, false}, false},
		{"or2 both clear", Or2, []bool{false, false}, false},
		{"nand2", Nand2, []bool{true, true}, false},
		{"nor2", Nor2, []bool{false, false}, true},
		{"xor2 differ", Xor2, []bool{true, false}, true},
		{"xnor2 same", Xnor2, []bool{true, true}, true},
		{"inv1", Inv1, []bool{false}, true},
		{"mux2 sel low picks data0", Mux2, []bool{true, false, false}, true},
		{"mux2 sel high picks data1", Mux2, []bool{true, false, true}, false},
		{"maj3 two of three", Maj3, []bool{true, true, false}, true},
		{"maj3 one of three", Maj3, []bool{true, false, false}, false},
		{"zero", Zero, nil, false},
		{"one", One, nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn.Eval(tc.ins); got != tc.want {
				t.Errorf("%s.Eval(%v) = %v, want %v", tc.fn, tc.ins, got, tc.want)
			}
		})
	}
}

func TestParseFunc(t *testing.T) {
	if fn, ok := ParseFunc("and2"); !ok || fn != And2 {
		t.Errorf("ParseFunc(and2) = %v, %v", fn, ok)
	}
	if _, ok := ParseFunc("in_port"); ok {
		t.Error("ParseFunc should reject in_port: it is not a BLIF gate function")
	}
	if _, ok := ParseFunc("bogus"); ok {
		t.Error("ParseFunc should reject an unknown token")
	}
}

func TestIsInputDestroying(t *testing.T) {
	for _, fn := range []Func{And2, Or2, Maj3} {
		if !fn.IsInputDestroying() {
			t.Errorf("%s should be input-destroying under the analog substrate", fn)
		}
	}
	for _, fn := range []Func{Xor2, Copy, Inv1, Mux2} {
		if fn.IsInputDestroying() {
			t.Errorf("%s should not be input-destroying", fn)
		}
	}
}
