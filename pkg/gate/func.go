// Package gate defines the closed catalog of gate functions that make up a
// circuit DAG node, and the per-function metadata the rest of the compiler
// needs (arity, truth table, whether a function is input-destroying under
// the analog substrate).
package gate

// Func is a compact identifier for a gate function (not a raw BLIF token).
// Using our own enum, rather than the bare string BLIF spells it with,
// keeps the transformation catalog pattern-matchable over a closed set.
type Func uint8

const (
	InPort Func = iota
	OutPort
	Copy
	CopyInout
	Inv1
	And2
	Or2
	Nand2
	Nor2
	Xor2
	Xnor2
	Mux2
	Maj3
	Zero
	One

	funcCount
)

var names = [funcCount]string{
	InPort:    "in_port",
	OutPort:   "out_port",
	Copy:      "copy",
	CopyInout: "copy_inout",
	Inv1:      "inv1",
	And2:      "and2",
	Or2:       "or2",
	Nand2:     "nand2",
	Nor2:      "nor2",
	Xor2:      "xor2",
	Xnor2:     "xnor2",
	Mux2:      "mux2",
	Maj3:      "maj3",
	Zero:      "zero",
	One:       "one",
}

func (f Func) String() string {
	if int(f) < len(names) {
		return names[f]
	}
	return "unknown"
}

// ParseFunc maps a BLIF gate-function token to a Func.
func ParseFunc(s string) (Func, bool) {
	for i, n := range names {
		if n == s && i != int(InPort) && i != int(OutPort) {
			return Func(i), true
		}
	}
	return 0, false
}

// Arity is the fixed number of inputs a gate function expects, or -1 for a
// value outside the catalog (in_port/zero/one have none;
// out_port/copy/copy_inout/inv1 have one; the 2-input logic family has
// two; mux2/maj3 have three).
func (f Func) Arity() int {
	switch f {
	case InPort, Zero, One:
		return 0
	case OutPort, Copy, CopyInout, Inv1:
		return 1
	case And2, Or2, Nand2, Nor2, Xor2, Xnor2:
		return 2
	case Mux2, Maj3:
		return 3
	default:
		return -1
	}
}

// IsInputDestroying reports whether the analog substrate's implementation
// of this function overwrites its input rows (spec: and2, or2, maj3).
func (f Func) IsInputDestroying() bool {
	switch f {
	case And2, Or2, Maj3:
		return true
	default:
		return false
	}
}

// IsPort reports whether f is one of the two port gate functions.
func (f Func) IsPort() bool {
	return f == InPort || f == OutPort
}

// Eval applies f's truth table to ins (already corrected for inversion by
// the caller) and returns the single logical output bit. mux2 reads
// ins = [data0, data1, sel]; maj3 reads three data bits.
func (f Func) Eval(ins []bool) bool {
	switch f {
	case Copy, CopyInout:
		return ins[0]
	case Inv1:
		return !ins[0]
	case And2:
		return ins[0] && ins[1]
	case Or2:
		return ins[0] || ins[1]
	case Nand2:
		return !(ins[0] && ins[1])
	case Nor2:
		return !(ins[0] || ins[1])
	case Xor2:
		return ins[0] != ins[1]
	case Xnor2:
		return ins[0] == ins[1]
	case Mux2:
		if ins[2] {
			return ins[1]
		}
		return ins[0]
	case Maj3:
		a, b, c := ins[0], ins[1], ins[2]
		return (a && b) || (a && c) || (b && c)
	case Zero:
		return false
	case One:
		return true
	default:
		return false
	}
}
