// Package regmap holds the fixed mapping between RISC-V general-purpose
// register names and the PIM vendor API's row-register enumeration (spec
// §4.7). Both the inline-assembly emitter (choosing which num_regs names
// stay live) and the digital PIM-API emitter (translating a spilled-back
// register name into the vendor's enum token) share this table.
package regmap

import "strconv"

// names lists the RISC-V registers bscompile is willing to hand to the
// external register allocator, in the fixed order spec §4.7 assigns to
// PIM_RREG_R1..R19: t0-t6 (the seven caller-saved temporaries) first,
// followed by s0-s11 (the twelve callee-saved registers).
var names = []string{
	"t0", "t1", "t2", "t3", "t4", "t5", "t6",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10", "s11",
}

// MaxRegs is the largest --num-regs value this table can satisfy.
const MaxRegs = 19

// RegName returns the RISC-V register name for PIM register index i
// (1-based, PIM_RREG_R1..R19).
func RegName(i int) (string, bool) {
	if i < 1 || i > len(names) {
		return "", false
	}
	return names[i-1], true
}

// PIMRegName returns the vendor enum token ("PIM_RREG_R<i>") for index i.
func PIMRegName(i int) string {
	return "PIM_RREG_R" + strconv.Itoa(i)
}

// Names returns the first n register names (in priority order), or false
// if n exceeds MaxRegs.
func Names(n int) ([]string, bool) {
	if n < 0 || n > len(names) {
		return nil, false
	}
	return append([]string(nil), names[:n]...), true
}

// IndexOf returns the 1-based PIM register index for a RISC-V register
// name, or false if it is not one of the names this table manages.
func IndexOf(regName string) (int, bool) {
	for i, n := range names {
		if n == regName {
			return i + 1, true
		}
	}
	return 0, false
}
