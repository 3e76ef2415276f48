// Package pimapi renders a []stmt.Linked micro-program into calls against
// a vendor PIM runtime API (spec §4.7): one variant for the digital
// bit-serial substrate, one for the analog Triple-Row-Activation
// substrate. Grounded on original_source/src/pim-api-emitter's shared
// base plus per-substrate opcode tables.
package pimapi

import (
	"fmt"
	"strings"

	"github.com/pimlab/bscompile/pkg/stmt"
)

// header emits the shared preamble both emitters use: a generated-file
// banner comment and the pim_api.h include (no include guard), one
// pimObject per I/O port with a bus-width trailing comment, and a
// rounded-up temp-block allocation.
func header(sb *strings.Builder, funcName string, inPorts, outPorts []string, temps int) {
	fmt.Fprintf(sb, "// generated by bscompile: do not edit\n")
	fmt.Fprintf(sb, "#include \"pim_api.h\"\n\n")
	fmt.Fprintf(sb, "void %s(void) {\n", funcName)
	for _, p := range inPorts {
		fmt.Fprintf(sb, "  PimObjId %s = pimAlloc(1); // bus width 1\n", sanitizeIdent(p))
	}
	for _, p := range outPorts {
		fmt.Fprintf(sb, "  PimObjId %s = pimAlloc(1); // bus width 1\n", sanitizeIdent(p))
	}
	block := roundUpPow2(temps, 8)
	fmt.Fprintf(sb, "  PimObjId temps[%d] = {0};\n", block)
	fmt.Fprintf(sb, "  for (int i = 0; i < %d; i++) temps[i] = pimAlloc(1);\n\n", block)
}

func footer(sb *strings.Builder, inPorts, outPorts []string, temps int) {
	fmt.Fprintln(sb)
	for _, p := range inPorts {
		fmt.Fprintf(sb, "  pimFree(%s);\n", sanitizeIdent(p))
	}
	for _, p := range outPorts {
		fmt.Fprintf(sb, "  pimFree(%s);\n", sanitizeIdent(p))
	}
	block := roundUpPow2(temps, 8)
	fmt.Fprintf(sb, "  for (int i = 0; i < %d; i++) pimFree(temps[i]);\n", block)
	fmt.Fprintln(sb, "}")
}

func roundUpPow2(n, min int) int {
	if n < min {
		n = min
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

func sanitizeIdent(s string) string {
	r := strings.NewReplacer("[", "_", "]", "_", ".", "_")
	return r.Replace(s)
}

// operandRef resolves an operand name to a C expression: a declared port
// object, or a slot in the temps[] block (temp<k> -> temps[k]).
func operandRef(name string) string {
	if len(name) > 4 && name[:4] == "temp" {
		return fmt.Sprintf("temps[%s]", name[4:])
	}
	return sanitizeIdent(name)
}

// countTemps returns the highest temp index referenced by stmts, plus one,
// i.e. how many temp slots must be allocated.
func countTemps(stmts []*stmt.Linked) int {
	max := 0
	for _, s := range stmts {
		for _, op := range s.Operands {
			if len(op) > 4 && op[:4] == "temp" {
				var n int
				fmt.Sscanf(op[4:], "%d", &n)
				if n+1 > max {
					max = n + 1
				}
			}
		}
	}
	return max
}
