// Package irgen emits the micro-program IR forms spec §4.4 describes: a
// plain bitwise-C function (GeneratorBitwise) and a C function whose body
// is one inline-asm block per gate following the #PIM_OP convention
// (GeneratorAsm). Grounded on cmd/z80opt/main.go's use of text/template-
// free, direct strings.Builder code generation.
package irgen

import (
	"fmt"
	"strings"

	"github.com/pimlab/bscompile/pkg/circuit"
	"github.com/pimlab/bscompile/pkg/gate"
)

// exprTable maps a gate function to the C expression template spec §4.4
// prescribes, with %s placeholders for each (already inversion-corrected)
// operand in declaration order.
var exprTable = map[gate.Func]string{
	gate.Copy:      "%s",
	gate.CopyInout: "%s",
	gate.Inv1:      "(~%s)",
	gate.And2:      "(%s & %s)",
	gate.Or2:       "(%s | %s)",
	gate.Nand2:     "(~(%s & %s))",
	gate.Nor2:      "(~(%s | %s))",
	gate.Xor2:      "(%s ^ %s)",
	gate.Xnor2:     "(~(%s ^ %s))",
	gate.Mux2:      "(%s ? %s : %s)",
	gate.Maj3:      "((%s & %s) | (%s & %s) | (%s & %s))",
	gate.Zero:      "0",
	gate.One:       "1",
}

// GeneratorBitwise emits a single C function: one local variable per wire,
// one assignment per gate in topological order, honoring Inverted
// per-operand negation.
type GeneratorBitwise struct {
	FuncName string
}

// Emit writes the generated C source for d to sb.
func (g GeneratorBitwise) Emit(sb *strings.Builder, d *circuit.DAG) error {
	name := g.FuncName
	if name == "" {
		name = d.ModuleName
	}

	fmt.Fprintf(sb, "void %s(", name)
	var params []string
	for _, in := range d.InPorts() {
		params = append(params, fmt.Sprintf("unsigned %s", sanitize(in)))
	}
	for _, out := range d.OutPorts() {
		params = append(params, fmt.Sprintf("unsigned *%s", sanitize(out)))
	}
	fmt.Fprintf(sb, "%s) {\n", strings.Join(params, ", "))

	for _, id := range d.SourceInsertionOrder() {
		gt, _ := d.Gate(id)
		switch {
		case d.IsInPort(id):
			continue
		case d.IsOutPort(id):
			w := gt.Inputs[0]
			expr := sanitize(w)
			if gt.Inverted[w] {
				expr = "(~" + expr + ")"
			}
			fmt.Fprintf(sb, "  *%s = %s;\n", sanitize(id), expr)
		default:
			tmpl, ok := exprTable[gt.Func]
			if !ok {
				return fmt.Errorf("irgen: no bitwise expression for gate function %s", gt.Func)
			}
			operands := make([]any, 0, len(gt.Inputs)*2)
			for _, w := range gt.Inputs {
				expr := sanitize(w)
				if gt.Inverted[w] {
					expr = "(~" + expr + ")"
				}
				operands = append(operands, expr)
			}
			// maj3's template repeats operands (a&b)|(a&c)|(b&c); expand.
			if gt.Func == gate.Maj3 && len(operands) == 3 {
				a, b, c := operands[0], operands[1], operands[2]
				operands = []any{a, b, a, c, b, c}
			}
			// mux2's inputs are [data0, data1, sel]; its template is
			// (sel ? data1 : data0).
			if gt.Func == gate.Mux2 && len(operands) == 3 {
				operands = []any{operands[2], operands[1], operands[0]}
			}
			expr := fmt.Sprintf(tmpl, operands...)
			fmt.Fprintf(sb, "  unsigned %s = %s;\n", sanitize(outputWire(gt)), expr)
		}
	}
	fmt.Fprintln(sb, "}")
	return nil
}

func outputWire(g *gate.Gate) string {
	if len(g.Outputs) == 0 {
		return ""
	}
	return g.Outputs[0]
}

// sanitize maps a BLIF/IR wire name to a valid C identifier, replacing bus
// index brackets with underscores at emission time only (spec §3: bus-
// indexed names stay untouched internally until emission).
func sanitize(name string) string {
	r := strings.NewReplacer("[", "_", "]", "_", ".", "_")
	return r.Replace(name)
}
