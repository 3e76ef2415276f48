package irgen

import (
	"fmt"
	"strings"

	"github.com/pimlab/bscompile/pkg/circuit"
	"github.com/pimlab/bscompile/pkg/regmap"
	"github.com/pimlab/bscompile/pkg/riscv"
)

// opcodeTable maps a digital/analog gate function to the #PIM_OP mnemonic
// spec §4.4/§6 emit inside the inline-assembly block.
var opcodeTable = map[string]string{
	"copy": "copy", "copy_inout": "copy_inout", "inv1": "inv1",
	"and2": "and2", "or2": "or2", "nand2": "nand2", "nor2": "nor2",
	"xor2": "xor2", "xnor2": "xnor2", "mux2": "mux2", "maj3": "maj3",
	"zero": "zero", "one": "one",
}

// GeneratorAsm emits a C function taking each input port by value and each
// output port by pointer, with a local scalar per gate output and one
// asm volatile(...) block per gate whose template carries the
// #PIM_OP BEGIN/<gate_id> <opcode> <operands...> and #PIM_OP END marker
// lines (spec §4.4, §6) around a single comment line naming the opcode and
// operands.
type GeneratorAsm struct {
	FuncName string
	NumRegs  int
}

// Emit writes the generated C source (with embedded inline assembly) for d
// to sb.
func (g GeneratorAsm) Emit(sb *strings.Builder, d *circuit.DAG) error {
	name := g.FuncName
	if name == "" {
		name = d.ModuleName
	}
	numRegs := g.NumRegs
	if numRegs <= 0 || numRegs > regmap.MaxRegs {
		numRegs = regmap.MaxRegs
	}
	liveNames, _ := regmap.Names(numRegs)
	clobbers := riscv.ClobberList(liveNames)

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
		gt, ok := d.Gate(id)
		if !ok {
			continue
		}
		switch {
		case d.IsInPort(id):
			continue
		case d.IsOutPort(id):
			w := gt.Inputs[0]
			fmt.Fprintf(sb, "  *%s = %s;\n", sanitize(id), sanitize(w))
		default:
			opcode, ok := opcodeTable[gt.Func.String()]
			if !ok {
				return fmt.Errorf("irgen: no PIM opcode for gate function %s", gt.Func)
			}
			out := outputWire(gt)
			fmt.Fprintf(sb, "  unsigned %s;\n", sanitize(out))

			var operands []string
			operands = append(operands, sanitize(out))
			for _, w := range gt.Inputs {
				operands = append(operands, sanitize(w))
			}

			fmt.Fprintln(sb, "  asm volatile (")
			fmt.Fprintf(sb, "    \"#PIM_OP BEGIN/%s %s %s\\n\"\n", id, opcode, strings.Join(operands, " "))
			fmt.Fprintf(sb, "    \"// %s %s\\n\"\n", opcode, strings.Join(operands, " "))
			fmt.Fprintln(sb, "    \"#PIM_OP END\\n\"")
			fmt.Fprintf(sb, "    : \"=r\"(%s)\n", sanitize(out))
			var ins []string
			for _, w := range gt.Inputs {
				ins = append(ins, fmt.Sprintf("\"r\"(%s)", sanitize(w)))
			}
			fmt.Fprintf(sb, "    : %s\n", strings.Join(ins, ", "))
			fmt.Fprintf(sb, "    : %s\n", quoteList(clobbers))
			fmt.Fprintln(sb, "  );")
		}
	}
	fmt.Fprintln(sb, "}")
	return nil
}

func quoteList(items []string) string {
	q := make([]string, len(items))
	for i, it := range items {
		q[i] = fmt.Sprintf("%q", it)
	}
	return strings.Join(q, ", ")
}
