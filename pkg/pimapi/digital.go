package pimapi

import (
	"fmt"
	"strings"

	"github.com/pimlab/bscompile/pkg/regmap"
	"github.com/pimlab/bscompile/pkg/stmt"
)

// digitalOpcode maps a micro-program opcode to the vendor's digital
// pimOp{...} call name (spec §4.7).
var digitalOpcode = map[stmt.Opcode]string{
	stmt.Inv1:  "pimOpNot",
	stmt.Copy:  "pimOpMove",
	stmt.Mv:    "pimOpMove",
	stmt.And2:  "pimOpAnd",
	stmt.Or2:   "pimOpOr",
	stmt.Nand2: "pimOpNand",
	stmt.Nor2:  "pimOpNor",
	stmt.Xor2:  "pimOpXor",
	stmt.Xnor2: "pimOpXnor",
	stmt.Maj3:  "pimOpMaj",
	stmt.Mux2:  "pimOpSel",
	stmt.Set:   "pimOpSet",
}

// Digital renders stmts against the digital-substrate vendor API.
type Digital struct {
	FuncName    string
	InPorts     []string
	OutPorts    []string
}

func (d Digital) Emit(stmts []*stmt.Linked) (string, error) {
	var sb strings.Builder
	header(&sb, d.FuncName, d.InPorts, d.OutPorts, countTemps(stmts))

	for _, s := range stmts {
		switch s.Op {
		case stmt.Read:
			dst, src := s.Operands[0], s.Operands[1]
			fmt.Fprintf(&sb, "  pimOpReadRowToSa(%s);\n", operandRef(src))
			fmt.Fprintf(&sb, "  pimOpMove(%s, %s);\n", operandRef(src), operandRef(dst))
		case stmt.Write:
			src, dst := s.Operands[0], s.Operands[1]
			fmt.Fprintf(&sb, "  pimOpMove(%s, %s);\n", operandRef(src), operandRef(dst))
			fmt.Fprintf(&sb, "  pimOpWriteSaToRow(%s);\n", operandRef(dst))
		case stmt.ZeroOp, stmt.OneOp:
			dst := s.Dest()
			fmt.Fprintf(&sb, "  pimOpSet(%s, %d);\n", operandRef(dst), boolLit(s.Op == stmt.OneOp))
		default:
			opcode, ok := digitalOpcode[s.Op]
			if !ok {
				return "", fmt.Errorf("pimapi: no digital opcode mapping for %s", s.Op)
			}
			args := make([]string, 0, len(s.Operands))
			for _, op := range s.Operands {
				if regIdx, isReg := regmap.IndexOf(op); isReg {
					args = append(args, regmap.PIMRegName(regIdx))
					continue
				}
				args = append(args, operandRef(op))
			}
			fmt.Fprintf(&sb, "  %s(%s);\n", opcode, strings.Join(args, ", "))
		}
	}

	footer(&sb, d.InPorts, d.OutPorts, countTemps(stmts))
	return sb.String(), nil
}

func boolLit(b bool) int {
	if b {
		return 1
	}
	return 0
}
