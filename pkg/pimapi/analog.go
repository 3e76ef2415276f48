package pimapi

import (
	"fmt"
	"strings"

	"github.com/pimlab/bscompile/pkg/stmt"
)

// Analog renders stmts against the analog Triple-Row-Activation vendor
// API: a single regFile row group plus its regFileNot dual-contact
// reference, a broadcast into the destination for every zero/one
// statement, AND/OR as a paired
// pimOpAAP(broadcast)+TRA sequence, maj3 as a single three-input pimOpAAP
// selecting regFile/regFileNot per operand from the statement's
// InversionSuffix, and inv1 as a plain regFileNot read.
type Analog struct {
	FuncName string
	InPorts  []string
	OutPorts []string
}

func (a Analog) Emit(stmts []*stmt.Linked) (string, error) {
	var sb strings.Builder
	header(&sb, a.FuncName, a.InPorts, a.OutPorts, countTemps(stmts))
	fmt.Fprintln(&sb, "  PimObjId regFile = pimAllocRowGroup();")
	fmt.Fprintln(&sb, "  PimObjId regFileNot = pimRowGroupNotRef(regFile);")

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
			fmt.Fprintf(&sb, "  pimOpBroadcast(%s, %d);\n", operandRef(s.Dest()), boolLit(s.Op == stmt.OneOp))
		case stmt.Inv1:
			fmt.Fprintf(&sb, "  pimOpMove(regFileNot /* %s */, %s);\n", operandRef(s.Sources()[0]), operandRef(s.Dest()))
		case stmt.And2, stmt.Or2:
			srcs := s.Sources()
			fmt.Fprintf(&sb, "  pimOpAAP(%s, %s); // broadcast\n", operandRef(srcs[0]), operandRef(srcs[1]))
			fmt.Fprintf(&sb, "  pimOpAAP_TRA(%s, %s, %s);\n", operandRef(srcs[0]), operandRef(srcs[1]), operandRef(s.Dest()))
		case stmt.Maj3:
			srcs := s.Sources()
			refs := make([]string, len(srcs))
			for i, src := range srcs {
				if s.Inverted[i] {
					refs[i] = fmt.Sprintf("regFileNot /* %s */", operandRef(src))
				} else {
					refs[i] = operandRef(src)
				}
			}
			fmt.Fprintf(&sb, "  pimOpAAP3(%s, %s);\n", strings.Join(refs, ", "), operandRef(s.Dest()))
		case stmt.Mv, stmt.Copy, stmt.CopyInout:
			fmt.Fprintf(&sb, "  pimOpMove(%s, %s);\n", operandRef(s.Sources()[0]), operandRef(s.Dest()))
		default:
			return "", fmt.Errorf("pimapi: no analog rendering for %s", s.Op)
		}
	}

	footer(&sb, a.InPorts, a.OutPorts, countTemps(stmts))
	return sb.String(), nil
}
