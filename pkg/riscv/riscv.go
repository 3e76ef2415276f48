// Package riscv parses the subset of RISC-V inline-assembly text bscompile
// emits and later reverse-translates: instruction lines, the #PIM_OP
// BEGIN/END marker directives (spec §4.4's "#PIM_OP BEGIN/<gate_id>
// <opcode> <operands>/END" convention), and #APP/#NO_APP toolchain
// boundary markers. Grounded on pkg/inst's table-driven mnemonic decoding,
// re-expressed over a line-oriented text stream rather than raw machine
// code — the reverse translator's input is the compiler's asm listing, not
// bytes.
package riscv

import (
	"bufio"
	"io"
	"strings"

	"github.com/pimlab/bscompile/pkg/bserr"
)

// Kind tags a parsed assembly-stream line — re-expressing the Python
// original's duck-typed line objects (SPEC_FULL.md §8's design note) as a
// single tagged struct rather than an interface hierarchy, since every
// line-kind here carries the same shape (raw text, line number) plus a
// small kind-specific payload.
type Kind uint8

const (
	KindInstruction Kind = iota
	KindDirective
	KindPimOpBegin
	KindPimOpEnd
	KindApp
	KindNoApp
	KindLabel
	KindComment
)

// Line is one parsed line of the assembly stream.
type Line struct {
	Kind   Kind
	Raw    string
	LineNo int

	// Instruction fields (Kind == KindInstruction).
	Mnemonic string
	Operands []string

	// PimOpBegin fields.
	GateID  string
	Opcode  string
	PimArgs []string

	// Directive/Label fields.
	Name string

	// DebugSymbol carries the port or wire name a "# DEBUG_VALUE: <name>"
	// comment immediately preceding a lw/sw/ld/sd names — the compiler's
	// debug-info annotation tying a memory access back to a BLIF port
	// (spec §4.5's "debug-value directive").
	DebugSymbol string
}

// Parse scans r into a slice of Lines.
func Parse(r io.Reader) ([]Line, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	var lines []Line
	lineNo := 0
	pendingDebugSymbol := ""
	for sc.Scan() {
		lineNo++
		raw := sc.Text()
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "# DEBUG_VALUE:") {
			pendingDebugSymbol = strings.TrimSpace(strings.TrimPrefix(trimmed, "# DEBUG_VALUE:"))
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			ln, err := parseDirectiveOrMarker(trimmed, raw, lineNo)
			if err != nil {
				return nil, err
			}
			lines = append(lines, ln)
			continue
		}
		if strings.HasSuffix(trimmed, ":") && !strings.Contains(trimmed, " ") {
			lines = append(lines, Line{Kind: KindLabel, Raw: raw, LineNo: lineNo, Name: strings.TrimSuffix(trimmed, ":")})
			continue
		}
		fields := strings.Fields(strings.ReplaceAll(trimmed, ",", " "))
		lines = append(lines, Line{
			Kind:        KindInstruction,
			Raw:         raw,
			LineNo:      lineNo,
			Mnemonic:    fields[0],
			Operands:    fields[1:],
			DebugSymbol: pendingDebugSymbol,
		})
		pendingDebugSymbol = ""
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func parseDirectiveOrMarker(trimmed, raw string, lineNo int) (Line, error) {
	switch {
	case trimmed == "#APP":
		return Line{Kind: KindApp, Raw: raw, LineNo: lineNo}, nil
	case trimmed == "#NO_APP":
		return Line{Kind: KindNoApp, Raw: raw, LineNo: lineNo}, nil
	case strings.HasPrefix(trimmed, "#PIM_OP BEGIN"):
		fields := strings.Fields(trimmed)
		// "#PIM_OP" "BEGIN/<gate_id>" <opcode> <operands...>
		if len(fields) < 3 {
			return Line{}, &bserr.ParseError{Source: "riscv", Line: lineNo, Token: trimmed, Reason: "malformed #PIM_OP BEGIN marker"}
		}
		gateID := strings.TrimPrefix(fields[1], "BEGIN/")
		return Line{
			Kind:    KindPimOpBegin,
			Raw:     raw,
			LineNo:  lineNo,
			GateID:  gateID,
			Opcode:  fields[2],
			PimArgs: fields[3:],
		}, nil
	case strings.HasPrefix(trimmed, "#PIM_OP END"):
		return Line{Kind: KindPimOpEnd, Raw: raw, LineNo: lineNo}, nil
	default:
		return Line{Kind: KindComment, Raw: raw, LineNo: lineNo}, nil
	}
}

// ClobberList returns every general-purpose RISC-V register outside
// t0..t<numRegs-1>/s-class allocation the scheduler is using, as the
// clobber list an inline-assembly block declares to force the external C
// compiler's register allocator to spill around it (spec §4.8).
func ClobberList(liveNames []string) []string {
	live := map[string]bool{}
	for _, n := range liveNames {
		live[n] = true
	}
	all := []string{
		"ra", "gp", "tp",
		"t0", "t1", "t2", "t3", "t4", "t5", "t6",
		"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
		"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10", "s11",
	}
	var clobber []string
	for _, r := range all {
		if !live[r] {
			clobber = append(clobber, r)
		}
	}
	clobber = append(clobber, "memory")
	return clobber
}
