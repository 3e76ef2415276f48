// Package blif parses the Berkeley Logic Interchange Format grammar spec.md
// §4.2 describes into an in-order list of port names and gate-info records
// the DAG builder consumes. Grounded on original_source's
// src/blif-parser/parser.py, re-expressed as a line-oriented scanner in the
// teacher's parsing idiom (pkg/inst's table-driven mnemonic matching,
// cmd/z80opt's Sscanf-based literal parsing).
package blif

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pimlab/bscompile/pkg/bserr"
	"github.com/pimlab/bscompile/pkg/gate"
)

// GateInfo is one parsed `.gate` declaration: a gate-id counter, its
// function, an ordered input list matching BLIF pin-name declaration order
// (a, b, c, s), and its single output wire.
type GateInfo struct {
	GateID string
	Func   gate.Func
	Inputs []string
	Output string
	Line   int
}

// Module is the parsed result of one BLIF file: a single flat model (no
// `.subckt` nesting — see SPEC_FULL.md §3), its ports in declaration order,
// and its gate declarations in declaration order.
type Module struct {
	Name     string
	InPorts  []string
	OutPorts []string
	Gates    []GateInfo
}

// pinOrder lists, for each accepted gate function, the BLIF pin-name order
// used to build the Inputs list (a, b, c, s as applicable).
var pinOrder = map[gate.Func][]string{
	gate.Inv1:  {"a"},
	gate.Copy:  {"a"},
	gate.And2:  {"a", "b"},
	gate.Or2:   {"a", "b"},
	gate.Nand2: {"a", "b"},
	gate.Nor2:  {"a", "b"},
	gate.Xor2:  {"a", "b"},
	gate.Xnor2: {"a", "b"},
	gate.Maj3:  {"a", "b", "c"},
	gate.Mux2:  {"a", "b", "s"},
	gate.Zero:  {},
	gate.One:   {},
}

// Parse reads a BLIF text stream and returns the parsed module.
func Parse(r io.Reader) (*Module, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	m := &Module{}
	gateCounter := 0
	sawModel, sawEnd := false, false

	var pending strings.Builder
	pendingLine := 0

	flush := func(lineNo int, text string) error {
		line := strings.TrimSpace(text)
		if line == "" || strings.HasPrefix(line, "#") {
			return nil
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case ".model":
			if len(fields) < 2 {
				return &bserr.ParseError{Source: "blif", Line: lineNo, Token: line, Reason: "missing module name"}
			}
			m.Name = fields[1]
			sawModel = true
		case ".inputs":
			m.InPorts = append(m.InPorts, fields[1:]...)
		case ".outputs":
			m.OutPorts = append(m.OutPorts, fields[1:]...)
		case ".gate":
			gi, err := parseGateLine(fields[1:], lineNo, &gateCounter)
			if err != nil {
				return err
			}
			m.Gates = append(m.Gates, gi)
		case ".end":
			sawEnd = true
		default:
			return &bserr.ParseError{Source: "blif", Line: lineNo, Token: fields[0], Reason: "unknown directive"}
		}
		return nil
	}

	lineNo := 0
	for sc.Scan() {
		lineNo++
		raw := sc.Text()
		trimmed := strings.TrimRight(raw, " \t")
		if strings.HasSuffix(trimmed, "\\") {
			if pending.Len() == 0 {
				pendingLine = lineNo
			}
			pending.WriteString(strings.TrimSuffix(trimmed, "\\"))
			pending.WriteByte(' ')
			continue
		}
		if pending.Len() > 0 {
			pending.WriteString(raw)
			if err := flush(pendingLine, pending.String()); err != nil {
				return nil, err
			}
			pending.Reset()
			continue
		}
		if err := flush(lineNo, raw); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("blif: read: %w", err)
	}
	if !sawModel {
		return nil, &bserr.ParseError{Source: "blif", Line: 0, Token: "", Reason: "missing .model"}
	}
	if !sawEnd {
		return nil, &bserr.ParseError{Source: "blif", Line: lineNo, Token: "", Reason: "missing .end"}
	}
	return m, nil
}

// parseGateLine parses the token list following `.gate`, e.g.
// `and2 a=x b=y O=z`.
func parseGateLine(fields []string, lineNo int, counter *int) (GateInfo, error) {
	if len(fields) == 0 {
		return GateInfo{}, &bserr.ParseError{Source: "blif", Line: lineNo, Token: ".gate", Reason: "missing gate function"}
	}
	fn, ok := gate.ParseFunc(fields[0])
	if !ok {
		return GateInfo{}, &bserr.ParseError{Source: "blif", Line: lineNo, Token: fields[0], Reason: "unknown gate function"}
	}
	pins := map[string]string{}
	for _, f := range fields[1:] {
		kv := strings.SplitN(f, "=", 2)
		if len(kv) != 2 {
			return GateInfo{}, &bserr.ParseError{Source: "blif", Line: lineNo, Token: f, Reason: "expected key=value pin binding"}
		}
		pins[kv[0]] = kv[1]
	}
	output, ok := pins["O"]
	if !ok {
		return GateInfo{}, &bserr.ParseError{Source: "blif", Line: lineNo, Token: fields[0], Reason: "missing O= output pin"}
	}
	order, known := pinOrder[fn]
	if !known {
		return GateInfo{}, &bserr.ParseError{Source: "blif", Line: lineNo, Token: fields[0], Reason: "gate function has no pin order"}
	}
	inputs := make([]string, 0, len(order))
	for _, pin := range order {
		v, ok := pins[pin]
		if !ok {
			return GateInfo{}, &bserr.ParseError{Source: "blif", Line: lineNo, Token: fields[0], Reason: fmt.Sprintf("missing pin %s=", pin)}
		}
		inputs = append(inputs, v)
	}

	*counter++
	return GateInfo{
		GateID: fmt.Sprintf("g%d_%s", *counter, output),
		Func:   fn,
		Inputs: inputs,
		Output: output,
		Line:   lineNo,
	}, nil
}
