package postopt

import "github.com/pimlab/bscompile/pkg/stmt"

// PortSpillSimplifier runs three sweeps over the statement sequence,
// implementing spec §9's resolved ambiguity on when a write to a spilled
// temp may be deleted: only once it is provably never read by a real
// output-port write, not merely unread so far.
//
//  1. forward: build symbol -> declaring-statement map.
//  2. backward: mark a write "unreachable" unless some statement
//     downstream of it both reads its destination temp and is, or
//     transitively leads to, a write into a declared output port.
//  3. forward: purge statements marked unreachable in step 2.
type PortSpillSimplifier struct {
	OutputPorts []string
}

func (PortSpillSimplifier) Name() string { return "PortSpillSimplifier" }

func (p PortSpillSimplifier) Apply(stmts []*stmt.Linked) []*stmt.Linked {
	isOutput := map[string]bool{}
	for _, name := range p.OutputPorts {
		isOutput[name] = true
	}

	// Pass 1: forward — who declares each temp.
	declaredBy := map[string]*stmt.Linked{}
	for _, s := range stmts {
		if d := s.Dest(); d != "" {
			declaredBy[d] = s
		}
	}

	// Pass 2: backward — propagate "feeds a real output write" from the
	// end of the sequence toward the start.
	feedsOutput := map[*stmt.Linked]bool{}
	for i := len(stmts) - 1; i >= 0; i-- {
		s := stmts[i]
		if s.Op == stmt.Write && isOutput[s.Dest()] {
			feedsOutput[s] = true
		}
		if feedsOutput[s] {
			for _, src := range s.SourceInstructions {
				feedsOutput[src] = true
			}
			for _, srcName := range s.Sources() {
				if decl, ok := declaredBy[srcName]; ok {
					feedsOutput[decl] = true
				}
			}
		}
	}

	// Pass 3: forward — purge writes to temps that never feed a real
	// output port write.
	kept := make([]*stmt.Linked, 0, len(stmts))
	for _, s := range stmts {
		if s.Op == stmt.Write && !isOutput[s.Dest()] && !feedsOutput[s] {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}
