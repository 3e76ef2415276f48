package postopt

import "github.com/pimlab/bscompile/pkg/stmt"

// RedundantCopyRemover drops copy/mv statements whose source and
// destination operand are already the same name, splicing the removed
// instruction's sole source instruction into any instruction downstream
// that listed it as a SourceInstruction, so provenance is not silently
// lost.
type RedundantCopyRemover struct{}

func (RedundantCopyRemover) Name() string { return "RedundantCopyRemover" }

func (RedundantCopyRemover) Apply(stmts []*stmt.Linked) []*stmt.Linked {
	kept := make([]*stmt.Linked, 0, len(stmts))
	removed := map[*stmt.Linked]*stmt.Linked{} // removed instruction -> its sole source, for splicing

	for _, s := range stmts {
		if (s.Op == stmt.Copy || s.Op == stmt.Mv) && s.Dest() != "" && len(s.Sources()) == 1 && s.Sources()[0] == s.Dest() {
			var src *stmt.Linked
			if len(s.SourceInstructions) == 1 {
				src = s.SourceInstructions[0]
			}
			removed[s] = src
			continue
		}
		kept = append(kept, s)
	}

	for _, s := range kept {
		for i, src := range s.SourceInstructions {
			if replacement, wasRemoved := removed[src]; wasRemoved {
				s.SourceInstructions[i] = replacement
			}
		}
	}
	return kept
}
