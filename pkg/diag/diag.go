// Package diag is the ambient "logging" stack for bscompile: a thin
// fmt.Fprintf wrapper gated by an integer debug level, following the
// teacher's own style (cmd/z80opt/main.go and pkg/search/worker.go print
// directly with fmt, guarded by an explicit verbose bool) rather than
// pulling in a structured-logging library the pack never uses.
package diag

import (
	"fmt"
	"io"
	"os"
)

// Level is the current debug level (spec §4.3's "debug level >= 1",
// the Python original's self.debug_level). 0 is silent; higher levels add
// progressively more internal tracing, matching blif_dag.py's use of the
// same integer across 1 (summaries), 2 (sanity-check info), and 4
// (per-edit tracing).
var Level = 0

// Out is where diagnostics are written; tests may redirect it.
var Out io.Writer = os.Stderr

// At prints msg (fmt-style) when the current Level is >= level.
func At(level int, format string, args ...any) {
	if Level >= level {
		fmt.Fprintf(Out, format+"\n", args...)
	}
}

// TransformSummary prints the standard "DAG-Transform Summary: …" line a
// transformation pass emits at debug level >= 1 (spec §4.3).
func TransformSummary(pass string, gatesAdded, wiresRewritten int) {
	At(1, "DAG-Transform Summary: %s — %d gates added, %d wires rewritten", pass, gatesAdded, wiresRewritten)
}

// Warn always prints, regardless of level — used for the non-fatal
// warnings spec §7 calls out (file-overwrite, suspended instruction with a
// concrete PIM register, residual analog-PIM violations after
// WireCopyInserter has run to fixed point).
func Warn(format string, args ...any) {
	fmt.Fprintf(Out, "warning: "+format+"\n", args...)
}
