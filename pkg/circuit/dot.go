package circuit

import (
	"fmt"
	"io"
)

// WriteDOT renders the DAG as Graphviz DOT text (spec §4.8's visualization
// hook, replacing the Python original's pyvis HTML view — pyvis has no Go
// equivalent in the example pack or its dependency surface, so this emits
// the plain-text format `dot`/any Graphviz-compatible viewer can already
// render without another third-party renderer).
func (d *DAG) WriteDOT(w io.Writer) error {
	fmt.Fprintf(w, "digraph %s {\n", dotID(d.ModuleName))
	fmt.Fprintln(w, "  rankdir=LR;")
	for _, id := range d.order {
		g := d.gates[id]
		shape := "box"
		switch {
		case d.IsInPort(id):
			shape = "invhouse"
		case d.IsOutPort(id):
			shape = "house"
		}
		fmt.Fprintf(w, "  %s [label=%q shape=%s];\n", dotID(id), fmt.Sprintf("%s\\n%s", id, g.Func), shape)
	}
	for _, id := range d.order {
		for _, e := range d.OutEdgeWires(id) {
			fmt.Fprintf(w, "  %s -> %s [label=%q];\n", dotID(id), dotID(e.To), e.WireName)
		}
	}
	fmt.Fprintln(w, "}")
	return nil
}

func dotID(s string) string {
	return fmt.Sprintf("%q", s)
}
