// Package circuit implements the typed gate/wire DAG from spec.md §4.1: its
// invariants, edit primitives, five topological-sort/scheduling strategies,
// the symbolic verifier (§4.9), and JSON/DOT (de)serialisation.
//
// Grounded on original_source/src/blif-translator/blif_dag.py's DAG class
// (a networkx.DiGraph wrapped with gate/wire-attribute helpers), re-expressed
// as Go adjacency maps — no graph library appears anywhere in the example
// pack, so this stays on plain maps/slices rather than reaching for one.
package circuit

import (
	"fmt"

	"github.com/pimlab/bscompile/pkg/bserr"
	"github.com/pimlab/bscompile/pkg/gate"
)

// Mode selects the target PIM substrate, governing which invariants
// sanity_check enforces (spec §3's analog-only final property) and which
// transformation pipeline applies (spec §4.3).
type Mode uint8

const (
	ModeDigital Mode = iota
	ModeAnalog
)

func (m Mode) String() string {
	if m == ModeAnalog {
		return "analog"
	}
	return "digital"
}

// ParseMode maps a --pim-mode CLI value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "digital":
		return ModeDigital, nil
	case "analog":
		return ModeAnalog, nil
	default:
		return 0, &bserr.ConfigError{Option: "--pim-mode", Message: fmt.Sprintf("unknown PIM mode %q", s)}
	}
}

// segMarker is the reserved segment marker separating a base wire name from
// its numeric uniquifying suffix (spec §3's "Segment").
const segMarker = "_$"

type edgeKey struct{ From, To string }

// DAG is the directed gate/wire graph described in spec.md §4.1/§3.
type DAG struct {
	ModuleName string
	Mode       Mode

	gates    map[string]*gate.Gate
	order    []string // gate insertion order, for deterministic iteration
	edges    map[edgeKey]string
	outEdges map[string][]string // gate id -> ordered consumer gate ids
	inEdges  map[string][]string // gate id -> ordered producer gate ids

	inPorts  []string
	outPorts []string
}

// New creates an empty DAG for the given module and substrate mode.
func New(moduleName string, mode Mode) *DAG {
	return &DAG{
		ModuleName: moduleName,
		Mode:       mode,
		gates:      map[string]*gate.Gate{},
		edges:      map[edgeKey]string{},
		outEdges:   map[string][]string{},
		inEdges:    map[string][]string{},
	}
}

// InPorts returns a copy of the input port list, in declaration order.
func (d *DAG) InPorts() []string { return append([]string(nil), d.inPorts...) }

// OutPorts returns a copy of the output port list, in declaration order.
func (d *DAG) OutPorts() []string { return append([]string(nil), d.outPorts...) }

// Gate looks up a gate by id.
func (d *DAG) Gate(id string) (*gate.Gate, bool) {
	g, ok := d.gates[id]
	return g, ok
}

// Gates returns all gate ids in insertion order.
func (d *DAG) Gates() []string { return append([]string(nil), d.order...) }

// Len returns the number of gates in the DAG.
func (d *DAG) Len() int { return len(d.gates) }

func (d *DAG) mustExist(id string) (*gate.Gate, error) {
	g, ok := d.gates[id]
	if !ok {
		return nil, &bserr.InvariantError{Gate: id, Message: "gate does not exist in the DAG"}
	}
	return g, nil
}

// AddGate adds a gate node (spec §4.1's add_gate). A port gate's id must
// equal its sole wire name; that invariant is enforced by the caller when
// wiring (AddWire), not here.
func (d *DAG) AddGate(id string, fn gate.Func, inputs, outputs []string) error {
	if _, exists := d.gates[id]; exists {
		return &bserr.InvariantError{Gate: id, Message: "gate id already exists in the DAG"}
	}
	g := gate.New(id, fn, inputs, outputs)
	d.gates[id] = g
	d.order = append(d.order, id)
	switch fn {
	case gate.InPort:
		d.inPorts = append(d.inPorts, id)
	case gate.OutPort:
		d.outPorts = append(d.outPorts, id)
	}
	return nil
}

// RemoveGate removes a gate with no remaining edges (spec §4.1's
// remove_gate: "remove rejects gates with live edges").
func (d *DAG) RemoveGate(id string) error {
	g, err := d.mustExist(id)
	if err != nil {
		return err
	}
	if len(d.inEdges[id]) > 0 || len(d.outEdges[id]) > 0 {
		return &bserr.InvariantError{Gate: id, Message: "cannot remove gate: it has connected wires"}
	}
	delete(d.gates, id)
	for i, gid := range d.order {
		if gid == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	if g.Func == gate.InPort {
		d.inPorts = removeString(d.inPorts, id)
	}
	if g.Func == gate.OutPort {
		d.outPorts = removeString(d.outPorts, id)
	}
	delete(d.outEdges, id)
	delete(d.inEdges, id)
	return nil
}

func removeString(ss []string, v string) []string {
	out := ss[:0]
	for _, s := range ss {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

// AddWire adds an edge carrying wireName from fanin to fanout (spec §4.1's
// add_wire).
func (d *DAG) AddWire(wireName, faninID, fanoutID string) error {
	if _, ok := d.gates[faninID]; !ok {
		return &bserr.InvariantError{Wire: wireName, Message: fmt.Sprintf("fanin gate %q does not exist", faninID)}
	}
	if _, ok := d.gates[fanoutID]; !ok {
		return &bserr.InvariantError{Wire: wireName, Message: fmt.Sprintf("fanout gate %q does not exist", fanoutID)}
	}
	key := edgeKey{faninID, fanoutID}
	if _, exists := d.edges[key]; exists {
		return &bserr.InvariantError{Wire: wireName, Message: fmt.Sprintf("wire already exists between %q and %q", faninID, fanoutID)}
	}
	d.edges[key] = wireName
	d.outEdges[faninID] = append(d.outEdges[faninID], fanoutID)
	d.inEdges[fanoutID] = append(d.inEdges[fanoutID], faninID)
	return nil
}

// RemoveWire removes the single edge between fanin and fanout (spec §4.1's
// remove_wire).
func (d *DAG) RemoveWire(faninID, fanoutID string) error {
	key := edgeKey{faninID, fanoutID}
	if _, exists := d.edges[key]; !exists {
		return &bserr.InvariantError{Message: fmt.Sprintf("wire does not exist between %q and %q", faninID, fanoutID)}
	}
	delete(d.edges, key)
	d.outEdges[faninID] = removeString(d.outEdges[faninID], fanoutID)
	d.inEdges[fanoutID] = removeString(d.inEdges[fanoutID], faninID)
	return nil
}

// WireName returns the wire name on the edge faninID -> fanoutID.
func (d *DAG) WireName(faninID, fanoutID string) (string, bool) {
	w, ok := d.edges[edgeKey{faninID, fanoutID}]
	return w, ok
}

// Predecessors returns the gate ids driving id, in edge-insertion order.
func (d *DAG) Predecessors(id string) []string { return append([]string(nil), d.inEdges[id]...) }

// Successors returns the gate ids id drives, in edge-insertion order.
func (d *DAG) Successors(id string) []string { return append([]string(nil), d.outEdges[id]...) }

// OutEdgeWires returns the (consumerID, wireName) pairs for id's out-edges,
// in insertion order — the Go equivalent of networkx's
// graph.out_edges(gate_id, data=True).
func (d *DAG) OutEdgeWires(id string) []struct {
	To       string
	WireName string
} {
	succs := d.outEdges[id]
	out := make([]struct {
		To       string
		WireName string
	}, 0, len(succs))
	for _, to := range succs {
		out = append(out, struct {
			To       string
			WireName string
		}{to, d.edges[edgeKey{id, to}]})
	}
	return out
}

// ReplaceInputWire updates gateID's input list, carries Inverted membership
// across, and recursively renames downstream segments of old to
// corresponding segments of new (spec §4.1's replace_input_wire). newWire
// must already label an edge into gateID; otherwise the rename is rejected.
func (d *DAG) ReplaceInputWire(gateID, oldWire, newWire string) error {
	g, err := d.mustExist(gateID)
	if err != nil {
		return err
	}
	idx := g.InputIndex(oldWire)
	if idx < 0 {
		return &bserr.InvariantError{Gate: gateID, Wire: oldWire, Message: "old wire is not an input of this gate"}
	}
	if g.HasInput(newWire) {
		return &bserr.InvariantError{Gate: gateID, Wire: newWire, Message: "new wire already exists as an input of this gate"}
	}
	if d.findProducer(gateID, newWire) == "" {
		return &bserr.InvariantError{Gate: gateID, Wire: newWire, Message: "new wire does not arrive at this gate on any edge"}
	}
	g.Inputs[idx] = newWire
	if g.Inverted[oldWire] {
		delete(g.Inverted, oldWire)
		g.Inverted[newWire] = true
	}

	for _, to := range append([]string(nil), d.outEdges[gateID]...) {
		key := edgeKey{gateID, to}
		wireName := d.edges[key]
		if d.IsSameWire(wireName, oldWire) {
			nextWire := d.GenerateUniqueWireSegmentName(newWire)
			d.edges[key] = nextWire
			if err := d.ReplaceInputWire(to, wireName, nextWire); err != nil {
				return err
			}
		}
	}
	return nil
}

// InvertInputWire toggles wireName's membership in gateID's Inverted set and
// recursively propagates the toggle along downstream segments of wireName
// (spec §4.1's invert_input_wire).
func (d *DAG) InvertInputWire(gateID, wireName string) error {
	g, err := d.mustExist(gateID)
	if err != nil {
		return err
	}
	if !g.HasInput(wireName) {
		return &bserr.InvariantError{Gate: gateID, Wire: wireName, Message: "wire is not an input of this gate"}
	}
	if g.Inverted[wireName] {
		delete(g.Inverted, wireName)
	} else {
		g.Inverted[wireName] = true
	}
	for _, to := range d.outEdges[gateID] {
		wn := d.edges[edgeKey{gateID, to}]
		if d.IsSameWire(wn, wireName) {
			if err := d.InvertInputWire(to, wn); err != nil {
				return err
			}
		}
	}
	return nil
}

// UniqufyGateID generates a gate id not already in use by appending a
// numeric suffix (spec §4.1's uniqufy_gate_id).
func (d *DAG) UniqufyGateID(base string) string {
	for suffix := 1; ; suffix++ {
		cand := fmt.Sprintf("%s_%d", base, suffix)
		if _, exists := d.gates[cand]; !exists {
			return cand
		}
	}
}

// UniqufyWireName generates a wire name not already in use by appending a
// numeric suffix (spec §4.1's uniqufy_wire_name).
func (d *DAG) UniqufyWireName(base string) string {
	used := map[string]bool{}
	for _, w := range d.edges {
		used[w] = true
	}
	for suffix := 1; ; suffix++ {
		cand := fmt.Sprintf("%s_%d", base, suffix)
		if !used[cand] {
			return cand
		}
	}
}

// GenerateUniqueWireSegmentName generates a fresh segment name for
// wireName's base (spec §4.1's generate_unique_wire_segment_name).
func (d *DAG) GenerateUniqueWireSegmentName(wireName string) string {
	base := d.WireBaseName(wireName)
	return d.UniqufyWireName(base + segMarker)
}

// IsSameWire reports whether a and b share the same base name, i.e. are the
// same wire or segments of it (spec §4.1's is_same_wire).
func (d *DAG) IsSameWire(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return d.WireBaseName(a) == d.WireBaseName(b)
}

// IsWireSegment reports whether wireName carries the segment marker.
func (d *DAG) IsWireSegment(wireName string) bool {
	return indexOfMarker(wireName) >= 0
}

// WireBaseName strips any segment suffix, returning the underlying wire's
// logical name.
func (d *DAG) WireBaseName(wireName string) string {
	if i := indexOfMarker(wireName); i >= 0 {
		return wireName[:i]
	}
	return wireName
}

func indexOfMarker(s string) int {
	for i := 0; i+len(segMarker) <= len(s); i++ {
		if s[i:i+len(segMarker)] == segMarker {
			return i
		}
	}
	return -1
}

// IsInPort reports whether id names an in_port gate.
func (d *DAG) IsInPort(id string) bool {
	g, ok := d.gates[id]
	return ok && g.Func == gate.InPort
}

// IsOutPort reports whether id names an out_port gate.
func (d *DAG) IsOutPort(id string) bool {
	g, ok := d.gates[id]
	return ok && g.Func == gate.OutPort
}

// GetReusableInoutWires returns the inputs of an input-destroying gate that
// are not already segmented and are not port wires — the candidates whose
// storage can host the next stage's output under the analog substrate
// (spec §4.1's get_reusable_inout_wires).
func (d *DAG) GetReusableInoutWires(gateID string) []string {
	g, ok := d.gates[gateID]
	if !ok || !g.Func.IsInputDestroying() {
		return nil
	}
	segmented := map[string]bool{}
	for _, e := range d.OutEdgeWires(gateID) {
		if d.IsWireSegment(e.WireName) {
			segmented[d.WireBaseName(e.WireName)] = true
		}
	}
	var reusable []string
	for _, w := range g.Inputs {
		if segmented[w] {
			continue
		}
		if d.IsInPort(w) || d.IsOutPort(w) {
			continue
		}
		reusable = append(reusable, w)
	}
	return reusable
}
