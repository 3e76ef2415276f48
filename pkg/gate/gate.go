package gate

// Gate is a node in the circuit DAG. Inputs and Outputs preserve
// declaration order — order is semantically significant for mux2's select
// pin and for assembly operand positions. Inverted is the subset of Inputs
// consumed complemented (the analog dual-contact capability); it must stay
// empty for port gates.
type Gate struct {
	ID       string
	Func     Func
	Inputs   []string
	Outputs  []string
	Inverted map[string]bool
}

// New creates a gate with copies of the given input/output lists so the
// caller's slices remain theirs to mutate.
func New(id string, fn Func, inputs, outputs []string) *Gate {
	g := &Gate{
		ID:       id,
		Func:     fn,
		Inverted: map[string]bool{},
	}
	g.Inputs = append([]string(nil), inputs...)
	g.Outputs = append([]string(nil), outputs...)
	return g
}

// HasInput reports whether w is currently one of g's input wires.
func (g *Gate) HasInput(w string) bool {
	for _, x := range g.Inputs {
		if x == w {
			return true
		}
	}
	return false
}

// HasOutput reports whether w is currently one of g's output wires.
func (g *Gate) HasOutput(w string) bool {
	for _, x := range g.Outputs {
		if x == w {
			return true
		}
	}
	return false
}

// InputIndex returns the position of w in g.Inputs, or -1.
func (g *Gate) InputIndex(w string) int {
	for i, x := range g.Inputs {
		if x == w {
			return i
		}
	}
	return -1
}

// Clone deep-copies a gate (used when InvEliminator duplicates a driver).
func (g *Gate) Clone(newID string) *Gate {
	c := &Gate{
		ID:       newID,
		Func:     g.Func,
		Inputs:   append([]string(nil), g.Inputs...),
		Outputs:  append([]string(nil), g.Outputs...),
		Inverted: make(map[string]bool, len(g.Inverted)),
	}
	for w := range g.Inverted {
		c.Inverted[w] = true
	}
	return c
}
