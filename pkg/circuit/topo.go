package circuit

import "sort"

// kahn runs Kahn's algorithm, repeatedly picking among the currently-ready
// gates (all predecessors already scheduled) via less, a tie-break
// comparator over the ready set. All five ordering strategies below are
// this same skeleton with a different less function, mirroring how
// blif_dag.py's five schedulers share one topological core and differ only
// in which ready node they pop next.
func (d *DAG) kahn(less func(ready []string) func(i, j int) bool) []string {
	indeg := make(map[string]int, len(d.gates))
	for id := range d.gates {
		indeg[id] = len(d.inEdges[id])
	}

	var ready []string
	for _, id := range d.order {
		if indeg[id] == 0 {
			ready = append(ready, id)
		}
	}

	result := make([]string, 0, len(d.gates))
	for len(ready) > 0 {
		sort.SliceStable(ready, less(ready))
		pick := ready[0]
		ready = ready[1:]
		result = append(result, pick)

		for _, succ := range d.outEdges[pick] {
			indeg[succ]--
			if indeg[succ] == 0 {
				ready = append(ready, succ)
			}
		}
	}
	return result
}

func (d *DAG) insertionIndex() map[string]int {
	idx := make(map[string]int, len(d.order))
	for i, id := range d.order {
		idx[id] = i
	}
	return idx
}

// PriorityKahnOrder schedules gates with Kahn's algorithm, breaking ties by
// preferring the gate with the most successors — pushing fanout-heavy gates
// (whose results are needed widely) earlier so their consumers become ready
// sooner — and then by declaration order.
func (d *DAG) PriorityKahnOrder() []string {
	idx := d.insertionIndex()
	return d.kahn(func(ready []string) func(i, j int) bool {
		return func(i, j int) bool {
			pi, pj := len(d.outEdges[ready[i]]), len(d.outEdges[ready[j]])
			if pi != pj {
				return pi > pj
			}
			return idx[ready[i]] < idx[ready[j]]
		}
	})
}

// SourceInsertionOrder schedules gates with Kahn's algorithm, breaking ties
// by original BLIF declaration order — the schedule that stays as close as
// possible to the source netlist's gate order.
func (d *DAG) SourceInsertionOrder() []string {
	idx := d.insertionIndex()
	return d.kahn(func(ready []string) func(i, j int) bool {
		return func(i, j int) bool { return idx[ready[i]] < idx[ready[j]] }
	})
}

// ALAPOrder schedules every gate As-Late-As-Possible: a gate's level is the
// longest path to any out_port it feeds, and gates are emitted in
// decreasing level (furthest-from-outputs first), tie-broken by
// declaration order. This keeps values alive for the shortest possible
// window before their last use.
func (d *DAG) ALAPOrder() []string {
	level := d.alapLevels()
	idx := d.insertionIndex()
	return d.kahn(func(ready []string) func(i, j int) bool {
		return func(i, j int) bool {
			li, lj := level[ready[i]], level[ready[j]]
			if li != lj {
				return li > lj
			}
			return idx[ready[i]] < idx[ready[j]]
		}
	})
}

// alapLevels computes, for each gate, the longest distance (in gate hops)
// from that gate to any gate with no successors that it transitively
// feeds. Gates with no successors (out_ports, and dead gates whose output
// nothing reads) sit at level 0.
func (d *DAG) alapLevels() map[string]int {
	level := make(map[string]int, len(d.gates))
	memo := make(map[string]bool, len(d.gates))

	var visit func(id string) int
	visit = func(id string) int {
		if v, ok := level[id]; ok && memo[id] {
			return v
		}
		memo[id] = true
		best := 0
		for _, succ := range d.outEdges[id] {
			if v := visit(succ) + 1; v > best {
				best = v
			}
		}
		level[id] = best
		return best
	}
	for _, id := range d.order {
		visit(id)
	}
	return level
}

// RegisterPressureOrder runs list scheduling that greedily minimizes the
// number of simultaneously-live wires: among ready gates, it prefers the one
// whose scheduling lets the most predecessor wires die (all their consumers
// now scheduled), reusing storage sooner rather than growing the live set.
func (d *DAG) RegisterPressureOrder() []string {
	return d.registerPressureOrder(false)
}

// RegisterPressureOrderPortsFirst is RegisterPressureOrder with input ports
// forced to the very front of the ready set and output ports held to the
// very back, so port-facing register assignment is decided first (spec
// §4.3's ports-first scheduling variant used for fixed hardware port
// bindings).
func (d *DAG) RegisterPressureOrderPortsFirst() []string {
	return d.registerPressureOrder(true)
}

func (d *DAG) registerPressureOrder(portsFirst bool) []string {
	idx := d.insertionIndex()
	remaining := make(map[string]int, len(d.gates)) // unscheduled consumers left per gate's output wire
	for id := range d.gates {
		remaining[id] = len(d.outEdges[id])
	}

	freed := func(id string) int {
		n := 0
		for _, pred := range d.inEdges[id] {
			if remaining[pred] == 1 {
				n++
			}
		}
		return n
	}

	return d.kahn2(func(ready []string) func(i, j int) bool {
		return func(i, j int) bool {
			a, b := ready[i], ready[j]
			if portsFirst {
				ai, bi := d.IsInPort(a), d.IsInPort(b)
				if ai != bi {
					return ai
				}
				ao, bo := d.IsOutPort(a), d.IsOutPort(b)
				if ao != bo {
					return bo
				}
			}
			fa, fb := freed(a), freed(b)
			if fa != fb {
				return fa > fb
			}
			return idx[a] < idx[b]
		}
	}, func(pick string) {
		for _, pred := range d.inEdges[pick] {
			remaining[pred]--
		}
	})
}

// kahn2 is a variant of kahn that invokes onSchedule immediately after each
// pick, letting the tie-break closure read state (e.g. registerPressureOrder's
// remaining-consumer counters) that changes as the schedule is built.
func (d *DAG) kahn2(less func(ready []string) func(i, j int) bool, onSchedule func(id string)) []string {
	indeg := make(map[string]int, len(d.gates))
	for id := range d.gates {
		indeg[id] = len(d.inEdges[id])
	}
	var ready []string
	for _, id := range d.order {
		if indeg[id] == 0 {
			ready = append(ready, id)
		}
	}
	result := make([]string, 0, len(d.gates))
	for len(ready) > 0 {
		sort.SliceStable(ready, less(ready))
		pick := ready[0]
		ready = ready[1:]
		result = append(result, pick)
		if onSchedule != nil {
			onSchedule(pick)
		}
		for _, succ := range d.outEdges[pick] {
			indeg[succ]--
			if indeg[succ] == 0 {
				ready = append(ready, succ)
			}
		}
	}
	return result
}
