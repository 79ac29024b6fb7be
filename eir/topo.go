package eir

import (
	"errors"

	"github.com/evflow/eventflow/timeunit"
)

// ErrCycleDetected is returned by TopoOrder when the graph contains a cycle
// that does not pass through a delay_line node with a positive delay.
// Grounded on dfs/topological.go's ErrCycleDetected sentinel and its
// White/Gray/Black DFS coloring, generalized per spec §3 invariant (c) and
// §4.4's "cycles rejected unless they pass through a delay node with
// positive delay" rule.
var ErrCycleDetected = errors.New("eir: cycle detected without a breaking positive-delay node")

// ErrDanglingEdge is returned when an edge references a node id that is not
// present in the graph.
var ErrDanglingEdge = errors.New("eir: edge references unknown node id")

const (
	white = 0
	gray  = 1
	black = 2
)

// topoState holds one TopoOrder pass's working state.
type topoState struct {
	g          *Graph
	nodeIndex  map[string]int // id -> index into g.Nodes
	outEdges   map[string][]Edge
	color      map[string]int
	order      []string
	feedback   []Edge // edges skipped because they close a cycle through a positive-delay node
}

// isPositiveDelay reports whether n is a delay_line node whose "delay"
// parameter resolves to a strictly positive duration. Delay parameters are
// stored as time literals (spec §3); this helper tolerates either a literal
// string or a pre-resolved number of nanoseconds for flexibility in
// programmatically constructed graphs.
func isPositiveDelay(n Node) bool {
	if n.Kind != KindDelayLine {
		return false
	}
	raw, ok := n.Params["delay"]
	if !ok {
		return false
	}
	switch v := raw.(type) {
	case float64:
		return v > 0
	case int:
		return v > 0
	case int64:
		return v > 0
	case string:
		ns, err := timeunit.ParseNanos(v)
		return err == nil && ns > 0
	default:
		return false
	}
}

// TopoOrder computes a topological ordering of g's nodes, per spec §4.4's
// scheduler build step. Edges that close a cycle are permitted — and
// returned separately in feedback, for the scheduler to wire as late
// feedback — only when the edge's source node is a delay_line with a
// strictly positive delay; any other cycle is rejected with
// ErrCycleDetected. Dangling edge endpoints are rejected with
// ErrDanglingEdge.
func TopoOrder(g *Graph) (order []string, feedback []Edge, err error) {
	st := &topoState{
		g:         g,
		nodeIndex: make(map[string]int, len(g.Nodes)),
		outEdges:  make(map[string][]Edge, len(g.Nodes)),
		color:     make(map[string]int, len(g.Nodes)),
		order:     make([]string, 0, len(g.Nodes)),
	}
	for i, n := range g.Nodes {
		st.nodeIndex[n.ID] = i
	}
	for _, e := range g.Edges {
		if _, ok := st.nodeIndex[e.Src]; !ok {
			return nil, nil, ErrDanglingEdge
		}
		if _, ok := st.nodeIndex[e.Dst]; !ok {
			return nil, nil, ErrDanglingEdge
		}
		st.outEdges[e.Src] = append(st.outEdges[e.Src], e)
	}
	for _, n := range g.Nodes {
		if st.color[n.ID] == white {
			if err := st.visit(n.ID); err != nil {
				return nil, nil, err
			}
		}
	}
	// Reverse post-order into topological order.
	for i, j := 0, len(st.order)-1; i < j; i, j = i+1, j-1 {
		st.order[i], st.order[j] = st.order[j], st.order[i]
	}
	return st.order, st.feedback, nil
}

func (st *topoState) visit(id string) error {
	if st.color[id] == black {
		return nil
	}
	st.color[id] = gray
	srcNode, _ := st.g.NodeByID(id)
	for _, e := range st.outEdges[id] {
		switch st.color[e.Dst] {
		case black:
			continue
		case gray:
			// Back edge: a cycle. Allowed only if it is broken by a
			// positive-delay node at its source.
			if isPositiveDelay(srcNode) {
				st.feedback = append(st.feedback, e)
				continue
			}
			return ErrCycleDetected
		default: // white
			if err := st.visit(e.Dst); err != nil {
				return err
			}
		}
	}
	st.color[id] = black
	st.order = append(st.order, id)
	return nil
}
