package scheduler

import "github.com/evflow/eventflow/eir"

// Program is the result of topologically ordering a graph once: node order,
// the feedback edges TopoOrder allowed through a positive delay, and index
// structures the Runner needs on every node evaluation. Building a Program
// is pure and side-effect free; a single Program may be reused across
// multiple Runner instances (e.g. to re-run the same graph against
// different input bindings).
type Program struct {
	Graph    *eir.Graph
	Order    []string
	Feedback []eir.Edge

	index    map[string]eir.Node
	incoming map[string][]eir.Edge // dst id -> edges in declaration order
}

// Build topologically sorts g (via eir.TopoOrder, see eir/topo.go) and
// indexes its nodes and edges for repeated lookup during evaluation.
func Build(g *eir.Graph) (*Program, error) {
	order, feedback, err := eir.TopoOrder(g)
	if err != nil {
		return nil, err
	}
	index := make(map[string]eir.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		index[n.ID] = n
	}
	incoming := make(map[string][]eir.Edge)
	for _, e := range g.Edges {
		incoming[e.Dst] = append(incoming[e.Dst], e)
	}
	return &Program{Graph: g, Order: order, Feedback: feedback, index: index, incoming: incoming}, nil
}

// Node returns the node with the given id.
func (p *Program) Node(id string) (eir.Node, bool) {
	n, ok := p.index[id]
	return n, ok
}

// Incoming returns the edges targeting id, in the order they were declared
// in the graph — this order is significant for operators with more than one
// named input port (fuse's a before b).
func (p *Program) Incoming(id string) []eir.Edge {
	return p.incoming[id]
}

func indexOf(order []string, id string) int {
	for i, o := range order {
		if o == id {
			return i
		}
	}
	return -1
}
