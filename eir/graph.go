package eir

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Sentinel errors naming malformed-EIR conditions. Load performs no semantic
// checks and does not return them; package validate reports these conditions
// as Issues.
var (
	ErrEmptyGraphName = errors.New("eir: graph.name must not be empty")
	ErrDuplicateID    = errors.New("eir: duplicate node id")
	ErrMissingOp      = errors.New("eir: node kind requires op")
)

// Node is one vertex of the EIR graph (spec §3).
type Node struct {
	ID                string                 `json:"id"`
	Kind              NodeKind               `json:"kind"`
	Op                Op                     `json:"op,omitempty"`
	Params            map[string]interface{} `json:"params,omitempty"`
	State             map[string]interface{} `json:"state,omitempty"`
	TimingConstraints map[string]interface{} `json:"timing_constraints,omitempty"`
	Security          map[string]interface{} `json:"security,omitempty"`
}

// Edge connects two nodes by id (spec §3). Weight is optional (nil means
// "unweighted" for operators that don't consume it, e.g. delay/fuse).
type Edge struct {
	Src        string                 `json:"src"`
	Dst        string                 `json:"dst"`
	Weight     *float64               `json:"weight,omitempty"`
	DelayUs    int64                  `json:"delay_us,omitempty"`
	Plasticity map[string]interface{} `json:"plasticity,omitempty"`
}

// Probe is a named observation point bound to a node (spec §3).
type Probe struct {
	Name   string `json:"name"`
	Target string `json:"target"`
	Port   string `json:"port,omitempty"`
}

// Graph is the top-level EIR document.
type Graph struct {
	Version string     `json:"version"`
	Profile Profile    `json:"profile"`
	Seed    uint64      `json:"seed"`
	Time    TimeConfig `json:"time"`
	Graph   GraphInfo  `json:"graph"`
	Nodes   []Node     `json:"nodes"`
	Edges   []Edge     `json:"edges"`
	Probes  []Probe    `json:"probes,omitempty"`
}

// GraphInfo is the nested `graph` object carrying just the graph's name.
type GraphInfo struct {
	Name string `json:"name"`
}

// NewGraph constructs an empty Graph with the given name and profile,
// defaulting Time.Mode to exact_event. Mirrors the functional-options-free
// convenience constructors in builder/config.go, kept minimal here since
// EIR documents are normally produced by Load rather than built in code.
func NewGraph(name string, profile Profile) *Graph {
	return &Graph{
		Version: "1.0",
		Profile: profile,
		Graph:   GraphInfo{Name: name},
		Time: TimeConfig{
			UnitName: "ns",
			Mode:     ModeExactEvent,
		},
	}
}

// NodeByID returns the node with the given id and true, or the zero Node and
// false if no such node exists. O(n); intended for small graphs and tests —
// the scheduler builds its own index for the hot path (see scheduler.Build).
func (g *Graph) NodeByID(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// AddNode appends a node, generating an id via uuid.NewString if one was not
// supplied — a convenience for callers building graphs programmatically
// (tests, examples) rather than loading them from JSON.
func (g *Graph) AddNode(n Node) Node {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	g.Nodes = append(g.Nodes, n)
	return n
}

// Load decodes an EIR document from r. It performs no semantic validation
// (that is package validate's job) beyond what is needed to resolve the
// TimeConfig.Unit and reject outright malformed JSON — the validator never
// mutates inputs, so this resolution step happens here, once, at load time.
func Load(r io.Reader) (*Graph, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var g Graph
	if err := dec.Decode(&g); err != nil {
		return nil, fmt.Errorf("eir: decode: %w", err)
	}
	if err := g.Time.resolveUnit(); err != nil {
		return nil, err
	}
	return &g, nil
}

// Save encodes g as JSON to w, matching spec §6's "writers emit without
// trailing whitespace" discipline for the sibling Event Tensor format: no
// indentation is applied here (EIR documents are typically pretty-printed by
// the CLI collaborator, not this library).
func (g *Graph) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(g)
}
