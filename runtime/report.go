package runtime

import (
	"github.com/evflow/eventflow/event"
	"github.com/evflow/eventflow/planner"
)

// Report is everything Run produces from one end-to-end execution: the plan
// negotiated against the device descriptor, the materialized output of every
// probe the EIR graph declares, and the warnings the planner raised during
// negotiation.
type Report struct {
	Plan   *planner.Plan
	Probes map[string][]event.Record

	// NodesRun is every node id the scheduler evaluated, in topological
	// order, regardless of whether a probe observes it — useful for a
	// caller inspecting intermediate node output via a debugger hook rather
	// than a declared probe.
	NodesRun []string

	Warnings []string
}
