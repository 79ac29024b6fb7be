package scheduler

import (
	"context"
	"sort"

	"github.com/evflow/eventflow/eir"
	"github.com/evflow/eventflow/ferr"
	"github.com/evflow/eventflow/logsink"
	"github.com/evflow/eventflow/ops"
)

// Runner evaluates one Program once. Per-node state lives only inside the
// ops.Iterator built for that node during evaluation; the Runner itself
// holds only the materialized output of each already-evaluated node plus
// whatever external input streams the caller bound, matching spec §5's
// "single-threaded cooperative evaluation... each operator invoked exactly
// once per run" model (feedback loops are the one exception, see feedback.go).
type Runner struct {
	prog    *Program
	inputs  map[string]ops.Iterator
	outputs map[string][]ops.Event
}

// NewRunner returns a Runner over prog with no bound inputs.
func NewRunner(prog *Program) *Runner {
	return &Runner{prog: prog, inputs: make(map[string]ops.Iterator), outputs: make(map[string][]ops.Event)}
}

// BindInput attaches an external event stream to a source node (one with no
// incoming edges) — typically the materialized contents of an Event Tensor
// loaded via package event. If prog.Graph.Time.Mode is fixed_step, events
// are bucketed per spec §4.4 before being bound.
func (r *Runner) BindInput(nodeID string, events []ops.Event) {
	if r.prog.Graph.Time.Mode == eir.ModeFixedStep && r.prog.Graph.Time.FixedStepDtUs != nil {
		events = bucketEvents(events, *r.prog.Graph.Time.FixedStepDtUs*1000)
	}
	r.inputs[nodeID] = ops.NewSliceIterator(events)
}

// Output returns the materialized output of a node that has been evaluated.
func (r *Runner) Output(nodeID string) ([]ops.Event, bool) {
	out, ok := r.outputs[nodeID]
	return out, ok
}

// Run evaluates every node in topological order, checking ctx for
// cancellation between nodes, then resolves any feedback loops the program
// carries. It returns ferr.Cancelled (unwrapped via ferr.Is) if ctx is
// cancelled mid-run.
func (r *Runner) Run(ctx context.Context) error {
	for _, id := range r.prog.Order {
		if err := ctx.Err(); err != nil {
			logsink.L().Warn().Str("node", id).Msg("scheduler run cancelled")
			return ferr.Cancelled
		}
		node, _ := r.prog.Node(id)
		out, err := r.evalNode(node, nil)
		if err != nil {
			return err
		}
		r.outputs[id] = out
	}

	for _, fe := range r.prog.Feedback {
		if err := ctx.Err(); err != nil {
			logsink.L().Warn().Str("edge", edgeKey(fe)).Msg("scheduler run cancelled during feedback resolution")
			return ferr.Cancelled
		}
		if err := r.resolveFeedback(fe); err != nil {
			return err
		}
	}
	return nil
}

// evalNode materializes node's output. overrides, when non-nil, substitutes
// the event slice that would otherwise be read for a specific incoming edge
// (keyed by edgeKey) — used only by resolveFeedback to inject a delay
// node's latest output into the loop's reentry point.
func (r *Runner) evalNode(node eir.Node, overrides map[string][]ops.Event) ([]ops.Event, error) {
	edges := r.prog.Incoming(node.ID)

	var inEvents [][]ops.Event
	if len(edges) == 0 {
		it, ok := r.inputs[node.ID]
		if !ok {
			return nil, errUnboundInput(node)
		}
		events, err := ops.Collect(it)
		if err != nil {
			return nil, err
		}
		inEvents = [][]ops.Event{events}
	} else {
		for _, e := range edges {
			var events []ops.Event
			if overrides != nil {
				if ov, ok := overrides[edgeKey(e)]; ok {
					events = ov
				}
			}
			if events == nil {
				events = r.outputs[e.Src] // nil (empty) if not yet computed — true on a feedback loop's first pass
			}
			inEvents = append(inEvents, transformForEdge(e, events))
		}
	}

	if node.Kind.RequiresOp() {
		ins := make([]ops.Iterator, len(inEvents))
		for i, ev := range inEvents {
			ins[i] = ops.NewSliceIterator(ev)
		}
		it, err := ops.Build(node, ins...)
		if err != nil {
			return nil, err
		}
		return ops.Collect(it)
	}

	switch node.Kind {
	case eir.KindProbeNode:
		if len(inEvents) != 1 {
			return nil, errFanIn(node)
		}
		return inEvents[0], nil
	case eir.KindGroup, eir.KindRoute:
		return mergeByTime(inEvents), nil
	default:
		return nil, errUnsupportedKind(node)
	}
}

func edgeKey(e eir.Edge) string { return e.Src + "->" + e.Dst }

// transformForEdge applies an edge's optional weight scaling and wiring
// delay (delay_us, always microseconds regardless of the graph's time unit)
// to a materialized event slice, leaving the input untouched when neither is
// set.
func transformForEdge(e eir.Edge, events []ops.Event) []ops.Event {
	if e.Weight == nil && e.DelayUs == 0 {
		return events
	}
	out := make([]ops.Event, len(events))
	copy(out, events)
	for i := range out {
		if e.Weight != nil {
			out[i].V = float32(float64(out[i].V) * *e.Weight)
		}
		if e.DelayUs != 0 {
			out[i].T += e.DelayUs * 1000
		}
	}
	return out
}

// mergeByTime stably merges several already-sorted event slices into one,
// ties broken by the order the slices were passed in (i.e. edge declaration
// order), matching the "stable tie-breaking" ordering guarantee of spec §5.
func mergeByTime(streams [][]ops.Event) []ops.Event {
	type cursor struct {
		events []ops.Event
		pos    int
	}
	cursors := make([]*cursor, len(streams))
	total := 0
	for i, s := range streams {
		cursors[i] = &cursor{events: s}
		total += len(s)
	}
	out := make([]ops.Event, 0, total)
	for {
		best := -1
		for i, c := range cursors {
			if c.pos >= len(c.events) {
				continue
			}
			if best == -1 || c.events[c.pos].T < cursors[best].events[cursors[best].pos].T {
				best = i
			}
		}
		if best == -1 {
			return out
		}
		out = append(out, cursors[best].events[cursors[best].pos])
		cursors[best].pos++
	}
}

// bucketEvents implements the fixed-step input bucketing of spec §4.4:
// events in [k*dt, (k+1)*dt) are summed per channel, in input order, and
// emitted as one event per (channel, bucket) at t=(k+1)*dt. Output is
// ordered by bucket then channel — the spec pins the timestamp grid exactly
// but is silent on cross-channel tie order within one bucket, so ascending
// channel is the resolved convention (see DESIGN.md).
func bucketEvents(events []ops.Event, dtNs int64) []ops.Event {
	type key struct {
		bucket  int64
		channel int64
	}
	sums := make(map[key]float64)
	var order []key
	seen := make(map[key]bool)

	for _, e := range events {
		k := key{bucket: e.T / dtNs, channel: e.C}
		if !seen[k] {
			seen[k] = true
			order = append(order, k)
		}
		sums[k] += float64(e.V)
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].bucket != order[j].bucket {
			return order[i].bucket < order[j].bucket
		}
		return order[i].channel < order[j].channel
	})

	out := make([]ops.Event, len(order))
	for i, k := range order {
		out[i] = ops.Event{T: (k.bucket + 1) * dtNs, C: k.channel, V: float32(sums[k])}
	}
	return out
}
