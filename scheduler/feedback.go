package scheduler

import (
	"github.com/evflow/eventflow/eir"
	"github.com/evflow/eventflow/ops"
)

// defaultFixedStepFeedbackBudget is the number of re-evaluation passes a
// feedback loop gets in fixed_step mode when its delay node's
// timing_constraints carries no explicit "step_budget" — chosen as a small
// constant that lets a loop settle across a handful of dt ticks without
// unbounded iteration. exact_event mode defaults to 0 (disabled), per
// spec's redesign note "default: disabled outside fixed_step mode"; both
// defaults are overridable per node. See DESIGN.md for the convention.
const defaultFixedStepFeedbackBudget = 8

// stepBudget resolves the number of feedback re-evaluation passes allowed
// for fe, reading an optional integer "step_budget" off the delay node's
// TimingConstraints and falling back to the mode-dependent default.
func (r *Runner) stepBudget(fe eir.Edge) int {
	node, ok := r.prog.Node(fe.Src)
	if ok && node.TimingConstraints != nil {
		if v, ok := node.TimingConstraints["step_budget"]; ok {
			if f, ok := asFloat(v); ok {
				return int(f)
			}
		}
	}
	if r.prog.Graph.Time.Mode == eir.ModeFixedStep {
		return defaultFixedStepFeedbackBudget
	}
	return 0
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// resolveFeedback re-evaluates the loop segment a feedback edge closes —
// every node topologically between the edge's destination and its source,
// inclusive — feeding the delay node's latest materialized output back into
// the destination's input on each pass, until the segment's outputs stop
// changing or the step budget is exhausted. This implements the "split at
// the delay node, evaluate as a fixed number of bounded iterations" redesign
// flag; it supports one feedback edge per loop (nested or overlapping loops
// are out of scope, see DESIGN.md).
func (r *Runner) resolveFeedback(fe eir.Edge) error {
	budget := r.stepBudget(fe)
	if budget <= 0 {
		return nil
	}

	startIdx := indexOf(r.prog.Order, fe.Dst)
	endIdx := indexOf(r.prog.Order, fe.Src)
	if startIdx == -1 || endIdx == -1 || endIdx < startIdx {
		return nil
	}
	loopNodes := r.prog.Order[startIdx : endIdx+1]

	for iter := 0; iter < budget; iter++ {
		overrides := map[string][]ops.Event{edgeKey(fe): r.outputs[fe.Src]}
		changed := false
		for _, id := range loopNodes {
			node, _ := r.prog.Node(id)
			newOut, err := r.evalNode(node, overrides)
			if err != nil {
				return err
			}
			if !eventsEqual(newOut, r.outputs[id]) {
				changed = true
			}
			r.outputs[id] = newOut
		}
		if !changed {
			break
		}
	}
	return nil
}

func eventsEqual(a, b []ops.Event) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].T != b[i].T || a[i].C != b[i].C || a[i].V != b[i].V {
			return false
		}
	}
	return true
}
