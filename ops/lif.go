package ops

import (
	"math"

	"github.com/evflow/eventflow/eir"
	"github.com/evflow/eventflow/timeunit"
)

// LIF implements the leaky integrate-and-fire neuron (spec §4.3, op "lif").
// v and t_prev both start at 0, so the very first event still decays through
// alpha = exp(-t/tau_m) rather than skipping decay entirely. On each input
// (t, x): alpha = exp(-max(0, t-t_prev)/tau_m) (alpha=0 if tau_m=0); v <-
// v*alpha + r_m*x; t_prev <- t. If t-t_lastsp <= refractory the event is then
// dropped silently — the membrane update above still happened, only the
// threshold check and emission are suppressed. Otherwise, if v >= v_th, emit
// a unit-value spike at channel 0, reset v to v_reset, and record t_lastsp.
type LIF struct {
	in Iterator

	tauMNs       float64
	vTh          float64
	vReset       float64
	rM           float64
	refractoryNs int64

	v          float64
	tPrev      int64
	tLastSp    int64
	haveLastSp bool
}

// NewLIF builds an LIF operator from node's params (tau_m, v_th, v_reset,
// r_m, refractory — all required, validated by package validate before a
// graph reaches scheduling) reading from in.
func NewLIF(node eir.Node, in Iterator) (*LIF, error) {
	tauMNs, err := reqTimeParam(node, "tau_m")
	if err != nil {
		return nil, err
	}
	vTh, err := reqFloatParam(node, "v_th")
	if err != nil {
		return nil, err
	}
	vReset, err := reqFloatParam(node, "v_reset")
	if err != nil {
		return nil, err
	}
	rM, err := reqFloatParam(node, "r_m")
	if err != nil {
		return nil, err
	}
	refractoryNs, err := reqTimeParam(node, "refractory")
	if err != nil {
		return nil, err
	}
	return &LIF{
		in:           in,
		tauMNs:       float64(tauMNs),
		vTh:          vTh,
		vReset:       vReset,
		rM:           rM,
		refractoryNs: refractoryNs,
	}, nil
}

// Next pulls input events, integrating the membrane on every one, until
// either a spike fires (which it returns immediately) or the input is
// exhausted.
func (l *LIF) Next() (Event, bool, error) {
	for {
		e, ok, err := l.in.Next()
		if err != nil {
			return Event{}, false, err
		}
		if !ok {
			return Event{}, false, nil
		}

		var dtNs int64
		if d := e.T - l.tPrev; d > 0 {
			dtNs = d
		}
		var alpha float64
		if l.tauMNs == 0 {
			alpha = 0
		} else {
			alpha = math.Exp(-float64(dtNs) / l.tauMNs)
		}
		l.v = l.v*alpha + l.rM*float64(e.V)
		l.tPrev = e.T

		if l.haveLastSp && e.T-l.tLastSp <= l.refractoryNs {
			continue // refractory: drop silently, membrane update already applied
		}

		if l.v >= l.vTh {
			spike := Event{T: e.T, C: 0, V: 1.0, Meta: map[string]interface{}{"unit": "spike"}}
			l.v = l.vReset
			l.tLastSp = e.T
			l.haveLastSp = true
			return spike, true, nil
		}
	}
}

func reqTimeParam(node eir.Node, key string) (int64, error) {
	v, ok := node.Params[key]
	if !ok {
		return 0, errMissingParam(node, key)
	}
	s, ok := v.(string)
	if !ok {
		return 0, errBadParam(node, key, "expected a time literal string")
	}
	return timeunit.ParseNanos(s)
}

func reqFloatParam(node eir.Node, key string) (float64, error) {
	v, ok := node.Params[key]
	if !ok {
		return 0, errMissingParam(node, key)
	}
	f, ok := asFloat(v)
	if !ok {
		return 0, errBadParam(node, key, "expected a real number")
	}
	return f, nil
}

func reqIntParam(node eir.Node, key string) (int64, error) {
	f, err := reqFloatParam(node, key)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

func optFloatParam(node eir.Node, key string, def float64) float64 {
	v, ok := node.Params[key]
	if !ok {
		return def
	}
	f, ok := asFloat(v)
	if !ok {
		return def
	}
	return f
}

func optBoolParam(node eir.Node, key string) bool {
	v, ok := node.Params[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}
