package ops

import "github.com/evflow/eventflow/eir"

// ExpSyn implements the exponential synapse (spec §4.3, op "exp_syn"): a
// stateless per-event scaling. Every input event (t, c, v) is re-emitted as
// (t, c, weight*v), with the synapse's tau_s literal carried through in
// metadata for downstream observability — the time constant itself does not
// feed back into the value here (unlike LIF's membrane decay); ExpSyn only
// ever scales.
type ExpSyn struct {
	in     Iterator
	weight float64
	tauS   interface{}
}

// NewExpSyn builds an ExpSyn operator from node's params (tau_s, weight).
func NewExpSyn(node eir.Node, in Iterator) (*ExpSyn, error) {
	if _, err := reqTimeParam(node, "tau_s"); err != nil {
		return nil, err
	}
	weight, err := reqFloatParam(node, "weight")
	if err != nil {
		return nil, err
	}
	return &ExpSyn{in: in, weight: weight, tauS: node.Params["tau_s"]}, nil
}

// Next implements Iterator.
func (s *ExpSyn) Next() (Event, bool, error) {
	e, ok, err := s.in.Next()
	if err != nil {
		return Event{}, false, err
	}
	if !ok {
		return Event{}, false, nil
	}

	meta := make(map[string]interface{}, len(e.Meta)+2)
	for k, v := range e.Meta {
		meta[k] = v
	}
	meta["syn"] = "exp"
	meta["tau_s"] = s.tauS

	return Event{T: e.T, C: e.C, V: float32(s.weight * float64(e.V)), Meta: meta}, true, nil
}
