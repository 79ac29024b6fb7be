package ops

import "github.com/evflow/eventflow/eir"

// Delay implements the delay line (spec §4.3, op "delay"): every input
// event is re-emitted with its timestamp shifted forward by a fixed offset.
// A positive delay is the mechanism that lets a feedback edge close a cycle
// in the EIR graph without violating the scheduler's acyclic execution
// order (see eir.TopoOrder).
type Delay struct {
	in     Iterator
	delay  int64
}

// NewDelay builds a Delay operator from node's params (delay).
func NewDelay(node eir.Node, in Iterator) (*Delay, error) {
	delayNs, err := reqTimeParam(node, "delay")
	if err != nil {
		return nil, err
	}
	return &Delay{in: in, delay: delayNs}, nil
}

// Next implements Iterator.
func (d *Delay) Next() (Event, bool, error) {
	e, ok, err := d.in.Next()
	if err != nil {
		return Event{}, false, err
	}
	if !ok {
		return Event{}, false, nil
	}
	e.T += d.delay
	return e, true, nil
}
