package ops

import "github.com/evflow/eventflow/eir"

// Fuse implements the coincidence fuse (spec §4.3, op "fuse"): it merges
// exactly two input streams a and b by timestamp (ties broken in favor of
// a), maintaining one ring buffer of timestamps per stream limited to
// [t-window, t]. On arrival of an event at time t, it is appended to its own
// stream's buffer, both buffers are evicted of entries older than
// t-window, and if both buffers are non-empty with a combined size >=
// min_count, a single coincidence event (t, 0, 1.0, {unit:"coincidence"}) is
// emitted.
type Fuse struct {
	a, b     Iterator
	windowNs int64
	minCount int

	peekA, peekB *Event
	bufA, bufB   []int64
}

// NewFuse builds a Fuse operator from node's params (window, min_count) over
// the two input streams a and b.
func NewFuse(node eir.Node, a, b Iterator) (*Fuse, error) {
	windowNs, err := reqTimeParam(node, "window")
	if err != nil {
		return nil, err
	}
	minCount, err := reqIntParam(node, "min_count")
	if err != nil {
		return nil, err
	}
	return &Fuse{a: a, b: b, windowNs: windowNs, minCount: int(minCount)}, nil
}

func (f *Fuse) ensurePeeked() error {
	if f.peekA == nil {
		if e, ok, err := f.a.Next(); err != nil {
			return err
		} else if ok {
			f.peekA = &e
		}
	}
	if f.peekB == nil {
		if e, ok, err := f.b.Next(); err != nil {
			return err
		} else if ok {
			f.peekB = &e
		}
	}
	return nil
}

func evict(buf []int64, cutoff int64) []int64 {
	kept := buf[:0]
	for _, t := range buf {
		if t >= cutoff {
			kept = append(kept, t)
		}
	}
	return kept
}

// Next implements Iterator.
func (f *Fuse) Next() (Event, bool, error) {
	for {
		if err := f.ensurePeeked(); err != nil {
			return Event{}, false, err
		}
		if f.peekA == nil && f.peekB == nil {
			return Event{}, false, nil
		}

		var fromA bool
		switch {
		case f.peekA != nil && f.peekB != nil:
			fromA = f.peekA.T <= f.peekB.T
		case f.peekA != nil:
			fromA = true
		default:
			fromA = false
		}

		var t int64
		if fromA {
			t = f.peekA.T
			f.peekA = nil
			f.bufA = append(f.bufA, t)
		} else {
			t = f.peekB.T
			f.peekB = nil
			f.bufB = append(f.bufB, t)
		}

		cutoff := t - f.windowNs
		f.bufA = evict(f.bufA, cutoff)
		f.bufB = evict(f.bufB, cutoff)

		if len(f.bufA) > 0 && len(f.bufB) > 0 && len(f.bufA)+len(f.bufB) >= f.minCount {
			return Event{T: t, C: 0, V: 1.0, Meta: map[string]interface{}{"unit": "coincidence"}}, true, nil
		}
	}
}
