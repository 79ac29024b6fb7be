package ops

// Event is the in-memory form of one Event Tensor coordinate flowing through
// an operator pipeline: a nanosecond timestamp, a channel index, a 32-bit
// value, and optional side metadata (x/y/polarity for vision-shaped streams,
// carried as plain Go values rather than a typed struct since the set of
// keys varies by operator per spec §3's "idx is dimension-shaped" note).
type Event struct {
	T    int64
	C    int64
	V    float32
	Meta map[string]interface{}
}

// Iterator is the pull-based contract every operator and adapter in this
// package satisfies: Next returns the next event in non-decreasing T order,
// or ok=false once the upstream is exhausted, or a non-nil error if the
// upstream failed. Callers must stop pulling after the first error or
// ok=false — implementations are not required to be safe to call again.
type Iterator interface {
	Next() (Event, bool, error)
}

// SliceIterator replays a fixed slice of events, useful for tests and for
// feeding literal seed data into a pipeline.
type SliceIterator struct {
	events []Event
	pos    int
}

// NewSliceIterator returns an Iterator over events, unmodified and in order.
func NewSliceIterator(events []Event) *SliceIterator {
	return &SliceIterator{events: events}
}

// Next implements Iterator.
func (s *SliceIterator) Next() (Event, bool, error) {
	if s.pos >= len(s.events) {
		return Event{}, false, nil
	}
	e := s.events[s.pos]
	s.pos++
	return e, true, nil
}

// Collect drains it into a slice. Intended for tests and small pipelines;
// the scheduler streams rather than collecting for anything on the hot path.
func Collect(it Iterator) ([]Event, error) {
	var out []Event
	for {
		e, ok, err := it.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, e)
	}
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

func extractXY(meta map[string]interface{}) (x, y float64, ok bool) {
	if meta == nil {
		return 0, 0, false
	}
	xv, xok := meta["x"]
	yv, yok := meta["y"]
	if !xok || !yok {
		return 0, 0, false
	}
	xf, xok2 := asFloat(xv)
	yf, yok2 := asFloat(yv)
	if !xok2 || !yok2 {
		return 0, 0, false
	}
	return xf, yf, true
}

func roundNearest(x float64) int64 {
	if x >= 0 {
		return int64(x + 0.5)
	}
	return -int64(-x + 0.5)
}
