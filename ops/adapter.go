package ops

import (
	"github.com/evflow/eventflow/event"
	"github.com/evflow/eventflow/ferr"
)

// recordReader adapts an *event.Reader into an Iterator, using header.Dims to
// decide how each record's idx maps onto Event.C and Event.Meta: a
// single-dimension header ("c", "band", ...) maps idx[0] straight to C,
// while a multi-dimension header (e.g. "x","y","polarization") is assumed
// spatial and is carried through Meta under the dimension names, leaving C
// at zero until an operator such as XYToChannel derives it.
type recordReader struct {
	rd   *event.Reader
	dims []string
}

// FromReader wraps rd as an Iterator of Event.
func FromReader(rd *event.Reader) Iterator {
	return &recordReader{rd: rd, dims: rd.Header.Dims}
}

func (r *recordReader) Next() (Event, bool, error) {
	rec, ok, err := r.rd.Next()
	if err != nil {
		return Event{}, false, err
	}
	if !ok {
		return Event{}, false, nil
	}
	return recordToEvent(rec, r.dims), true, nil
}

func recordToEvent(rec event.Record, dims []string) Event {
	meta := make(map[string]interface{}, len(rec.Meta)+len(dims))
	for k, v := range rec.Meta {
		meta[k] = v
	}
	var c int64
	if len(dims) <= 1 {
		if len(rec.Idx) > 0 {
			c = rec.Idx[0]
		}
	} else {
		for i, d := range dims {
			if i < len(rec.Idx) {
				meta[d] = rec.Idx[i]
			}
		}
	}
	return Event{T: rec.TS, C: c, V: float32(rec.Val), Meta: meta}
}

// eventToRecord is the inverse of recordToEvent, used by ToWriter.
func eventToRecord(e Event, dims []string) event.Record {
	rec := event.Record{TS: e.T, Val: float64(e.V)}
	if len(dims) <= 1 {
		rec.Idx = []int64{e.C}
	} else {
		rec.Idx = make([]int64, len(dims))
		for i, d := range dims {
			if v, ok := e.Meta[d]; ok {
				if f, ok := asFloat(v); ok {
					rec.Idx[i] = int64(f)
				}
			}
		}
	}
	if len(e.Meta) > 0 {
		meta := make(map[string]interface{}, len(e.Meta))
		for k, v := range e.Meta {
			var isDim bool
			for _, d := range dims {
				if d == k {
					isDim = true
					break
				}
			}
			if !isDim {
				meta[k] = v
			}
		}
		if len(meta) > 0 {
			rec.Meta = meta
		}
	}
	return rec
}

// ToWriter drains it into w, tagging each emitted record against dims. It
// stops and returns the first error from either the iterator or the writer.
func ToWriter(w *event.Writer, dims []string, it Iterator) (int, error) {
	n := 0
	for {
		e, ok, err := it.Next()
		if err != nil {
			return n, err
		}
		if !ok {
			return n, nil
		}
		if err := w.Write(eventToRecord(e, dims)); err != nil {
			return n, ferr.New(ferr.KindIO, "ops.write_failed", "", err)
		}
		n++
	}
}
