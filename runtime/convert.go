package runtime

import (
	"github.com/evflow/eventflow/event"
	"github.com/evflow/eventflow/ferr"
	"github.com/evflow/eventflow/ops"
	"github.com/evflow/eventflow/timeunit"
)

// drainInput reads every record from rd and converts it to nanosecond-scale
// ops.Event the way ops.FromReader's recordToEvent does for channel/meta
// shaping, but additionally normalizes rd's own declared time unit to
// nanoseconds — FromReader leaves that conversion to its caller since not
// every pipeline needs it, but a source trace bound into a scheduler
// program always must, since every operator and edge transform in package
// ops and package scheduler assumes its Event.T is already nanoseconds.
func drainInput(rd *event.Reader) ([]ops.Event, error) {
	unit, err := timeunit.ParseUnit(rd.Header.Units.Time)
	if err != nil {
		return nil, ferr.New(ferr.KindIO, "runtime.bad_input_unit", "", err)
	}
	dims := rd.Header.Dims

	var out []ops.Event
	for {
		rec, ok, err := rd.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, recordToNsEvent(rec, dims, unit))
	}
	return out, nil
}

func recordToNsEvent(rec event.Record, dims []string, unit timeunit.Unit) ops.Event {
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
	return ops.Event{T: timeunit.Convert(rec.TS, unit, timeunit.NS), C: c, V: float32(rec.Val), Meta: meta}
}

// probeToRecords converts a probe's materialized ops.Event output back to
// event.Record form, in the graph's own declared time unit, single-channel
// (dims=["c"]) shaped — probe output has no header of its own to carry a
// richer dims list, unlike a trace bound in from disk.
func probeToRecords(events []ops.Event, unit timeunit.Unit) []event.Record {
	out := make([]event.Record, len(events))
	for i, e := range events {
		rec := event.Record{
			TS:  timeunit.Convert(e.T, timeunit.NS, unit),
			Idx: []int64{e.C},
			Val: float64(e.V),
		}
		if len(e.Meta) > 0 {
			rec.Meta = e.Meta
		}
		out[i] = rec
	}
	return out
}
