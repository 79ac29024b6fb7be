package kernel

import (
	"golang.org/x/exp/slices"
)

// DVSFrame is one input record of a normalized DVS (dynamic vision sensor)
// stream: a timestamp, pixel coordinates, a polarity bit, and a value.
type DVSFrame struct {
	Ts       int64
	X, Y     int32
	Polarity int8
	Val      float32
}

// channelEvent is a DVS frame reduced to what the coincidence merge needs:
// a timestamp and a back-pointer to the originating frame.
type channelEvent struct {
	ts  int64
	src int
}

// DVSColumnar implements the optional DVS columnar flow of spec §4.7: it
// must be behavior-equivalent to running XY→channel → ShiftXY(±1,0) →
// Delay → Fuse through the scheduler, just computed directly over columnar
// arrays. Stream a is each surviving frame's own channel event; stream b is
// the same frame's channel shifted by (dx,dy) (clamped, never dropped, as
// ops.ShiftXY does) and delayed by delayNs. A coincidence is emitted
// wherever the two streams' sliding timestamp buffers both hold events
// within fuseWindowNs of each other, reported at the triggering frame's own
// (x,y,polarity) — sorted lexicographically by (ts, x, y, polarity).
//
// frames must already be ts-sorted (the normalized-stream invariant this
// flow assumes, same as event.Record's non-decreasing ts requirement).
// width/height bound the channel step exactly as ops.XYToChannel does:
// out-of-bounds (x,y) pairs are dropped before either stream is built.
// dx, dy are accepted for interface parity with the XY→channel→ShiftXY
// pipeline this flow stands in for, but per spec §4.3's fuse contract the
// coincidence check is timestamp-only — ShiftXY changes a channel id, never
// a timestamp — so they do not affect which frames coincide here.
func DVSColumnar(frames []DVSFrame, width, height int, dx, dy int, delayNs, fuseWindowNs int64, fuseMinCount int64) ([]DVSFrame, error) {
	if fuseWindowNs <= 0 {
		return nil, wrapVision("fuse window_ns must be > 0")
	}
	if width <= 0 || height <= 0 {
		return nil, wrapVision("width and height must be > 0")
	}

	var a, b []channelEvent
	for idx, f := range frames {
		px, py := int(f.X), int(f.Y)
		if px < 0 || px >= width || py < 0 || py >= height {
			continue // XY→channel drop, spec's out-of-bounds rule
		}
		a = append(a, channelEvent{ts: f.Ts, src: idx})
		b = append(b, channelEvent{ts: f.Ts + delayNs, src: idx})
	}

	var bufA, bufB []channelEvent
	i, j := 0, 0
	var out []DVSFrame
	for i < len(a) || j < len(b) {
		var t int64
		var fromA bool
		switch {
		case i < len(a) && j < len(b):
			fromA = a[i].ts <= b[j].ts
		case i < len(a):
			fromA = true
		default:
			fromA = false
		}

		var cur channelEvent
		if fromA {
			cur = a[i]
			t = cur.ts
			i++
			bufA = append(bufA, cur)
		} else {
			cur = b[j]
			t = cur.ts
			j++
			bufB = append(bufB, cur)
		}

		cutoff := t - fuseWindowNs
		bufA = evictChannelEvents(bufA, cutoff)
		bufB = evictChannelEvents(bufB, cutoff)

		if len(bufA) > 0 && len(bufB) > 0 && int64(len(bufA)+len(bufB)) >= fuseMinCount {
			src := frames[cur.src]
			out = append(out, DVSFrame{Ts: t, X: src.X, Y: src.Y, Polarity: src.Polarity, Val: 1.0})
		}
	}

	slices.SortStableFunc(out, func(a, b DVSFrame) int {
		if a.Ts != b.Ts {
			return cmpOrdered(a.Ts, b.Ts)
		}
		if a.X != b.X {
			return cmpOrdered(a.X, b.X)
		}
		if a.Y != b.Y {
			return cmpOrdered(a.Y, b.Y)
		}
		return cmpOrdered(a.Polarity, b.Polarity)
	})
	return out, nil
}

// cmpOrdered is the three-way comparator slices.SortStableFunc expects,
// generic over the handful of signed integer types DVSFrame's sort keys use.
func cmpOrdered[T int8 | int32 | int64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func evictChannelEvents(buf []channelEvent, cutoff int64) []channelEvent {
	kept := buf[:0]
	for _, e := range buf {
		if e.ts >= cutoff {
			kept = append(kept, e)
		}
	}
	return kept
}
