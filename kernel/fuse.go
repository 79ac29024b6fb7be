package kernel

// FuseCoincidence implements spec §4.7's fuse_coincidence contract over two
// already-sorted (non-decreasing) timestamp arrays: merge by time, ties
// broken in favor of a, maintaining sliding buffers of timestamps limited to
// [t-window_ns, t] per stream. Whenever both buffers are non-empty and their
// combined size is >= minCount, emit one coincidence event at the current t
// with value 1.0.
//
// This is the array-based twin of ops.Fuse's ring-buffer algorithm — same
// eviction and emission rule, but merging two flat slices with a
// two-pointer scan instead of pulling from Iterators, since a kernel caller
// already holds both streams materialized.
//
// Preconditions: windowNs > 0, tA and tB each non-decreasing. A
// window_ns <= 0 violation returns a FuseError wrapped in ferr.KindKernel.
func FuseCoincidence(tA, tB []int64, windowNs int64, minCount int64) (tOut []int64, vOut []float32, err error) {
	if windowNs <= 0 {
		return nil, nil, wrapFuse("window_ns must be > 0")
	}

	var bufA, bufB []int64
	i, j := 0, 0
	for i < len(tA) || j < len(tB) {
		var t int64
		var fromA bool
		switch {
		case i < len(tA) && j < len(tB):
			fromA = tA[i] <= tB[j]
		case i < len(tA):
			fromA = true
		default:
			fromA = false
		}

		if fromA {
			t = tA[i]
			i++
			bufA = append(bufA, t)
		} else {
			t = tB[j]
			j++
			bufB = append(bufB, t)
		}

		cutoff := t - windowNs
		bufA = evictBefore(bufA, cutoff)
		bufB = evictBefore(bufB, cutoff)

		if len(bufA) > 0 && len(bufB) > 0 && int64(len(bufA)+len(bufB)) >= minCount {
			tOut = append(tOut, t)
			vOut = append(vOut, 1.0)
		}
	}
	return tOut, vOut, nil
}

func evictBefore(buf []int64, cutoff int64) []int64 {
	kept := buf[:0]
	for _, t := range buf {
		if t >= cutoff {
			kept = append(kept, t)
		}
	}
	return kept
}
