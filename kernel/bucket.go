package kernel

// BucketSum implements spec §4.7's bucket_sum contract: t is a
// non-decreasing sequence of non-negative nanosecond timestamps, v is the
// parallel value array. Every maximal run of inputs sharing the bucket key
// k = t[i]/dt_ns (integer division, equivalent to floor since inputs are
// non-negative) is summed in input order and emitted as one output pair
// (k*dt_ns + dt_ns, sum). The sum is accumulated in float64 and narrowed to
// float32 once per bucket, so for a single-channel stream the output matches
// scheduler.bucketEvents' fixed-step bucketing exactly; it operates on flat
// arrays instead of []ops.Event, for the hot path where a caller already
// holds columnar data.
//
// Preconditions: len(t) == len(v), dt_ns > 0, t non-decreasing. Violations
// return a BucketError wrapped in ferr.KindKernel.
func BucketSum(t []int64, v []float32, dtNs int64) (tOut []int64, vOut []float32, err error) {
	if dtNs <= 0 {
		return nil, nil, wrapBucket("dt_ns must be > 0")
	}
	if len(t) != len(v) {
		return nil, nil, wrapBucket("len(t) != len(v)")
	}
	if len(t) == 0 {
		return nil, nil, nil
	}

	tOut = make([]int64, 0, len(t))
	vOut = make([]float32, 0, len(t))

	currentKey := t[0] / dtNs
	var sum float64
	for i := range t {
		if i > 0 && t[i] < t[i-1] {
			return nil, nil, wrapBucket("t is not non-decreasing")
		}
		k := t[i] / dtNs
		if k != currentKey {
			tOut = append(tOut, currentKey*dtNs+dtNs)
			vOut = append(vOut, float32(sum))
			currentKey = k
			sum = 0
		}
		sum += float64(v[i])
	}
	tOut = append(tOut, currentKey*dtNs+dtNs)
	vOut = append(vOut, float32(sum))

	return tOut, vOut, nil
}
