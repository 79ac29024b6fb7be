package planner

import "math"

// roundHalfEven rounds x to the nearest integer, ties resolved to the
// nearest even integer — the same convention timeunit.ParseNanos uses for
// nanosecond quantization, duplicated here in miniature because planner has
// no need for timeunit's literal parsing, only its rounding rule (spec §4.1,
// applied by §4.5 step 2 to the fixed_step dt grid).
func roundHalfEven(x float64) int64 {
	floor := math.Floor(x)
	diff := x - floor
	fi := int64(floor)
	switch {
	case diff < 0.5:
		return fi
	case diff > 0.5:
		return fi + 1
	default:
		if fi%2 == 0 {
			return fi
		}
		return fi + 1
	}
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
