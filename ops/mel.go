package ops

import (
	"math"

	"github.com/evflow/eventflow/eir"
)

// Mel implements the mel filterbank (spec §4.3, op "mel"): it groups
// upstream bin-magnitude events by their shared frame timestamp (as emitted
// by STFT) and projects the n_fft/2+1 linear-frequency bins onto n_mels
// triangular filters spaced evenly on the mel scale between fmin_hz and
// fmax_hz (default 0 and sample_rate_hz/2), emitting one event per band
// (t, m, E_m, {unit:"mel"}) at the frame timestamp, where E_m is the
// filter-weighted sum of bin magnitudes; if log is set, E_m is replaced by
// ln(max(E_m, 1e-12)). Filter weights are left unnormalized (triangles of
// peak height 1, not area 1) per the resolved decision in DESIGN.md.
type Mel struct {
	in Iterator

	nMels   int
	nBins   int
	filters [][]float64 // nMels x (nFFT/2+1)
	logOut  bool

	carry      *Event
	pending    []Event
	pendingIdx int
	done       bool
}

// NewMel builds a Mel operator from node's params (n_fft, n_mels,
// sample_rate_hz, fmin_hz, fmax_hz, log).
func NewMel(node eir.Node, in Iterator) (*Mel, error) {
	nFFT, err := reqIntParam(node, "n_fft")
	if err != nil {
		return nil, err
	}
	nMels, err := reqIntParam(node, "n_mels")
	if err != nil {
		return nil, err
	}
	sr, err := reqFloatParam(node, "sample_rate_hz")
	if err != nil {
		return nil, err
	}
	fmin := optFloatParam(node, "fmin_hz", 0)
	fmax := optFloatParam(node, "fmax_hz", sr/2)
	return &Mel{
		in:      in,
		nMels:   int(nMels),
		nBins:   int(nFFT)/2 + 1,
		filters: buildMelFilters(int(nFFT), int(nMels), sr, fmin, fmax),
		logOut:  optBoolParam(node, "log"),
	}, nil
}

func hzToMel(hz float64) float64  { return 2595 * math.Log10(1+hz/700) }
func melToHz(mel float64) float64 { return 700 * (math.Pow(10, mel/2595) - 1) }

// buildMelFilters constructs nMels triangular filters over the nFFT/2+1
// linear FFT bins, spaced evenly in mel space between fminHz and fmaxHz,
// following the classic "equally-spaced mel points, map to FFT bins,
// triangulate" construction.
func buildMelFilters(nFFT, nMels int, sampleRateHz, fminHz, fmaxHz float64) [][]float64 {
	melLo, melHi := hzToMel(fminHz), hzToMel(fmaxHz)
	points := make([]float64, nMels+2)
	for i := range points {
		mel := melLo + (melHi-melLo)*float64(i)/float64(nMels+1)
		points[i] = melToHz(mel)
	}

	bins := nFFT/2 + 1
	binPoints := make([]int, nMels+2)
	for i, hz := range points {
		b := int(math.Floor(float64(nFFT+1) * hz / sampleRateHz))
		if b < 0 {
			b = 0
		}
		if b > bins-1 {
			b = bins - 1
		}
		binPoints[i] = b
	}

	filters := make([][]float64, nMels)
	for j := 0; j < nMels; j++ {
		filters[j] = make([]float64, bins)
		left, center, right := binPoints[j], binPoints[j+1], binPoints[j+2]
		for b := left; b < center; b++ {
			if center > left {
				filters[j][b] = float64(b-left) / float64(center-left)
			}
		}
		for b := center; b < right; b++ {
			if right > center {
				filters[j][b] = float64(right-b) / float64(right-center)
			}
		}
		if center >= left && center <= right && center < bins {
			filters[j][center] = 1.0
		}
	}
	return filters
}

// Next implements Iterator.
func (m *Mel) Next() (Event, bool, error) {
	for {
		if m.pendingIdx < len(m.pending) {
			e := m.pending[m.pendingIdx]
			m.pendingIdx++
			return e, true, nil
		}
		if m.done {
			return Event{}, false, nil
		}

		bins := make([]float64, m.nBins)
		var frameT int64
		haveFrameT := false
		for {
			var e Event
			var ok bool
			var err error
			if m.carry != nil {
				e, ok = *m.carry, true
				m.carry = nil
			} else {
				e, ok, err = m.in.Next()
			}
			if err != nil {
				return Event{}, false, err
			}
			if !ok {
				m.done = true
				break
			}
			if !haveFrameT {
				frameT, haveFrameT = e.T, true
			}
			if e.T != frameT {
				ce := e
				m.carry = &ce
				break
			}
			if int(e.C) >= 0 && int(e.C) < len(bins) {
				bins[e.C] = float64(e.V)
			}
		}
		if !haveFrameT {
			return Event{}, false, nil
		}

		out := make([]Event, m.nMels)
		for j := 0; j < m.nMels; j++ {
			// Sum in ascending bin order, never map iteration order, so two
			// runs over identical input produce byte-identical floating-point
			// sums (spec §4.4/§8's "no associative reordering" requirement).
			var sum float64
			for b, v := range bins {
				sum += m.filters[j][b] * v
			}
			if m.logOut {
				sum = math.Log(math.Max(sum, 1e-12))
			}
			out[j] = Event{T: frameT, C: int64(j), V: float32(sum), Meta: map[string]interface{}{"unit": "mel"}}
		}
		m.pending = out
		m.pendingIdx = 0
	}
}
