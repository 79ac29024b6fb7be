package ops_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evflow/eventflow/eir"
	"github.com/evflow/eventflow/ops"
)

func node(op eir.Op, params map[string]interface{}) eir.Node {
	return eir.Node{ID: "n", Kind: eir.KindKernel, Op: op, Params: params}
}

func TestLIF_FiresAtThreshold(t *testing.T) {
	t.Parallel()
	in := ops.NewSliceIterator([]ops.Event{
		{T: 0, V: 1.0},
		{T: 1, V: 1.0},
	})
	lif, err := ops.NewLIF(node(eir.OpLIF, map[string]interface{}{
		"tau_m": "1 s", "v_th": 1.5, "v_reset": 0.0, "r_m": 1.0, "refractory": "0 ns",
	}), in)
	require.NoError(t, err)

	out, err := ops.Collect(lif)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, int64(1), out[0].T)
	require.Equal(t, int64(0), out[0].C)
	require.Equal(t, float32(1.0), out[0].V)
}

func TestLIF_RefractorySuppressesEmission(t *testing.T) {
	t.Parallel()
	in := ops.NewSliceIterator([]ops.Event{
		{T: 0, V: 2.0},   // fires immediately, v_th=1
		{T: 1, V: 2.0},   // inside refractory window: membrane still integrates, emission suppressed
		{T: 100, V: 2.0}, // past refractory, fires again
	})
	lif, err := ops.NewLIF(node(eir.OpLIF, map[string]interface{}{
		"tau_m": "1 s", "v_th": 1.0, "v_reset": 0.0, "r_m": 1.0, "refractory": "10 ns",
	}), in)
	require.NoError(t, err)

	out, err := ops.Collect(lif)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, int64(0), out[0].T)
	require.Equal(t, int64(100), out[1].T)
}

func TestExpSyn_ScalesStatelessly(t *testing.T) {
	t.Parallel()
	in := ops.NewSliceIterator([]ops.Event{
		{T: 0, C: 3, V: 2.0},
		{T: 5, C: 3, V: -1.0},
	})
	syn, err := ops.NewExpSyn(node(eir.OpExpSyn, map[string]interface{}{
		"tau_s": "5 ms", "weight": 2.0,
	}), in)
	require.NoError(t, err)

	out, err := ops.Collect(syn)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, float32(4.0), out[0].V)
	require.Equal(t, int64(3), out[0].C)
	require.Equal(t, float32(-2.0), out[1].V)
	require.Equal(t, "exp", out[1].Meta["syn"])
}

func TestDelay_ShiftsTimestamps(t *testing.T) {
	t.Parallel()
	in := ops.NewSliceIterator([]ops.Event{{T: 0, V: 1}, {T: 5, V: 2}})
	d, err := ops.NewDelay(node(eir.OpDelay, map[string]interface{}{"delay": "10 ns"}), in)
	require.NoError(t, err)

	out, err := ops.Collect(d)
	require.NoError(t, err)
	require.Equal(t, []int64{10, 15}, []int64{out[0].T, out[1].T})
}

func TestFuse_EmitsOnCoincidence(t *testing.T) {
	t.Parallel()
	a := ops.NewSliceIterator([]ops.Event{{T: 0, V: 1}, {T: 100, V: 1}})
	b := ops.NewSliceIterator([]ops.Event{{T: 1, V: 1}})
	f, err := ops.NewFuse(node(eir.OpFuse, map[string]interface{}{
		"window": "5 ns", "min_count": 2,
	}), a, b)
	require.NoError(t, err)

	out, err := ops.Collect(f)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, int64(1), out[0].T)
	require.Equal(t, float32(1.0), out[0].V)
	require.Equal(t, "coincidence", out[0].Meta["unit"])
}

func TestFuse_TieBreaksAThenB(t *testing.T) {
	t.Parallel()
	a := ops.NewSliceIterator([]ops.Event{{T: 10, V: 1}})
	b := ops.NewSliceIterator([]ops.Event{{T: 10, V: 1}})
	f, err := ops.NewFuse(node(eir.OpFuse, map[string]interface{}{
		"window": "1 ns", "min_count": 2,
	}), a, b)
	require.NoError(t, err)

	out, err := ops.Collect(f)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, int64(10), out[0].T)
}

func TestSTFT_DropsPartialTrailingFrame(t *testing.T) {
	t.Parallel()
	events := make([]ops.Event, 0, 6)
	for i := 0; i < 6; i++ { // fewer than n_fft=8, no frame should ever complete
		events = append(events, ops.Event{T: int64(i), V: 1.0})
	}
	in := ops.NewSliceIterator(events)
	s, err := ops.NewSTFT(node(eir.OpSTFT, map[string]interface{}{
		"n_fft": 8, "hop": "4 ns", "sample_rate_hz": 1e9, "window": "rect",
	}), in)
	require.NoError(t, err)

	out, err := ops.Collect(s)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestSTFT_EmitsOneBinEventPerFreqBin(t *testing.T) {
	t.Parallel()
	events := make([]ops.Event, 0, 8)
	for i := 0; i < 8; i++ {
		events = append(events, ops.Event{T: int64(i), V: 1.0})
	}
	in := ops.NewSliceIterator(events)
	s, err := ops.NewSTFT(node(eir.OpSTFT, map[string]interface{}{
		"n_fft": 8, "hop": "8 ns", "sample_rate_hz": 1e9, "window": "rect",
	}), in)
	require.NoError(t, err)

	out, err := ops.Collect(s)
	require.NoError(t, err)
	require.Len(t, out, 5) // n_fft/2 + 1
	for _, e := range out {
		require.Equal(t, int64(8), e.T) // round((0+n_fft)*1e9/sr)
	}
}

func TestSTFT_ZeroFillsGappedSampleIndices(t *testing.T) {
	t.Parallel()
	// sample_rate_hz == 1e9 maps timestamp directly to sample index; index 2
	// is skipped entirely, so the frame must treat it as 0.0 rather than
	// reusing the previous or next event's value (spec §4.3).
	in := ops.NewSliceIterator([]ops.Event{
		{T: 0, V: 1.0},
		{T: 1, V: 2.0},
		{T: 3, V: 4.0},
	})
	s, err := ops.NewSTFT(node(eir.OpSTFT, map[string]interface{}{
		"n_fft": 4, "hop": "4 ns", "sample_rate_hz": 1e9, "window": "rect",
	}), in)
	require.NoError(t, err)

	out, err := ops.Collect(s)
	require.NoError(t, err)
	require.Len(t, out, 3) // n_fft/2 + 1
	require.Equal(t, int64(4), out[0].T)
	// k=0 (DC) is the plain sum of the windowed samples: 1 + 2 + 0 + 4.
	require.InDelta(t, 7.0, float64(out[0].V), 1e-6)
}

func TestSTFT_OutOfGridTimestampRoundsToNearestSample(t *testing.T) {
	t.Parallel()
	// sample_rate_hz == 2.5e8 gives one sample every 4ns, so t=5 (1.25
	// samples) rounds to index 1, t=9 (2.25) to index 2 and t=11 (2.75) to
	// index 3. t=4 and t=5 both land on index 1: the later value overwrites
	// the earlier one rather than accumulating, so the frame is [1,1,1,1].
	in := ops.NewSliceIterator([]ops.Event{
		{T: 0, V: 1.0},
		{T: 4, V: 9.0},
		{T: 5, V: 1.0},
		{T: 9, V: 1.0},
		{T: 11, V: 1.0},
	})
	s, err := ops.NewSTFT(node(eir.OpSTFT, map[string]interface{}{
		"n_fft": 4, "hop": "16 ns", "sample_rate_hz": 2.5e8, "window": "rect",
	}), in)
	require.NoError(t, err)

	out, err := ops.Collect(s)
	require.NoError(t, err)
	require.Len(t, out, 3)
	require.InDelta(t, 4.0, float64(out[0].V), 1e-6)
}

func TestMel_ProjectsBinsToBands(t *testing.T) {
	t.Parallel()
	bins := ops.NewSliceIterator([]ops.Event{
		{T: 100, C: 0, V: 1.0},
		{T: 100, C: 1, V: 1.0},
		{T: 100, C: 2, V: 1.0},
	})
	m, err := ops.NewMel(node(eir.OpMel, map[string]interface{}{
		"n_fft": 4, "n_mels": 2, "sample_rate_hz": 100.0,
	}), bins)
	require.NoError(t, err)

	out, err := ops.Collect(m)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, int64(100), out[0].T)
	require.Equal(t, "mel", out[0].Meta["unit"])
}

func TestXYToChannel_DropsOutOfBounds(t *testing.T) {
	t.Parallel()
	in := ops.NewSliceIterator([]ops.Event{
		{T: 0, V: 1, Meta: map[string]interface{}{"x": int64(1), "y": int64(2)}},
		{T: 1, V: 1, Meta: map[string]interface{}{"x": int64(10), "y": int64(2)}},
	})
	x, err := ops.NewXYToChannel(node(eir.OpXYToCh, map[string]interface{}{
		"width": 4, "height": 4,
	}), in)
	require.NoError(t, err)

	out, err := ops.Collect(x)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, int64(2*4+1), out[0].C)
	require.Equal(t, int64(4), out[0].Meta["w"])
}

func TestShiftXY_ClampsRatherThanDrops(t *testing.T) {
	t.Parallel()
	in := ops.NewSliceIterator([]ops.Event{
		{T: 0, V: 1, C: 5}, // (x,y) = (1,1) in a 4-wide grid
		{T: 1, V: 1, C: 0}, // (x,y) = (0,0)
	})
	s, err := ops.NewShiftXY(node(eir.OpShiftXY, map[string]interface{}{
		"dx": -1.0, "dy": -1.0, "width": 4, "height": 4,
	}), in)
	require.NoError(t, err)

	out, err := ops.Collect(s)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, int64(0), out[0].C) // (0,0)
	require.Equal(t, int64(0), out[1].C) // clamped from (-1,-1) to (0,0)
}
