package kernel_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evflow/eventflow/ferr"
	"github.com/evflow/eventflow/kernel"
)

func TestBucketSum_SumsPerBucket(t *testing.T) {
	t.Parallel()
	tOut, vOut, err := kernel.BucketSum(
		[]int64{0, 5_000, 15_000},
		[]float32{1, 2, 3},
		10_000,
	)
	require.NoError(t, err)
	require.Equal(t, []int64{10_000, 20_000}, tOut)
	require.Equal(t, []float32{3, 3}, vOut)
}

func TestBucketSum_RejectsNonPositiveDt(t *testing.T) {
	t.Parallel()
	_, _, err := kernel.BucketSum([]int64{0}, []float32{1}, 0)
	require.Error(t, err)
	require.True(t, ferr.Is(err, ferr.KindKernel))
	require.True(t, errors.Is(err, kernel.BucketError))
}

func TestBucketSum_RejectsLengthMismatch(t *testing.T) {
	t.Parallel()
	_, _, err := kernel.BucketSum([]int64{0, 1}, []float32{1}, 10)
	require.Error(t, err)
	require.True(t, errors.Is(err, kernel.BucketError))
}

func TestBucketSum_RejectsOutOfOrderInput(t *testing.T) {
	t.Parallel()
	_, _, err := kernel.BucketSum([]int64{5, 3}, []float32{1, 2}, 10)
	require.Error(t, err)
	require.True(t, errors.Is(err, kernel.BucketError))
}

func TestBucketSum_EmptyInputIsEmptyOutput(t *testing.T) {
	t.Parallel()
	tOut, vOut, err := kernel.BucketSum(nil, nil, 10)
	require.NoError(t, err)
	require.Empty(t, tOut)
	require.Empty(t, vOut)
}

func TestFuseCoincidence_EmitsOnceBothBuffersSatisfyMinCount(t *testing.T) {
	t.Parallel()
	tOut, vOut, err := kernel.FuseCoincidence([]int64{0}, []int64{0}, 10, 2)
	require.NoError(t, err)
	require.Equal(t, []int64{0}, tOut)
	require.Equal(t, []float32{1.0}, vOut)
}

func TestFuseCoincidence_NoEmissionWhenOneStreamEmpty(t *testing.T) {
	t.Parallel()
	tOut, vOut, err := kernel.FuseCoincidence([]int64{0, 5, 9}, nil, 10, 1)
	require.NoError(t, err)
	require.Empty(t, tOut)
	require.Empty(t, vOut)
}

func TestFuseCoincidence_RejectsNonPositiveWindow(t *testing.T) {
	t.Parallel()
	_, _, err := kernel.FuseCoincidence([]int64{0}, []int64{0}, 0, 1)
	require.Error(t, err)
	require.True(t, errors.Is(err, kernel.FuseError))
}

func TestFuseCoincidence_EvictsOutsideWindow(t *testing.T) {
	t.Parallel()
	// a fires at t=0, b fires at t=100 — far outside a 10ns window, so by
	// the time b arrives a's buffer entry has already been evicted.
	tOut, _, err := kernel.FuseCoincidence([]int64{0}, []int64{100}, 10, 1)
	require.NoError(t, err)
	require.Empty(t, tOut)
}

func TestDVSColumnar_EmitsCoincidenceForInBoundsFrame(t *testing.T) {
	t.Parallel()
	frames := []kernel.DVSFrame{{Ts: 0, X: 0, Y: 0, Polarity: 1, Val: 1}}
	out, err := kernel.DVSColumnar(frames, 2, 2, 0, 0, 0, 10, 2)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, int64(0), out[0].Ts)
	require.Equal(t, int8(1), out[0].Polarity)
}

func TestDVSColumnar_DropsOutOfBoundsFrames(t *testing.T) {
	t.Parallel()
	frames := []kernel.DVSFrame{{Ts: 0, X: 5, Y: 5}}
	out, err := kernel.DVSColumnar(frames, 2, 2, 0, 0, 0, 10, 1)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestDVSColumnar_RejectsBadDimensions(t *testing.T) {
	t.Parallel()
	_, err := kernel.DVSColumnar(nil, 0, 2, 0, 0, 0, 10, 1)
	require.Error(t, err)
	require.True(t, errors.Is(err, kernel.VisionError))
}

func TestDVSColumnar_OutputIsLexicographicallySorted(t *testing.T) {
	t.Parallel()
	frames := []kernel.DVSFrame{
		{Ts: 0, X: 0, Y: 0},
		{Ts: 10, X: 1, Y: 0},
	}
	out, err := kernel.DVSColumnar(frames, 2, 2, 0, 0, 0, 5, 2)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.True(t, out[0].Ts <= out[1].Ts)
}
