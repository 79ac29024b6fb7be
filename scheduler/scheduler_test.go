package scheduler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evflow/eventflow/eir"
	"github.com/evflow/eventflow/ops"
	"github.com/evflow/eventflow/scheduler"
)

func TestRunner_EventModePipeline(t *testing.T) {
	t.Parallel()
	g := eir.NewGraph("pipeline", eir.ProfileBase)
	g.Time.Mode = eir.ModeExactEvent
	g.Nodes = []eir.Node{
		{ID: "syn", Kind: eir.KindSynapse, Op: eir.OpExpSyn, Params: map[string]interface{}{
			"tau_s": "1 ms", "weight": 2.0,
		}},
		{ID: "d", Kind: eir.KindDelayLine, Op: eir.OpDelay, Params: map[string]interface{}{
			"delay": "5 ns",
		}},
	}
	g.Edges = []eir.Edge{{Src: "syn", Dst: "d"}}

	prog, err := scheduler.Build(g)
	require.NoError(t, err)
	require.Equal(t, []string{"syn", "d"}, prog.Order)

	r := scheduler.NewRunner(prog)
	r.BindInput("syn", []ops.Event{{T: 0, C: 1, V: 1.0}, {T: 10, C: 1, V: 2.0}})

	require.NoError(t, r.Run(context.Background()))

	synOut, ok := r.Output("syn")
	require.True(t, ok)
	require.Len(t, synOut, 2)
	require.Equal(t, float32(2.0), synOut[0].V)

	dOut, ok := r.Output("d")
	require.True(t, ok)
	require.Len(t, dOut, 2)
	require.Equal(t, int64(5), dOut[0].T)
	require.Equal(t, int64(15), dOut[1].T)
}

func TestRunner_EdgeWeightScalesValues(t *testing.T) {
	t.Parallel()
	g := eir.NewGraph("weighted", eir.ProfileBase)
	g.Nodes = []eir.Node{
		{ID: "d1", Kind: eir.KindDelayLine, Op: eir.OpDelay, Params: map[string]interface{}{"delay": "0 ns"}},
		{ID: "d2", Kind: eir.KindDelayLine, Op: eir.OpDelay, Params: map[string]interface{}{"delay": "0 ns"}},
	}
	weight := 0.5
	g.Edges = []eir.Edge{{Src: "d1", Dst: "d2", Weight: &weight}}

	prog, err := scheduler.Build(g)
	require.NoError(t, err)
	r := scheduler.NewRunner(prog)
	r.BindInput("d1", []ops.Event{{T: 0, V: 4.0}})
	require.NoError(t, r.Run(context.Background()))

	out, ok := r.Output("d2")
	require.True(t, ok)
	require.Len(t, out, 1)
	require.Equal(t, float32(2.0), out[0].V)
}

func TestRunner_FixedStepBucketsBoundInput(t *testing.T) {
	t.Parallel()
	g := eir.NewGraph("bucketed", eir.ProfileBase)
	dt := int64(10) // microseconds
	g.Time.Mode = eir.ModeFixedStep
	g.Time.FixedStepDtUs = &dt
	g.Nodes = []eir.Node{
		{ID: "d", Kind: eir.KindDelayLine, Op: eir.OpDelay, Params: map[string]interface{}{"delay": "0 ns"}},
	}

	prog, err := scheduler.Build(g)
	require.NoError(t, err)
	r := scheduler.NewRunner(prog)
	// dt_ns = 10_000; two events land in bucket 0, one in bucket 1.
	r.BindInput("d", []ops.Event{
		{T: 0, V: 1.0},
		{T: 5_000, V: 2.0},
		{T: 15_000, V: 3.0},
	})
	require.NoError(t, r.Run(context.Background()))

	out, ok := r.Output("d")
	require.True(t, ok)
	require.Len(t, out, 2)
	require.Equal(t, int64(10_000), out[0].T)
	require.Equal(t, float32(3.0), out[0].V)
	require.Equal(t, int64(20_000), out[1].T)
	require.Equal(t, float32(3.0), out[1].V)
}

func TestRunner_CancellationStopsRun(t *testing.T) {
	t.Parallel()
	g := eir.NewGraph("cancel", eir.ProfileBase)
	g.Nodes = []eir.Node{
		{ID: "d", Kind: eir.KindDelayLine, Op: eir.OpDelay, Params: map[string]interface{}{"delay": "0 ns"}},
	}
	prog, err := scheduler.Build(g)
	require.NoError(t, err)
	r := scheduler.NewRunner(prog)
	r.BindInput("d", []ops.Event{{T: 0, V: 1}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = r.Run(ctx)
	require.Error(t, err)
}

func TestRunner_FeedbackDisabledByDefaultInExactEventMode(t *testing.T) {
	t.Parallel()
	g := eir.NewGraph("feedback", eir.ProfileBase)
	g.Time.Mode = eir.ModeExactEvent
	g.Nodes = []eir.Node{
		{ID: "src", Kind: eir.KindProbeNode},
		{ID: "a", Kind: eir.KindKernel, Op: eir.OpFuse, Params: map[string]interface{}{
			"window": "100 ns", "min_count": 1,
		}},
		{ID: "d", Kind: eir.KindDelayLine, Op: eir.OpDelay, Params: map[string]interface{}{"delay": "10 ns"}},
	}
	g.Edges = []eir.Edge{
		{Src: "src", Dst: "a"},
		{Src: "a", Dst: "d"},
		{Src: "d", Dst: "a"},
	}

	prog, err := scheduler.Build(g)
	require.NoError(t, err)
	require.Equal(t, []string{"src", "a", "d"}, prog.Order)
	require.Len(t, prog.Feedback, 1)

	r := scheduler.NewRunner(prog)
	r.BindInput("src", []ops.Event{{T: 0, V: 1.0}})
	require.NoError(t, r.Run(context.Background()))

	aOut, ok := r.Output("a")
	require.True(t, ok)
	// The feedback stream never contributes on the first pass (d has not
	// produced output yet) and its default step budget outside fixed_step
	// mode is zero, so fuse — which requires both named streams non-empty —
	// never emits a coincidence.
	require.Empty(t, aOut)
}
