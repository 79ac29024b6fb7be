package runtime_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evflow/eventflow/eir"
	"github.com/evflow/eventflow/event"
	"github.com/evflow/eventflow/ferr"
	"github.com/evflow/eventflow/planner"
	"github.com/evflow/eventflow/runtime"
	"github.com/evflow/eventflow/validate"
)

func baseDevice() *planner.DeviceDescriptor {
	return &planner.DeviceDescriptor{
		Name:             "ref-sim",
		TimeResolutionNs: 1,
		DeterministicModes: map[eir.Mode]bool{
			eir.ModeExactEvent: true,
			eir.ModeFixedStep:  true,
		},
		SupportedOps:        map[eir.Op]bool{eir.OpExpSyn: true},
		ConformanceProfiles: map[eir.Profile]bool{eir.ProfileBase: true},
		OverflowBehavior:    planner.OverflowDropTail,
	}
}

func synapseGraph() *eir.Graph {
	g := eir.NewGraph("g", eir.ProfileBase)
	g.Time.Mode = eir.ModeExactEvent
	g.Time.EpsilonTimeUs = 1
	g.Nodes = []eir.Node{
		{ID: "syn", Kind: eir.KindSynapse, Op: eir.OpExpSyn, Params: map[string]interface{}{
			"tau_s":  "5ms",
			"weight": 2.0,
		}},
	}
	g.Probes = []eir.Probe{{Name: "syn_out", Target: "syn"}}
	return g
}

func traceReader(t *testing.T) *event.Reader {
	t.Helper()
	body := `{"header":{"schema_version":"1.0","dims":["c"],"units":{"time":"us"},"dtype":"f32","layout":"coo"}}
{"ts":0,"idx":[0],"val":1.0}
{"ts":10,"idx":[0],"val":2.0}
`
	rd, err := event.NewReader(bytes.NewBufferString(body))
	require.NoError(t, err)
	return rd
}

func TestRun_ValidatesNegotiatesSchedulesAndReports(t *testing.T) {
	t.Parallel()
	g := synapseGraph()
	require.False(t, validate.EIR(g).HasErrors())

	report, err := runtime.Run(context.Background(), g, baseDevice(), map[string]*event.Reader{
		"syn": traceReader(t),
	}, runtime.Options{})
	require.NoError(t, err)
	require.NotNil(t, report.Plan)
	require.Equal(t, []string{"syn"}, report.NodesRun)

	out, ok := report.Probes["syn_out"]
	require.True(t, ok)
	require.Len(t, out, 2)
	require.InDelta(t, 2.0, out[0].Val, 1e-6)
	require.InDelta(t, 4.0, out[1].Val, 1e-6)
	// input declared in "us"; graph's canonical unit defaults to "ns" (see
	// eir.NewGraph), so the probe's ts comes back scaled up by 1000.
	require.Equal(t, int64(0), out[0].TS)
	require.Equal(t, int64(10_000), out[1].TS)
}

func TestRun_ValidationFailureIsReported(t *testing.T) {
	t.Parallel()
	g := synapseGraph()
	g.Graph.Name = ""

	_, err := runtime.Run(context.Background(), g, baseDevice(), map[string]*event.Reader{
		"syn": traceReader(t),
	}, runtime.Options{})
	require.Error(t, err)
	require.True(t, ferr.Is(err, ferr.KindValidation))
}

func TestRun_PlannerRejectionIsReported(t *testing.T) {
	t.Parallel()
	d := baseDevice()
	d.ConformanceProfiles = map[eir.Profile]bool{eir.ProfileRealtime: true}

	_, err := runtime.Run(context.Background(), synapseGraph(), d, map[string]*event.Reader{
		"syn": traceReader(t),
	}, runtime.Options{})
	require.Error(t, err)
	require.True(t, ferr.Is(err, ferr.KindPlanner))
}

func TestRun_UnknownBackendIsRejected(t *testing.T) {
	t.Parallel()
	_, err := runtime.Run(context.Background(), synapseGraph(), baseDevice(), map[string]*event.Reader{
		"syn": traceReader(t),
	}, runtime.Options{Backend: "gpu-fpga-v2"})
	require.Error(t, err)
	require.True(t, ferr.Is(err, ferr.KindConfig))
}

func TestRun_CancellationPropagatesAsCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runtime.Run(ctx, synapseGraph(), baseDevice(), map[string]*event.Reader{
		"syn": traceReader(t),
	}, runtime.Options{})
	require.ErrorIs(t, err, ferr.Cancelled)
}
