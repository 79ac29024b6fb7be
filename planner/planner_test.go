package planner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evflow/eventflow/eir"
	"github.com/evflow/eventflow/ferr"
	"github.com/evflow/eventflow/planner"
)

func baseDevice() *planner.DeviceDescriptor {
	return &planner.DeviceDescriptor{
		Name:             "ref-sim",
		TimeResolutionNs: 1000, // 1us
		DeterministicModes: map[eir.Mode]bool{
			eir.ModeExactEvent: true,
			eir.ModeFixedStep:  true,
		},
		SupportedOps: map[eir.Op]bool{
			eir.OpLIF: true, eir.OpExpSyn: true, eir.OpDelay: true,
		},
		ConformanceProfiles: map[eir.Profile]bool{eir.ProfileBase: true},
		OverflowBehavior:    planner.OverflowDropTail,
	}
}

func graphWith(mode eir.Mode, dtUs *int64, epsilonUs int64) *eir.Graph {
	g := eir.NewGraph("g", eir.ProfileBase)
	g.Time.Mode = mode
	g.Time.FixedStepDtUs = dtUs
	g.Time.EpsilonTimeUs = epsilonUs
	g.Nodes = []eir.Node{
		{ID: "syn", Kind: eir.KindSynapse, Op: eir.OpExpSyn},
	}
	return g
}

func TestNegotiate_RejectsUnsupportedProfile(t *testing.T) {
	t.Parallel()
	d := baseDevice()
	d.ConformanceProfiles = map[eir.Profile]bool{eir.ProfileRealtime: true}
	g := graphWith(eir.ModeExactEvent, nil, 10)

	_, err := planner.Negotiate(g, d)
	require.Error(t, err)
	require.True(t, ferr.Is(err, ferr.KindPlanner))
}

func TestNegotiate_ExactEventPassesWithinEpsilon(t *testing.T) {
	t.Parallel()
	d := baseDevice() // resolution 1us -> worst case 0.5us
	g := graphWith(eir.ModeExactEvent, nil, 1)

	plan, err := planner.Negotiate(g, d)
	require.NoError(t, err)
	require.False(t, plan.Capability.ModeEmulated)
	require.Equal(t, int64(0), plan.Schedule.DtUs)
}

func TestNegotiate_ExactEventViolatesEpsilon(t *testing.T) {
	t.Parallel()
	d := baseDevice()
	d.TimeResolutionNs = 10_000 // 10us resolution -> 5us worst case
	g := graphWith(eir.ModeExactEvent, nil, 1)

	_, err := planner.Negotiate(g, d)
	require.Error(t, err)
	require.True(t, ferr.Is(err, ferr.KindPlanner))
}

func TestNegotiate_FixedStepQuantizesWithinEpsilon(t *testing.T) {
	t.Parallel()
	d := baseDevice()
	d.TimeResolutionNs = 1000 // 1us grid
	dt := int64(10)
	g := graphWith(eir.ModeFixedStep, &dt, 1)

	plan, err := planner.Negotiate(g, d)
	require.NoError(t, err)
	require.Equal(t, int64(10), plan.Schedule.DtUs)
}

func TestNegotiate_FixedStepViolatesEpsilon(t *testing.T) {
	t.Parallel()
	d := baseDevice()
	d.TimeResolutionNs = 3000 // 3us grid; 10us requested quantizes to 9us, off by 1us
	dt := int64(10)
	g := graphWith(eir.ModeFixedStep, &dt, 0)

	_, err := planner.Negotiate(g, d)
	require.Error(t, err)
}

func TestNegotiate_MarksUnsupportedOperatorsEmulated(t *testing.T) {
	t.Parallel()
	d := baseDevice()
	delete(d.SupportedOps, eir.OpExpSyn)
	g := graphWith(eir.ModeExactEvent, nil, 10)

	plan, err := planner.Negotiate(g, d)
	require.NoError(t, err)
	require.Equal(t, []eir.Op{eir.OpExpSyn}, plan.Capability.UnsupportedOps)
	require.True(t, plan.Partitions[0].Emulated)
}

func TestNegotiate_SubstitutesMismatchedOverflowPolicy(t *testing.T) {
	t.Parallel()
	d := baseDevice()
	g := graphWith(eir.ModeExactEvent, nil, 10)
	g.Nodes[0].Params = map[string]interface{}{"overflow_policy": "block"}

	plan, err := planner.Negotiate(g, d)
	require.NoError(t, err)
	require.True(t, plan.Capability.OverflowSubstituted)
	require.Equal(t, planner.OverflowDropTail, plan.Capability.OverflowPolicy)
	require.NotEmpty(t, plan.Warnings)
}

func TestNegotiate_EmitsSinglePartitionPlan(t *testing.T) {
	t.Parallel()
	d := baseDevice()
	g := graphWith(eir.ModeExactEvent, nil, 10)

	plan, err := planner.Negotiate(g, d)
	require.NoError(t, err)
	require.Len(t, plan.Partitions, 1)
	require.Equal(t, []string{"syn"}, plan.Partitions[0].NodeIDs)
	require.Equal(t, eir.ModeExactEvent, plan.Schedule.Policy)
	require.NotEmpty(t, plan.Report.Steps)
}
