package eir

import (
	"fmt"

	"github.com/evflow/eventflow/timeunit"
)

// Profile names a conformance profile an EIR graph targets (spec §3).
type Profile string

const (
	ProfileBase     Profile = "BASE"
	ProfileRealtime Profile = "REALTIME"
	ProfileLearning Profile = "LEARNING"
	ProfileLowPower Profile = "LOWPOWER"
)

// Valid reports whether p is one of the four recognized profiles.
func (p Profile) Valid() bool {
	switch p {
	case ProfileBase, ProfileRealtime, ProfileLearning, ProfileLowPower:
		return true
	default:
		return false
	}
}

// Mode selects between the two deterministic schedulers of spec §4.4.
type Mode string

const (
	ModeExactEvent Mode = "exact_event"
	ModeFixedStep  Mode = "fixed_step"
)

// Valid reports whether m is a recognized scheduling mode.
func (m Mode) Valid() bool {
	return m == ModeExactEvent || m == ModeFixedStep
}

// NodeKind classifies a Node per spec §3's node kind enumeration.
type NodeKind string

const (
	KindSpikingNeuron NodeKind = "spiking_neuron"
	KindSynapse       NodeKind = "synapse"
	KindDelayLine     NodeKind = "delay_line"
	KindKernel        NodeKind = "kernel"
	KindGroup         NodeKind = "group"
	KindRoute         NodeKind = "route"
	KindProbeNode     NodeKind = "probe"
	KindCustom        NodeKind = "custom"
)

// Valid reports whether k is one of the eight recognized node kinds.
func (k NodeKind) Valid() bool {
	switch k {
	case KindSpikingNeuron, KindSynapse, KindDelayLine, KindKernel, KindGroup, KindRoute, KindProbeNode, KindCustom:
		return true
	default:
		return false
	}
}

// RequiresOp reports whether nodes of this kind must name an operator via
// their Op field (spec §4.2's "kind-specific required op" rule).
func (k NodeKind) RequiresOp() bool {
	switch k {
	case KindSpikingNeuron, KindSynapse, KindDelayLine, KindKernel:
		return true
	default:
		return false
	}
}

// Op names one of the eight fixed operators of spec §4.3.
type Op string

const (
	OpLIF      Op = "lif"
	OpExpSyn   Op = "exp_syn"
	OpDelay    Op = "delay"
	OpFuse     Op = "fuse"
	OpSTFT     Op = "stft"
	OpMel      Op = "mel"
	OpXYToCh   Op = "xy_to_ch"
	OpShiftXY  Op = "shift_xy"
	OpUnknown  Op = ""
)

// Valid reports whether op is one of the eight fixed operators.
func (op Op) Valid() bool {
	switch op {
	case OpLIF, OpExpSyn, OpDelay, OpFuse, OpSTFT, OpMel, OpXYToCh, OpShiftXY:
		return true
	default:
		return false
	}
}

// TimeConfig is the `time` block of an EIR document (spec §3).
type TimeConfig struct {
	Unit             timeunit.Unit `json:"-"`
	UnitName         string        `json:"unit"`
	Mode             Mode          `json:"mode"`
	FixedStepDtUs    *int64        `json:"fixed_step_dt_us,omitempty"`
	EpsilonTimeUs    int64         `json:"epsilon_time_us"`
	EpsilonNumeric   float64       `json:"epsilon_numeric"`
}

// resolveUnit fills Unit from UnitName; called by Load after JSON decoding.
func (tc *TimeConfig) resolveUnit() error {
	u, err := timeunit.ParseUnit(tc.UnitName)
	if err != nil {
		return fmt.Errorf("eir: time.unit: %w", err)
	}
	tc.Unit = u
	return nil
}
