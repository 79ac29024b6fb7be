package planner

import "github.com/evflow/eventflow/eir"

// DeviceDescriptor is the device capability descriptor (DCD) of spec §4.5
// / §6: the fixed set of facts a backend declares about itself before a
// graph is negotiated onto it.
type DeviceDescriptor struct {
	Name    string
	Vendor  string
	Family  string
	Version string

	TimeResolutionNs    int64
	DeterministicModes  map[eir.Mode]bool
	SupportedOps        map[eir.Op]bool
	ConformanceProfiles map[eir.Profile]bool

	Clock            Clock
	Limits           Limits
	OverflowBehavior OverflowPolicy
}

// Clock carries the optional clock-quality fields of a DCD.
type Clock struct {
	DriftPpm                 float64
	SyncMethod               string
	DeterministicFixedStepOnly bool
}

// Limits bounds the graph sizes and wiring a device is willing to accept.
// Zero means "no limit" for that field.
type Limits struct {
	MaxNeurons  int
	MaxSynapses int
	MaxFanout   int
	MinDelayUs  int64
	MaxDelayUs  int64
}

// OverflowPolicy names how a device handles a numeric/queue overflow during
// execution (spec §4.5 step 4, §6).
type OverflowPolicy string

const (
	OverflowDropHead OverflowPolicy = "drop_head"
	OverflowDropTail OverflowPolicy = "drop_tail"
	OverflowBlock    OverflowPolicy = "block"
)

// Valid reports whether p is one of the three recognized overflow policies.
func (p OverflowPolicy) Valid() bool {
	switch p {
	case OverflowDropHead, OverflowDropTail, OverflowBlock:
		return true
	default:
		return false
	}
}

// SupportsOp reports whether d declares support for op.
func (d *DeviceDescriptor) SupportsOp(op eir.Op) bool {
	return d.SupportedOps != nil && d.SupportedOps[op]
}

// SupportsMode reports whether d declares support for the scheduling mode m.
func (d *DeviceDescriptor) SupportsMode(m eir.Mode) bool {
	return d.DeterministicModes != nil && d.DeterministicModes[m]
}

// SupportsProfile reports whether d accepts graphs of profile p.
func (d *DeviceDescriptor) SupportsProfile(p eir.Profile) bool {
	return d.ConformanceProfiles != nil && d.ConformanceProfiles[p]
}
