package planner

import "github.com/evflow/eventflow/eir"

// Plan is the output of a successful negotiation (spec §4.5 step 5): how the
// graph is partitioned, the schedule it will run under, a summary of what
// the device can and can't do natively, and the accumulated warnings/report
// that led there.
type Plan struct {
	Partitions []Partition
	Schedule   Schedule
	Capability CapabilitySummary
	Warnings   []string
	Report     NegotiationReport
}

// Partition groups node ids that will execute together under one schedule.
// This planner always emits exactly one partition (spec gives no multi-device
// split algorithm — see DESIGN.md); Emulated is true if any node in it falls
// back to software emulation rather than running on native device support.
type Partition struct {
	NodeIDs  []string
	Emulated bool
}

// Schedule is the execution policy the plan selects for its partition(s).
type Schedule struct {
	Policy   eir.Mode // exact_event or fixed_step, possibly emulated
	DtUs     int64    // resolved fixed_step grid, 0 in exact_event mode
	Priority int
	Affinity string
}

// CapabilitySummary records what the negotiation found about the device
// relative to the graph it was asked to run.
type CapabilitySummary struct {
	Profile            eir.Profile
	ModeEmulated       bool
	UnsupportedOps     []eir.Op
	OverflowPolicy     OverflowPolicy
	OverflowSubstituted bool
}

// NegotiationReport is the step-by-step trace of the five-step algorithm,
// useful for diagnosing why a plan looks the way it does.
type NegotiationReport struct {
	Steps []StepResult
}

// StepResult records the outcome of one negotiation step.
type StepResult struct {
	Step   string
	Detail string
}
