package planner

import (
	"fmt"

	"github.com/evflow/eventflow/eir"
	"github.com/evflow/eventflow/logsink"
)

// warn records a negotiation warning both in warnings (returned to the
// caller on the Plan) and in the process-wide log sink at warn level, per
// spec §5's "planner warnings... logged at info/warn" rule.
func warn(warnings *[]string, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	*warnings = append(*warnings, msg)
	logsink.L().Warn().Str("component", "planner").Msg(msg)
}

// Negotiate runs the five-step capability negotiation of spec §4.5 against
// g and d, returning a Plan or the first fatal error encountered. Profile
// mismatches and time-quantization violations are fatal (the graph cannot
// run on this device at all). Unsupported operators are recoverable: they
// mark the partition emulated and are listed in the capability summary,
// without a warning. An overflow-policy mismatch is recoverable too: the
// device's policy is substituted with a warning, and the partition is not
// marked emulated for it.
func Negotiate(g *eir.Graph, d *DeviceDescriptor) (*Plan, error) {
	var report NegotiationReport
	var warnings []string

	if err := stepProfile(g, d, &report); err != nil {
		return nil, err
	}

	modeEmulated, dtUs, err := stepTime(g, d, &report, &warnings)
	if err != nil {
		return nil, err
	}

	unsupportedOps, emulatedNodes := stepOperatorSupport(g, d, &report)

	overflowPolicy, substituted := stepOverflow(g, d, &report, &warnings)

	nodeIDs := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		nodeIDs[i] = n.ID
	}
	emulated := modeEmulated || len(unsupportedOps) > 0

	report.Steps = append(report.Steps, StepResult{
		Step:   "emit_plan",
		Detail: fmt.Sprintf("1 partition, %d node(s), %d emulated", len(nodeIDs), len(emulatedNodes)),
	})

	plan := &Plan{
		Partitions: []Partition{{NodeIDs: nodeIDs, Emulated: emulated}},
		Schedule: Schedule{
			Policy: g.Time.Mode,
			DtUs:   dtUs,
			// The spec names priority/affinity as schedule fields but gives no
			// derivation algorithm; a single-partition plan has nothing to
			// prioritize or place against, so both stay at their neutral
			// zero values (see DESIGN.md).
			Priority: 0,
			Affinity: "",
		},
		Capability: CapabilitySummary{
			Profile:             g.Profile,
			ModeEmulated:        modeEmulated,
			UnsupportedOps:      unsupportedOps,
			OverflowPolicy:      overflowPolicy,
			OverflowSubstituted: substituted,
		},
		Warnings: warnings,
		Report:   report,
	}
	return plan, nil
}

// stepProfile implements spec §4.5 step 1: the graph's profile must be one
// the device declares conformance for.
func stepProfile(g *eir.Graph, d *DeviceDescriptor, report *NegotiationReport) error {
	if !d.SupportsProfile(g.Profile) {
		return errUnsupportedProfile(g.Profile)
	}
	report.Steps = append(report.Steps, StepResult{Step: "profile", Detail: fmt.Sprintf("profile %q accepted", g.Profile)})
	return nil
}

// stepTime implements spec §4.5 step 2: scheduling-mode support, clock
// quirks, and fixed_step/exact_event quantization against the device's
// time_resolution_ns.
func stepTime(g *eir.Graph, d *DeviceDescriptor, report *NegotiationReport, warnings *[]string) (emulated bool, dtUs int64, err error) {
	mode := g.Time.Mode
	if !d.SupportsMode(mode) {
		emulated = true
		warn(warnings, "mode %q is not in deterministic_modes; emulating", mode)
	} else if mode == eir.ModeExactEvent && d.Clock.DeterministicFixedStepOnly {
		emulated = true
		warn(warnings, "device clock is deterministic_fixed_step_only; emulating exact_event")
	}

	resolutionUs := float64(d.TimeResolutionNs) / 1000.0
	epsilonUs := float64(g.Time.EpsilonTimeUs)

	switch mode {
	case eir.ModeFixedStep:
		if g.Time.FixedStepDtUs == nil {
			return emulated, 0, errTimeQuantizationViolation("fixed_step_dt_us missing on a fixed_step graph")
		}
		dtReq := float64(*g.Time.FixedStepDtUs)
		steps := roundHalfEven(dtReq / resolutionUs)
		dtSelF := float64(steps) * resolutionUs
		if absFloat(dtSelF-dtReq) > epsilonUs {
			return emulated, 0, errTimeQuantizationViolation(fmt.Sprintf(
				"requested dt %.3fus quantizes to %.3fus at device resolution %.3fus, exceeding epsilon %.3fus",
				dtReq, dtSelF, resolutionUs, epsilonUs))
		}
		dtUs = roundHalfEven(dtSelF)
	case eir.ModeExactEvent:
		if resolutionUs/2 > epsilonUs {
			return emulated, 0, errTimeQuantizationViolation(fmt.Sprintf(
				"device resolution %.3fus gives a worst-case quantization of %.3fus, exceeding epsilon %.3fus",
				resolutionUs, resolutionUs/2, epsilonUs))
		}
	}

	report.Steps = append(report.Steps, StepResult{
		Step:   "time",
		Detail: fmt.Sprintf("mode=%s emulated=%v dt_us=%d", mode, emulated, dtUs),
	})
	return emulated, dtUs, nil
}

// stepOperatorSupport implements spec §4.5 step 3: nodes whose op the
// device doesn't support are marked emulated; the distinct set of
// unsupported ops is returned for the capability summary.
func stepOperatorSupport(g *eir.Graph, d *DeviceDescriptor, report *NegotiationReport) (unsupportedOps []eir.Op, emulatedNodes []string) {
	seen := make(map[eir.Op]bool)
	for _, n := range g.Nodes {
		if !n.Kind.RequiresOp() {
			continue
		}
		if d.SupportsOp(n.Op) {
			continue
		}
		emulatedNodes = append(emulatedNodes, n.ID)
		if !seen[n.Op] {
			seen[n.Op] = true
			unsupportedOps = append(unsupportedOps, n.Op)
		}
	}
	report.Steps = append(report.Steps, StepResult{
		Step:   "operator_support",
		Detail: fmt.Sprintf("%d node(s) emulated, %d op(s) unsupported", len(emulatedNodes), len(unsupportedOps)),
	})
	return unsupportedOps, emulatedNodes
}

// stepOverflow implements spec §4.5 step 4: a node requesting an overflow
// policy the device doesn't match has the device's policy substituted, with
// a warning. The device's policy always wins; EventFlow has no per-node
// overflow override mechanism beyond an advisory "overflow_policy" param.
func stepOverflow(g *eir.Graph, d *DeviceDescriptor, report *NegotiationReport, warnings *[]string) (policy OverflowPolicy, substituted bool) {
	for _, n := range g.Nodes {
		raw, ok := n.Params["overflow_policy"]
		if !ok {
			continue
		}
		requested, ok := raw.(string)
		if !ok {
			continue
		}
		if OverflowPolicy(requested) != d.OverflowBehavior {
			substituted = true
			warn(warnings, "node %q requested overflow policy %q, device only supports %q; substituted",
				n.ID, requested, d.OverflowBehavior)
		}
	}
	report.Steps = append(report.Steps, StepResult{
		Step:   "overflow_policy",
		Detail: fmt.Sprintf("resolved policy=%s substituted=%v", d.OverflowBehavior, substituted),
	})
	return d.OverflowBehavior, substituted
}
