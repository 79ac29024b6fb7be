package runtime

import (
	"context"

	"github.com/evflow/eventflow/eir"
	"github.com/evflow/eventflow/event"
	"github.com/evflow/eventflow/logsink"
	"github.com/evflow/eventflow/planner"
	"github.com/evflow/eventflow/scheduler"
	"github.com/evflow/eventflow/validate"
)

// Options configures one Run beyond the graph, device descriptor, and bound
// inputs every call needs. The zero value runs the default backend.
type Options struct {
	// Backend names an entry in the static registry (see backend.go). Empty
	// selects DefaultBackend.
	Backend string
}

// Run carries an EIR graph through spec §4's full data flow: validate,
// negotiate a plan against the device descriptor d, build and run a
// scheduler program over the bound input traces, and report the result.
// inputs maps a source node id (one with no incoming edge) to the trace
// bound to it; every source node the graph's topology requires must have an
// entry or Run fails once the scheduler reaches it.
//
// Run returns the first error any stage produces: a validation failure
// (ferr.KindValidation), a planner rejection (ferr.KindPlanner), or a
// scheduler/operator failure (ferr.KindRuntime, or ferr.Cancelled if ctx is
// cancelled mid-run).
func Run(ctx context.Context, g *eir.Graph, d *planner.DeviceDescriptor, inputs map[string]*event.Reader, opts Options) (*Report, error) {
	issues := validate.EIR(g)
	if issues.HasErrors() {
		return nil, errValidationFailed(issues)
	}

	plan, err := planner.Negotiate(g, d)
	if err != nil {
		return nil, err
	}

	exec, err := resolveBackend(opts.Backend)
	if err != nil {
		return nil, err
	}

	prog, err := scheduler.Build(g)
	if err != nil {
		return nil, err
	}
	runner := scheduler.NewRunner(prog)
	for nodeID, rd := range inputs {
		events, err := drainInput(rd)
		if err != nil {
			return nil, err
		}
		runner.BindInput(nodeID, events)
	}

	if err := exec.Execute(ctx, runner); err != nil {
		return nil, err
	}

	probes := make(map[string][]event.Record, len(g.Probes))
	for _, p := range g.Probes {
		out, ok := runner.Output(p.Target)
		if !ok {
			continue
		}
		probes[p.Name] = probeToRecords(out, g.Time.Unit)
	}

	report := &Report{
		Plan:     plan,
		Probes:   probes,
		NodesRun: prog.Order,
		Warnings: plan.Warnings,
	}

	logsink.L().Info().
		Str("graph", g.Graph.Name).
		Int("nodes_run", len(report.NodesRun)).
		Int("probes", len(report.Probes)).
		Int("warnings", len(report.Warnings)).
		Msg("runtime run complete")

	return report, nil
}
