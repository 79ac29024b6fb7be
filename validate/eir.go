package validate

import (
	"strconv"
	"strings"

	"github.com/evflow/eventflow/eir"
)

// SchemaVersionMajor is the major version of the EIR schema this validator
// understands. A document whose version's major component differs fails;
// a differing minor component only warns (spec §4.2).
const SchemaVersionMajor = 1

// EIR runs the structural and semantic validation of spec §4.2 against g,
// returning the full accumulated list of issues. It never mutates g.
func EIR(g *eir.Graph) Issues {
	var issues Issues
	if g == nil {
		issues = Issues{errIssue("$", "graph is nil")}
		logErrors("eir", issues)
		return issues
	}

	issues = append(issues, structuralEIR(g)...)
	issues = append(issues, semanticEIR(g)...)
	logErrors("eir", issues)
	return issues
}

func structuralEIR(g *eir.Graph) Issues {
	var issues Issues

	if g.Graph.Name == "" {
		issues = append(issues, errIssue("$.graph.name", "must not be empty"))
	}
	if !g.Profile.Valid() {
		issues = append(issues, errIssue("$.profile", "unrecognized profile %q", g.Profile))
	}
	if !g.Time.Mode.Valid() {
		issues = append(issues, errIssue("$.time.mode", "unrecognized mode %q", g.Time.Mode))
	}
	if g.Time.Mode == eir.ModeFixedStep {
		if g.Time.FixedStepDtUs == nil || *g.Time.FixedStepDtUs <= 0 {
			issues = append(issues, errIssue("$.time.fixed_step_dt_us", "required and must be positive when mode=fixed_step"))
		}
	}
	if g.Time.EpsilonTimeUs < 0 {
		issues = append(issues, errIssue("$.time.epsilon_time_us", "must be >= 0"))
	}
	if g.Time.EpsilonNumeric < 0 {
		issues = append(issues, errIssue("$.time.epsilon_numeric", "must be >= 0"))
	}
	if len(g.Nodes) == 0 {
		issues = append(issues, errIssue("$.nodes", "must not be empty"))
	}

	issues = append(issues, schemaVersionIssue(g.Version)...)

	return issues
}

func schemaVersionIssue(version string) Issues {
	var issues Issues
	parts := strings.SplitN(version, ".", 2)
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		issues = append(issues, errIssue("$.version", "malformed version %q", version))
		return issues
	}
	if major != SchemaVersionMajor {
		issues = append(issues, errIssue("$.version", "incompatible schema major version %d (validator supports %d)", major, SchemaVersionMajor))
	} else if len(parts) == 2 && parts[1] != "0" {
		issues = append(issues, warnIssue("$.version", "schema minor version %q differs from validator baseline", parts[1]))
	}
	return issues
}

func semanticEIR(g *eir.Graph) Issues {
	var issues Issues

	seen := make(map[string]bool, len(g.Nodes))
	ids := make(map[string]eir.Node, len(g.Nodes))
	for i, n := range g.Nodes {
		path := nodePath(i)
		if n.ID == "" {
			issues = append(issues, errIssue(path+".id", "must not be empty"))
			continue
		}
		if seen[n.ID] {
			issues = append(issues, errIssue(path+".id", "duplicate node id %q", n.ID))
			continue
		}
		seen[n.ID] = true
		ids[n.ID] = n

		if !n.Kind.Valid() {
			issues = append(issues, errIssue(path+".kind", "unrecognized kind %q", n.Kind))
			continue
		}
		if n.Kind.RequiresOp() && !n.Op.Valid() {
			issues = append(issues, errIssue(path+".op", "kind %q requires a recognized op", n.Kind))
			continue
		}
		if n.Kind.RequiresOp() {
			issues = append(issues, paramIssues(path, n)...)
		}
	}

	for i, e := range g.Edges {
		path := edgePath(i)
		if _, ok := ids[e.Src]; !ok {
			issues = append(issues, errIssue(path+".src", "references unknown node id %q", e.Src))
		}
		if _, ok := ids[e.Dst]; !ok {
			issues = append(issues, errIssue(path+".dst", "references unknown node id %q", e.Dst))
		}
		if e.DelayUs < 0 {
			issues = append(issues, errIssue(path+".delay_us", "must be >= 0"))
		}
	}

	for i, p := range g.Probes {
		path := probePath(i)
		if _, ok := ids[p.Target]; !ok {
			issues = append(issues, errIssue(path+".target", "references unknown node id %q", p.Target))
		}
	}

	if _, _, err := eir.TopoOrder(g); err != nil {
		issues = append(issues, errIssue("$.edges", "%v", err))
	}

	return issues
}

func nodePath(i int) string  { return sprintfPath("nodes", i) }
func edgePath(i int) string  { return sprintfPath("edges", i) }
func probePath(i int) string { return sprintfPath("probes", i) }

func sprintfPath(field string, i int) string {
	return "$." + field + "[" + strconv.Itoa(i) + "]"
}
