package scheduler

import (
	"fmt"

	"github.com/evflow/eventflow/eir"
	"github.com/evflow/eventflow/ferr"
)

func errUnboundInput(node eir.Node) error {
	return ferr.New(ferr.KindRuntime, "scheduler.unbound_input", node.ID, fmt.Errorf("node %q has no incoming edges and no bound external input", node.ID))
}

func errUnsupportedKind(node eir.Node) error {
	return ferr.New(ferr.KindRuntime, "scheduler.unsupported_kind", node.ID, fmt.Errorf("node kind %q has no scheduler-native evaluation", node.Kind))
}

func errFanIn(node eir.Node) error {
	return ferr.New(ferr.KindConfig, "scheduler.bad_fan_in", node.ID, fmt.Errorf("node %q of kind %q must have exactly one input, got a different count", node.ID, node.Kind))
}
