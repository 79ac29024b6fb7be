package ops

import (
	"fmt"

	"github.com/evflow/eventflow/eir"
	"github.com/evflow/eventflow/ferr"
)

func errMissingParam(node eir.Node, key string) error {
	return ferr.New(ferr.KindConfig, "ops.missing_param", node.ID, fmt.Errorf("op %q: missing required param %q", node.Op, key))
}

func errBadParam(node eir.Node, key, reason string) error {
	return ferr.New(ferr.KindConfig, "ops.bad_param", node.ID, fmt.Errorf("op %q: param %q: %s", node.Op, key, reason))
}

func errUnknownOp(node eir.Node) error {
	return ferr.New(ferr.KindConfig, "ops.unknown_op", node.ID, fmt.Errorf("unrecognized op %q", node.Op))
}
