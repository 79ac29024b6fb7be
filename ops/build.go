package ops

import "github.com/evflow/eventflow/eir"

// Build constructs the operator named by node.Op wired to ins, dispatching
// on the eight fixed operator kinds of spec §4.3. Every operator takes
// exactly one input except fuse, which takes exactly two (a, then b — tie
// order per spec §4.3). Build assumes node has already passed package
// validate's structural and parameter checks — it returns a config error
// rather than panicking if that assumption is violated, since the scheduler
// that calls it may be driving a hand-built graph in tests.
func Build(node eir.Node, ins ...Iterator) (Iterator, error) {
	if node.Op == eir.OpFuse {
		if len(ins) != 2 {
			return nil, errBadParam(node, "inputs", "fuse requires exactly two inputs")
		}
	} else if len(ins) != 1 {
		return nil, errBadParam(node, "inputs", "expected exactly one input")
	}
	switch node.Op {
	case eir.OpLIF:
		return NewLIF(node, ins[0])
	case eir.OpExpSyn:
		return NewExpSyn(node, ins[0])
	case eir.OpDelay:
		return NewDelay(node, ins[0])
	case eir.OpFuse:
		return NewFuse(node, ins[0], ins[1])
	case eir.OpSTFT:
		return NewSTFT(node, ins[0])
	case eir.OpMel:
		return NewMel(node, ins[0])
	case eir.OpXYToCh:
		return NewXYToChannel(node, ins[0])
	case eir.OpShiftXY:
		return NewShiftXY(node, ins[0])
	default:
		return nil, errUnknownOp(node)
	}
}
