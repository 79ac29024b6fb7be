package ops

import "github.com/evflow/eventflow/eir"

// ShiftXY implements the spatial shift (spec §4.3, op "shift_xy"): the
// input channel c is decomposed as (x,y) = (c mod width, c div width),
// shifted by the integer offset (dx, dy), clamped to [0,width)x[0,height),
// and re-emitted at the resulting channel — unlike XYToChannel, ShiftXY
// never drops an event; it clamps to the nearest in-bounds cell instead.
type ShiftXY struct {
	in            Iterator
	dx, dy        int64
	width, height int
}

// NewShiftXY builds a ShiftXY operator from node's params (dx, dy, width,
// height).
func NewShiftXY(node eir.Node, in Iterator) (*ShiftXY, error) {
	dx, err := reqIntParam(node, "dx")
	if err != nil {
		return nil, err
	}
	dy, err := reqIntParam(node, "dy")
	if err != nil {
		return nil, err
	}
	width, err := reqIntParam(node, "width")
	if err != nil {
		return nil, err
	}
	height, err := reqIntParam(node, "height")
	if err != nil {
		return nil, err
	}
	return &ShiftXY{in: in, dx: dx, dy: dy, width: int(width), height: int(height)}, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Next implements Iterator.
func (s *ShiftXY) Next() (Event, bool, error) {
	e, ok, err := s.in.Next()
	if err != nil {
		return Event{}, false, err
	}
	if !ok {
		return Event{}, false, nil
	}

	x := int(e.C) % s.width
	y := int(e.C) / s.width
	nx := clampInt(x+int(s.dx), 0, s.width-1)
	ny := clampInt(y+int(s.dy), 0, s.height-1)

	return Event{T: e.T, C: int64(ny*s.width + nx), V: e.V, Meta: e.Meta}, true, nil
}
