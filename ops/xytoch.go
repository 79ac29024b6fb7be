package ops

import "github.com/evflow/eventflow/eir"

// XYToChannel implements the spatial-to-channel projection (spec §4.3, op
// "xy_to_ch"): given integer x,y read out of an event's metadata, emit
// (t, y*width+x, v, meta ∪ {w,h}) if the coordinate is in bounds, otherwise
// drop the event. This generalizes the bounds reasoning of
// gridgraph.GridGraph.InBounds (gridgraph/gridgraph.go) from a static grid
// to a streamed coordinate.
type XYToChannel struct {
	in            Iterator
	width, height int
}

// NewXYToChannel builds an XYToChannel operator from node's params (width,
// height).
func NewXYToChannel(node eir.Node, in Iterator) (*XYToChannel, error) {
	width, err := reqIntParam(node, "width")
	if err != nil {
		return nil, err
	}
	height, err := reqIntParam(node, "height")
	if err != nil {
		return nil, err
	}
	return &XYToChannel{in: in, width: int(width), height: int(height)}, nil
}

func (x *XYToChannel) inBounds(px, py int) bool {
	return px >= 0 && px < x.width && py >= 0 && py < x.height
}

// Next implements Iterator.
func (x *XYToChannel) Next() (Event, bool, error) {
	for {
		e, ok, err := x.in.Next()
		if err != nil {
			return Event{}, false, err
		}
		if !ok {
			return Event{}, false, nil
		}

		xf, yf, ok := extractXY(e.Meta)
		if !ok {
			continue
		}
		px, py := int(xf), int(yf)
		if !x.inBounds(px, py) {
			continue
		}

		meta := make(map[string]interface{}, len(e.Meta)+2)
		for k, v := range e.Meta {
			meta[k] = v
		}
		meta["w"] = int64(x.width)
		meta["h"] = int64(x.height)

		c := int64(py*x.width + px)
		return Event{T: e.T, C: c, V: e.V, Meta: meta}, true, nil
	}
}
