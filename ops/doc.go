// Package ops implements the fixed operator library of spec §4.3: LIF
// neuron, exponential synapse, delay line, coincidence fuse, STFT, mel
// filterbank, XY-to-channel, and spatial shift. Every operator is a
// pull-based Iterator — owned state plus Next() (Event, bool, error) — over
// one or more upstream Iterators, per spec §9's "generator/iterator
// pipelines" redesign note. This mirrors the teacher's visitor style
// (algorithms/bfs.go's OnVisit/OnEnqueue hooks) turned inside-out into a
// caller-driven pull model, and XYToChannel/ShiftXY specifically generalize
// gridgraph.GridGraph's InBounds/clamping helpers (gridgraph/gridgraph.go)
// from a static grid to a streamed channel index.
package ops
