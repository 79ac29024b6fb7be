// Package validate implements the structural and semantic validation rules
// of spec §4.2 for EIR graphs and Event Tensor JSONL streams. Validation
// accumulates issues rather than failing on the first one encountered,
// mirroring builder/validators.go's accumulate-don't-panic discipline, and
// never mutates its input, mirroring gridgraph.NewGridGraph's up-front
// shape checks before any state is built.
package validate
