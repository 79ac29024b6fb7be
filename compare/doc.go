// Package compare implements the trace comparator of spec §4.6: streaming,
// order-preserving equivalence checking between a candidate trace and a
// golden reference trace, both in the Event Tensor JSONL format package
// event reads. It never loads either trace fully into memory — records are
// compared one pair at a time as each Reader advances, mirroring package
// event's own lazy, non-restartable streaming style.
package compare
