// Package event implements the external Event Tensor format of spec §3/§6:
// a JSONL stream whose first line is a header object and whose subsequent
// lines are event records, read lazily and written without trailing
// whitespace. Readers ignore blank lines; writers never emit them.
//
// Reader is a pull-based iterator (owned state plus Next() (Record, bool,
// error)) per spec §9's "generator/iterator pipelines" redesign note,
// generalizing the teacher's visitor-callback traversal style (algorithms/bfs.go,
// algorithms/dfs.go) into an externally-driven pull model suitable for
// composing with package ops's operator iterators.
package event
