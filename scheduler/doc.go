// Package scheduler implements the two deterministic schedulers of spec
// §4.4 over an EIR graph: event mode, which visits nodes in topological
// order and invokes each operator exactly once to materialize its full
// output, and fixed-step mode, a thin preprocessing stage that buckets
// external input streams into dt-wide intervals before handing them to the
// same event-mode evaluator. Node state is owned exclusively by the
// iterator built for that node (package ops); nothing is shared across node
// boundaries except the materialized event slices the scheduler threads
// between them, mirroring the ownership discipline of the teacher's
// algorithms package (each traversal owns its own visited/parent maps
// rather than mutating the graph it walks).
package scheduler
