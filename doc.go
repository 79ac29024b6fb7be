// Package eventflow is a deterministic event-driven signal-processing
// toolchain: load an Event-IR graph of typed operator nodes (spiking
// neurons, synapses, delay lines, DSP/vision kernels), negotiate it against
// a device capability descriptor, run it through one of two deterministic
// schedulers (exact-event or fixed-step), and compare its output trace
// against a golden reference.
//
// The packages line up with the stages of that pipeline:
//
//	eir/       — the graph document: nodes, edges, probes, load/save
//	validate/  — structural and semantic checks on an EIR graph or a trace
//	ops/       — the eight fixed operators (lif, exp_syn, delay, fuse, stft,
//	             mel, xy_to_ch, shift_xy) as pull-based Iterators
//	scheduler/ — topological build + exact-event/fixed-step evaluation
//	planner/   — capability negotiation against a device descriptor
//	kernel/    — array-based accelerated twins of the hot-path operators
//	event/     — the Event Tensor JSONL wire format (reader/writer)
//	compare/   — trace-vs-trace equivalence checking
//	runtime/   — the end-to-end façade tying the above together
//	timeunit/  — the shared ns/us/ms/s conversion and literal parser
//	ferr/      — the cross-cutting error taxonomy
//	logsink/   — the process-wide structured logging sink
//
// Everything is driven through runtime.Run; the subpackages are usable
// standalone for callers that only need one stage (e.g. validate a trace
// without running it, or compare two traces someone else produced).
package eventflow
