// Package runtime is the façade spec §4's data flow diagram describes end to
// end: load an EIR graph, validate it, negotiate a plan against a device
// descriptor, build and run a scheduler program over bound input traces, and
// report the result. It is the one package most callers (the CLI
// collaborator of spec §6, conformance harnesses, tests) are expected to
// import directly; everything upstream of it (eir, validate, planner,
// scheduler, ops, kernel) can be used standalone but runtime is where they
// are wired together.
//
// Backend selection follows spec §9's "replace dynamic plugin discovery with
// a static registry" redesign flag: Run dispatches to a named entry in a
// fixed, compile-time map rather than scanning for registered implementations
// at init time, mirroring builder's data-registry dispatch style (see
// builder/impl_letters.go's canonical-registry lookup).
package runtime
