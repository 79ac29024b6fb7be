// Package planner implements the capability negotiation of spec §4.5: given
// an EIR graph and a device capability descriptor (DCD), it decides whether
// the graph can run on that device at all and, if so, how — which nodes must
// be emulated, what the fixed-step grid actually is, and which overflow
// policy wins. The planner never runs the graph; it only shapes it.
//
// The negotiation is a fixed five-step pipeline (profile check, time
// quantization, operator support, overflow policy, plan emission), mirrored
// here as four ordinary step functions called in sequence by Negotiate,
// followed by Negotiate's own plan-emission tail, rather than as a registry
// of pluggable steps — the steps are not independently
// reorderable or substitutable per spec §4.5, so a chain of named functions
// is the more honest shape, the same way validate.EIR chains
// structuralEIR/semanticEIR instead of building a rule registry.
package planner
