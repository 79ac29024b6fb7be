// Package eir implements the Event Intermediate Representation: the graph
// data model described in spec §3 — a versioned, profiled, timed directed
// graph of nodes (neurons, synapses, delay lines, kernels, groups, routes,
// probes) connected by edges, plus the timing/security configuration that
// governs how the graph is scheduled.
//
// eir is a pure data model: it has no notion of execution. Validation lives
// in package validate; turning a Graph into something runnable lives in
// package scheduler. This separation mirrors the teacher library's split
// between core (data) and algorithms (behavior) — see core/types.go's
// package doc for the analogous split this module generalizes.
package eir
