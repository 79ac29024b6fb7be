// Package ferr defines the cross-cutting error taxonomy shared by every
// EventFlow component: a small Kind enum plus an Error type that carries a
// stable, machine-readable Code alongside a path hint and the wrapped cause.
//
// Individual packages still expose their own sentinel errors (following the
// convention in core/types.go and builder/errors.go of the graph library this
// module's execution engine is descended from) for errors.Is checks local to
// that package. ferr.Error is the shape those sentinels get wrapped in before
// crossing a package boundary that a caller (the runtime façade, the CLI
// collaborator described in spec §6) needs to branch on.
package ferr
