// Package kernel provides the performance-critical acceleration kernels of
// spec §4.7: array-in, array-out functions whose output must be
// byte-identical to running the equivalent operator pipeline through
// package scheduler, just computed directly over flat slices instead of
// through the pull-based Iterator machinery of package ops.
//
// Each kernel carries its own domain error sentinel (BucketError,
// FuseError, VisionError), wrapped in ferr.KindKernel at the package
// boundary per spec §4.8's "kernel domain errors... raised immediately; no
// partial output is committed" rule.
package kernel
