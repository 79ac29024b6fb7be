package runtime

import (
	"context"

	"github.com/evflow/eventflow/scheduler"
)

// Executor runs a built scheduler.Program to completion, given a Runner
// already bound with input streams. Backends differ in how (or whether)
// they accelerate individual nodes; all of them must produce the same
// per-node output a bare scheduler.Runner would, since spec §4.7 requires
// kernel paths to be semantics-exact twins of the general operator path.
type Executor interface {
	Execute(ctx context.Context, runner *scheduler.Runner) error
}

// schedulerExecutor is the default backend: plain scheduler.Runner.Run, no
// acceleration. Every EIR graph this module can load is runnable on it.
type schedulerExecutor struct{}

func (schedulerExecutor) Execute(ctx context.Context, runner *scheduler.Runner) error {
	return runner.Run(ctx)
}

// DefaultBackend is the registry key Run uses when the caller does not name
// one explicitly.
const DefaultBackend = "scheduler"

// backendCtor constructs an Executor. Kept as a func type rather than an
// interface with a single method since every current and anticipated
// backend is stateless at construction time.
type backendCtor func() Executor

// backends is the static registry spec §9 calls for: a fixed, compile-time
// table from backend name to constructor, populated once at init and never
// mutated at runtime. Adding a backend means adding an entry here and
// recompiling, not registering a plugin dynamically.
var backends = map[string]backendCtor{
	DefaultBackend: func() Executor { return schedulerExecutor{} },
}

func resolveBackend(name string) (Executor, error) {
	if name == "" {
		name = DefaultBackend
	}
	ctor, ok := backends[name]
	if !ok {
		return nil, errUnknownBackend(name)
	}
	return ctor(), nil
}
