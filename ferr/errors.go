package ferr

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the taxonomy buckets of spec §7.
type Kind int

const (
	// KindConfig covers bad literals, schema mismatches, and required fields
	// missing from a loaded document.
	KindConfig Kind = iota + 1
	// KindValidation covers structural/semantic EIR/ET/DCD/PKG issues.
	KindValidation
	// KindPlanner covers capability-negotiation failures.
	KindPlanner
	// KindRuntime covers operator invariant violations and non-finite values.
	KindRuntime
	// KindKernel covers acceleration-kernel domain errors.
	KindKernel
	// KindIO covers missing files, parse errors, and truncated JSONL.
	KindIO
	// KindCancelled covers cooperative cancellation between scheduler nodes.
	KindCancelled
)

// String renders the Kind using the taxonomy's documented names.
func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "ConfigError"
	case KindValidation:
		return "ValidationError"
	case KindPlanner:
		return "PlannerError"
	case KindRuntime:
		return "RuntimeError"
	case KindKernel:
		return "KernelError"
	case KindIO:
		return "IoError"
	case KindCancelled:
		return "Cancelled"
	default:
		return "UnknownError"
	}
}

// Error is the shared envelope every EventFlow component wraps its sentinel
// errors in before returning them to a caller outside the originating
// package. Code is a stable, machine-readable identifier in the style of
// "backend.time_quantization_violation" (spec §7); Path is a best-effort
// location hint (a node id, a JSONL line number, a JSON pointer).
type Error struct {
	Kind Kind
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s[%s] at %s: %v", e.Kind, e.Code, e.Path, e.Err)
	}
	return fmt.Sprintf("%s[%s]: %v", e.Kind, e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ferr.KindX) read naturally is not supported directly
// since Kind isn't an error; callers compare via errors.As and inspect Kind,
// or use Is(err, kind) below.

// New builds an *Error wrapping cause with the given kind, code, and path.
func New(kind Kind, code, path string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Path: path, Err: cause}
}

// Is reports whether err is (or wraps) a *ferr.Error of the given Kind.
func Is(err error, kind Kind) bool {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}
	return false
}

// Cancelled is the sentinel returned by a scheduler that observed a
// cancellation token fire between node evaluations (spec §5).
var Cancelled = New(KindCancelled, "scheduler.cancelled", "", errors.New("run cancelled"))
