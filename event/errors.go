package event

import "errors"

// Sentinel errors for Event Tensor I/O. Wrapped in ferr.KindIO by callers
// that need the shared taxonomy; kept as local sentinels here per the
// teacher's per-package convention (core/types.go, builder/errors.go).
var (
	ErrEmptyStream    = errors.New("event: empty stream, expected a header line")
	ErrMissingHeader  = errors.New("event: first line must be {\"header\": {...}}")
	ErrIdxArity       = errors.New("event: record idx length does not match header dims")
	ErrNonMonotonic   = errors.New("event: record ts is less than the previous record's ts")
	ErrAlreadyClosed  = errors.New("event: reader already exhausted")
)
