package logsink

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// current holds the active logger. The zero value of atomic.Pointer[T] is a
// nil pointer, so init installs a discard logger before any caller can reach
// L(), and L() never returns nil even when nothing has been attached.
var current atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.New(io.Discard)
	current.Store(&l)
}

// L returns the currently attached logger. It is safe to call concurrently
// with Attach/Detach from any goroutine.
func L() *zerolog.Logger {
	return current.Load()
}

// Attach installs w as the destination for all subsequent EventFlow log
// output, replacing whatever was previously attached. The swap is a single
// atomic store: in-flight log calls on other goroutines observe either the
// old or the new logger, never a torn pointer.
func Attach(w io.Writer, level zerolog.Level) {
	l := zerolog.New(w).Level(level).With().Timestamp().Logger()
	current.Store(&l)
}

// AttachConsole installs a human-readable console writer at the given level,
// convenient for CLI collaborators (spec §6) driving the core interactively.
func AttachConsole(level zerolog.Level) {
	Attach(zerolog.ConsoleWriter{Out: os.Stderr}, level)
}

// Detach restores the discard logger, silencing EventFlow's log output.
func Detach() {
	l := zerolog.New(io.Discard)
	current.Store(&l)
}
