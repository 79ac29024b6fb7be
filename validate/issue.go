package validate

import (
	"fmt"

	"github.com/evflow/eventflow/logsink"
)

// Severity distinguishes a hard failure from an advisory warning, per spec
// §4.2's "warn on mismatch, fail on incompatible major" schema-version rule.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Issue is one structural or semantic validation finding: a JSON-pointer-like
// Path and a human-readable Message, per spec §4.2.
type Issue struct {
	Path     string
	Message  string
	Severity Severity
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Severity, i.Path, i.Message)
}

// Issues is a convenience slice type with helpers for the common "did this
// fail" query — presence of any SeverityError issue.
type Issues []Issue

// HasErrors reports whether any issue in is is a hard failure.
func (is Issues) HasErrors() bool {
	for _, i := range is {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// logErrors emits the error-level log spec §5 requires for validator
// errors, one line per hard failure, tagged with its path as a stand-in for
// a machine-readable code (an Issue carries no separate code field — its
// Path already pins the exact location a caller would key a log query on).
func logErrors(source string, issues Issues) {
	for _, i := range issues {
		if i.Severity != SeverityError {
			continue
		}
		logsink.L().Error().Str("component", source).Str("path", i.Path).Msg(i.Message)
	}
}

func errIssue(path, format string, args ...interface{}) Issue {
	return Issue{Path: path, Message: fmt.Sprintf(format, args...), Severity: SeverityError}
}

func warnIssue(path, format string, args ...interface{}) Issue {
	return Issue{Path: path, Message: fmt.Sprintf(format, args...), Severity: SeverityWarning}
}
