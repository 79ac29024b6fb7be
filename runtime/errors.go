package runtime

import (
	"fmt"

	"github.com/evflow/eventflow/ferr"
	"github.com/evflow/eventflow/validate"
)

func errValidationFailed(issues validate.Issues) error {
	var first string
	for _, i := range issues {
		if i.Severity == validate.SeverityError {
			first = i.String()
			break
		}
	}
	return ferr.New(ferr.KindValidation, "runtime.validation_failed", "", fmt.Errorf("%s (and %d more issue(s))", first, len(issues)-1))
}

func errUnknownBackend(name string) error {
	return ferr.New(ferr.KindConfig, "runtime.unknown_backend", name, fmt.Errorf("no backend registered under name %q", name))
}
