package compare

import (
	"fmt"

	"github.com/evflow/eventflow/ferr"
)

func errHeaderTimeUnitMismatch(candidate, golden string) error {
	return ferr.New(ferr.KindIO, "compare.header_time_unit_mismatch", "",
		fmt.Errorf("candidate units.time=%q golden units.time=%q", candidate, golden))
}
