package planner

import (
	"fmt"

	"github.com/evflow/eventflow/eir"
	"github.com/evflow/eventflow/ferr"
)

// errUnsupportedProfile reports a graph whose profile the device does not
// declare in its conformance_profiles (spec §4.5 step 1).
func errUnsupportedProfile(profile eir.Profile) error {
	return ferr.New(ferr.KindPlanner, "planner.unsupported_profile", "$.profile",
		fmt.Errorf("profile %q is not in the device's conformance_profiles", profile))
}

// errTimeQuantizationViolation reports that the device's clock cannot
// represent the graph's requested timing within its epsilon budget (spec
// §4.5 step 2).
func errTimeQuantizationViolation(detail string) error {
	return ferr.New(ferr.KindPlanner, "backend.time_quantization_violation", "$.time", fmt.Errorf("%s", detail))
}
