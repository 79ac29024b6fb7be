package timeunit

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/evflow/eventflow/ferr"
)

// Unit is one of the four time units EIR and DCD documents may express
// timing quantities in.
type Unit int

const (
	NS Unit = iota
	US
	MS
	S
)

// String renders the canonical spelling used in serialized documents.
func (u Unit) String() string {
	switch u {
	case NS:
		return "ns"
	case US:
		return "us"
	case MS:
		return "ms"
	case S:
		return "s"
	default:
		return "?"
	}
}

// nsPerUnit is the exact integer number of nanoseconds in one unit.
var nsPerUnit = map[Unit]int64{NS: 1, US: 1_000, MS: 1_000_000, S: 1_000_000_000}

// ErrBadTimeLiteral is the sentinel returned for any literal that does not
// parse as "<number> <unit>" with unit in {ns, us, µs, ms, s}.
var ErrBadTimeLiteral = errors.New("timeunit: malformed time literal")

// ParseUnit maps a case-insensitive unit spelling (including the "µs" rune
// form) to a Unit, returning ErrBadTimeLiteral if unrecognized.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ns":
		return NS, nil
	case "us", "µs":
		return US, nil
	case "ms":
		return MS, nil
	case "s":
		return S, nil
	default:
		return 0, fmt.Errorf("%w: unknown unit %q", ErrBadTimeLiteral, s)
	}
}

// ParseNanos parses a literal of the form "<number> <unit>" (whitespace
// between the number and unit is optional) and returns the exact number of
// nanoseconds it denotes, rounding any fractional nanosecond half-to-even.
//
// Examples: "10ms" -> 10_000_000; "1.5 us" -> 1500; "200 ns" -> 200.
func ParseNanos(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, ferr.New(ferr.KindConfig, "timeunit.bad_literal", "", fmt.Errorf("%w: empty literal", ErrBadTimeLiteral))
	}

	// Find the boundary between the numeric prefix and the unit suffix: scan
	// from the end for the longest trailing run of unit-ish runes (letters
	// plus U+00B5 MICRO SIGN, spelled "µs").
	runes := []rune(trimmed)
	i := len(runes)
	for i > 0 {
		r := runes[i-1]
		if unicode.IsLetter(r) || r == 'µ' {
			i--
			continue
		}
		break
	}
	numPart := strings.TrimSpace(string(runes[:i]))
	unitPart := strings.TrimSpace(string(runes[i:]))

	if numPart == "" || unitPart == "" {
		return 0, ferr.New(ferr.KindConfig, "timeunit.bad_literal", "", fmt.Errorf("%w: %q", ErrBadTimeLiteral, s))
	}

	unit, err := ParseUnit(unitPart)
	if err != nil {
		return 0, ferr.New(ferr.KindConfig, "timeunit.bad_literal", "", err)
	}

	num, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, ferr.New(ferr.KindConfig, "timeunit.bad_literal", "", fmt.Errorf("%w: bad number %q", ErrBadTimeLiteral, numPart))
	}

	exact := num * float64(nsPerUnit[unit])
	return roundHalfEven(exact), nil
}

// Convert changes n (expressed in the `from` unit) into the `to` unit.
// Conversion to a coarser unit rounds half-to-even.
func Convert(n int64, from, to Unit) int64 {
	if from == to {
		return n
	}
	ns := n * nsPerUnit[from]
	toFactor := nsPerUnit[to]
	if toFactor == 1 {
		return ns
	}
	return roundHalfEven(float64(ns) / float64(toFactor))
}

// roundHalfEven rounds x to the nearest integer, resolving exact ties (x.5)
// to the nearest even integer, per the IEEE-754 "round to nearest, ties to
// even" convention spec §4.1 requires for nanosecond quantization.
func roundHalfEven(x float64) int64 {
	floor := math.Floor(x)
	diff := x - floor
	fi := int64(floor)
	switch {
	case diff < 0.5:
		return fi
	case diff > 0.5:
		return fi + 1
	default: // exact tie
		if fi%2 == 0 {
			return fi
		}
		return fi + 1
	}
}
