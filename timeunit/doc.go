// Package timeunit parses the human time literals used throughout EIR and
// DCD documents ("10 ms", "1.5us", "200ns") and converts between the four
// units EventFlow recognizes: ns, µs, ms, s.
//
// The grammar is small enough, and specific enough (case-insensitive unit
// spelling, optional embedded whitespace, µs spelled "us", half-to-even
// rounding into integer nanoseconds) that no literal-parsing dependency
// anywhere in the retrieved pack matches it; this package is hand-rolled on
// strconv/strings rather than adapted from a third-party library. See
// DESIGN.md for the standing justification.
package timeunit
