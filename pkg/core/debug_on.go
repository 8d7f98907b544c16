//go:build raydebug

package core

// debugChecks enables the unit-length and on-surface assertions.
// Build or test with -tags raydebug to turn them on.
const debugChecks = true
