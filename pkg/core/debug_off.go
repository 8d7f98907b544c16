//go:build !raydebug

package core

const debugChecks = false
