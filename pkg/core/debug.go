package core

// DebugChecks reports whether precondition assertions are compiled in
func DebugChecks() bool {
	return debugChecks
}
