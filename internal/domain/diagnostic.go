package domain

// Represents a single advisory finding from route validation.
// Diagnostics are purely informational: the validator collects them into a
// list and never returns an error, so one validation pass reports every
// problem it can find instead of stopping at the first.
type Diagnostic struct {
	Message  string // human-readable description of the problem
	Position int    // 1-based token index; 0 when the whole input is at fault
	Input    string // offending token; empty when not tied to a single token
}
