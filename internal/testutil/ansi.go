// Package testutil holds helpers shared by tests of the presentation layers.
package testutil

import "regexp"

// csi matches ANSI control sequences such as "\x1b[38;5;82m".
var csi = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// StripANSI returns s without ANSI control sequences, so colored output can
// be compared with plain expectations.
func StripANSI(s string) string {
	return csi.ReplaceAllString(s, "")
}

// HasANSI reports whether s contains at least one ANSI control sequence.
func HasANSI(s string) bool {
	return csi.MatchString(s)
}
