// Package testutil holds helpers shared by the tests of several packages.
package testutil

import "regexp"

// ansiRegex matches CSI escape sequences such as the color codes emitted by
// the ui themes.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripAnsiCodes removes ANSI escape codes so that tests can assert on the
// plain text of colored output.
func StripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
