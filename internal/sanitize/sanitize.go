// Package sanitize post-processes model output that is shown as prose.
package sanitize

import (
	"regexp"
	"strings"
)

// fencedBlock matches a triple-backtick fenced region, shortest first, across
// line breaks.
var fencedBlock = regexp.MustCompile("(?s)```.*?```")

// Clean removes every fenced code region from raw and trims surrounding
// whitespace. Text with no complete fence pair is returned trimmed but
// otherwise unchanged. Nested fences are not handled and may be over-stripped.
func Clean(raw string) string {
	return strings.TrimSpace(fencedBlock.ReplaceAllString(raw, ""))
}

// HasCode reports whether raw contains at least one complete fenced region.
func HasCode(raw string) bool {
	return fencedBlock.MatchString(raw)
}
