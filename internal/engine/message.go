package engine

import (
	"regexp"
	"strings"
)

var stepPrefix = regexp.MustCompile(`^step \d+: `)

// CleanMessage strips the redundant "step N: <description>" prefix from a
// result message for contexts that already show the step and operation in
// separate columns. Nested prefixes from wrapped failures collapse to the
// innermost reason.
func CleanMessage(msg string) string {
	if !stepPrefix.MatchString(msg) {
		return msg
	}

	if i := strings.LastIndex(msg, " failed: "); i >= 0 {
		return "failed: " + msg[i+len(" failed: "):]
	}

	if i := strings.Index(msg, " succeeded"); i >= 0 {
		rest := msg[i+len(" succeeded"):]
		if extra, ok := strings.CutPrefix(rest, " — "); ok {
			return "ok — " + extra
		}
		return "ok"
	}

	return stepPrefix.ReplaceAllString(msg, "")
}
