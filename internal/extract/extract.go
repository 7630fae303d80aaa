// Package extract pulls a structured suggestion out of a model's
// free-form answer. Corrected models come back inside a Markdown
// fenced block, surrounded by explanation text we do not want.
package extract

import (
	"regexp"
	"strings"
)

// First fenced block: delimiter line with optional language tag, a
// newline, then the shortest span of anything up to a closing
// delimiter. Later blocks in the same response are ignored.
var fencedBlock = regexp.MustCompile("(?s)```(?:\\w+)?\\n(.*?)```")

// FencedBlock returns the trimmed interior of the first fenced block
// in s, and whether one was found.
func FencedBlock(s string) (string, bool) {
	m := fencedBlock.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// Suggestion returns the first fenced block's interior when present,
// otherwise the input unchanged.
func Suggestion(s string) string {
	if block, ok := FencedBlock(s); ok {
		return block
	}
	return s
}
