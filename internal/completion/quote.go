package completion

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// shellSpecial holds the characters that make bash split or expand a word.
const shellSpecial = " \t\n'\"\\$`|&;<>()*?[]{}~#!"

// QuoteCandidate renders candidate so that a shell reads it back as a single
// word. Words without special characters are returned unchanged.
func QuoteCandidate(candidate string) string {
	if candidate != "" && !strings.ContainsAny(candidate, shellSpecial) {
		return candidate
	}

	quoted, err := syntax.Quote(candidate, syntax.LangBash)
	if err != nil {
		return candidate
	}
	return quoted
}
