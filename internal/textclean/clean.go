// Package textclean normalizes text extracted from PDF documents into the
// canonical form stored and sent to the completion endpoint.
package textclean

import (
	"regexp"
	"strings"
)

var (
	tagRe = regexp.MustCompile(`<[^>]+>`)
	// The run class is the full Unicode whitespace set (ASCII \s, the
	// separator categories, NEL), so NBSP- or em-space-separated fragments
	// collapse the same way ordinary whitespace does; cleaning stays
	// idempotent.
	spaceRunRe = regexp.MustCompile(`[\s\p{Z}\x{85}]+`)
	hyphenRe   = regexp.MustCompile(`- ([a-z])`)
)

// Bullets gain a trailing space so list items stay visually separated after
// whitespace collapsing.
const bulletSpaced = "\u2022 "

// Clean applies the normalization rules in order: strip tag-like substrings,
// collapse blank lines and whitespace runs, remove line-break hyphenation,
// rewrite bullets and non-breaking spaces, trim. It always returns a string
// (possibly empty) and is idempotent on its own output.
func Clean(raw string) string {
	s := tagRe.ReplaceAllString(raw, " ")
	s = strings.ReplaceAll(s, "\n\n", "\n")
	s = spaceRunRe.ReplaceAllString(s, " ")
	s = hyphenRe.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, "\u2022", bulletSpaced)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(s)
}
