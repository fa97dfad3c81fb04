// ABOUTME: Canonical paragraph segmentation of note content.
// ABOUTME: Paragraphs are separated by blank lines and joined with one blank line.

package segment

import (
	"regexp"
	"strings"
)

// Separator joins paragraphs back into note content.
const Separator = "\n\n"

// blankLine matches a newline, optional horizontal whitespace, and another
// newline, plus any further blank lines that follow.
var blankLine = regexp.MustCompile(`\r?\n[ \t]*\r?\n(?:[ \t]*\r?\n)*`)

// Split returns the non-blank paragraphs of content. Each paragraph has its
// surrounding newlines removed but keeps inner single newlines. For every
// result p, Split(Join(p)) equals p.
func Split(content string) []string {
	var out []string
	for _, part := range blankLine.Split(content, -1) {
		part = strings.Trim(part, "\r\n")
		if strings.TrimSpace(part) == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// Join is the inverse of Split.
func Join(paragraphs []string) string {
	return strings.Join(paragraphs, Separator)
}
