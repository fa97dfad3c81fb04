// ABOUTME: Reads Markdown written by RenderMarkdown back into paragraphs and marks.
// ABOUTME: Understands bold, italic, links and backslash escapes.

package editor

import (
	"sort"

	"github.com/harper/nowted/internal/models"
	"github.com/harper/nowted/internal/segment"
)

// ParseMarkdown splits md into paragraphs and recovers bold, italic and link
// marks. A '[' without a matching "](url)" is kept as text; emphasis left
// open runs to the end of its paragraph.
func ParseMarkdown(md string) ([]string, []models.Mark) {
	var (
		paragraphs []string
		marks      []models.Mark
	)
	for _, block := range segment.Split(md) {
		text, found := parseParagraph([]rune(block))
		if parts := segment.Split(text); len(parts) != 1 || parts[0] != text {
			text, found = block, nil
		}
		for i := range found {
			found[i].Paragraph = len(paragraphs)
		}
		paragraphs = append(paragraphs, text)
		marks = append(marks, found...)
	}
	return paragraphs, mergeMarks(marks)
}

func parseParagraph(in []rune) (string, []models.Mark) {
	var (
		out    []rune
		marks  []models.Mark
		open   = map[models.Style]int{}
		linkAt = -1
	)
	closeStyle := func(style models.Style) {
		if start := open[style]; len(out) > start {
			marks = append(marks, models.Mark{Start: start, End: len(out), Style: style})
		}
		delete(open, style)
	}
	toggle := func(style models.Style) {
		if _, ok := open[style]; ok {
			closeStyle(style)
			return
		}
		open[style] = len(out)
	}

	for i := 0; i < len(in); i++ {
		c := in[i]
		switch {
		case c == '\\' && i+1 < len(in):
			i++
			out = append(out, in[i])
		case c == '*' && i+1 < len(in) && in[i+1] == '*':
			i++
			toggle(models.StyleBold)
		case c == '_':
			toggle(models.StyleItalic)
		case c == '[' && linkAt < 0:
			linkAt = len(out)
		case c == ']' && linkAt >= 0 && i+1 < len(in) && in[i+1] == '(':
			dest, end, ok := readDestination(in, i+2)
			if !ok {
				out = append(out, c)
				continue
			}
			if href, ok := models.NormalizeLinkURL(dest); ok && len(out) > linkAt {
				marks = append(marks, models.Mark{Start: linkAt, End: len(out), Style: models.StyleLink, Value: href})
			}
			linkAt = -1
			i = end
		default:
			out = append(out, c)
		}
	}

	if linkAt >= 0 {
		out = append(out[:linkAt], append([]rune{'['}, out[linkAt:]...)...)
		for i := range marks {
			if marks[i].Start >= linkAt {
				marks[i].Start++
			}
			if marks[i].End > linkAt {
				marks[i].End++
			}
		}
		for style, start := range open {
			if start >= linkAt {
				open[style] = start + 1
			}
		}
	}
	for _, style := range []models.Style{models.StyleBold, models.StyleItalic} {
		if _, ok := open[style]; ok {
			closeStyle(style)
		}
	}
	return string(out), marks
}

// readDestination reads a link target starting at from up to the closing
// parenthesis, undoing backslash escapes. It returns the index of ')'.
func readDestination(in []rune, from int) (string, int, bool) {
	var dest []rune
	for i := from; i < len(in); i++ {
		switch {
		case in[i] == '\\' && i+1 < len(in):
			i++
			dest = append(dest, in[i])
		case in[i] == ')':
			return string(dest), i, true
		default:
			dest = append(dest, in[i])
		}
	}
	return "", 0, false
}

// mergeMarks joins touching or overlapping marks of the same style and value.
// Rendering closes and reopens outer styles around inner ones, so parsed
// marks arrive in pieces.
func mergeMarks(marks []models.Mark) []models.Mark {
	sort.SliceStable(marks, func(i, j int) bool {
		a, b := marks[i], marks[j]
		if a.Paragraph != b.Paragraph {
			return a.Paragraph < b.Paragraph
		}
		if a.Style != b.Style {
			return a.Style < b.Style
		}
		if a.Value != b.Value {
			return a.Value < b.Value
		}
		return a.Start < b.Start
	})

	var out []models.Mark
	for _, m := range marks {
		if n := len(out); n > 0 {
			last := &out[n-1]
			if last.Paragraph == m.Paragraph && last.Style == m.Style && last.Value == m.Value && m.Start <= last.End {
				if m.End > last.End {
					last.End = m.End
				}
				continue
			}
		}
		out = append(out, m)
	}
	return normalize(out)
}
