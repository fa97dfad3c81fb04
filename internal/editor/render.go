// ABOUTME: Renders paragraphs and marks to Markdown and HTML.
// ABOUTME: Styles nest properly; links always open in a new window.

package editor

import (
	"html"
	"sort"
	"strings"

	"github.com/harper/nowted/internal/models"
)

// nesting order, outermost first
var styleOrder = []models.Style{
	models.StyleLink,
	models.StyleFontSize,
	models.StyleBold,
	models.StyleItalic,
	models.StyleUnderline,
}

type syntax struct {
	open  func(m models.Mark) string
	close func(m models.Mark) string
	text  func(s string) string
}

var markdownSyntax = syntax{
	open: func(m models.Mark) string {
		switch m.Style {
		case models.StyleBold:
			return "**"
		case models.StyleItalic:
			return "_"
		case models.StyleLink:
			return "["
		}
		return ""
	},
	close: func(m models.Mark) string {
		switch m.Style {
		case models.StyleBold:
			return "**"
		case models.StyleItalic:
			return "_"
		case models.StyleLink:
			return "](" + destinationEscaper.Replace(m.Value) + ")"
		}
		return ""
	},
	text: markdownEscaper.Replace,
}

var (
	markdownEscaper    = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `_`, `\_`, `[`, `\[`, `]`, `\]`)
	destinationEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
)

var htmlSyntax = syntax{
	open: func(m models.Mark) string {
		switch m.Style {
		case models.StyleBold:
			return "<strong>"
		case models.StyleItalic:
			return "<em>"
		case models.StyleUnderline:
			return "<u>"
		case models.StyleFontSize:
			return `<span style="font-size:` + html.EscapeString(m.Value) + `px">`
		case models.StyleLink:
			return `<a href="` + html.EscapeString(m.Value) + `" target="_blank" rel="noopener noreferrer">`
		}
		return ""
	},
	close: func(m models.Mark) string {
		switch m.Style {
		case models.StyleBold:
			return "</strong>"
		case models.StyleItalic:
			return "</em>"
		case models.StyleUnderline:
			return "</u>"
		case models.StyleFontSize:
			return "</span>"
		case models.StyleLink:
			return "</a>"
		}
		return ""
	},
	text: html.EscapeString,
}

// RenderMarkdown renders paragraphs separated by blank lines. Underline and
// font size have no Markdown form and are dropped.
func RenderMarkdown(paragraphs []string, marks []models.Mark) string {
	out := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		out[i] = renderParagraph(p, marksFor(marks, i), markdownSyntax)
	}
	return strings.Join(out, "\n\n")
}

// RenderHTML renders each paragraph as a <p> element.
func RenderHTML(paragraphs []string, marks []models.Mark) string {
	var sb strings.Builder
	for i, p := range paragraphs {
		sb.WriteString("<p>")
		sb.WriteString(renderParagraph(p, marksFor(marks, i), htmlSyntax))
		sb.WriteString("</p>\n")
	}
	return sb.String()
}

// marksFor returns the valid marks of one paragraph. Links to anything but
// web or mail URLs never reach the output.
func marksFor(marks []models.Mark, paragraph int) []models.Mark {
	var out []models.Mark
	for _, m := range marks {
		if m.Paragraph == paragraph && m.Valid() {
			out = append(out, m)
		}
	}
	return out
}

// renderParagraph walks the text between mark boundaries, keeping a stack of
// open marks. When a mark ends, everything opened after it is closed and
// reopened so output is always well nested.
func renderParagraph(text string, marks []models.Mark, syn syntax) string {
	runes := []rune(text)
	bounds := []int{0, len(runes)}
	for _, m := range marks {
		if m.Start >= 0 && m.End <= len(runes) && m.Start < m.End {
			bounds = append(bounds, m.Start, m.End)
		}
	}
	sort.Ints(bounds)

	var (
		sb    strings.Builder
		stack []models.Mark
	)
	for i := 0; i+1 < len(bounds); i++ {
		from, to := bounds[i], bounds[i+1]
		if from == to {
			continue
		}
		want := activeAt(marks, from, to)

		keep := 0
		for keep < len(stack) && keep < len(want) && stack[keep] == want[keep] {
			keep++
		}
		for j := len(stack) - 1; j >= keep; j-- {
			sb.WriteString(syn.close(stack[j]))
		}
		stack = stack[:keep]
		for _, m := range want[keep:] {
			sb.WriteString(syn.open(m))
			stack = append(stack, m)
		}
		sb.WriteString(syn.text(string(runes[from:to])))
	}
	for j := len(stack) - 1; j >= 0; j-- {
		sb.WriteString(syn.close(stack[j]))
	}
	return sb.String()
}

// activeAt returns the marks covering [from,to) in nesting order, one per
// style.
func activeAt(marks []models.Mark, from, to int) []models.Mark {
	var out []models.Mark
	for _, style := range styleOrder {
		for _, m := range marks {
			if m.Style == style && m.Start <= from && m.End >= to {
				out = append(out, m)
				break
			}
		}
	}
	return out
}
