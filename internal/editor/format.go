// ABOUTME: Inline formatting as explicit style ranges over paragraph text.
// ABOUTME: Toggles bold/italic/underline, sets font size, and normalizes marks.

package editor

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/harper/nowted/internal/models"
)

// FontSizes are the selectable point sizes. DefaultFontSize carries no mark.
var FontSizes = models.FontSizes

const DefaultFontSize = models.DefaultFontSize

var (
	ErrInvalidSelection = errors.New("invalid selection")
	ErrUnsupportedStyle = errors.New("unsupported style")
	ErrUnsupportedSize  = errors.New("unsupported font size")
)

// Selection is a rune range [Start,End) within one paragraph.
type Selection struct {
	Paragraph int `json:"paragraph"`
	Start     int `json:"start"`
	End       int `json:"end"`
}

// Collapsed reports whether the selection is empty.
func (s Selection) Collapsed() bool {
	return s.Start == s.End
}

func (e *Editor) checkSelection(sel Selection) error {
	if e.state != StateLoaded {
		return ErrNotLoaded
	}
	if sel.Paragraph < 0 || sel.Paragraph >= len(e.paragraphs) {
		return fmt.Errorf("%w: paragraph %d of %d", ErrInvalidSelection, sel.Paragraph, len(e.paragraphs))
	}
	n := len([]rune(e.paragraphs[sel.Paragraph]))
	if sel.Start < 0 || sel.End > n || sel.Start >= sel.End {
		return fmt.Errorf("%w: range [%d,%d) in paragraph of length %d", ErrInvalidSelection, sel.Start, sel.End, n)
	}
	return nil
}

// fail logs a formatting failure; the editor state is left as it was.
func (e *Editor) fail(op string, err error) error {
	e.log.Warn().Err(err).Str("op", op).Msg("formatting not applied")
	return err
}

// IsActive reports whether style covers the whole selection, which decides
// the direction of Toggle.
func (e *Editor) IsActive(sel Selection, style models.Style) bool {
	if e.checkSelection(sel) != nil {
		return false
	}
	return covered(e.marks, sel, style)
}

// Toggle removes a bold, italic or underline style from the selection if it
// already covers all of it, and applies it otherwise.
func (e *Editor) Toggle(sel Selection, style models.Style) error {
	if style.Valued() || !style.Valid() {
		return e.fail("toggle", fmt.Errorf("%w: %q", ErrUnsupportedStyle, style))
	}
	if err := e.checkSelection(sel); err != nil {
		return e.fail("toggle", err)
	}

	if covered(e.marks, sel, style) {
		e.marks = clearRange(e.marks, sel, style)
	} else {
		e.marks = addRange(e.marks, models.Mark{
			Paragraph: sel.Paragraph, Start: sel.Start, End: sel.End, Style: style,
		})
	}
	return nil
}

// SetFontSize applies size to the selection. The default size clears any
// size mark.
func (e *Editor) SetFontSize(sel Selection, size int) error {
	supported := false
	for _, s := range FontSizes {
		if s == size {
			supported = true
			break
		}
	}
	if !supported {
		return e.fail("fontSize", fmt.Errorf("%w: %d", ErrUnsupportedSize, size))
	}
	if err := e.checkSelection(sel); err != nil {
		return e.fail("fontSize", err)
	}

	e.marks = clearRange(e.marks, sel, models.StyleFontSize)
	if size != DefaultFontSize {
		e.marks = addRange(e.marks, models.Mark{
			Paragraph: sel.Paragraph, Start: sel.Start, End: sel.End,
			Style: models.StyleFontSize, Value: strconv.Itoa(size),
		})
	}
	return nil
}

// covered reports whether marks of style cover every position of sel.
func covered(marks []models.Mark, sel Selection, style models.Style) bool {
	var spans []models.Mark
	for _, m := range marks {
		if m.Paragraph == sel.Paragraph && m.Style == style && m.End > sel.Start && m.Start < sel.End {
			spans = append(spans, m)
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	pos := sel.Start
	for _, m := range spans {
		if m.Start > pos {
			return false
		}
		if m.End > pos {
			pos = m.End
		}
		if pos >= sel.End {
			return true
		}
	}
	return pos >= sel.End
}

// clearRange removes style from sel, splitting marks that straddle it.
func clearRange(marks []models.Mark, sel Selection, style models.Style) []models.Mark {
	out := make([]models.Mark, 0, len(marks)+1)
	for _, m := range marks {
		if m.Paragraph != sel.Paragraph || m.Style != style || m.End <= sel.Start || m.Start >= sel.End {
			out = append(out, m)
			continue
		}
		if m.Start < sel.Start {
			left := m
			left.End = sel.Start
			out = append(out, left)
		}
		if m.End > sel.End {
			right := m
			right.Start = sel.End
			out = append(out, right)
		}
	}
	return normalize(out)
}

// addRange applies mark, replacing what its style held in that range and
// merging with touching marks of the same style and value.
func addRange(marks []models.Mark, mark models.Mark) []models.Mark {
	sel := Selection{Paragraph: mark.Paragraph, Start: mark.Start, End: mark.End}
	marks = clearRange(marks, sel, mark.Style)

	out := make([]models.Mark, 0, len(marks)+1)
	for _, m := range marks {
		if m.Paragraph == mark.Paragraph && m.Style == mark.Style && m.Value == mark.Value &&
			m.End >= mark.Start && m.Start <= mark.End {
			if m.Start < mark.Start {
				mark.Start = m.Start
			}
			if m.End > mark.End {
				mark.End = m.End
			}
			continue
		}
		out = append(out, m)
	}
	return normalize(append(out, mark))
}

func normalize(marks []models.Mark) []models.Mark {
	sort.SliceStable(marks, func(i, j int) bool {
		a, b := marks[i], marks[j]
		if a.Paragraph != b.Paragraph {
			return a.Paragraph < b.Paragraph
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.Style < b.Style
	})
	return marks
}

// fit returns the marks that lie inside paragraphs.
func fit(marks []models.Mark, paragraphs []string) []models.Mark {
	var out []models.Mark
	for _, m := range marks {
		if m.Paragraph < 0 || m.Paragraph >= len(paragraphs) || !m.Valid() {
			continue
		}
		if m.Start < 0 || m.Start >= m.End || m.End > len([]rune(paragraphs[m.Paragraph])) {
			continue
		}
		out = append(out, m)
	}
	return normalize(out)
}
