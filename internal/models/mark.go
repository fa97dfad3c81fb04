// ABOUTME: Mark model describing a style range inside one paragraph.
// ABOUTME: Offsets are rune positions, End is exclusive.

package models

import (
	"net/url"
	"strconv"
	"strings"
)

type Style string

const (
	StyleBold      Style = "bold"
	StyleItalic    Style = "italic"
	StyleUnderline Style = "underline"
	StyleFontSize  Style = "fontSize"
	StyleLink      Style = "link"
)

// Valued reports whether the style carries a value (size or URL).
func (s Style) Valued() bool {
	return s == StyleFontSize || s == StyleLink
}

func (s Style) Valid() bool {
	switch s {
	case StyleBold, StyleItalic, StyleUnderline, StyleFontSize, StyleLink:
		return true
	}
	return false
}

// FontSizes are the selectable point sizes. DefaultFontSize carries no mark.
var FontSizes = []int{12, 14, 16, 18, 20, 24}

const DefaultFontSize = 16

// linkSchemes are the only schemes a link mark may point at.
var linkSchemes = map[string]bool{"http": true, "https": true, "mailto": true}

// NormalizeLinkURL parses raw and returns its canonical form. Only http,
// https and mailto URLs are accepted; web URLs also need a host.
func NormalizeLinkURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	scheme := strings.ToLower(u.Scheme)
	if !linkSchemes[scheme] {
		return "", false
	}
	if scheme == "mailto" {
		if u.Opaque == "" && u.Path == "" {
			return "", false
		}
	} else if u.Host == "" {
		return "", false
	}
	u.Scheme = scheme
	return u.String(), true
}

type Mark struct {
	Paragraph int    `json:"paragraph"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Style     Style  `json:"style"`
	Value     string `json:"value,omitempty"`
}

// Valid reports whether the mark has a known style and a value that style
// accepts. Ranges are checked against paragraph text elsewhere.
func (m Mark) Valid() bool {
	switch m.Style {
	case StyleBold, StyleItalic, StyleUnderline:
		return m.Value == ""
	case StyleFontSize:
		size, err := strconv.Atoi(m.Value)
		if err != nil || size == DefaultFontSize {
			return false
		}
		for _, s := range FontSizes {
			if s == size {
				return true
			}
		}
		return false
	case StyleLink:
		u, ok := NormalizeLinkURL(m.Value)
		return ok && u == m.Value
	}
	return false
}
