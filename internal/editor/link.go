// ABOUTME: Link dialog flow for the editor.
// ABOUTME: Captures a selection, accepts a URL, and applies a new-window link mark.

package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harper/nowted/internal/models"
)

var (
	ErrNoLinkDialog = errors.New("link dialog is not open")
	ErrInvalidURL   = errors.New("invalid link URL")
)

// BeginLink captures a non-collapsed selection and opens the link dialog.
func (e *Editor) BeginLink(sel Selection) error {
	if err := e.checkSelection(sel); err != nil {
		return e.fail("link", err)
	}
	captured := sel
	e.link = &captured
	return nil
}

// LinkDialogOpen reports whether a link is waiting for its URL.
func (e *Editor) LinkDialogOpen() bool {
	return e.link != nil
}

// CancelLink closes the dialog without changes.
func (e *Editor) CancelLink() {
	e.link = nil
}

// ConfirmLink applies rawURL to the captured selection and closes the dialog.
// An empty, unparseable or non-web URL leaves the dialog open.
func (e *Editor) ConfirmLink(rawURL string) error {
	if e.link == nil {
		return ErrNoLinkDialog
	}

	href, ok := models.NormalizeLinkURL(rawURL)
	if !ok {
		return e.fail("link", fmt.Errorf("%w: %q", ErrInvalidURL, strings.TrimSpace(rawURL)))
	}

	sel := *e.link
	if err := e.checkSelection(sel); err != nil {
		// The captured range no longer exists in the text.
		e.link = nil
		return e.fail("link", err)
	}

	e.marks = addRange(e.marks, models.Mark{
		Paragraph: sel.Paragraph, Start: sel.Start, End: sel.End,
		Style: models.StyleLink, Value: href,
	})
	e.link = nil
	return nil
}

// Link adds a link in one step, as BeginLink followed by ConfirmLink.
func (e *Editor) Link(sel Selection, rawURL string) error {
	if err := e.BeginLink(sel); err != nil {
		return err
	}
	if err := e.ConfirmLink(rawURL); err != nil {
		e.CancelLink()
		return err
	}
	return nil
}
