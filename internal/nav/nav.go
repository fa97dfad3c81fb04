// ABOUTME: Route resolution for the note views.
// ABOUTME: Maps paths to the listing, a note, the empty placeholder or a redirect.

package nav

import (
	"net/url"
	"strings"
)

const (
	RootPath    = "/"
	ListingPath = "/notes"
	EmptyPath   = "/empty-placeholder"
)

type Kind int

const (
	KindRedirect Kind = iota
	KindListing
	KindNote
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindListing:
		return "listing"
	case KindNote:
		return "note"
	case KindEmpty:
		return "empty"
	default:
		return "redirect"
	}
}

// Route is the resolved target of a path. Redirect is set only for
// KindRedirect; NoteID only for KindNote.
type Route struct {
	Kind     Kind
	NoteID   string
	Redirect string
}

// NotePath returns the path that opens the note with the given ID.
func NotePath(id string) string {
	return ListingPath + "/" + url.PathEscape(id)
}

// Resolve maps a path to a route. The root and every unknown path redirect
// to the listing. Whether a note ID exists is decided by the editor, which
// redirects on a miss.
func Resolve(path string) Route {
	path = "/" + strings.Trim(path, "/")
	switch {
	case path == ListingPath:
		return Route{Kind: KindListing}
	case path == EmptyPath:
		return Route{Kind: KindEmpty}
	case strings.HasPrefix(path, ListingPath+"/"):
		id, err := url.PathUnescape(strings.TrimPrefix(path, ListingPath+"/"))
		if err != nil || id == "" || strings.Contains(id, "/") {
			break
		}
		return Route{Kind: KindNote, NoteID: id}
	}
	return Route{Kind: KindRedirect, Redirect: ListingPath}
}
