// ABOUTME: Tests for path resolution to listing, note, empty and redirect routes.
// ABOUTME: Covers each supported URL shape.

package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		path string
		want Route
	}{
		{"/", Route{Kind: KindRedirect, Redirect: ListingPath}},
		{"", Route{Kind: KindRedirect, Redirect: ListingPath}},
		{"/notes", Route{Kind: KindListing}},
		{"/notes/", Route{Kind: KindListing}},
		{"/empty-placeholder", Route{Kind: KindEmpty}},
		{"/notes/0190a1b2", Route{Kind: KindNote, NoteID: "0190a1b2"}},
		{"notes/abc", Route{Kind: KindNote, NoteID: "abc"}},
		{"/notes/a/b", Route{Kind: KindRedirect, Redirect: ListingPath}},
		{"/menu", Route{Kind: KindRedirect, Redirect: ListingPath}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.path))
		})
	}
}

func TestNotePathRoundTrip(t *testing.T) {
	r := Resolve(NotePath("0190a1b2-c3d4"))

	assert.Equal(t, KindNote, r.Kind)
	assert.Equal(t, "0190a1b2-c3d4", r.NoteID)
	assert.Equal(t, "note", r.Kind.String())
}
