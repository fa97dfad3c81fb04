// ABOUTME: Server-rendered HTML views for the listing, a note and the empty placeholder.
// ABOUTME: Paths resolve through nav; a missing note redirects to the listing.

package httpapi

import (
	"html/template"
	"net/http"

	"github.com/harper/nowted/internal/editor"
	"github.com/harper/nowted/internal/models"
	"github.com/harper/nowted/internal/nav"
)

const dateLayout = "02/01/2006"

var pages = template.Must(template.New("pages").Funcs(template.FuncMap{
	"date":     func(n models.Note) string { return n.LastModified.Format(dateLayout) },
	"notePath": func(n models.Note) string { return nav.NotePath(n.ID.String()) },
}).Parse(`{{define "layout"}}<!doctype html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<nav>
<h2>Recents</h2>
<ul>{{range .Recents}}<li><a href="{{notePath .}}">{{.Title}}</a></li>{{end}}</ul>
<h2>Folders</h2>
<ul>{{range .Folders}}<li>{{if eq .Title $.Selected}}<strong>{{.Title}}</strong>{{else}}{{.Title}}{{end}}</li>{{end}}</ul>
<h2>Trash</h2>
<ul>{{range .Trash}}<li>{{.Title}}</li>{{end}}</ul>
</nav>
<main>{{template "main" .}}</main>
</body>
</html>
{{end}}`))

var listingPage = template.Must(template.Must(pages.Clone()).Parse(`{{define "main"}}
<h1>{{.Selected}}</h1>
<ul>{{range .Notes}}<li><a href="{{notePath .}}">{{.Title}}</a> <small>{{date .}}</small></li>{{else}}<li>{{$.Empty}}</li>{{end}}</ul>
{{end}}`))

var notePage = template.Must(template.Must(pages.Clone()).Parse(`{{define "main"}}
<article>
<h1>{{.Note.Title}}</h1>
<p><small>{{date .Note}}{{if .Folder}} · {{.Folder}}{{end}}</small></p>
{{.Body}}
</article>
{{end}}`))

var emptyPage = template.Must(template.Must(pages.Clone()).Parse(`{{define "main"}}
<p>{{.Empty}}</p>
{{end}}`))

type pageData struct {
	Title    string
	Folders  []models.Folder
	Trash    []models.Folder
	Recents  []models.Note
	Selected string
	Notes    []models.Note
	Note     models.Note
	Folder   string
	Body     template.HTML
	Empty    string
}

func (s *Server) page(title string) pageData {
	return pageData{
		Title:    title,
		Folders:  s.repo.Folders(),
		Trash:    s.repo.Trash(),
		Recents:  s.repo.Recents(),
		Selected: s.repo.Selected(),
		Empty:    editor.EmptyMessage,
	}
}

func (s *Server) view(w http.ResponseWriter, r *http.Request) {
	route := nav.Resolve(r.URL.Path)
	switch route.Kind {
	case nav.KindListing:
		data := s.page("Notes")
		if folder, ok := s.repo.Folder(data.Selected); ok {
			data.Notes = s.repo.NotesInFolder(folder.ID)
		}
		s.render(w, listingPage, data)

	case nav.KindEmpty:
		s.render(w, emptyPage, s.page("Notes"))

	case nav.KindNote:
		ed := editor.New(s.repo, s.log)
		if ed.Open(route.NoteID) != editor.StateLoaded {
			http.Redirect(w, r, ed.RedirectTo(), http.StatusFound)
			return
		}
		note, _ := ed.Note()
		data := s.page(note.Title)
		data.Note = note
		if folder, ok := s.repo.Folder(note.FolderID); ok {
			data.Folder = folder.Title
		}
		// RenderHTML escapes paragraph text and mark values.
		data.Body = template.HTML(ed.HTML()) //nolint:gosec
		s.render(w, notePage, data)

	default:
		http.Redirect(w, r, route.Redirect, http.StatusFound)
	}
}

func (s *Server) render(w http.ResponseWriter, t *template.Template, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		s.log.Error().Err(err).Msg("render page")
	}
}
