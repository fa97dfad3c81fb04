// ABOUTME: JSON API handlers over the notebook repository.
// ABOUTME: Blank titles are a silent no-op (204); lookups map to 404.

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/harper/nowted/internal/editor"
	"github.com/harper/nowted/internal/models"
	"github.com/harper/nowted/internal/nav"
	"github.com/harper/nowted/internal/notebook"
)

type titleRequest struct {
	Title string `json:"title"`
}

type saveRequest struct {
	Content string         `json:"content"`
	Marks   *[]models.Mark `json:"marks,omitempty"`
}

type formatRequest struct {
	editor.Selection
	Style models.Style `json:"style"`
	Size  int          `json:"size,omitempty"`
	URL   string       `json:"url,omitempty"`
}

type noteResponse struct {
	models.Note
	Paragraphs []string `json:"paragraphs"`
	HTML       string   `json:"html"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, notebook.ErrFolderNotFound), errors.Is(err, notebook.ErrNoteNotFound):
		status = http.StatusNotFound
	case errors.Is(err, notebook.ErrPrefixTooShort), errors.Is(err, notebook.ErrAmbiguousPrefix):
		status = http.StatusBadRequest
	case errors.Is(err, editor.ErrInvalidSelection), errors.Is(err, editor.ErrUnsupportedStyle),
		errors.Is(err, editor.ErrUnsupportedSize), errors.Is(err, editor.ErrInvalidURL):
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return false
	}
	return true
}

// emptyList keeps JSON arrays from encoding as null.
func emptyList[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}

func (s *Server) listFolders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"folders":  emptyList(s.repo.Folders()),
		"selected": s.repo.Selected(),
	})
}

func (s *Server) createFolder(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if !decode(w, r, &req) {
		return
	}

	folder, err := s.repo.CreateFolder(req.Title)
	if errors.Is(err, notebook.ErrEmptyTitle) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, folder)
}

func (s *Server) renameFolder(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if !decode(w, r, &req) {
		return
	}

	folder, ok := s.repo.Folder(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, notebook.ErrFolderNotFound)
		return
	}
	err := s.repo.RenameFolder(folder.ID, req.Title)
	if errors.Is(err, notebook.ErrEmptyTitle) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	folder, _ = s.repo.Folder(folder.ID)
	writeJSON(w, http.StatusOK, folder)
}

// deleteFolder moves a folder to the trash only with ?confirm=true.
func (s *Server) deleteFolder(w http.ResponseWriter, r *http.Request) {
	folder, ok := s.repo.Folder(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, notebook.ErrFolderNotFound)
		return
	}
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

	deleted, err := s.repo.DeleteFolder(folder.ID, notebook.ConfirmFunc(func(string) bool {
		return confirmed
	}))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"deleted":  deleted,
		"selected": s.repo.Selected(),
	})
}

func (s *Server) listTrash(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, emptyList(s.repo.Trash()))
}

func (s *Server) restoreFolder(w http.ResponseWriter, r *http.Request) {
	folder, ok := s.repo.TrashedFolder(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, notebook.ErrFolderNotFound)
		return
	}
	if err := s.repo.RestoreFolder(folder.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

func (s *Server) getSelection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"selected": s.repo.Selected()})
}

func (s *Server) putSelection(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if !decode(w, r, &req) {
		return
	}
	if err := s.repo.SelectFolder(req.Title); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"selected": s.repo.Selected()})
}

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	notes := s.repo.Notes()
	if ref := r.URL.Query().Get("folder"); ref != "" {
		folder, ok := s.repo.Folder(ref)
		if !ok {
			writeError(w, notebook.ErrFolderNotFound)
			return
		}
		notes = s.repo.NotesInFolder(folder.ID)
	}
	writeJSON(w, http.StatusOK, emptyList(notes))
}

// createNote adds a default note and points the client at its view.
func (s *Server) createNote(w http.ResponseWriter, r *http.Request) {
	note, err := s.repo.CreateNote()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", nav.NotePath(note.ID.String()))
	writeJSON(w, http.StatusCreated, note)
}

func (s *Server) getNote(w http.ResponseWriter, r *http.Request) {
	note, err := s.repo.FindNote(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	ed := editor.New(s.repo, s.log)
	ed.Open(note.ID.String())
	writeJSON(w, http.StatusOK, noteResponse{
		Note:       note,
		Paragraphs: emptyList(ed.Paragraphs()),
		HTML:       ed.HTML(),
	})
}

func (s *Server) saveNote(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if !decode(w, r, &req) {
		return
	}
	note, err := s.repo.FindNote(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	if req.Marks != nil {
		err = s.repo.SaveNoteWithMarks(note.ID, req.Content, *req.Marks)
	} else {
		err = s.repo.SaveNote(note.ID, req.Content)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	saved, _ := s.repo.Note(note.ID)
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) renameNote(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if !decode(w, r, &req) {
		return
	}
	note, err := s.repo.FindNote(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	err = s.repo.RenameNote(note.ID, req.Title)
	if errors.Is(err, notebook.ErrEmptyTitle) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	saved, _ := s.repo.Note(note.ID)
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) formatNote(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if !decode(w, r, &req) {
		return
	}
	note, err := s.repo.FindNote(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	ed := editor.New(s.repo, s.log)
	ed.Open(note.ID.String())
	switch req.Style {
	case models.StyleFontSize:
		err = ed.SetFontSize(req.Selection, req.Size)
	case models.StyleLink:
		err = ed.Link(req.Selection, req.URL)
	default:
		err = ed.Toggle(req.Selection, req.Style)
	}
	if err == nil {
		err = ed.Save()
	}
	if err != nil {
		writeError(w, err)
		return
	}

	saved, _ := ed.Note()
	writeJSON(w, http.StatusOK, noteResponse{
		Note:       saved,
		Paragraphs: emptyList(ed.Paragraphs()),
		HTML:       ed.HTML(),
	})
}

func (s *Server) listRecents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, emptyList(s.repo.Recents()))
}
