// ABOUTME: Editor surface holding one note as paragraphs plus formatting marks.
// ABOUTME: Loads by ID, redirects on a miss, tracks edits and saves through the repository.

package editor

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harper/nowted/internal/models"
	"github.com/harper/nowted/internal/nav"
	"github.com/harper/nowted/internal/segment"
	"github.com/rs/zerolog"
)

// EmptyMessage is shown while no note is open.
const EmptyMessage = "No note selected or create a new note to get started."

type State int

const (
	StateUnloaded State = iota
	StateLoaded
	StateRedirected
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateRedirected:
		return "redirected"
	default:
		return "unloaded"
	}
}

var ErrNotLoaded = errors.New("no note loaded")

// Repository is the part of the notebook the editor reads and writes.
type Repository interface {
	Note(id uuid.UUID) (models.Note, bool)
	UpdateDraft(id uuid.UUID, content string) error
	SaveNoteWithMarks(id uuid.UUID, content string, marks []models.Mark) error
}

type Editor struct {
	repo       Repository
	log        zerolog.Logger
	state      State
	note       models.Note
	paragraphs []string
	marks      []models.Mark
	redirect   string
	link       *Selection
}

func New(repo Repository, log zerolog.Logger) *Editor {
	return &Editor{repo: repo, log: log}
}

// Open loads the note with the given ID. An empty ID leaves the editor
// unloaded; an unknown or malformed ID redirects to the listing.
func (e *Editor) Open(id string) State {
	e.reset()
	if id == "" {
		return e.state
	}

	noteID, err := uuid.Parse(id)
	if err != nil {
		return e.redirectTo(nav.ListingPath, id)
	}
	note, ok := e.repo.Note(noteID)
	if !ok {
		return e.redirectTo(nav.ListingPath, id)
	}

	e.note = note
	e.paragraphs = segment.Split(note.Content)
	e.marks = fit(note.Marks, e.paragraphs)
	e.state = StateLoaded
	return e.state
}

func (e *Editor) reset() {
	*e = Editor{repo: e.repo, log: e.log}
}

func (e *Editor) redirectTo(path, id string) State {
	e.log.Debug().Str("id", id).Str("to", path).Msg("note not found, redirecting")
	e.state = StateRedirected
	e.redirect = path
	return e.state
}

func (e *Editor) State() State {
	return e.state
}

// RedirectTo returns the redirect target after a failed Open.
func (e *Editor) RedirectTo() string {
	return e.redirect
}

// Note returns the loaded note as last saved or drafted.
func (e *Editor) Note() (models.Note, bool) {
	if e.state != StateLoaded {
		return models.Note{}, false
	}
	return e.note.Clone(), true
}

func (e *Editor) Paragraphs() []string {
	return append([]string(nil), e.paragraphs...)
}

func (e *Editor) Marks() []models.Mark {
	return append([]models.Mark(nil), e.marks...)
}

// Content returns the paragraphs joined back into note content.
func (e *Editor) Content() string {
	return segment.Join(e.paragraphs)
}

// Input replaces the displayed text. Paragraphs are re-derived and the note
// is updated in memory only; marks survive on paragraphs whose text did not
// change.
func (e *Editor) Input(text string) error {
	if e.state != StateLoaded {
		return ErrNotLoaded
	}

	paragraphs := segment.Split(text)
	var kept []models.Mark
	for _, m := range e.marks {
		if m.Paragraph < len(paragraphs) && paragraphs[m.Paragraph] == e.paragraphs[m.Paragraph] {
			kept = append(kept, m)
		}
	}
	e.paragraphs = paragraphs
	e.marks = kept

	content := segment.Join(paragraphs)
	if err := e.repo.UpdateDraft(e.note.ID, content); err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	e.note.Content = content
	e.note.Marks = append([]models.Mark(nil), kept...)
	return nil
}

// Save commits the paragraphs and marks through the repository.
func (e *Editor) Save() error {
	if e.state != StateLoaded {
		return ErrNotLoaded
	}

	content := segment.Join(e.paragraphs)
	if err := e.repo.SaveNoteWithMarks(e.note.ID, content, e.marks); err != nil {
		return fmt.Errorf("save note: %w", err)
	}
	if saved, ok := e.repo.Note(e.note.ID); ok {
		e.note = saved
	}
	return nil
}

// Markdown renders the loaded paragraphs with their marks.
func (e *Editor) Markdown() string {
	return RenderMarkdown(e.paragraphs, e.marks)
}

// HTML renders the loaded paragraphs with their marks.
func (e *Editor) HTML() string {
	return RenderHTML(e.paragraphs, e.marks)
}
