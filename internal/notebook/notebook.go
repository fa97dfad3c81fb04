// ABOUTME: Folder and note repository mirroring the persisted collections.
// ABOUTME: Every mutation updates memory and re-persists whole collections before returning.

package notebook

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/harper/nowted/internal/models"
	"github.com/harper/nowted/internal/store"
	"github.com/rs/zerolog"
)

// RecentLimit bounds the Recents sequence.
const RecentLimit = 3

var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrFolderNotFound  = errors.New("folder not found")
	ErrNoteNotFound    = errors.New("note not found")
	ErrPrefixTooShort  = errors.New("prefix must be at least 6 characters")
	ErrAmbiguousPrefix = errors.New("prefix matches multiple notes")
)

// Confirmer answers a yes/no question before a destructive operation.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Always is a Confirmer that answers yes.
var Always = ConfirmFunc(func(string) bool { return true })

// Repository holds the in-memory notebook. It is safe for concurrent use.
type Repository struct {
	mu       sync.Mutex
	store    *store.Store
	log      zerolog.Logger
	now      func() time.Time
	notes    []models.Note
	folders  []models.Folder
	trash    []models.Folder
	recents  []models.Note
	selected string

	subMu  sync.Mutex
	subs   map[int]func(Event)
	nextID int
}

// Option configures a Repository.
type Option func(*Repository)

func WithLogger(log zerolog.Logger) Option {
	return func(r *Repository) {
		r.log = log
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// New loads every collection from s.
func New(s *store.Store, opts ...Option) *Repository {
	r := &Repository{
		store: s,
		log:   zerolog.Nop(),
		now:   time.Now,
		subs:  make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.mu.Lock()
	r.load()
	r.mu.Unlock()
	return r
}

// load replaces memory with the persisted state. Caller holds mu.
func (r *Repository) load() {
	notes := []models.Note{}
	r.store.Load(store.KeyNotes, &notes)
	folders := models.SeedFolders()
	r.store.Load(store.KeyFolders, &folders)
	trash := []models.Folder{}
	r.store.Load(store.KeyDeletedFolders, &trash)
	recents := []models.Note{}
	r.store.Load(store.KeyRecentNotes, &recents)
	selected := models.DefaultFolderTitle
	r.store.Load(store.KeySelectedFolder, &selected)

	r.notes = notes
	r.folders = folders
	r.trash = trash
	if len(recents) > RecentLimit {
		recents = recents[:RecentLimit]
	}
	r.recents = recents
	r.selected = selected
	if r.folderIndexByTitle(r.selected) < 0 {
		r.selected = r.fallbackSelection()
	}
}

// Reload re-reads every collection, picking up writes made by other
// processes.
func (r *Repository) Reload() {
	r.mu.Lock()
	r.load()
	r.mu.Unlock()
	r.log.Debug().Msg("notebook reloaded")
	r.publish(Event{Kind: EventReloaded})
}

// --- Folders ---

// CreateFolder appends a folder titled title. A blank title is rejected with
// ErrEmptyTitle and changes nothing.
func (r *Repository) CreateFolder(title string) (models.Folder, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Folder{}, ErrEmptyTitle
	}

	r.mu.Lock()
	before := r.snapshot()
	folder := models.NewFolder(title)
	r.folders = append(r.folders, folder)
	err := r.store.Save(store.KeyFolders, r.folders)
	r.rollbackOn(err, before)
	r.mu.Unlock()
	if err != nil {
		return models.Folder{}, err
	}

	r.publish(Event{Kind: EventFolderCreated, ID: folder.ID})
	return folder, nil
}

// RenameFolder replaces a folder's title. A selected folder stays selected.
func (r *Repository) RenameFolder(id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}

	r.mu.Lock()
	i := r.folderIndex(id)
	if i < 0 {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrFolderNotFound, id)
	}
	before := r.snapshot()
	wasSelected := r.folders[i].Title == r.selected
	r.folders[i].Title = title
	err := r.store.Save(store.KeyFolders, r.folders)
	if err == nil && wasSelected {
		r.selected = title
		err = r.store.Save(store.KeySelectedFolder, r.selected)
	}
	r.rollbackOn(err, before)
	r.mu.Unlock()
	if err != nil {
		return err
	}

	r.publish(Event{Kind: EventFolderRenamed, ID: id})
	return nil
}

// DeleteFolder moves a folder to Trash once c confirms. It reports whether
// the folder was moved; a declined prompt returns false and a nil error.
func (r *Repository) DeleteFolder(id string, c Confirmer) (bool, error) {
	r.mu.Lock()
	i := r.folderIndex(id)
	if i < 0 {
		r.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrFolderNotFound, id)
	}
	title := r.folders[i].Title
	r.mu.Unlock()

	// The prompt may block on user input; never hold the lock across it.
	if c != nil && !c.Confirm(fmt.Sprintf("Move folder %q to trash?", title)) {
		return false, nil
	}

	r.mu.Lock()
	i = r.folderIndex(id)
	if i < 0 {
		r.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrFolderNotFound, id)
	}
	before := r.snapshot()
	folder := r.folders[i]
	r.folders = append(r.folders[:i:i], r.folders[i+1:]...)
	r.trash = append(r.trash, folder)
	reselected := false
	if folder.Title == r.selected {
		r.selected = r.fallbackSelection()
		reselected = true
	}
	err := r.persistFolders(reselected)
	r.rollbackOn(err, before)
	r.mu.Unlock()
	if err != nil {
		return false, err
	}

	r.publish(Event{Kind: EventFolderDeleted, ID: id})
	if reselected {
		r.publish(Event{Kind: EventFolderSelected, ID: r.Selected()})
	}
	return true, nil
}

// RestoreFolder moves a folder from Trash back to the active set.
func (r *Repository) RestoreFolder(id string) error {
	r.mu.Lock()
	i := -1
	for j, f := range r.trash {
		if f.ID == id {
			i = j
			break
		}
	}
	if i < 0 {
		r.mu.Unlock()
		return fmt.Errorf("%w in trash: %s", ErrFolderNotFound, id)
	}
	before := r.snapshot()
	folder := r.trash[i]
	r.trash = append(r.trash[:i:i], r.trash[i+1:]...)
	r.folders = append(r.folders, folder)
	reselected := false
	if r.selected == "" {
		r.selected = r.fallbackSelection()
		reselected = true
	}
	err := r.persistFolders(reselected)
	r.rollbackOn(err, before)
	r.mu.Unlock()
	if err != nil {
		return err
	}

	r.publish(Event{Kind: EventFolderRestored, ID: id})
	return nil
}

// SelectFolder makes title the current selection. It must name an active
// folder.
func (r *Repository) SelectFolder(title string) error {
	r.mu.Lock()
	if r.folderIndexByTitle(title) < 0 {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrFolderNotFound, title)
	}
	before := r.snapshot()
	r.selected = title
	err := r.store.Save(store.KeySelectedFolder, r.selected)
	r.rollbackOn(err, before)
	r.mu.Unlock()
	if err != nil {
		return err
	}

	r.publish(Event{Kind: EventFolderSelected, ID: title})
	return nil
}

// Selected returns the selected folder title, or "" when no folder exists.
func (r *Repository) Selected() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selected
}

func (r *Repository) Folders() []models.Folder {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Folder(nil), r.folders...)
}

func (r *Repository) Trash() []models.Folder {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Folder(nil), r.trash...)
}

// Folder finds an active folder by ID or title.
func (r *Repository) Folder(idOrTitle string) (models.Folder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.folderIndex(idOrTitle); i >= 0 {
		return r.folders[i], true
	}
	if i := r.folderIndexByTitle(idOrTitle); i >= 0 {
		return r.folders[i], true
	}
	return models.Folder{}, false
}

// TrashedFolder finds a folder in Trash by ID or title.
func (r *Repository) TrashedFolder(idOrTitle string) (models.Folder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.trash {
		if f.ID == idOrTitle {
			return f, true
		}
	}
	for _, f := range r.trash {
		if f.Title == idOrTitle {
			return f, true
		}
	}
	return models.Folder{}, false
}

// snapshot is a private copy of every collection, taken before a mutation so
// a failed write can be undone.
type snapshot struct {
	notes    []models.Note
	folders  []models.Folder
	trash    []models.Folder
	recents  []models.Note
	selected string
}

// snapshot copies memory. Caller holds mu.
func (r *Repository) snapshot() snapshot {
	return snapshot{
		notes:    cloneNotes(r.notes),
		folders:  append([]models.Folder(nil), r.folders...),
		trash:    append([]models.Folder(nil), r.trash...),
		recents:  cloneNotes(r.recents),
		selected: r.selected,
	}
}

// rollbackOn restores s when err is non-nil, so memory never runs ahead of a
// write that failed. A write spanning several keys may still have stored the
// keys before the failing one. Caller holds mu.
func (r *Repository) rollbackOn(err error, s snapshot) {
	if err == nil {
		return
	}
	r.notes = s.notes
	r.folders = s.folders
	r.trash = s.trash
	r.recents = s.recents
	r.selected = s.selected
	r.log.Warn().Err(err).Msg("write failed, change rolled back")
}

func cloneNotes(notes []models.Note) []models.Note {
	out := make([]models.Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}

func (r *Repository) persistFolders(withSelection bool) error {
	if err := r.store.Save(store.KeyFolders, r.folders); err != nil {
		return err
	}
	if err := r.store.Save(store.KeyDeletedFolders, r.trash); err != nil {
		return err
	}
	if withSelection {
		return r.store.Save(store.KeySelectedFolder, r.selected)
	}
	return nil
}

// fallbackSelection picks the default folder if it is active, else the first
// active folder, else nothing.
func (r *Repository) fallbackSelection() string {
	if r.folderIndexByTitle(models.DefaultFolderTitle) >= 0 {
		return models.DefaultFolderTitle
	}
	if len(r.folders) > 0 {
		return r.folders[0].Title
	}
	return ""
}

func (r *Repository) folderIndex(id string) int {
	for i, f := range r.folders {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) folderIndexByTitle(title string) int {
	if title == "" {
		return -1
	}
	for i, f := range r.folders {
		if f.Title == title {
			return i
		}
	}
	return -1
}
