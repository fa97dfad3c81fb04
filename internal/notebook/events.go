// ABOUTME: Change notifications for repository subscribers.
// ABOUTME: Views subscribe instead of polling the store for changes.

package notebook

// EventKind names a repository change.
type EventKind string

const (
	EventFolderCreated  EventKind = "folder.created"
	EventFolderRenamed  EventKind = "folder.renamed"
	EventFolderDeleted  EventKind = "folder.deleted"
	EventFolderRestored EventKind = "folder.restored"
	EventFolderSelected EventKind = "folder.selected"
	EventNoteCreated    EventKind = "note.created"
	EventNoteSaved      EventKind = "note.saved"
	EventNoteDraft      EventKind = "note.draft"
	EventNoteRenamed    EventKind = "note.renamed"
	EventReloaded       EventKind = "reloaded"
)

// Event describes one change. ID is the folder or note ID; for
// folder.selected it is the selected title.
type Event struct {
	Kind EventKind `json:"type"`
	ID   string    `json:"id,omitempty"`
}

// Subscribe registers fn for every subsequent event and returns a function
// that unregisters it. fn runs synchronously on the mutating goroutine after
// the repository lock is released, so it may call back into the repository.
func (r *Repository) Subscribe(fn func(Event)) (cancel func()) {
	r.subMu.Lock()
	id := r.nextID
	r.nextID++
	r.subs[id] = fn
	r.subMu.Unlock()

	return func() {
		r.subMu.Lock()
		delete(r.subs, id)
		r.subMu.Unlock()
	}
}

func (r *Repository) publish(e Event) {
	r.subMu.Lock()
	fns := make([]func(Event), 0, len(r.subs))
	for _, fn := range r.subs {
		fns = append(fns, fn)
	}
	r.subMu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}
