package stores

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studentplanner/core/internal/domain/entities"
	"github.com/studentplanner/core/internal/infrastructure/logger"
	"github.com/studentplanner/core/internal/ports"
)

const notesKey = "notes"

// NoteStore owns the persisted note collection. Attachment files are managed
// by the attachments package; this store only tracks the descriptors and the
// body tokens that reference them.
type NoteStore struct {
	col   collection[entities.Note]
	log   *logger.Logger
	now   func() time.Time
	newID func() string
}

// NewNoteStore creates a note store over the given backend. Call Load before
// use.
func NewNoteStore(backend ports.Backend, log *logger.Logger) *NoteStore {
	return &NoteStore{
		col:   newCollection[entities.Note](notesKey, backend, log.WithComponent("note_store")),
		log:   log.WithComponent("note_store"),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

var _ ports.NoteStore = (*NoteStore)(nil)

func (s *NoteStore) Load(ctx context.Context) error {
	return s.col.load(ctx)
}

func (s *NoteStore) List(filter ports.NoteFilter) []entities.Note {
	items := s.col.list()
	if !filter.PinnedOnly && filter.Tag == "" {
		return items
	}

	out := items[:0:0]
	for _, n := range items {
		if filter.PinnedOnly && !n.Pinned {
			continue
		}
		if filter.Tag != "" && !hasTag(n.Tags, filter.Tag) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func (s *NoteStore) GetByID(id string) (entities.Note, error) {
	n, ok := s.col.get(id)
	if !ok {
		return entities.Note{}, entities.ErrNoteNotFound
	}
	return n, nil
}

func (s *NoteStore) Create(ctx context.Context, req ports.CreateNoteRequest) (entities.Note, error) {
	now := s.now()
	note := entities.Note{
		ID:          s.newID(),
		Title:       req.Title,
		Body:        req.Body,
		Attachments: []entities.NoteAttachment{},
		Tags:        req.Tags,
		Pinned:      req.Pinned,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.col.prepend(note)
	s.col.persist(ctx)

	s.log.Infow("Note created", "note_id", note.ID, "title", note.Title)
	return note, nil
}

func (s *NoteStore) Update(ctx context.Context, id string, patch ports.UpdateNoteRequest) (entities.Note, error) {
	note, ok := s.col.get(id)
	if !ok {
		return entities.Note{}, entities.ErrNoteNotFound
	}

	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Body != nil {
		note.Body = *patch.Body
	}
	if patch.Tags != nil {
		note.Tags = *patch.Tags
	}
	if patch.Pinned != nil {
		note.Pinned = *patch.Pinned
	}
	note.UpdatedAt = s.now()

	s.col.replace(note)
	s.col.persist(ctx)

	s.log.Infow("Note updated", "note_id", note.ID)
	return note, nil
}

// Delete removes the note record; a missing id is a silent no-op. Backing
// attachment files are the attachment manager's responsibility.
func (s *NoteStore) Delete(ctx context.Context, id string) {
	if !s.col.remove(id) {
		return
	}
	s.col.persist(ctx)
	s.log.Infow("Note deleted", "note_id", id)
}

func (s *NoteStore) TogglePin(ctx context.Context, id string) (entities.Note, error) {
	note, ok := s.col.get(id)
	if !ok {
		return entities.Note{}, entities.ErrNoteNotFound
	}

	note.Pinned = !note.Pinned
	note.UpdatedAt = s.now()

	s.col.replace(note)
	s.col.persist(ctx)
	return note, nil
}

// AppendAttachment adds the descriptor to the note's ordered attachment list.
func (s *NoteStore) AppendAttachment(ctx context.Context, noteID string, att entities.NoteAttachment) (entities.Note, error) {
	note, ok := s.col.get(noteID)
	if !ok {
		return entities.Note{}, entities.ErrNoteNotFound
	}

	note.Attachments = append(note.Attachments, att)
	note.UpdatedAt = s.now()

	s.col.replace(note)
	s.col.persist(ctx)

	s.log.Infow("Attachment added", "note_id", noteID, "attachment_id", att.ID)
	return note, nil
}

// RemoveAttachment drops the descriptor and strips its body token.
func (s *NoteStore) RemoveAttachment(ctx context.Context, noteID, attachmentID string) (entities.Note, error) {
	note, ok := s.col.get(noteID)
	if !ok {
		return entities.Note{}, entities.ErrNoteNotFound
	}
	if _, ok := note.Attachment(attachmentID); !ok {
		return entities.Note{}, entities.ErrAttachmentNotFound
	}

	kept := make([]entities.NoteAttachment, 0, len(note.Attachments)-1)
	for _, a := range note.Attachments {
		if a.ID != attachmentID {
			kept = append(kept, a)
		}
	}
	note.Attachments = kept
	note.Body = strings.ReplaceAll(note.Body, entities.AttachmentToken(attachmentID), "")
	note.UpdatedAt = s.now()

	s.col.replace(note)
	s.col.persist(ctx)

	s.log.Infow("Attachment removed", "note_id", noteID, "attachment_id", attachmentID)
	return note, nil
}

func (s *NoteStore) ClearAll(ctx context.Context) {
	s.col.clear()
	s.col.persist(ctx)
	s.log.Infow("All notes cleared")
}
