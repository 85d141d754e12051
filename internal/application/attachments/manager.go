// Package attachments bridges picked images into durable, note-owned files.
// Attachments are app-owned copies rather than references to the picked
// path, so a note keeps working after the source photo disappears.
package attachments

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studentplanner/core/internal/domain/entities"
	"github.com/studentplanner/core/internal/infrastructure/logger"
	"github.com/studentplanner/core/internal/ports"
)

var mimeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".heic": "image/heic",
}

const fallbackMime = "image/jpeg"

// Manager owns the attachment directory lifecycle: attach, detach, note-wide
// cleanup and orphan reconciliation.
type Manager struct {
	notes ports.NoteStore
	files ports.FileStore
	dir   string
	log   *logger.Logger
	now   func() time.Time
	newID func() string
}

func NewManager(notes ports.NoteStore, files ports.FileStore, dir string, log *logger.Logger) *Manager {
	return &Manager{
		notes: notes,
		files: files,
		dir:   dir,
		log:   log.WithComponent("attachments"),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Dir returns the managed attachment directory.
func (m *Manager) Dir() string { return m.dir }

// Attach copies the picked file into the attachment directory under a fresh
// random filename, appends the descriptor to the note and returns it. The id
// is random per file, never content-derived, so two picks of the same image
// never collide.
func (m *Manager) Attach(ctx context.Context, noteID, pickedPath string) (entities.NoteAttachment, error) {
	if _, err := m.notes.GetByID(noteID); err != nil {
		return entities.NoteAttachment{}, err
	}

	if err := m.files.EnsureDir(ctx, m.dir); err != nil {
		return entities.NoteAttachment{}, fmt.Errorf("prepare attachment directory: %w", err)
	}

	id := m.newID()
	dest := filepath.Join(m.dir, id+strings.ToLower(filepath.Ext(pickedPath)))

	if err := m.files.Copy(ctx, pickedPath, dest); err != nil {
		return entities.NoteAttachment{}, fmt.Errorf("copy picked image: %w", err)
	}

	att := entities.NoteAttachment{
		ID:        id,
		URI:       dest,
		MimeType:  mimeFor(pickedPath),
		CreatedAt: m.now(),
	}

	if _, err := m.notes.AppendAttachment(ctx, noteID, att); err != nil {
		// Note vanished between lookup and append; don't strand the copy.
		if derr := m.files.Delete(ctx, dest); derr != nil {
			m.log.Warnw("Failed to remove stranded attachment file", "path", dest, "error", derr.Error())
		}
		return entities.NoteAttachment{}, err
	}

	m.log.Infow("Attachment stored", "note_id", noteID, "attachment_id", id, "mime", att.MimeType)
	return att, nil
}

// Detach removes the descriptor from the note (stripping its body token) and
// deletes the backing file. A missing file is a no-op, not an error; a failed
// delete is logged and does not undo the record change.
func (m *Manager) Detach(ctx context.Context, noteID, attachmentID string) error {
	note, err := m.notes.GetByID(noteID)
	if err != nil {
		return err
	}
	att, ok := note.Attachment(attachmentID)
	if !ok {
		return entities.ErrAttachmentNotFound
	}

	if _, err := m.notes.RemoveAttachment(ctx, noteID, attachmentID); err != nil {
		return err
	}

	if err := m.files.Delete(ctx, att.URI); err != nil {
		m.log.Warnw("Failed to delete attachment file", "path", att.URI, "error", err.Error())
	}
	return nil
}

// DeleteNoteFiles removes every backing file of the note, best effort. Used
// when the note record itself is being deleted.
func (m *Manager) DeleteNoteFiles(ctx context.Context, note entities.Note) {
	for _, att := range note.Attachments {
		if err := m.files.Delete(ctx, att.URI); err != nil {
			m.log.Warnw("Failed to delete attachment file", "note_id", note.ID, "path", att.URI, "error", err.Error())
		}
	}
}

// DeleteNote removes a note together with its attachment files. Deleting an
// absent note is a no-op.
func (m *Manager) DeleteNote(ctx context.Context, noteID string) {
	note, err := m.notes.GetByID(noteID)
	if err == nil {
		m.DeleteNoteFiles(ctx, note)
	}
	m.notes.Delete(ctx, noteID)
}

// Reconcile deletes every file in the attachment directory that no note
// references and returns how many were removed. The referenced set is read
// fresh within the same synchronous pass as the deletion decisions, so a file
// attached moments before the scan is never swept.
func (m *Manager) Reconcile(ctx context.Context) (int, error) {
	names, err := m.files.List(ctx, m.dir)
	if err != nil {
		return 0, fmt.Errorf("list attachment directory: %w", err)
	}
	if len(names) == 0 {
		return 0, nil
	}

	referenced := make(map[string]struct{})
	for _, note := range m.notes.List(ports.NoteFilter{}) {
		for _, att := range note.Attachments {
			referenced[att.URI] = struct{}{}
		}
	}

	deleted := 0
	for _, name := range names {
		full := filepath.Join(m.dir, name)
		if _, ok := referenced[full]; ok {
			continue
		}
		if err := m.files.Delete(ctx, full); err != nil {
			m.log.Warnw("Failed to delete orphaned file", "path", full, "error", err.Error())
			continue
		}
		deleted++
	}

	if deleted > 0 {
		m.log.Infow("Orphaned attachment files removed", "count", deleted)
	}
	return deleted, nil
}

// RenderBody resolves the note's attachment tokens to their current file
// paths for display. Content never stores paths directly.
func (m *Manager) RenderBody(note entities.Note) string {
	body := note.Body
	for _, att := range note.Attachments {
		body = strings.ReplaceAll(body, entities.AttachmentToken(att.ID), att.URI)
	}
	return body
}

func mimeFor(path string) string {
	if mt, ok := mimeByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return mt
	}
	return fallbackMime
}
