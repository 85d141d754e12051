package entities

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrValidation         = errors.New("validation failed")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrPickCancelled      = errors.New("image pick cancelled")
	ErrInvalidImport      = errors.New("invalid import payload")
)

// Enums and types
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusDone       TaskStatus = "done"
)

// Expense represents a single tracked expense. Amount is stored in whole
// currency units; Date is the user-entered ISO-8601 string and may be a bare
// calendar date.
type Expense struct {
	ID        string    `json:"id"`
	Amount    int64     `json:"amount"`
	Category  string    `json:"category"`
	Note      string    `json:"note,omitempty"`
	Date      string    `json:"date"`
	Archived  bool      `json:"archived,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteAttachment describes one app-owned attachment file referenced by a note.
type NoteAttachment struct {
	ID        string    `json:"id"`
	URI       string    `json:"uri"`
	MimeType  string    `json:"mimeType"`
	CreatedAt time.Time `json:"createdAt"`
}

// Note represents a rich-text note. The body references attachments through
// {{attachment:ID}} tokens, never through raw file paths.
type Note struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Body        string           `json:"body"`
	Attachments []NoteAttachment `json:"attachments"`
	Tags        []string         `json:"tags,omitempty"`
	Pinned      bool             `json:"pinned,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// Task represents a planner task. PrevStatus holds the non-done status the
// task had before it was last completed, so un-completing restores it.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	DueDate     string       `json:"dueDate,omitempty"`
	RemindAt    string       `json:"remindAt,omitempty"`
	Course      string       `json:"course,omitempty"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	PrevStatus  TaskStatus   `json:"prevStatus,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func (e Expense) EntityID() string { return e.ID }
func (n Note) EntityID() string    { return n.ID }
func (t Task) EntityID() string    { return t.ID }

// Attachment returns the attachment with the given id, if present.
func (n Note) Attachment(id string) (NoteAttachment, bool) {
	for _, a := range n.Attachments {
		if a.ID == id {
			return a, true
		}
	}
	return NoteAttachment{}, false
}

// AttachmentToken is the body placeholder for an attachment. Resolving it to
// a file path happens only at render time.
func AttachmentToken(attachmentID string) string {
	return "{{attachment:" + attachmentID + "}}"
}

// ParseDate parses a user-entered ISO-8601 date, accepting either a full
// RFC3339 timestamp or a bare calendar date.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// Utility methods
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}
