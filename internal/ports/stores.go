package ports

import (
	"context"

	"github.com/studentplanner/core/internal/domain/entities"
)

// ExpenseStore defines the interface for expense operations. Exactly one
// method per operation; callers never fall back to raw collection access.
type ExpenseStore interface {
	Load(ctx context.Context) error
	List(filter ExpenseFilter) []entities.Expense
	GetByID(id string) (entities.Expense, error)
	Create(ctx context.Context, req CreateExpenseRequest) (entities.Expense, error)
	Update(ctx context.Context, id string, patch UpdateExpenseRequest) (entities.Expense, error)
	Delete(ctx context.Context, id string)
	Upsert(ctx context.Context, expense entities.Expense)
	ClearAll(ctx context.Context)
}

// NoteStore defines the interface for note operations. Deleting a note's
// attachment files is the attachment manager's job; Delete only removes the
// record.
type NoteStore interface {
	Load(ctx context.Context) error
	List(filter NoteFilter) []entities.Note
	GetByID(id string) (entities.Note, error)
	Create(ctx context.Context, req CreateNoteRequest) (entities.Note, error)
	Update(ctx context.Context, id string, patch UpdateNoteRequest) (entities.Note, error)
	Delete(ctx context.Context, id string)
	TogglePin(ctx context.Context, id string) (entities.Note, error)
	AppendAttachment(ctx context.Context, noteID string, att entities.NoteAttachment) (entities.Note, error)
	RemoveAttachment(ctx context.Context, noteID, attachmentID string) (entities.Note, error)
	ClearAll(ctx context.Context)
}

// TaskStore defines the interface for task operations.
type TaskStore interface {
	Load(ctx context.Context) error
	List(filter TaskFilter) []entities.Task
	GetByID(id string) (entities.Task, error)
	Create(ctx context.Context, req CreateTaskRequest) (entities.Task, error)
	Update(ctx context.Context, id string, patch UpdateTaskRequest) (entities.Task, error)
	Delete(ctx context.Context, id string)
	ToggleComplete(ctx context.Context, id string) (entities.Task, error)
	ClearAll(ctx context.Context)
}

// Filter types for store listings
type ExpenseFilter struct {
	Month           string // "2006-01"; empty matches every month
	Category        string
	ExcludeArchived bool
}

type NoteFilter struct {
	PinnedOnly bool
	Tag        string
}

type TaskFilter struct {
	Status   *entities.TaskStatus
	Priority *entities.TaskPriority
	Course   string
}
