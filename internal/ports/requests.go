package ports

import "github.com/studentplanner/core/internal/domain/entities"

// CreateExpenseRequest carries the form fields for a new expense.
type CreateExpenseRequest struct {
	Amount   int64  `validate:"gte=0"`
	Category string `validate:"required"`
	Note     string
	Date     string `validate:"required"`
	Archived bool
}

// UpdateExpenseRequest is a partial patch; nil fields are left untouched.
type UpdateExpenseRequest struct {
	Amount   *int64 `validate:"omitempty,gte=0"`
	Category *string
	Note     *string
	Date     *string
	Archived *bool
}

type CreateNoteRequest struct {
	Title  string
	Body   string
	Tags   []string
	Pinned bool
}

type UpdateNoteRequest struct {
	Title  *string
	Body   *string
	Tags   *[]string
	Pinned *bool
}

type CreateTaskRequest struct {
	Title       string `validate:"required"`
	Description string
	DueDate     string
	RemindAt    string
	Course      string
	Priority    entities.TaskPriority
	Status      entities.TaskStatus
}

type UpdateTaskRequest struct {
	Title       *string
	Description *string
	DueDate     *string
	RemindAt    *string
	Course      *string
	Priority    *entities.TaskPriority
	Status      *entities.TaskStatus
}
