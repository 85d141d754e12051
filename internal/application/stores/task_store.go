package stores

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/studentplanner/core/internal/domain/entities"
	"github.com/studentplanner/core/internal/infrastructure/logger"
	"github.com/studentplanner/core/internal/ports"
)

const tasksKey = "tasks"

// TaskStore owns the persisted task collection.
type TaskStore struct {
	col      collection[entities.Task]
	validate *validator.Validate
	log      *logger.Logger
	now      func() time.Time
	newID    func() string
}

// NewTaskStore creates a task store over the given backend. Call Load before
// use.
func NewTaskStore(backend ports.Backend, log *logger.Logger) *TaskStore {
	return &TaskStore{
		col:      newCollection[entities.Task](tasksKey, backend, log.WithComponent("task_store")),
		validate: validator.New(),
		log:      log.WithComponent("task_store"),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

var _ ports.TaskStore = (*TaskStore)(nil)

func (s *TaskStore) Load(ctx context.Context) error {
	return s.col.load(ctx)
}

func (s *TaskStore) List(filter ports.TaskFilter) []entities.Task {
	items := s.col.list()
	if filter.Status == nil && filter.Priority == nil && filter.Course == "" {
		return items
	}

	out := items[:0:0]
	for _, t := range items {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && t.Priority != *filter.Priority {
			continue
		}
		if filter.Course != "" && !strings.EqualFold(t.Course, filter.Course) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s *TaskStore) GetByID(id string) (entities.Task, error) {
	t, ok := s.col.get(id)
	if !ok {
		return entities.Task{}, entities.ErrTaskNotFound
	}
	return t, nil
}

func (s *TaskStore) Create(ctx context.Context, req ports.CreateTaskRequest) (entities.Task, error) {
	if err := s.validate.Struct(req); err != nil {
		return entities.Task{}, fmt.Errorf("%w: %v", entities.ErrValidation, err)
	}

	priority := req.Priority
	if priority == "" {
		priority = entities.TaskPriorityMedium
	}
	status := req.Status
	if status == "" {
		status = entities.TaskStatusTodo
	}
	if !priority.IsValid() {
		return entities.Task{}, fmt.Errorf("%w: invalid priority %q", entities.ErrValidation, priority)
	}
	if !status.IsValid() {
		return entities.Task{}, fmt.Errorf("%w: invalid status %q", entities.ErrValidation, status)
	}

	now := s.now()
	task := entities.Task{
		ID:          s.newID(),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		RemindAt:    req.RemindAt,
		Course:      req.Course,
		Priority:    priority,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.col.prepend(task)
	s.col.persist(ctx)

	s.log.Infow("Task created", "task_id", task.ID, "title", task.Title)
	return task, nil
}

func (s *TaskStore) Update(ctx context.Context, id string, patch ports.UpdateTaskRequest) (entities.Task, error) {
	task, ok := s.col.get(id)
	if !ok {
		return entities.Task{}, entities.ErrTaskNotFound
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.DueDate != nil {
		task.DueDate = *patch.DueDate
	}
	if patch.RemindAt != nil {
		task.RemindAt = *patch.RemindAt
	}
	if patch.Course != nil {
		task.Course = *patch.Course
	}
	if patch.Priority != nil {
		if !patch.Priority.IsValid() {
			return entities.Task{}, fmt.Errorf("%w: invalid priority %q", entities.ErrValidation, *patch.Priority)
		}
		task.Priority = *patch.Priority
	}
	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return entities.Task{}, fmt.Errorf("%w: invalid status %q", entities.ErrValidation, *patch.Status)
		}
		task.Status = *patch.Status
	}
	task.UpdatedAt = s.now()

	s.col.replace(task)
	s.col.persist(ctx)

	s.log.Infow("Task updated", "task_id", task.ID)
	return task, nil
}

// Delete removes the task unconditionally; a missing id is a silent no-op.
func (s *TaskStore) Delete(ctx context.Context, id string) {
	if !s.col.remove(id) {
		return
	}
	s.col.persist(ctx)
	s.log.Infow("Task deleted", "task_id", id)
}

// ToggleComplete flips a task in and out of done. Completing remembers the
// status the task had; un-completing restores it (todo when nothing was
// recorded), so an in-progress task survives a done/undone round trip.
func (s *TaskStore) ToggleComplete(ctx context.Context, id string) (entities.Task, error) {
	task, ok := s.col.get(id)
	if !ok {
		return entities.Task{}, entities.ErrTaskNotFound
	}

	if task.Status == entities.TaskStatusDone {
		restored := task.PrevStatus
		if restored == "" || restored == entities.TaskStatusDone {
			restored = entities.TaskStatusTodo
		}
		task.Status = restored
		task.PrevStatus = ""
	} else {
		task.PrevStatus = task.Status
		task.Status = entities.TaskStatusDone
	}
	task.UpdatedAt = s.now()

	s.col.replace(task)
	s.col.persist(ctx)

	s.log.Infow("Task completion toggled", "task_id", id, "status", task.Status)
	return task, nil
}

func (s *TaskStore) ClearAll(ctx context.Context) {
	s.col.clear()
	s.col.persist(ctx)
	s.log.Infow("All tasks cleared")
}
