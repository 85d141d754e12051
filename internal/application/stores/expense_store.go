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

const expensesKey = "expenses"

// ExpenseStore owns the persisted expense collection.
type ExpenseStore struct {
	col      collection[entities.Expense]
	validate *validator.Validate
	log      *logger.Logger
	now      func() time.Time
	newID    func() string
}

// NewExpenseStore creates an expense store over the given backend. Call Load
// before use.
func NewExpenseStore(backend ports.Backend, log *logger.Logger) *ExpenseStore {
	return &ExpenseStore{
		col:      newCollection[entities.Expense](expensesKey, backend, log.WithComponent("expense_store")),
		validate: validator.New(),
		log:      log.WithComponent("expense_store"),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

var _ ports.ExpenseStore = (*ExpenseStore)(nil)

func (s *ExpenseStore) Load(ctx context.Context) error {
	return s.col.load(ctx)
}

// List returns the current collection filtered by month, category and
// archived state. The zero filter returns everything.
func (s *ExpenseStore) List(filter ports.ExpenseFilter) []entities.Expense {
	items := s.col.list()
	if filter == (ports.ExpenseFilter{}) {
		return items
	}

	out := items[:0:0]
	for _, e := range items {
		if filter.ExcludeArchived && e.Archived {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(e.Category, filter.Category) {
			continue
		}
		if filter.Month != "" {
			d, err := entities.ParseDate(e.Date)
			if err != nil || d.Format("2006-01") != filter.Month {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

func (s *ExpenseStore) GetByID(id string) (entities.Expense, error) {
	e, ok := s.col.get(id)
	if !ok {
		return entities.Expense{}, entities.ErrExpenseNotFound
	}
	return e, nil
}

func (s *ExpenseStore) Create(ctx context.Context, req ports.CreateExpenseRequest) (entities.Expense, error) {
	if err := s.validate.Struct(req); err != nil {
		return entities.Expense{}, fmt.Errorf("%w: %v", entities.ErrValidation, err)
	}

	now := s.now()
	expense := entities.Expense{
		ID:        s.newID(),
		Amount:    req.Amount,
		Category:  req.Category,
		Note:      req.Note,
		Date:      req.Date,
		Archived:  req.Archived,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.col.prepend(expense)
	s.col.persist(ctx)

	s.log.Infow("Expense created", "expense_id", expense.ID, "amount", expense.Amount, "category", expense.Category)
	return expense, nil
}

func (s *ExpenseStore) Update(ctx context.Context, id string, patch ports.UpdateExpenseRequest) (entities.Expense, error) {
	expense, ok := s.col.get(id)
	if !ok {
		return entities.Expense{}, entities.ErrExpenseNotFound
	}

	if err := s.validate.Struct(patch); err != nil {
		return entities.Expense{}, fmt.Errorf("%w: %v", entities.ErrValidation, err)
	}

	if patch.Amount != nil {
		expense.Amount = *patch.Amount
	}
	if patch.Category != nil {
		expense.Category = *patch.Category
	}
	if patch.Note != nil {
		expense.Note = *patch.Note
	}
	if patch.Date != nil {
		expense.Date = *patch.Date
	}
	if patch.Archived != nil {
		expense.Archived = *patch.Archived
	}
	expense.UpdatedAt = s.now()

	s.col.replace(expense)
	s.col.persist(ctx)

	s.log.Infow("Expense updated", "expense_id", expense.ID)
	return expense, nil
}

// Delete removes the expense unconditionally; a missing id is a silent no-op.
func (s *ExpenseStore) Delete(ctx context.Context, id string) {
	if !s.col.remove(id) {
		return
	}
	s.col.persist(ctx)
	s.log.Infow("Expense deleted", "expense_id", id)
}

// Upsert inserts the expense as given (id and timestamps included), replacing
// any existing expense with the same id. Used by the import boundary.
func (s *ExpenseStore) Upsert(ctx context.Context, expense entities.Expense) {
	if !s.col.replace(expense) {
		s.col.prepend(expense)
	}
	s.col.persist(ctx)
}

func (s *ExpenseStore) ClearAll(ctx context.Context) {
	s.col.clear()
	s.col.persist(ctx)
	s.log.Infow("All expenses cleared")
}
