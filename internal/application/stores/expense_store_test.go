package stores

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studentplanner/core/internal/adapters/storage"
	"github.com/studentplanner/core/internal/domain/entities"
	"github.com/studentplanner/core/internal/infrastructure/logger"
	"github.com/studentplanner/core/internal/ports"
)

func testExpenseStore(t *testing.T) (*ExpenseStore, *storage.MemoryBackend) {
	t.Helper()
	backend := storage.NewMemoryBackend()
	s := NewExpenseStore(backend, logger.NewNop())

	base := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return s, backend
}

func TestExpenseStore_AddThenList(t *testing.T) {
	s, _ := testExpenseStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, ports.CreateExpenseRequest{Amount: 120, Category: "Food", Date: "2025-01-10"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	list := s.List(ports.ExpenseFilter{})
	if len(list) != 1 {
		t.Fatalf("List() returned %d expenses, want 1", len(list))
	}
	if list[0].ID != created.ID || list[0].Amount != 120 {
		t.Errorf("List()[0] = %+v, want amount 120 with id %s", list[0], created.ID)
	}
	if !created.UpdatedAt.Equal(created.CreatedAt) {
		t.Errorf("new expense UpdatedAt = %v, want equal to CreatedAt %v", created.UpdatedAt, created.CreatedAt)
	}
}

func TestExpenseStore_CreatePrependsAndKeepsIDsUnique(t *testing.T) {
	s, _ := testExpenseStore(t)
	ctx := context.Background()

	var lastID string
	seen := map[string]bool{}
	for i := 0; i < 25; i++ {
		e, err := s.Create(ctx, ports.CreateExpenseRequest{Amount: int64(i), Category: "Misc", Date: "2025-01-10"})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if seen[e.ID] {
			t.Fatalf("duplicate id %s", e.ID)
		}
		seen[e.ID] = true
		lastID = e.ID
	}

	list := s.List(ports.ExpenseFilter{})
	if list[0].ID != lastID {
		t.Errorf("most recent creation should be first, got %s want %s", list[0].ID, lastID)
	}
}

func TestExpenseStore_CreateValidation(t *testing.T) {
	s, _ := testExpenseStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  ports.CreateExpenseRequest
	}{
		{name: "negative amount", req: ports.CreateExpenseRequest{Amount: -5, Category: "Food", Date: "2025-01-10"}},
		{name: "missing category", req: ports.CreateExpenseRequest{Amount: 5, Date: "2025-01-10"}},
		{name: "missing date", req: ports.CreateExpenseRequest{Amount: 5, Category: "Food"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Create(ctx, tt.req); !errors.Is(err, entities.ErrValidation) {
				t.Errorf("Create() error = %v, want ErrValidation", err)
			}
		})
	}

	if got := len(s.List(ports.ExpenseFilter{})); got != 0 {
		t.Errorf("rejected creates must not mutate the collection, got %d items", got)
	}
}

func TestExpenseStore_UpdatePreservesIdentity(t *testing.T) {
	s, _ := testExpenseStore(t)
	ctx := context.Background()

	created, _ := s.Create(ctx, ports.CreateExpenseRequest{Amount: 10, Category: "Food", Date: "2025-01-10"})

	amount := int64(42)
	updated, err := s.Update(ctx, created.ID, ports.UpdateExpenseRequest{Amount: &amount})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.ID != created.ID {
		t.Errorf("Update() changed id: %s -> %s", created.ID, updated.ID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("Update() changed CreatedAt: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("UpdatedAt %v not after previous %v", updated.UpdatedAt, created.UpdatedAt)
	}
	if updated.Amount != 42 || updated.Category != "Food" {
		t.Errorf("merge wrong: %+v", updated)
	}
}

func TestExpenseStore_UpdateNotFound(t *testing.T) {
	s, _ := testExpenseStore(t)

	if _, err := s.Update(context.Background(), "nope", ports.UpdateExpenseRequest{}); !errors.Is(err, entities.ErrExpenseNotFound) {
		t.Errorf("Update() error = %v, want ErrExpenseNotFound", err)
	}

	// A missing expense wins over a bad patch.
	bad := int64(-1)
	if _, err := s.Update(context.Background(), "nope", ports.UpdateExpenseRequest{Amount: &bad}); !errors.Is(err, entities.ErrExpenseNotFound) {
		t.Errorf("Update() with invalid patch error = %v, want ErrExpenseNotFound", err)
	}
}

func TestExpenseStore_UpdateRejectsInvalidPatch(t *testing.T) {
	s, _ := testExpenseStore(t)
	ctx := context.Background()

	created, _ := s.Create(ctx, ports.CreateExpenseRequest{Amount: 10, Category: "Food", Date: "2025-01-10"})

	bad := int64(-1)
	if _, err := s.Update(ctx, created.ID, ports.UpdateExpenseRequest{Amount: &bad}); !errors.Is(err, entities.ErrValidation) {
		t.Errorf("Update() error = %v, want ErrValidation", err)
	}
	got, _ := s.GetByID(created.ID)
	if got.Amount != 10 {
		t.Errorf("rejected patch mutated the expense: %+v", got)
	}
}

func TestExpenseStore_DeleteIdempotent(t *testing.T) {
	s, _ := testExpenseStore(t)
	ctx := context.Background()

	created, _ := s.Create(ctx, ports.CreateExpenseRequest{Amount: 10, Category: "Food", Date: "2025-01-10"})

	s.Delete(ctx, created.ID)
	s.Delete(ctx, created.ID)
	s.Delete(ctx, "never-existed")

	if got := len(s.List(ports.ExpenseFilter{})); got != 0 {
		t.Errorf("List() after deletes = %d items, want 0", got)
	}
}

func TestExpenseStore_MonthFilterWithArchived(t *testing.T) {
	s, _ := testExpenseStore(t)
	ctx := context.Background()

	s.Upsert(ctx, entities.Expense{ID: "1", Amount: 10, Category: "A", Date: "2025-01-05", Archived: true})
	s.Upsert(ctx, entities.Expense{ID: "2", Amount: 20, Category: "B", Date: "2025-01-06"})

	active := s.List(ports.ExpenseFilter{Month: "2025-01", ExcludeArchived: true})
	if len(active) != 1 || active[0].ID != "2" {
		t.Errorf("active-only filter = %+v, want only id 2", active)
	}

	all := s.List(ports.ExpenseFilter{Month: "2025-01"})
	if len(all) != 2 {
		t.Errorf("include-archived filter returned %d items, want 2", len(all))
	}
}

func TestExpenseStore_WriteThroughFailureKeepsMutation(t *testing.T) {
	s, backend := testExpenseStore(t)
	ctx := context.Background()

	backend.SetErr = errors.New("disk full")

	created, err := s.Create(ctx, ports.CreateExpenseRequest{Amount: 10, Category: "Food", Date: "2025-01-10"})
	if err != nil {
		t.Fatalf("Create() must succeed despite persistence failure, got %v", err)
	}
	if _, err := s.GetByID(created.ID); err != nil {
		t.Errorf("GetByID() after failed write-through error = %v", err)
	}
}

func TestExpenseStore_LoadFailsOpen(t *testing.T) {
	backend := storage.NewMemoryBackend()
	backend.Seed("expenses", "{definitely not json")

	s := NewExpenseStore(backend, logger.NewNop())
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load() with malformed blob error = %v, want nil", err)
	}
	if got := len(s.List(ports.ExpenseFilter{})); got != 0 {
		t.Errorf("malformed blob should load as empty, got %d items", got)
	}
}

func TestExpenseStore_PersistenceRoundTrip(t *testing.T) {
	s, backend := testExpenseStore(t)
	ctx := context.Background()

	first, _ := s.Create(ctx, ports.CreateExpenseRequest{Amount: 10, Category: "Food", Note: "lunch", Date: "2025-01-10"})
	second, _ := s.Create(ctx, ports.CreateExpenseRequest{Amount: 20, Category: "Books", Date: "2025-01-11"})

	reloaded := NewExpenseStore(backend, logger.NewNop())
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	list := reloaded.List(ports.ExpenseFilter{})
	if len(list) != 2 {
		t.Fatalf("reloaded %d expenses, want 2", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Errorf("order lost on reload: %s, %s", list[0].ID, list[1].ID)
	}
	if list[1].Note != "lunch" || !list[1].CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("fields lost on reload: %+v", list[1])
	}
}

func TestExpenseStore_UpsertReplacesInPlace(t *testing.T) {
	s, _ := testExpenseStore(t)
	ctx := context.Background()

	s.Upsert(ctx, entities.Expense{ID: "a", Amount: 1, Category: "X", Date: "2025-01-01"})
	s.Upsert(ctx, entities.Expense{ID: "b", Amount: 2, Category: "Y", Date: "2025-01-02"})
	s.Upsert(ctx, entities.Expense{ID: "a", Amount: 9, Category: "X", Date: "2025-01-01"})

	list := s.List(ports.ExpenseFilter{})
	if len(list) != 2 {
		t.Fatalf("Upsert by existing id must not grow the collection, got %d items", len(list))
	}
	got, _ := s.GetByID("a")
	if got.Amount != 9 {
		t.Errorf("upserted amount = %d, want 9", got.Amount)
	}
}

func TestExpenseStore_ClearAll(t *testing.T) {
	s, backend := testExpenseStore(t)
	ctx := context.Background()

	s.Create(ctx, ports.CreateExpenseRequest{Amount: 10, Category: "Food", Date: "2025-01-10"})
	s.ClearAll(ctx)

	if got := len(s.List(ports.ExpenseFilter{})); got != 0 {
		t.Fatalf("ClearAll left %d items", got)
	}

	reloaded := NewExpenseStore(backend, logger.NewNop())
	reloaded.Load(ctx)
	if got := len(reloaded.List(ports.ExpenseFilter{})); got != 0 {
		t.Errorf("ClearAll not persisted, reloaded %d items", got)
	}
}
