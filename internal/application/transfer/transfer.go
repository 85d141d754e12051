// Package transfer implements the expense export/import boundary of the
// settings surface.
package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/studentplanner/core/internal/domain/entities"
	"github.com/studentplanner/core/internal/ports"
)

// ImportMode selects what happens to the existing collection on import.
type ImportMode string

const (
	// ModeReplace clears the collection before inserting the valid items.
	ModeReplace ImportMode = "replace"
	// ModeAppend upserts the valid items onto the existing collection; an
	// incoming id that already exists replaces that expense in place, which
	// keeps ids unique.
	ModeAppend ImportMode = "append"
)

// Result reports what an import did.
type Result struct {
	Imported int
	Skipped  int
}

// importRow mirrors one pasted JSON element. Pointer fields distinguish
// absent from zero; amount is float because pasted JSON numbers may carry
// fractions, rounded to whole units on acceptance.
type importRow struct {
	ID        *string  `json:"id" validate:"required"`
	Amount    *float64 `json:"amount" validate:"required"`
	Category  *string  `json:"category" validate:"required"`
	Date      *string  `json:"date" validate:"required"`
	Note      *string  `json:"note"`
	CreatedAt *string  `json:"createdAt"`
	UpdatedAt *string  `json:"updatedAt"`
}

// ExportJSON serializes the expenses as an indented JSON array suitable for
// copy-paste.
func ExportJSON(expenses []entities.Expense) (string, error) {
	raw, err := json.MarshalIndent(expenses, "", "  ")
	if err != nil {
		return "", fmt.Errorf("export expenses: %w", err)
	}
	return string(raw), nil
}

// ParseImport parses a pasted JSON array into expenses. Malformed JSON or a
// non-array payload aborts with ErrInvalidImport and zero side effects;
// elements missing required fields (or with wrongly typed ones) are dropped
// and counted. A payload with no valid element is also ErrInvalidImport.
func ParseImport(text string, now time.Time) ([]entities.Expense, int, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(text), &elements); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", entities.ErrInvalidImport, err)
	}

	validate := validator.New()
	var items []entities.Expense
	skipped := 0
	for _, el := range elements {
		var row importRow
		if err := json.Unmarshal(el, &row); err != nil {
			skipped++
			continue
		}
		if err := validate.Struct(row); err != nil {
			skipped++
			continue
		}

		item := entities.Expense{
			ID:        *row.ID,
			Amount:    int64(math.Round(*row.Amount)),
			Category:  *row.Category,
			Date:      *row.Date,
			CreatedAt: now,
		}
		if item.Amount < 0 {
			item.Amount = 0
		}
		if row.Note != nil {
			item.Note = *row.Note
		}
		if row.CreatedAt != nil {
			if t, err := time.Parse(time.RFC3339, *row.CreatedAt); err == nil {
				item.CreatedAt = t
			}
		}
		item.UpdatedAt = item.CreatedAt
		if row.UpdatedAt != nil {
			if t, err := time.Parse(time.RFC3339, *row.UpdatedAt); err == nil && !t.Before(item.CreatedAt) {
				item.UpdatedAt = t
			}
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, skipped, fmt.Errorf("%w: no valid expense items", entities.ErrInvalidImport)
	}
	return items, skipped, nil
}

// Apply writes parsed items into the store according to the mode.
func Apply(ctx context.Context, store ports.ExpenseStore, items []entities.Expense, mode ImportMode) (Result, error) {
	switch mode {
	case ModeReplace:
		store.ClearAll(ctx)
	case ModeAppend:
	default:
		return Result{}, fmt.Errorf("%w: unknown import mode %q", entities.ErrInvalidImport, mode)
	}

	for _, item := range items {
		store.Upsert(ctx, item)
	}
	return Result{Imported: len(items)}, nil
}

// Import is the one-call form: parse then apply.
func Import(ctx context.Context, store ports.ExpenseStore, text string, mode ImportMode) (Result, error) {
	items, skipped, err := ParseImport(text, time.Now())
	if err != nil {
		return Result{Skipped: skipped}, err
	}
	res, err := Apply(ctx, store, items, mode)
	res.Skipped = skipped
	return res, err
}
