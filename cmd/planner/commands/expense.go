package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/studentplanner/core/internal/application/analytics"
	"github.com/studentplanner/core/internal/application/transfer"
	"github.com/studentplanner/core/internal/ports"
)

// NewExpenseCommand creates the expense command group
func NewExpenseCommand() *cobra.Command {
	expenseCmd := &cobra.Command{
		Use:   "expense",
		Short: "Expense tracking commands",
		Long:  "Create, list, delete, export and import expenses",
	}

	expenseCmd.AddCommand(newExpenseAddCommand())
	expenseCmd.AddCommand(newExpenseListCommand())
	expenseCmd.AddCommand(newExpenseDeleteCommand())
	expenseCmd.AddCommand(newExpenseArchiveCommand())
	expenseCmd.AddCommand(newExpenseSummaryCommand())
	expenseCmd.AddCommand(newExpenseExportCommand())
	expenseCmd.AddCommand(newExpenseImportCommand())
	expenseCmd.AddCommand(newExpenseClearCommand())
	return expenseCmd
}

func newExpenseAddCommand() *cobra.Command {
	var amount int64
	var category, note, date string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new expense",
		Run: run(func(ctx context.Context, a *app, args []string) error {
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}
			expense, err := a.expenses.Create(ctx, ports.CreateExpenseRequest{
				Amount:   amount,
				Category: category,
				Note:     note,
				Date:     date,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added expense %s: %d (%s)\n", expense.ID, expense.Amount, expense.Category)
			return nil
		}),
	}

	cmd.Flags().Int64Var(&amount, "amount", 0, "Amount in whole currency units (required)")
	cmd.Flags().StringVar(&category, "category", "", "Category (required)")
	cmd.Flags().StringVar(&note, "note", "", "Optional note")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, defaults to today)")
	return cmd
}

func newExpenseListCommand() *cobra.Command {
	var month, category string
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Run: run(func(ctx context.Context, a *app, args []string) error {
			expenses := a.expenses.List(ports.ExpenseFilter{
				Month:           month,
				Category:        category,
				ExcludeArchived: activeOnly,
			})
			for _, e := range expenses {
				marker := " "
				if e.Archived {
					marker = "A"
				}
				fmt.Printf("%s %s  %10s  %8d  %-16s %s\n", marker, e.ID, e.Date, e.Amount, e.Category, e.Note)
			}
			fmt.Printf("%d expense(s)\n", len(expenses))
			return nil
		}),
	}

	cmd.Flags().StringVar(&month, "month", "", "Only this month (YYYY-MM)")
	cmd.Flags().StringVar(&category, "category", "", "Only this category")
	cmd.Flags().BoolVar(&activeOnly, "active-only", false, "Exclude archived expenses")
	return cmd
}

func newExpenseDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		Run: run(func(ctx context.Context, a *app, args []string) error {
			a.expenses.Delete(ctx, args[0])
			fmt.Println("Deleted")
			return nil
		}),
	}
}

func newExpenseArchiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Toggle an expense's archived flag",
		Args:  cobra.ExactArgs(1),
		Run: run(func(ctx context.Context, a *app, args []string) error {
			expense, err := a.expenses.GetByID(args[0])
			if err != nil {
				return err
			}
			archived := !expense.Archived
			if _, err := a.expenses.Update(ctx, args[0], ports.UpdateExpenseRequest{Archived: &archived}); err != nil {
				return err
			}
			fmt.Printf("Archived: %t\n", archived)
			return nil
		}),
	}
}

func newExpenseSummaryCommand() *cobra.Command {
	var month string
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the total and category breakdown",
		Run: run(func(ctx context.Context, a *app, args []string) error {
			if month == "" {
				month = time.Now().Format("2006-01")
			}
			expenses := analytics.FilterMonth(a.expenses.List(ports.ExpenseFilter{}), month, !activeOnly)

			fmt.Printf("%s total: %d\n", month, analytics.TotalAmount(expenses))
			for _, share := range analytics.CategoryShares(expenses) {
				fmt.Printf("  %-20s %8d  %3d%%\n", share.Category, share.Total, share.Percent)
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to summarize (YYYY-MM, defaults to the current one)")
	cmd.Flags().BoolVar(&activeOnly, "active-only", false, "Exclude archived expenses")
	return cmd
}

func newExpenseExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the expense collection as JSON",
		Run: run(func(ctx context.Context, a *app, args []string) error {
			out, err := transfer.ExportJSON(a.expenses.List(ports.ExpenseFilter{}))
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		}),
	}
}

func newExpenseImportCommand() *cobra.Command {
	var mode, file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import expenses from a JSON file",
		Run: run(func(ctx context.Context, a *app, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			res, err := transfer.Import(ctx, a.expenses, string(raw), transfer.ImportMode(mode))
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d item(s), skipped %d invalid\n", res.Imported, res.Skipped)
			return nil
		}),
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to the JSON array (required)")
	cmd.Flags().StringVar(&mode, "mode", string(transfer.ModeAppend), "Import mode: append or replace")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newExpenseClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every expense",
		Run: run(func(ctx context.Context, a *app, args []string) error {
			a.expenses.ClearAll(ctx)
			fmt.Println("All expenses removed")
			return nil
		}),
	}
}
