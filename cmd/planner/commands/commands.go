package commands

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/studentplanner/core/internal/adapters/localfs"
	"github.com/studentplanner/core/internal/adapters/storage"
	"github.com/studentplanner/core/internal/application/analytics"
	"github.com/studentplanner/core/internal/application/attachments"
	"github.com/studentplanner/core/internal/application/stores"
	"github.com/studentplanner/core/internal/infrastructure/config"
	"github.com/studentplanner/core/internal/infrastructure/logger"
	"github.com/studentplanner/core/internal/ports"
)

// app is the composition root: every command constructs its stores explicitly
// here and injects them, rather than reaching for process-wide state.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	expenses *stores.ExpenseStore
	notes    *stores.NoteStore
	tasks    *stores.TaskStore
	manager  *attachments.Manager
	closeFns []func() error
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	a := &app{cfg: cfg, log: appLogger}
	a.closeFns = append(a.closeFns, appLogger.Close)

	var backend ports.Backend
	switch cfg.Storage.Backend {
	case "sqlite":
		sb, err := storage.NewSQLiteBackend(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		a.closeFns = append(a.closeFns, sb.Close)
		backend = sb
	default:
		fb, err := storage.NewFileBackend(cfg.Storage.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open file backend: %w", err)
		}
		backend = fb
	}

	a.expenses = stores.NewExpenseStore(backend, appLogger)
	a.notes = stores.NewNoteStore(backend, appLogger)
	a.tasks = stores.NewTaskStore(backend, appLogger)
	a.manager = attachments.NewManager(a.notes, localfs.NewStore(), cfg.Attachments.Dir, appLogger)

	for _, load := range []func(context.Context) error{a.expenses.Load, a.notes.Load, a.tasks.Load} {
		if err := load(ctx); err != nil {
			return nil, fmt.Errorf("load collections: %w", err)
		}
	}

	// Opportunistic orphan sweep; never blocks startup.
	if _, err := a.manager.Reconcile(ctx); err != nil {
		appLogger.Warnw("Attachment reconciliation failed", "error", err.Error())
	}

	return a, nil
}

func (a *app) close() {
	for i := len(a.closeFns) - 1; i >= 0; i-- {
		_ = a.closeFns[i]()
	}
}

// run wraps a command body with app setup and teardown.
func run(body func(ctx context.Context, a *app, args []string) error) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		a, err := openApp(ctx)
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer a.close()
		if err := body(ctx, a, args); err != nil {
			a.log.Errorw("Command failed", "error", err.Error())
			log.Fatalf("Error: %v", err)
		}
	}
}

// NewAnalyticsCommand creates the analytics command
func NewAnalyticsCommand() *cobra.Command {
	var days, months int
	var month string
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show expense analytics",
		Long:  "Print totals, category breakdown and time series for the expense collection",
		Run: run(func(ctx context.Context, a *app, args []string) error {
			expenses := a.expenses.List(ports.ExpenseFilter{})
			if month != "" {
				expenses = analytics.FilterMonth(expenses, month, !activeOnly)
			}

			fmt.Printf("Total: %d\n\n", analytics.TotalAmount(expenses))

			fmt.Println("By category:")
			for _, share := range analytics.CategoryShares(expenses) {
				fmt.Printf("  %-20s %8d  %3d%%\n", share.Category, share.Total, share.Percent)
			}

			now := time.Now()
			daily := analytics.DailySeries(expenses, days, now)
			fmt.Printf("\nLast %d days:\n", days)
			for i, label := range daily.Labels {
				fmt.Printf("  %s  %d\n", label, daily.Values[i])
			}

			monthly := analytics.MonthlySeries(expenses, months, now)
			fmt.Printf("\nLast %d months:\n", months)
			for i, label := range monthly.Labels {
				fmt.Printf("  %s  %d\n", label, monthly.Values[i])
			}
			return nil
		}),
	}

	cmd.Flags().IntVar(&days, "days", 7, "Days in the daily series")
	cmd.Flags().IntVar(&months, "months", 6, "Months in the monthly series")
	cmd.Flags().StringVar(&month, "month", "", "Restrict to one month (YYYY-MM)")
	cmd.Flags().BoolVar(&activeOnly, "active-only", false, "Exclude archived expenses")
	return cmd
}

// NewReconcileCommand creates the attachment reconcile command
func NewReconcileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Delete orphaned attachment files",
		Run: run(func(ctx context.Context, a *app, args []string) error {
			deleted, err := a.manager.Reconcile(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Removed %d orphaned file(s)\n", deleted)
			return nil
		}),
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Student Planner version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Student Planner Core v1.0.0")
		},
	}
}
