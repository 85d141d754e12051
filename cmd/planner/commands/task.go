package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studentplanner/core/internal/domain/entities"
	"github.com/studentplanner/core/internal/ports"
)

// NewTaskCommand creates the task command group
func NewTaskCommand() *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Task planning commands",
		Long:  "Create, list, update, complete and delete planner tasks",
	}

	taskCmd.AddCommand(newTaskAddCommand())
	taskCmd.AddCommand(newTaskListCommand())
	taskCmd.AddCommand(newTaskUpdateCommand())
	taskCmd.AddCommand(newTaskDoneCommand())
	taskCmd.AddCommand(newTaskDeleteCommand())
	return taskCmd
}

func newTaskAddCommand() *cobra.Command {
	var title, description, due, remind, course, priority, status string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new task",
		Run: run(func(ctx context.Context, a *app, args []string) error {
			task, err := a.tasks.Create(ctx, ports.CreateTaskRequest{
				Title:       title,
				Description: description,
				DueDate:     due,
				RemindAt:    remind,
				Course:      course,
				Priority:    entities.TaskPriority(priority),
				Status:      entities.TaskStatus(status),
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added task %s: %s [%s/%s]\n", task.ID, task.Title, task.Priority, task.Status)
			return nil
		}),
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title (required)")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	cmd.Flags().StringVar(&due, "due", "", "Due date (ISO-8601)")
	cmd.Flags().StringVar(&remind, "remind", "", "Reminder time (ISO-8601)")
	cmd.Flags().StringVar(&course, "course", "", "Course name")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority: low, medium, high (default medium)")
	cmd.Flags().StringVar(&status, "status", "", "Status: todo, in-progress, done (default todo)")
	return cmd
}

func newTaskListCommand() *cobra.Command {
	var status, priority, course string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Run: run(func(ctx context.Context, a *app, args []string) error {
			filter := ports.TaskFilter{Course: course}
			if status != "" {
				s := entities.TaskStatus(status)
				filter.Status = &s
			}
			if priority != "" {
				p := entities.TaskPriority(priority)
				filter.Priority = &p
			}

			tasks := a.tasks.List(filter)
			for _, t := range tasks {
				fmt.Printf("%s  %-24s  %-11s %-6s  due %s\n", t.ID, t.Title, t.Status, t.Priority, t.DueDate)
			}
			fmt.Printf("%d task(s)\n", len(tasks))
			return nil
		}),
	}

	cmd.Flags().StringVar(&status, "status", "", "Only this status")
	cmd.Flags().StringVar(&priority, "priority", "", "Only this priority")
	cmd.Flags().StringVar(&course, "course", "", "Only this course")
	return cmd
}

func newTaskUpdateCommand() *cobra.Command {
	var title, description, due, remind, course, priority, status string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update task fields",
		Args:  cobra.ExactArgs(1),
		Run: run(func(ctx context.Context, a *app, args []string) error {
			patch := ports.UpdateTaskRequest{}
			if title != "" {
				patch.Title = &title
			}
			if description != "" {
				patch.Description = &description
			}
			if due != "" {
				patch.DueDate = &due
			}
			if remind != "" {
				patch.RemindAt = &remind
			}
			if course != "" {
				patch.Course = &course
			}
			if priority != "" {
				p := entities.TaskPriority(priority)
				patch.Priority = &p
			}
			if status != "" {
				s := entities.TaskStatus(status)
				patch.Status = &s
			}

			task, err := a.tasks.Update(ctx, args[0], patch)
			if err != nil {
				return err
			}
			fmt.Printf("Updated task %s [%s/%s]\n", task.ID, task.Priority, task.Status)
			return nil
		}),
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&due, "due", "", "New due date")
	cmd.Flags().StringVar(&remind, "remind", "", "New reminder time")
	cmd.Flags().StringVar(&course, "course", "", "New course")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority")
	cmd.Flags().StringVar(&status, "status", "", "New status")
	return cmd
}

func newTaskDoneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task between done and its prior status",
		Args:  cobra.ExactArgs(1),
		Run: run(func(ctx context.Context, a *app, args []string) error {
			task, err := a.tasks.ToggleComplete(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Task %s is now %s\n", task.ID, task.Status)
			return nil
		}),
	}
}

func newTaskDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		Run: run(func(ctx context.Context, a *app, args []string) error {
			a.tasks.Delete(ctx, args[0])
			fmt.Println("Deleted")
			return nil
		}),
	}
}
