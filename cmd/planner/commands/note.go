package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studentplanner/core/internal/adapters/localfs"
	"github.com/studentplanner/core/internal/domain/entities"
	"github.com/studentplanner/core/internal/ports"
)

// NewNoteCommand creates the note command group
func NewNoteCommand() *cobra.Command {
	noteCmd := &cobra.Command{
		Use:   "note",
		Short: "Note-taking commands",
		Long:  "Create, list, pin and delete notes, and manage their image attachments",
	}

	noteCmd.AddCommand(newNoteAddCommand())
	noteCmd.AddCommand(newNoteListCommand())
	noteCmd.AddCommand(newNoteShowCommand())
	noteCmd.AddCommand(newNoteDeleteCommand())
	noteCmd.AddCommand(newNotePinCommand())
	noteCmd.AddCommand(newNoteAttachCommand())
	noteCmd.AddCommand(newNoteDetachCommand())
	return noteCmd
}

func newNoteAddCommand() *cobra.Command {
	var title, body string
	var tags []string
	var pinned bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new note",
		Run: run(func(ctx context.Context, a *app, args []string) error {
			note, err := a.notes.Create(ctx, ports.CreateNoteRequest{
				Title:  title,
				Body:   body,
				Tags:   tags,
				Pinned: pinned,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added note %s: %s\n", note.ID, note.Title)
			return nil
		}),
	}

	cmd.Flags().StringVar(&title, "title", "", "Note title")
	cmd.Flags().StringVar(&body, "body", "", "Note body markup")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().BoolVar(&pinned, "pinned", false, "Pin the note")
	return cmd
}

func newNoteListCommand() *cobra.Command {
	var pinnedOnly bool
	var tag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes",
		Run: run(func(ctx context.Context, a *app, args []string) error {
			notes := a.notes.List(ports.NoteFilter{PinnedOnly: pinnedOnly, Tag: tag})
			for _, n := range notes {
				marker := " "
				if n.Pinned {
					marker = "*"
				}
				fmt.Printf("%s %s  %-24s  %d attachment(s)\n", marker, n.ID, n.Title, len(n.Attachments))
			}
			fmt.Printf("%d note(s)\n", len(notes))
			return nil
		}),
	}

	cmd.Flags().BoolVar(&pinnedOnly, "pinned", false, "Only pinned notes")
	cmd.Flags().StringVar(&tag, "tag", "", "Only notes with this tag")
	return cmd
}

func newNoteShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a note with its body rendered",
		Args:  cobra.ExactArgs(1),
		Run: run(func(ctx context.Context, a *app, args []string) error {
			note, err := a.notes.GetByID(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s\n\n%s\n", note.Title, a.manager.RenderBody(note))
			if len(note.Attachments) > 0 {
				fmt.Println("\nAttachments:")
				for _, att := range note.Attachments {
					fmt.Printf("  %s  %s  %s\n", att.ID, att.MimeType, att.URI)
				}
			}
			return nil
		}),
	}
}

func newNoteDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note and its attachment files",
		Args:  cobra.ExactArgs(1),
		Run: run(func(ctx context.Context, a *app, args []string) error {
			a.manager.DeleteNote(ctx, args[0])
			fmt.Println("Deleted")
			return nil
		}),
	}
}

func newNotePinCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pin <id>",
		Short: "Toggle a note's pinned flag",
		Args:  cobra.ExactArgs(1),
		Run: run(func(ctx context.Context, a *app, args []string) error {
			note, err := a.notes.TogglePin(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Pinned: %t\n", note.Pinned)
			return nil
		}),
	}
}

func newNoteAttachCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "attach <note-id>",
		Short: "Attach an image file to a note",
		Args:  cobra.ExactArgs(1),
		Run: run(func(ctx context.Context, a *app, args []string) error {
			picked, err := localfs.PathPicker{Path: file}.Pick(ctx)
			if errors.Is(err, entities.ErrPickCancelled) {
				fmt.Println("No image picked")
				return nil
			}
			if errors.Is(err, entities.ErrPermissionDenied) {
				return fmt.Errorf("cannot read the image; allow file access and retry: %w", err)
			}
			if err != nil {
				return err
			}

			att, err := a.manager.Attach(ctx, args[0], picked)
			if err != nil {
				return err
			}
			fmt.Printf("Attached %s (%s)\nBody token: %s\n", att.ID, att.MimeType, entities.AttachmentToken(att.ID))
			return nil
		}),
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to the image file")
	return cmd
}

func newNoteDetachCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detach <note-id> <attachment-id>",
		Short: "Remove an attachment and delete its file",
		Args:  cobra.ExactArgs(2),
		Run: run(func(ctx context.Context, a *app, args []string) error {
			if err := a.manager.Detach(ctx, args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("Detached")
			return nil
		}),
	}
}
