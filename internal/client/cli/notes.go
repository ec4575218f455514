package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"notehub/internal/client/draft"
	"notehub/internal/client/listview"
	"notehub/internal/domain/entities"
	"notehub/internal/domain/routes"
)

func newNotesCommand(a *app) *cobra.Command {
	var q entities.NotesQuery

	cmd := &cobra.Command{
		Use:   "notes",
		Short: "List notes filtered by tag and search text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q = q.Normalize()
			if q.Tag != "" {
				if _, err := entities.ParseTag(q.Tag); err != nil {
					return err
				}
			}

			if _, err := a.requireSession(cmd, routes.NotesPath+"/filter/"+q.TagKey()); err != nil {
				return err
			}

			view := listview.New(cmd.Context(), a.api, q,
				listview.WithDebounce(a.cfg.Debounce),
				listview.WithStaleTime(a.cfg.CacheTTL))
			view.Wait()
			s := view.Snapshot()
			view.Close()

			if s.Err != nil {
				return fmt.Errorf("%s: %w", MsgSomethingWentWrong, s.Err)
			}

			out := cmd.OutOrStdout()
			if len(s.Notes) == 0 {
				fmt.Fprintln(out, "No notes found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTAG\tTITLE")
			for _, n := range s.Notes {
				fmt.Fprintf(w, "%s\t%s\t%s\n", n.ID, n.Tag, n.Title)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Page %d of %d (tag: %s)\n", s.Page, s.TotalPages, s.Tag)
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Tag, "tag", entities.TagAll, "tag filter: all, Todo, Work, Personal, Meeting, Shopping")
	cmd.Flags().StringVar(&q.Search, "search", "", "search text")
	cmd.Flags().IntVar(&q.Page, "page", entities.DefaultPage, "page number")

	return cmd
}

func newNoteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "note <id>",
		Short: "Show a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(cmd, routes.NotesPath+"/"+args[0]); err != nil {
				return err
			}

			note, err := a.api.GetNote(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, entities.ErrNoteNotFound) {
					return errors.New(MsgNoteNotFound)
				}
				return fmt.Errorf("%s: %w", MsgSomethingWentWrong, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s [%s]\n\n%s\n", note.Title, note.Tag, note.Content)
			if !note.CreatedAt.IsZero() {
				fmt.Fprintf(out, "\nCreated %s\n", note.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func newCreateCommand(a *app) *cobra.Command {
	var title, content, tag string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note from the saved draft and flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if _, err := a.requireSession(cmd, routes.NotesPath+"/action/create"); err != nil {
				return err
			}

			form := draft.NewForm(ctx, a.draftStore(ctx), a.cfg.DraftDelay)
			applyDraftFlags(cmd, form, title, content, tag)

			note, err := form.Submit(ctx, a.api)
			if err != nil {
				// Правки из флагов остаются в черновике для следующей попытки.
				_ = form.Close()
				if errors.Is(err, draft.ErrInvalidNote) {
					return err
				}
				return fmt.Errorf("%s: %w", MsgSomethingWentWrong, err)
			}
			if err := form.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created note %s\n", note.ID)
			return nil
		},
	}
	addDraftFlags(cmd, &title, &content, &tag)

	return cmd
}

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(cmd, routes.NotesPath+"/"+args[0]); err != nil {
				return err
			}

			note, err := a.api.DeleteNote(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, entities.ErrNoteNotFound) {
					return errors.New(MsgNoteNotFound)
				}
				return fmt.Errorf("%s: %w", MsgSomethingWentWrong, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted note %s\n", note.ID)
			return nil
		},
	}
}
