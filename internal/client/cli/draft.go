package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"notehub/internal/client/draft"
	"notehub/internal/domain/entities"
)

func addDraftFlags(cmd *cobra.Command, title, content, tag *string) {
	cmd.Flags().StringVar(title, "title", "", "note title")
	cmd.Flags().StringVar(content, "content", "", "note content")
	cmd.Flags().StringVar(tag, "tag", "", "note tag: Todo, Work, Personal, Meeting, Shopping")
}

// applyDraftFlags переносит в форму только явно заданные флаги.
func applyDraftFlags(cmd *cobra.Command, form *draft.Form, title, content, tag string) {
	if cmd.Flags().Changed("title") {
		form.SetTitle(title)
	}
	if cmd.Flags().Changed("content") {
		form.SetContent(content)
	}
	if cmd.Flags().Changed("tag") {
		form.SetTag(entities.Tag(tag))
	}
}

func newDraftCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "draft",
		Short: "Inspect and edit the saved note draft",
	}

	root.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the saved draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := a.draftStore(cmd.Context()).Draft()

			data, err := json.MarshalIndent(entities.DraftEnvelope{Draft: d}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	})

	var title, content, tag string
	set := &cobra.Command{
		Use:   "set",
		Short: "Update draft fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("tag") {
				if _, err := entities.ParseTag(tag); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			form := draft.NewForm(ctx, a.draftStore(ctx), a.cfg.DraftDelay)
			applyDraftFlags(cmd, form, title, content, tag)
			if err := form.Close(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Draft saved.")
			return nil
		},
	}
	addDraftFlags(set, &title, &content, &tag)
	root.AddCommand(set)

	root.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Reset the draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.draftStore(cmd.Context()).ClearDraft(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Draft cleared.")
			return nil
		},
	})

	return root
}
