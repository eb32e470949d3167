package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"notekeeper/internal/notes/api"
	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/domain/query"
)

func newNotesCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Query and edit notes",
	}
	cmd.AddCommand(
		newNotesListCommand(s),
		newNotesAddCommand(s),
		newNotesEditCommand(s),
		newNotesRemoveCommand(s),
		newNotesHistoryCommand(s),
	)
	return cmd
}

func newNotesListCommand(s *session) *cobra.Command {
	var (
		params  api.ListParams
		allTags bool
	)
	sortFlag := SortDateDesc

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes of a notebook, or search across all notebooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params.Sort = sortFlag.String()
			if allTags {
				params.TagMode = string(query.TagModeAll)
			}

			res, err := s.client.ListNotes(cmd.Context(), params)
			if err != nil {
				return err
			}
			if s.asJSON {
				return printJSON(cmd.OutOrStdout(), res)
			}

			out := cmd.OutOrStdout()
			if res.Notebook != nil {
				fmt.Fprintf(out, "Notebook: %s\n", res.Notebook.Title)
			}
			return printNotes(out, res.Notes)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&params.Notebook, "notebook", "", "Notebook id")
	flags.StringVar(&params.Search, "search", "", "Case-insensitive text search across all notebooks")
	flags.StringArrayVar(&params.Tags, "tag", nil, "Only notes carrying this tag (repeatable, all must match)")
	flags.BoolVar(&allTags, "all-tags", false, "Ignore the tag filter")
	flags.Var(&sortFlag, "sort", "Sort order. Options: date-desc, date-asc, title-asc, title-desc")
	return cmd
}

func newNotesAddCommand(s *session) *cobra.Command {
	var req api.CreateNoteRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			note, err := s.client.CreateNote(cmd.Context(), req)
			if err != nil {
				return err
			}
			return s.printNote(cmd.OutOrStdout(), note)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.NotebookID, "notebook", "", "Notebook id")
	flags.StringVar(&req.Title, "title", "", "Title, at least 2 characters")
	flags.StringVar(&req.Content, "content", "", "Content, at least 2 characters")
	flags.StringArrayVar(&req.Tags, "tag", nil, "Tag (repeatable)")
	return cmd
}

func newNotesEditCommand(s *session) *cobra.Command {
	var (
		req       api.UpdateNoteRequest
		clearTags bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a note; the previous state is kept as a version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := s.client.GetNote(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("title") {
				req.Title = current.Title
			}
			if !flags.Changed("content") {
				req.Content = current.Content
			}
			switch {
			case flags.Changed("tag"):
				// --tag задает новый набор целиком.
			case clearTags:
				req.Tags = []string{}
			default:
				req.Tags = current.Tags
			}

			note, err := s.client.UpdateNote(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			return s.printNote(cmd.OutOrStdout(), note)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Title, "title", "", "New title")
	flags.StringVar(&req.Content, "content", "", "New content")
	flags.StringArrayVar(&req.Tags, "tag", nil, "Replace tags (repeatable)")
	flags.BoolVar(&clearTags, "clear-tags", false, "Remove all tags")
	return cmd
}

func newNotesRemoveCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a note and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.client.DeleteNote(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted note %s\n", args[0])
			return nil
		},
	}
}

func newNotesHistoryCommand(s *session) *cobra.Command {
	var versionID int

	cmd := &cobra.Command{
		Use:   "history <id>",
		Short: "Show previous versions of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if versionID > 0 {
				v, err := s.client.Version(cmd.Context(), args[0], versionID)
				if err != nil {
					return err
				}
				if s.asJSON {
					return printJSON(out, v)
				}
				fmt.Fprintf(out, "Version %d of %s (%s)\n", v.VersionID, v.ParentID, formatTime(v.UpdatedAt))
				printFields(out, v.NoteFields)
				return nil
			}

			versions, err := s.client.Versions(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if s.asJSON {
				return printJSON(out, versions)
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tUPDATED\tTITLE")
			for _, v := range versions {
				fmt.Fprintf(w, "%d\t%s\t%s\n", v.VersionID, formatTime(v.UpdatedAt), v.Title)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&versionID, "version", 0, "Print a single version")
	return cmd
}

func newTagsCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List all tags in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tags, err := s.client.Tags(cmd.Context())
			if err != nil {
				return err
			}
			if s.asJSON {
				return printJSON(cmd.OutOrStdout(), tags)
			}
			for _, tag := range tags {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		},
	}
}

func (s *session) printNote(w io.Writer, note entities.Note) error {
	if s.asJSON {
		return printJSON(w, note)
	}
	fmt.Fprintf(w, "%s in %s (%s, %d version(s))\n", note.ID, note.NotebookID, formatTime(note.UpdatedAt), len(note.Versions))
	printFields(w, note.NoteFields)
	return nil
}

func printFields(w io.Writer, f entities.NoteFields) {
	fmt.Fprintf(w, "Title:   %s\n", f.Title)
	fmt.Fprintf(w, "Tags:    %s\n", strings.Join(f.Tags, ", "))
	fmt.Fprintf(w, "Content: %s\n", f.Content)
}

func printNotes(w io.Writer, notes []entities.Note) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOTEBOOK\tUPDATED\tTITLE\tTAGS")
	for _, n := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", n.ID, n.NotebookID, formatTime(n.UpdatedAt), n.Title, strings.Join(n.Tags, ","))
	}
	return tw.Flush()
}

func formatTime(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).UTC().Format(time.DateTime)
}
