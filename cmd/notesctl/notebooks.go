package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/ports/directory"
)

const hintRetry = "run the command again to retry"

func newNotebooksCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notebooks",
		Short: "List notebooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			notebooks, err := s.client.FetchNotebooks(cmd.Context())
			if err != nil {
				var ferr *directory.FetchError
				if errors.As(err, &ferr) {
					return fmt.Errorf("%w (%s)", err, hintRetry)
				}
				return err
			}

			if s.asJSON {
				return printJSON(cmd.OutOrStdout(), notebooks)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE")
			for _, nb := range notebooks {
				fmt.Fprintf(w, "%s\t%s\n", nb.ID, nb.Title)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <id> <title>",
			Short: "Append a notebook",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := s.client.AddNotebook(cmd.Context(), entities.Notebook{ID: args[0], Title: args[1]})
				if err != nil {
					return err
				}
				if s.asJSON {
					return printJSON(cmd.OutOrStdout(), res)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", res.Message, res.Title, res.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <id>",
			Short: "Remove a notebook together with its notes",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := s.client.RemoveNotebook(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if s.asJSON {
					return printJSON(cmd.OutOrStdout(), res)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed notebook %s and %d note(s)\n", res.ID, res.DeletedNotes)
				return nil
			},
		},
	)
	return cmd
}
