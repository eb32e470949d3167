// Command notesctl - клиент командной строки для сервиса заметок.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"notekeeper/internal/notes/adapters/remote"
	"notekeeper/internal/notes/config"
	"notekeeper/pkg/logger"
)

// session - общее состояние команд: клиент API и формат вывода.
type session struct {
	client  *remote.Client
	baseURL string
	timeout time.Duration
	debug   bool
	asJSON  bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	s := &session{}

	root := &cobra.Command{
		Use:           "notesctl",
		Short:         "Manage notebooks and notes of a notekeeper server",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.open(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return s.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&s.baseURL, "api-url", "", "Base URL of the notes service (default $NOTES_API_URL or http://localhost:3000)")
	flags.DurationVar(&s.timeout, "timeout", 0, "Request timeout")
	flags.BoolVar(&s.debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&s.asJSON, "json", false, "Print raw JSON")

	root.AddCommand(
		newNotebooksCommand(s),
		newNotesCommand(s),
		newTagsCommand(s),
	)
	return root
}

func (s *session) open(cmd *cobra.Command) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}

	level := "warn"
	if s.debug {
		level = "debug"
	}
	log, err := logger.NewLogger(cfg.Logging.GetEnvironment(), level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.SetGlobalLogger(log)
	cmd.SetContext(logger.NewRequestIDContext(cmd.Context(), ""))

	if s.baseURL == "" {
		s.baseURL = cfg.BaseURL
	}
	if s.timeout == 0 {
		s.timeout = time.Duration(cfg.Timeout) * time.Second
	}
	s.client = remote.NewClient(s.baseURL, s.timeout)
	return nil
}

func (s *session) close() error {
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	_ = logger.Log(context.Background()).Sync()
	return err
}

// printJSON печатает v с отступами.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
