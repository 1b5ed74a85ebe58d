// Command flint is a terminal notes application with wikilink navigation.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/disnet/flint-note-sub007/internal/app"
	"github.com/disnet/flint-note-sub007/internal/config"
	"github.com/disnet/flint-note-sub007/internal/logging"
	"github.com/disnet/flint-note-sub007/internal/note"
	"github.com/disnet/flint-note-sub007/internal/version"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var notesDir string
	var logLevel string

	cmd := &cobra.Command{
		Use:           "flint",
		Short:         "Terminal notes with wikilink popovers",
		Long:          "flint is a terminal notes application: markdown notes in a tree, a glamour preview, and an editor whose [[wikilinks]] offer hover hints and an open/edit action menu.",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if logLevel != "" {
				os.Setenv("FLINT_LOG_LEVEL", logLevel)
			}
			return run(notesDir)
		},
	}

	cmd.PersistentFlags().StringVar(&notesDir, "notes-dir", "", "notes directory (overrides config)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the flint version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.String())
		},
	})

	return cmd
}

func run(notesDirFlag string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("flint needs an interactive terminal")
	}

	log := logging.New("main")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if notesDirFlag != "" {
		dir, err := config.NormalizeNotesDir(notesDirFlag)
		if err != nil {
			return err
		}
		cfg.NotesDir = dir
	}
	if err := os.MkdirAll(cfg.NotesDir, 0o755); err != nil {
		return fmt.Errorf("create notes dir: %w", err)
	}

	store := note.NewStore(cfg.NotesDir)
	if err := store.Scan(context.Background()); err != nil {
		return fmt.Errorf("scan notes: %w", err)
	}
	log.Info("notes indexed", "dir", cfg.NotesDir, "count", store.Len())

	model, err := app.New(cfg, store)
	if err != nil {
		return err
	}

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
