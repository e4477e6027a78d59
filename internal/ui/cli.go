package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/pupitre/internal/config"
	"github.com/javiermolinar/pupitre/internal/db"
	"github.com/javiermolinar/pupitre/internal/llm"
	"github.com/javiermolinar/pupitre/internal/seating"
	"github.com/javiermolinar/pupitre/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   seating.Repository
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application with the given repository and config.
func NewApp(repo seating.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "pupitre",
		Short: "A terminal seating chart editor for classrooms",
		Long: `Pupitre is a terminal seating chart editor for teachers.

Running it without arguments opens the interactive chart: drag students
between seats with the mouse, sweep to multi-select, and undo any move.
The subcommands manage the roster, apply bulk arrangements, and ask an
LLM for a layout without entering the TUI.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			// The LLM is optional in the TUI; keys depending on it report
			// "not configured" when the client could not be built.
			var opts []tui.ModelOption
			if client, err := llm.NewClient(a.config.LLM.Provider, a.config.LLM.Model, a.config.LLM.BaseURL); err == nil {
				opts = append(opts, tui.WithLLM(client))
			}
			return tui.RunWithDebug(a.repo, a.config, a.debug, opts...)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to pupitre-debug.log)")
	var noColor bool
	a.root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	a.root.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if noColor {
			DisableColor()
		}
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.rosterCmd())
	a.root.AddCommand(a.arrangeCmd())
	a.root.AddCommand(a.planCmd())
	a.root.AddCommand(a.exportCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("pupitre %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the database lazily, so commands like version and config
// work without touching storage.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	path := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

// Close releases the database, if it was opened.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
