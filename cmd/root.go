// Package cmd implements the xpense CLI commands.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/theirongolddev/xpense/internal/cli"
	"github.com/theirongolddev/xpense/internal/config"
	"github.com/theirongolddev/xpense/internal/expense"
	"github.com/theirongolddev/xpense/internal/logging"
	"github.com/theirongolddev/xpense/internal/tui/theme"

	"github.com/spf13/cobra"
)

var (
	flagFile    string
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "xpense",
	Short:         "Personal expense tracker",
	Long:          "Record, review, edit and delete personal expenses kept in a local JSON file.",
	RunE:          runShell,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, cli.Error(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Expense file (default from $XPENSE_FILE or config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only print errors")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print debug logs")
}

// session is the state every command works on: config, logger and the
// loaded expense store.
type session struct {
	cfg   config.Config
	path  string
	log   *slog.Logger
	store *expense.Store
	load  expense.LoadResult
}

// loadSession resolves config and the expense file, then loads it. Load
// problems are reported, not returned; see writable.
func loadSession(cmd *cobra.Command) (*session, error) {
	if err := config.LoadEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	theme.SetActive(cfg.Appearance.Theme)

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	path := flagFile
	if path == "" {
		path = config.ExpenseFile(cfg)
	}

	store := expense.NewStore(expense.WithLogger(logging.ForComponent(logger, logging.ComponentStore)))
	res := store.Load(path)

	stderr := cmd.ErrOrStderr()
	switch {
	case res.Status == expense.LoadFailed:
		fmt.Fprintln(stderr, cli.Error(res.Message()))
	case !flagQuiet:
		fmt.Fprintln(stderr, cli.Muted("Data file: "+path))
		fmt.Fprintln(stderr, cli.Muted(res.Message()))
	}

	return &session{cfg: cfg, path: path, log: logger, store: store, load: res}, nil
}

func newLogger(cfg config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(config.LogLevel(cfg))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	switch {
	case flagVerbose:
		level = slog.LevelDebug
	case flagQuiet:
		level = slog.LevelError
	}
	return logging.ForComponent(logging.New(logging.Options{Level: level, Writer: w}), logging.ComponentApp), nil
}

// writable refuses changes that would overwrite a file that failed to load.
func (s *session) writable() error {
	if s.load.Status == expense.LoadFailed {
		return fmt.Errorf("refusing to overwrite %s: %w", s.path, s.load.Err)
	}
	return nil
}

// save persists the store and turns a failed save into an error.
func (s *session) save() error {
	res := s.store.Save(s.path)
	if !res.OK() {
		return fmt.Errorf("saving expenses: %w", res.Err)
	}
	return nil
}
