package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/theirongolddev/xpense/internal/cli"
	"github.com/theirongolddev/xpense/internal/config"
	"github.com/theirongolddev/xpense/internal/expense"
	"github.com/theirongolddev/xpense/internal/logging"
	"github.com/theirongolddev/xpense/internal/shell"
	"github.com/theirongolddev/xpense/internal/snapshot"
	"github.com/theirongolddev/xpense/internal/tui"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup [snapshot.db]",
	Short: "Copy all expenses into a SQLite snapshot",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBackup,
}

var restoreCmd = &cobra.Command{
	Use:   "restore [snapshot.db]",
	Short: "Replace all expenses with the contents of a SQLite snapshot",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRestore,
}

var restoreYes bool

func init() {
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(backupCmd, restoreCmd)
}

func snapshotPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return filepath.Join(config.DataDir(), "backup.db")
}

func runBackup(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	if s.load.Status == expense.LoadFailed {
		return fmt.Errorf("nothing to back up: %w", s.load.Err)
	}

	dbPath := snapshotPath(args)
	db, err := snapshot.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	items := s.store.List()
	if err := db.Write(items, s.path, time.Now()); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	logging.ForComponent(s.log, logging.ComponentSnapshot).Info("wrote snapshot", "path", dbPath, "count", len(items))

	fmt.Fprintln(cmd.OutOrStdout(), cli.Success(fmt.Sprintf("Backed up %s to %s", cli.Plural(len(items), "expense"), dbPath)))
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	dbPath := snapshotPath(args)
	db, err := snapshot.OpenExisting(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	info, err := db.Info()
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	if info.Count == 0 {
		return fmt.Errorf("snapshot %s holds no expenses", dbPath)
	}
	items, err := db.ReadAll()
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}

	fmt.Fprintln(out, cli.Muted(fmt.Sprintf("Snapshot of %s taken %s from %s",
		cli.Plural(info.Count, "expense"), info.TakenAt.Local().Format(time.DateTime), info.Source)))

	if !restoreYes {
		q := fmt.Sprintf("Replace the %s in %s?", cli.Plural(s.store.Len(), "current expense"), s.path)
		ok, err := tui.NewForms(nil, nil).Confirm(q)
		if err != nil && !errors.Is(err, shell.ErrAborted) {
			return err
		}
		if !ok {
			fmt.Fprintln(out, cli.Muted("Restore canceled."))
			return nil
		}
	}

	if err := s.store.Replace(items); err != nil {
		return fmt.Errorf("restoring snapshot: %w", err)
	}
	if err := s.save(); err != nil {
		return err
	}

	fmt.Fprintln(out, cli.Success(fmt.Sprintf("Restored %s from %s", cli.Plural(len(items), "expense"), dbPath)))
	return nil
}
