package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/theirongolddev/xpense/internal/expense"
	"github.com/theirongolddev/xpense/internal/logging"
	"github.com/theirongolddev/xpense/internal/shell"
	"github.com/theirongolddev/xpense/internal/tui"

	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive expense menu (the default command)",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sh := shell.New(s.store, s.path, tui.NewForms(nil, nil), cmd.OutOrStdout(), shell.Options{
		ConfirmDeletes:  s.cfg.General.ConfirmDeletes,
		DefaultCategory: s.cfg.General.DefaultCategory,
		ProtectFile:     s.load.Status == expense.LoadFailed,
		Logger:          logging.ForComponent(s.log, logging.ComponentShell),
	})
	if err := sh.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
