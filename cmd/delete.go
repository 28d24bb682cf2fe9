package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/xpense/internal/cli"
	"github.com/theirongolddev/xpense/internal/shell"
	"github.com/theirongolddev/xpense/internal/tui"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an expense",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

var deleteYes bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	if err := s.writable(); err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	e, err := s.store.Get(id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	if s.cfg.General.ConfirmDeletes && !deleteYes {
		ok, err := tui.NewForms(nil, nil).Confirm(fmt.Sprintf("Are you sure you want to delete this expense? %s", e))
		if err != nil && !errors.Is(err, shell.ErrAborted) {
			return err
		}
		if !ok {
			fmt.Fprintln(out, cli.Muted("Deletion canceled."))
			return nil
		}
	}

	if err := s.store.Remove(id); err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}
	if err := s.save(); err != nil {
		return err
	}

	fmt.Fprintln(out, cli.Success("Expense deleted successfully!"))
	return nil
}
