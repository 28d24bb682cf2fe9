package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/xpense/internal/cli"
	"github.com/theirongolddev/xpense/internal/expense"
	"github.com/theirongolddev/xpense/internal/shell"
	"github.com/theirongolddev/xpense/internal/tui"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change fields of an expense",
	Long:  "Change fields of an expense. Without field flags an edit form is shown.",
	Example: `  xpense edit 3 --amount 14.20
  xpense edit 3 --category Dining --notes ""`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editAmount   string
	editCategory string
	editNotes    string
	editDate     string
)

func init() {
	editCmd.Flags().StringVarP(&editAmount, "amount", "a", "", "New amount")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "New category")
	editCmd.Flags().StringVarP(&editNotes, "notes", "n", "", "New notes (empty clears them)")
	editCmd.Flags().StringVar(&editDate, "date", "", "New date as YYYY-MM-DD")
	rootCmd.AddCommand(editCmd)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid expense ID %q", arg)
	}
	return id, nil
}

func runEdit(cmd *cobra.Command, args []string) error {
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

	current, err := s.store.Get(id)
	if err != nil {
		return fmt.Errorf("editing expense: %w", err)
	}

	patch, err := patchFromFlags(cmd)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		patch, err = tui.NewForms(nil, nil).EditExpense(current)
		if errors.Is(err, shell.ErrAborted) {
			fmt.Fprintln(cmd.OutOrStdout(), cli.Muted("Update canceled."))
			return nil
		} else if err != nil {
			return err
		}
		if patch.IsEmpty() {
			fmt.Fprintln(cmd.OutOrStdout(), cli.Muted("Nothing changed."))
			return nil
		}
	}

	updated, err := s.store.Update(id, patch)
	if err != nil {
		return fmt.Errorf("editing expense %d: %w", id, err)
	}
	if err := s.save(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.Success(fmt.Sprintf("Expense updated successfully! #%d %s", id, updated)))
	return nil
}

// patchFromFlags builds a patch from the field flags that were set.
func patchFromFlags(cmd *cobra.Command) (expense.Patch, error) {
	var p expense.Patch
	flags := cmd.Flags()

	if flags.Changed("amount") {
		a, err := expense.ParseAmount(editAmount)
		if err != nil {
			return p, fmt.Errorf("invalid amount: %w", err)
		}
		p.Amount = &a
	}
	if flags.Changed("category") {
		c := strings.TrimSpace(editCategory)
		p.Category = &c
	}
	if flags.Changed("notes") {
		n := strings.TrimSpace(editNotes)
		p.Notes = &n
	}
	if flags.Changed("date") {
		d, err := expense.ParseDate(editDate)
		if err != nil {
			return p, fmt.Errorf("invalid date: %w", err)
		}
		p.Date = &d
	}
	return p, nil
}
