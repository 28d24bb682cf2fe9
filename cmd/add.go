package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/xpense/internal/cli"
	"github.com/theirongolddev/xpense/internal/expense"
	"github.com/theirongolddev/xpense/internal/shell"
	"github.com/theirongolddev/xpense/internal/tui"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new expense",
	Long:  "Record a new expense. Without --amount and --category an input form is shown.",
	Example: `  xpense add --amount 12.50 --category Food --notes lunch
  xpense add -a 900 -c Rent --date 2025-03-01`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var (
	addAmount   string
	addCategory string
	addNotes    string
	addDate     string
)

func init() {
	addCmd.Flags().StringVarP(&addAmount, "amount", "a", "", "Amount spent, e.g. 12.50")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category, e.g. Food")
	addCmd.Flags().StringVarP(&addNotes, "notes", "n", "", "Free-text notes")
	addCmd.Flags().StringVar(&addDate, "date", "", "Date as YYYY-MM-DD (default now)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	if err := s.writable(); err != nil {
		return err
	}

	d := shell.Draft{Amount: addAmount, Category: addCategory, Notes: addNotes}
	switch {
	case addAmount == "" && addCategory == "":
		d.Category = s.cfg.General.DefaultCategory
		d, err = tui.NewForms(nil, nil).NewExpense(d)
		if errors.Is(err, shell.ErrAborted) {
			fmt.Fprintln(cmd.OutOrStdout(), cli.Muted("Expense not added."))
			return nil
		} else if err != nil {
			return err
		}
	case addAmount == "":
		return errors.New("--amount is required with --category")
	case addCategory == "" && s.cfg.General.DefaultCategory != "":
		d.Category = s.cfg.General.DefaultCategory
	}

	amount, err := expense.ParseAmount(d.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	e := expense.New(amount, d.Category, d.Notes)
	if addDate != "" {
		if e.Date, err = expense.ParseDate(addDate); err != nil {
			return fmt.Errorf("invalid date: %w", err)
		}
	}

	added, err := s.store.Add(e)
	if err != nil {
		return fmt.Errorf("adding expense: %w", err)
	}
	if err := s.save(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.Success(fmt.Sprintf("Expense added successfully! #%d %s", added.ID, added)))
	return nil
}
