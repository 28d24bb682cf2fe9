package cmd

import (
	"fmt"

	"github.com/theirongolddev/xpense/internal/cli"
	"github.com/theirongolddev/xpense/internal/expense"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all expenses",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	items := s.store.List()
	if len(items) == 0 {
		fmt.Fprintln(out, cli.Muted("No expenses recorded yet."))
		return nil
	}

	sum := expense.Summarize(items)

	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle("EXPENSES"))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderExpenses(items))
	fmt.Fprintln(out, cli.Muted(fmt.Sprintf("Total %s across %s", cli.FormatAmount(sum.Total), cli.Plural(sum.Count, "expense"))))
	return nil
}
