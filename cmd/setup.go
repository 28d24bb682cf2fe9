package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/xpense/internal/cli"
	"github.com/theirongolddev/xpense/internal/config"
	"github.com/theirongolddev/xpense/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := config.Load()
	theme.SetActive(cfg.Appearance.Theme)
	if cfg.Storage.File == "" {
		cfg.Storage.File = config.DefaultExpenseFile()
	}

	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themes = append(themes, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to xpense!").
				Description("Let's set up a few things."),
			huh.NewInput().
				Title("Expense file").
				Description("Where expenses are saved as JSON.").
				Validate(func(s string) error {
					if s == "" {
						return errors.New("a file path is required")
					}
					return nil
				}).
				Value(&cfg.Storage.File),
			huh.NewInput().
				Title("Default category").
				Description("Prefilled when adding an expense. Optional.").
				Value(&cfg.General.DefaultCategory),
			huh.NewConfirm().
				Title("Ask before deleting an expense?").
				Value(&cfg.General.ConfirmDeletes),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&cfg.Appearance.Theme),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&cfg.Log.Level),
		),
	).WithTheme(theme.Active.Form())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(cmd.OutOrStdout(), cli.Muted("Setup canceled, nothing saved."))
			return nil
		}
		return err
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.Success("Saved to "+config.ConfigPath()))
	fmt.Fprintln(out, cli.Muted("Run `xpense setup` anytime to reconfigure."))
	fmt.Fprintln(out)
	return nil
}
