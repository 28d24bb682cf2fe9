package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/xpense/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Storage]")
	file := config.ExpenseFile(cfg)
	if flagFile != "" {
		file = flagFile
	}
	fmt.Fprintf(out, "    Expense file: %s%s\n", file, source(flagFile != "", config.EnvFile))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [General]")
	fmt.Fprintf(out, "    Confirm deletes:  %v\n", cfg.General.ConfirmDeletes)
	if cfg.General.DefaultCategory != "" {
		fmt.Fprintf(out, "    Default category: %s\n", cfg.General.DefaultCategory)
	} else {
		fmt.Fprintln(out, "    Default category: not set")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Appearance]")
	fmt.Fprintf(out, "    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Log]")
	fmt.Fprintf(out, "    Level: %s%s\n", config.LogLevel(cfg), source(false, config.EnvLogLevel))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  Run `xpense setup` to reconfigure.")
	return nil
}

// source names where an overridden value came from.
func source(fromFlag bool, env string) string {
	switch {
	case fromFlag:
		return " (from --file)"
	case os.Getenv(env) != "":
		return " (from $" + env + ")"
	}
	return ""
}
