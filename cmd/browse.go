package cmd

import (
	"github.com/theirongolddev/xpense/internal/logging"
	"github.com/theirongolddev/xpense/internal/tui"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse and delete expenses in a full-screen table",
	Args:  cobra.NoArgs,
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	if err := s.writable(); err != nil {
		return err
	}

	// Force TrueColor so selected-row backgrounds render in every terminal
	// that supports the alt screen.
	lipgloss.SetColorProfile(termenv.TrueColor)

	return tui.Browse(s.store, s.path, logging.ForComponent(s.log, logging.ComponentTUI))
}
