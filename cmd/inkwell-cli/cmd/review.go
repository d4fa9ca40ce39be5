package cmd

import (
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"

	"inkwell/internal/adapters/tui"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Open the interactive review TUI",
	Long: `Open the interactive review surface: capture from the keyboard,
answer open clarifications and watch the audit trail.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := tui.NewApp(GetPipeline())
		p := tea.NewProgram(app, tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}
