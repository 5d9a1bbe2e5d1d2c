// ABOUTME: TUI command for the capacity CLI
// ABOUTME: Launches the interactive plan viewer

package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/stucchio/Cloud-capacity-planning/internal/cli/client"
	"github.com/stucchio/Cloud-capacity-planning/internal/cli/tui"
)

var tuiFile string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive plan viewer",
	Long: `Solve a planning request and browse the resulting plan interactively.

Example:
  capacity tui -f request.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := loadPlanRequest(tuiFile)
		if err != nil {
			return err
		}

		app := tui.New(client.New(GetAPIURL()), req)
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("TUI failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().StringVarP(&tuiFile, "file", "f", "", "Planning request file (JSON)")
	tuiCmd.MarkFlagRequired("file")
}
