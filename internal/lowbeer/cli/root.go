// Package cli wires the lowbeer commands together.
package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mistakeknot/lowbeer/internal/lowbeer/cli/commands"
	"github.com/mistakeknot/lowbeer/internal/lowbeer/config"
	"github.com/mistakeknot/lowbeer/internal/lowbeer/events"
	"github.com/mistakeknot/lowbeer/internal/lowbeer/session"
	"github.com/mistakeknot/lowbeer/internal/lowbeer/tui"
)

func Execute() error {
	root := newRootCommand()
	return root.Execute()
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "lowbeer",
		Short: "AI project manager dashboard for the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(".")
			settings, err := config.LoadSettings(".")
			if err != nil {
				return err
			}
			queue := events.NewQueue()
			sess := session.New(".", nil, queue)
			m := tui.New(".", cfg, settings, sess, queue)
			p := tea.NewProgram(m, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
	root.AddCommand(
		commands.StatusCmd(),
		commands.ExportCmd(),
	)
	return root
}
