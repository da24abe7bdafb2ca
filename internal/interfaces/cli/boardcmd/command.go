package boardcmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"flowboard/internal/interfaces/cli"
	"flowboard/internal/interfaces/tui"
)

func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive ticket board",
		Long:  `Sign in to the backend, load the team's tickets, and run the terminal board.`,
		RunE:  run,
	}
}

func run(cmd *cobra.Command, args []string) error {
	rt, err := cli.Bootstrap(context.Background())
	if err != nil {
		return err
	}

	model := tui.NewModel(rt.Store, rt.Drag, rt.Client, rt.Roster, rt.Logger)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("board exited with error: %w", err)
	}
	return nil
}
