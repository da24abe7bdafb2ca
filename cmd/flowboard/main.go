package main

import (
	"os"

	"github.com/spf13/cobra"

	"flowboard/internal/interfaces/cli/attachcmd"
	"flowboard/internal/interfaces/cli/boardcmd"
	"flowboard/internal/interfaces/cli/exportcmd"
	"flowboard/internal/interfaces/cli/versioncmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flowboard",
		Short: "Flowboard - a terminal kanban board",
		Long:  `Flowboard is a terminal client for a hosted ticket board: browse the team's tickets, drag them between columns, comment, and export snapshots.`,
	}

	rootCmd.AddCommand(
		attachcmd.NewCommand(),
		boardcmd.NewCommand(),
		exportcmd.NewCommand(),
		versioncmd.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
