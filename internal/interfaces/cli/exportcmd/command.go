package exportcmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"flowboard/internal/application/export"
	"flowboard/internal/interfaces/cli"
)

var outputPath string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write an HTML snapshot of the board",
		Long:  `Sign in, load the current board, and render it to a standalone HTML report.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "board.html", "Report file path")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := cli.Bootstrap(ctx)
	if err != nil {
		return err
	}

	if err := rt.Store.Load(ctx); err != nil {
		return fmt.Errorf("load board: %w", err)
	}

	generator := export.NewGenerator(rt.Roster, rt.Logger)
	if err := generator.WriteFile(outputPath, rt.Store.Board(), time.Now()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", outputPath)
	return nil
}
