package versioncmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"flowboard/internal/shared/version"
)

var latest string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE:  run,
	}

	cmd.Flags().StringVar(&latest, "latest", "", "Compare the build against a released version")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, version.String())

	if latest != "" && version.HasNewerVersion(version.Version, latest) {
		fmt.Fprintf(out, "update available: %s\n", version.Normalize(latest))
	}
	return nil
}
